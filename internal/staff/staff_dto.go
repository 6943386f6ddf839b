package staff

type CreateStaffRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	Role     string `json:"role" binding:"required,oneof=ADMIN VETERINARIAN WORKER"`
	HiredAt  string `json:"hired_at" binding:"omitempty"`
}

type UpdateStaffRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=150"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	Role     string `json:"role" binding:"required,oneof=ADMIN VETERINARIAN WORKER"`
}

type ListFilter struct {
	Page   int    `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,gte=1,lte=100"`
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,oneof=ADMIN VETERINARIAN WORKER"`
	Active *bool  `form:"active"`
}

type StaffResponse struct {
	ID          string  `json:"id"`
	StaffNumber string  `json:"staff_number"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone,omitempty"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"is_active"`
	HiredAt     *string `json:"hired_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// StaffOption is the trimmed shape used to fill dropdowns in the farm
// management UI.
type StaffOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
