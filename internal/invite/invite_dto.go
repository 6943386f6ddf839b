package invite

type CreateInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=ADMIN VETERINARIAN WORKER"`
}

type AcceptInviteRequest struct {
	Token    string `json:"token" binding:"required"`
	FullName string `json:"full_name" binding:"required,min=2,max=150"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	Password string `json:"password" binding:"required,min=8"`
}

type InviteResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expires_at"`
	Status    string `json:"status"`
	InvitedBy string `json:"invited_by"`
	CreatedAt string `json:"created_at"`
}

type AcceptInviteResponse struct {
	StaffID     string `json:"staff_id"`
	StaffNumber string `json:"staff_number"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}
