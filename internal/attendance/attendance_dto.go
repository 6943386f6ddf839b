package attendance

type CheckInRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
}

type CheckOutRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
}

type ListFilter struct {
	StaffID string `form:"staff_id" binding:"omitempty,uuid"`
	Date    string `form:"date"`
}

type AttendanceResponse struct {
	ID         string   `json:"id"`
	StaffID    string   `json:"staff_id"`
	StaffName  string   `json:"staff_name,omitempty"`
	WorkDate   string   `json:"work_date"`
	CheckInAt  string   `json:"check_in_at"`
	CheckOutAt *string  `json:"check_out_at,omitempty"`
	Hours      *float64 `json:"hours,omitempty"`
	Status     string   `json:"status"`
}
