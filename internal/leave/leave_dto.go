package leave

type CreateLeaveRequest struct {
	StaffID   string `json:"staff_id" binding:"required,uuid"`
	LeaveType string `json:"leave_type" binding:"required,oneof=SICK ANNUAL MATERNITY PATERNITY CASUAL UNPAID"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type UpdateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=SICK ANNUAL MATERNITY PATERNITY CASUAL UNPAID"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	StaffID         string  `json:"staff_id"`
	StaffName       string  `json:"staff_name,omitempty"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}
