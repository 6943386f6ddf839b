package leavebalance

type CreateBalanceRequest struct {
	StaffID        string `json:"staff_id" binding:"required,uuid"`
	Year           int    `json:"year" binding:"required,min=2000"`
	TotalLeaveDays int    `json:"total_leave_days" binding:"required,min=0"`
}

type SetTotalsRequest struct {
	TotalLeaveDays int  `json:"total_leave_days" binding:"min=0"`
	UsedLeaveDays  *int `json:"used_leave_days"`
}

type BalanceResponse struct {
	ID                 string `json:"id"`
	StaffID            string `json:"staff_id"`
	Year               int    `json:"year"`
	TotalLeaveDays     int    `json:"total_leave_days"`
	UsedLeaveDays      int    `json:"used_leave_days"`
	RemainingLeaveDays int    `json:"remaining_leave_days"`
}
