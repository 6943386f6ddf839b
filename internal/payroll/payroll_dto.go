package payroll

type CreatePayrollRequest struct {
	StaffID    string `json:"staff_id" binding:"required,uuid"`
	Period     string `json:"period" binding:"required"`
	Salary     int64  `json:"salary" binding:"required,gte=0"`
	Bonus      int64  `json:"bonus" binding:"gte=0"`
	Deductions int64  `json:"deductions" binding:"gte=0"`
	PaidOn     string `json:"paid_on" binding:"omitempty"`
}

type UpdatePayrollRequest struct {
	Salary     int64  `json:"salary" binding:"required,gte=0"`
	Bonus      int64  `json:"bonus" binding:"gte=0"`
	Deductions int64  `json:"deductions" binding:"gte=0"`
	PaidOn     string `json:"paid_on" binding:"omitempty"`
}

type PayrollResponse struct {
	ID         string  `json:"id"`
	StaffID    string  `json:"staff_id"`
	StaffName  string  `json:"staff_name,omitempty"`
	Period     string  `json:"period"`
	Salary     int64   `json:"salary"`
	Bonus      int64   `json:"bonus"`
	Deductions int64   `json:"deductions"`
	PaidOn     *string `json:"paid_on,omitempty"`
	NetPay     int64   `json:"net_pay"`
}
