package rbac

import "farmstaff/internal/principal"

// Role policies are fixed for the three farm roles. Ownership (self vs
// other staff) is narrowed further inside the services; these rules only
// gate which operations a role may reach at all.
type policyRule struct {
	role     string
	resource string
	action   string
}

var rolePolicies = []policyRule{
	// ADMIN manages everything.
	{principal.RoleAdmin, "staff", "read"},
	{principal.RoleAdmin, "staff", "create"},
	{principal.RoleAdmin, "staff", "update"},
	{principal.RoleAdmin, "staff", "delete"},
	{principal.RoleAdmin, "leave", "read"},
	{principal.RoleAdmin, "leave", "create"},
	{principal.RoleAdmin, "leave", "update"},
	{principal.RoleAdmin, "leave", "approve"},
	{principal.RoleAdmin, "leave_balance", "read"},
	{principal.RoleAdmin, "leave_balance", "manage"},
	{principal.RoleAdmin, "attendance", "read"},
	{principal.RoleAdmin, "attendance", "check"},
	{principal.RoleAdmin, "payroll", "read"},
	{principal.RoleAdmin, "payroll", "create"},
	{principal.RoleAdmin, "payroll", "update"},
	{principal.RoleAdmin, "payroll", "delete"},
	{principal.RoleAdmin, "invite", "read"},
	{principal.RoleAdmin, "invite", "manage"},

	// VETERINARIAN has read-only elevated access.
	{principal.RoleVeterinarian, "staff", "read"},
	{principal.RoleVeterinarian, "leave", "read"},
	{principal.RoleVeterinarian, "leave", "create"},
	{principal.RoleVeterinarian, "leave", "update"},
	{principal.RoleVeterinarian, "leave_balance", "read"},
	{principal.RoleVeterinarian, "attendance", "read"},
	{principal.RoleVeterinarian, "attendance", "check"},
	{principal.RoleVeterinarian, "payroll", "read"},

	// WORKER is self-service only; services restrict to own records.
	{principal.RoleWorker, "leave", "read"},
	{principal.RoleWorker, "leave", "create"},
	{principal.RoleWorker, "leave", "update"},
	{principal.RoleWorker, "leave_balance", "read"},
	{principal.RoleWorker, "attendance", "read"},
	{principal.RoleWorker, "attendance", "check"},
	{principal.RoleWorker, "payroll", "read"},
}
