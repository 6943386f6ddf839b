package principal

import "github.com/gin-gonic/gin"

const (
	RoleAdmin        = "ADMIN"
	RoleVeterinarian = "VETERINARIAN"
	RoleWorker       = "WORKER"
)

// Principal is the authenticated identity executing an operation. It is
// built once by the auth middleware and passed explicitly into every
// service call; business logic never reads ambient session state.
type Principal struct {
	ID       string
	Role     string
	IsActive bool
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanActFor reports whether the principal may run a self-service operation
// on behalf of the given staff record.
func (p Principal) CanActFor(staffID string) bool {
	return p.IsAdmin() || p.ID == staffID
}

// CanReadAll reports whether the principal has the elevated read access
// used for broad attendance/payroll/leave listings.
func (p Principal) CanReadAll() bool {
	return p.Role == RoleAdmin || p.Role == RoleVeterinarian
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleVeterinarian, RoleWorker:
		return true
	}
	return false
}

// FromGin rebuilds the principal from the context keys the auth middleware
// seeded. Handlers call this once and hand the value to the service layer.
func FromGin(c *gin.Context) Principal {
	return Principal{
		ID:       c.GetString("staff_id"),
		Role:     c.GetString("role"),
		IsActive: c.GetBool("is_active"),
	}
}
