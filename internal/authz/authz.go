package authz

import "github.com/eventschedule/eventschedule/internal/models"

// Role sets used by the route layer. Reads carry no set: they are public.
var (
	AdminOnly    = []models.Role{models.RoleAdmin}
	EventEditors = []models.Role{models.RoleAdmin, models.RoleEditor}
)

// Allowed reports whether role is a member of required. It assumes the role
// came out of an already-validated token; token checks are the codec's job.
func Allowed(role models.Role, required ...models.Role) bool {
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}
