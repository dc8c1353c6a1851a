// Package permissions holds the authorization predicates for every
// endpoint group. Each is a pure function of the caller's role (and
// resource ownership where relevant), evaluated before handler logic.
package permissions

import "review-backend/internal/models"

// CanManageUsers gates the admin user CRUD endpoints.
func CanManageUsers(role string) bool {
	return role == models.RoleAdmin
}

// CanManageCatalog gates writes to categories, genres and titles.
func CanManageCatalog(role string) bool {
	return role == models.RoleAdmin
}

// CanModifyFeedback gates updates and deletes of reviews and comments:
// the author, a moderator or an admin.
func CanModifyFeedback(role string, isAuthor bool) bool {
	if isAuthor {
		return true
	}
	return role == models.RoleModerator || role == models.RoleAdmin
}
