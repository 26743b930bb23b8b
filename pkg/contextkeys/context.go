// Package contextkeys defines the gin context keys shared between middleware
// and handlers so the two sides cannot drift apart.
package contextkeys

const (
	// UserID holds the authenticated user's id.
	UserID = "userID"

	// Role holds the authenticated user's role.
	Role = "role"
)
