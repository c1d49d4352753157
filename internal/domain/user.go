package domain

// Role defines a user's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User is the authenticated caller as resolved from a verified token.
// Identity provisioning lives outside this service; the ledger only needs
// the user id to resolve wallet ownership.
type User struct {
	ID   string
	Role Role
}
