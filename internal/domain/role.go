package domain

// Role of the acting user.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleWaiter   Role = "WAITER"
)

// ClientType of a reservation created by a waiter.
type ClientType string

const (
	ClientCustomer ClientType = "CUSTOMER"
	ClientVisitor  ClientType = "VISITOR"
)

// Actor is the authenticated user performing an operation.
type Actor struct {
	Email string
	Role  Role
}

// IsWaiter reports whether the actor acts as staff.
func (a Actor) IsWaiter() bool {
	return a.Role == RoleWaiter
}
