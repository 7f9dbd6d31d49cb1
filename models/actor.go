package models

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID   string
	Name string
	Role UserRole
}
