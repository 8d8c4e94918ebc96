package models

import "github.com/google/uuid"

const (
	RolePublic     = "public"
	RolePartner    = "partner"
	RoleGovernment = "government"
	RoleAdmin      = "admin"
)

// Caller is the authenticated user behind a request.
type Caller struct {
	UserID uuid.UUID
	Role   string
}

// CanModify reports whether the caller may change a record owned by ownerID.
func (c Caller) CanModify(ownerID uuid.UUID) bool {
	return c.Role == RoleAdmin || c.UserID == ownerID
}
