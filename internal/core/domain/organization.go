package domain

import "time"

// Organization is an isolated tenant owning its chart of accounts, ledger and
// reference data. It is addressed externally by its URL slug.
type Organization struct {
	OrganizationID   string `json:"organizationID"` // Primary key (UUID)
	Slug             string `json:"slug"`           // URL-safe unique identifier
	Name             string `json:"name"`
	Description      string `json:"description"`
	BaseCurrencyCode string `json:"baseCurrencyCode"` // Currency the books are kept in (e.g. "USD")
	IsActive         bool   `json:"isActive"`
	AuditFields
}

// OrganizationRole defines the possible roles a user can have within an organization.
type OrganizationRole string

const (
	RoleAdmin    OrganizationRole = "ADMIN"
	RoleMember   OrganizationRole = "MEMBER"
	RoleReadOnly OrganizationRole = "READONLY"
	RoleRemoved  OrganizationRole = "REMOVED"
)

// OrganizationMember represents the membership of a user in an organization.
type OrganizationMember struct {
	UserID         string           `json:"userID"`
	OrganizationID string           `json:"organizationID"`
	Role           OrganizationRole `json:"role"`
	JoinedAt       time.Time        `json:"joinedAt"`
}
