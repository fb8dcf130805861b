package models

import "time"

// Organization mirrors the organizations table.
type Organization struct {
	OrganizationID   string
	Slug             string
	Name             string
	Description      string
	BaseCurrencyCode string
	IsActive         bool
	AuditFields
}

// OrganizationMember mirrors the organization_users table.
type OrganizationMember struct {
	UserID         string
	OrganizationID string
	Role           string
	JoinedAt       time.Time
}
