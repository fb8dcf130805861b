package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to create an organization.
type CreateOrganizationRequest struct {
	Slug             string `json:"slug" binding:"required,min=2,max=64,orgslug"`
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"required,len=3"`
}

// AddMemberRequest adds a user to an organization with a role.
type AddMemberRequest struct {
	UserID string                  `json:"userID" binding:"required"`
	Role   domain.OrganizationRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID   string    `json:"organizationID"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ListOrganizationsResponse wraps the organizations a user belongs to.
type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

// ToOrganizationResponse converts a domain.Organization to its response DTO.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:   org.OrganizationID,
		Slug:             org.Slug,
		Name:             org.Name,
		Description:      org.Description,
		BaseCurrencyCode: org.BaseCurrencyCode,
		IsActive:         org.IsActive,
		CreatedAt:        org.CreatedAt,
	}
}
