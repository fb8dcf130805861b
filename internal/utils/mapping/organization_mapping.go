package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelOrganization converts a domain Organization to its model.
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID:   d.OrganizationID,
		Slug:             d.Slug,
		Name:             d.Name,
		Description:      d.Description,
		BaseCurrencyCode: d.BaseCurrencyCode,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model Organization to its domain representation.
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID:   m.OrganizationID,
		Slug:             m.Slug,
		Name:             m.Name,
		Description:      m.Description,
		BaseCurrencyCode: m.BaseCurrencyCode,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMembership converts a model OrganizationMember to its domain representation.
func ToDomainMembership(m models.OrganizationMember) domain.OrganizationMember {
	return domain.OrganizationMember{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           domain.OrganizationRole(m.Role),
		JoinedAt:       m.JoinedAt,
	}
}
