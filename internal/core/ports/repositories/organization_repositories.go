package repositories

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// OrganizationReader defines read operations for organization data.
type OrganizationReader interface {
	// FindOrganizationByID retrieves an organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// FindOrganizationBySlug retrieves an organization by its URL slug.
	FindOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error)

	// ListOrganizationsByUser retrieves the organizations a user belongs to.
	ListOrganizationsByUser(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error)

	// FindMembership retrieves a user's membership in an organization, if any.
	FindMembership(ctx context.Context, userID string, organizationID string) (*domain.OrganizationMember, error)
}

// OrganizationWriter defines write operations for organization data.
type OrganizationWriter interface {
	// SaveOrganization persists a new organization together with the creator's ADMIN membership.
	SaveOrganization(ctx context.Context, org domain.Organization, creatorMembership domain.OrganizationMember) error

	// UpdateOrganization updates mutable organization fields (name, description, active flag).
	UpdateOrganization(ctx context.Context, org domain.Organization) error

	// SaveMembership adds or updates a user's membership in an organization.
	SaveMembership(ctx context.Context, membership domain.OrganizationMember) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces.
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
