package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// OrganizationSvcFacade exposes tenant management and authorization checks.
type OrganizationSvcFacade interface {
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error)
	AddMember(ctx context.Context, addingUserID string, organizationID string, req dto.AddMemberRequest) error
	DeactivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error
	ActivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error

	// AuthorizeUserAction verifies the user holds at least the required role in
	// the organization. Returns apperrors.ErrNotFound when the user has no
	// membership (existence is not disclosed) and apperrors.ErrForbidden when
	// the role is insufficient.
	AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.OrganizationRole) error
}
