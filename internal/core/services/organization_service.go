package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
)

// organizationService implements the OrganizationSvcFacade interface
type organizationService struct {
	BaseService
	organizationRepo portsrepo.OrganizationRepositoryFacade
	currencyRepo     portsrepo.CurrencyRepositoryFacade
}

// NewOrganizationService creates a new organization service with the provided dependencies
func NewOrganizationService(
	organizationRepo portsrepo.OrganizationRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
) portssvc.OrganizationSvcFacade {
	return &organizationService{
		organizationRepo: organizationRepo,
		currencyRepo:     currencyRepo,
	}
}

// Ensure organizationService implements the OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// CreateOrganization creates a new organization with the creator as ADMIN.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	// The base currency must exist before any books can be kept in it.
	if s.currencyRepo != nil {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.BaseCurrencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: base currency %s is not registered", apperrors.ErrValidation, req.BaseCurrencyCode)
			}
			s.LogError(ctx, err, "Failed to validate base currency", slog.String("currency_code", req.BaseCurrencyCode))
			return nil, err
		}
	}

	now := time.Now().UTC()
	org := domain.Organization{
		OrganizationID:   uuid.NewString(),
		Slug:             req.Slug,
		Name:             req.Name,
		Description:      req.Description,
		BaseCurrencyCode: req.BaseCurrencyCode,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	creatorMembership := domain.OrganizationMember{
		UserID:         creatorUserID,
		OrganizationID: org.OrganizationID,
		Role:           domain.RoleAdmin,
		JoinedAt:       now,
	}

	if err := s.organizationRepo.SaveOrganization(ctx, org, creatorMembership); err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("slug", req.Slug))
		return nil, err
	}

	s.LogInfo(ctx, "Organization created successfully",
		slog.String("organization_id", org.OrganizationID),
		slog.String("slug", org.Slug))
	return &org, nil
}

// GetOrganizationByID retrieves an organization by its ID.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization by ID", slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	return org, nil
}

// GetOrganizationBySlug retrieves an organization by its URL slug.
func (s *organizationService) GetOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	org, err := s.organizationRepo.FindOrganizationBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization by slug", slog.String("slug", slug))
		}
		return nil, err
	}
	return org, nil
}

// ListUserOrganizations retrieves the organizations a user belongs to.
func (s *organizationService) ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error) {
	orgs, err := s.organizationRepo.ListOrganizationsByUser(ctx, userID, includeDisabled)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations for user", slog.String("user_id", userID))
		return nil, err
	}
	if orgs == nil {
		return []domain.Organization{}, nil
	}
	return orgs, nil
}

// AddMember adds a user to an organization. Requires ADMIN role.
func (s *organizationService) AddMember(ctx context.Context, addingUserID string, organizationID string, req dto.AddMemberRequest) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, organizationID, domain.RoleAdmin); err != nil {
		s.LogWarn(ctx, "User not authorized to add members to organization",
			slog.String("adding_user_id", addingUserID),
			slog.String("organization_id", organizationID))
		return err
	}

	membership := domain.OrganizationMember{
		UserID:         req.UserID,
		OrganizationID: organizationID,
		Role:           req.Role,
		JoinedAt:       time.Now().UTC(),
	}

	if err := s.organizationRepo.SaveMembership(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to organization",
			slog.String("target_user_id", req.UserID),
			slog.String("organization_id", organizationID))
		return err
	}

	s.LogInfo(ctx, "User added to organization successfully",
		slog.String("target_user_id", req.UserID),
		slog.String("organization_id", organizationID),
		slog.String("role", string(req.Role)))
	return nil
}

// DeactivateOrganization marks an organization inactive. Requires ADMIN role.
func (s *organizationService) DeactivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error {
	return s.setOrganizationActive(ctx, organizationID, requestingUserID, false)
}

// ActivateOrganization re-activates an organization. Requires ADMIN role.
func (s *organizationService) ActivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error {
	return s.setOrganizationActive(ctx, organizationID, requestingUserID, true)
}

func (s *organizationService) setOrganizationActive(ctx context.Context, organizationID string, requestingUserID string, active bool) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	org, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return err
	}
	if org.IsActive == active {
		return fmt.Errorf("%w: organization is already in the requested state", apperrors.ErrConflict)
	}

	org.IsActive = active
	org.LastUpdatedAt = time.Now().UTC()
	org.LastUpdatedBy = requestingUserID

	if err := s.organizationRepo.UpdateOrganization(ctx, *org); err != nil {
		s.LogError(ctx, err, "Failed to update organization active flag", slog.String("organization_id", organizationID))
		return err
	}

	s.LogInfo(ctx, "Organization active flag updated",
		slog.String("organization_id", organizationID),
		slog.Bool("is_active", active))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions in an organization.
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.OrganizationRole) error {
	membership, err := s.organizationRepo.FindMembership(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of organization",
				slog.String("user_id", userID),
				slog.String("organization_id", organizationID))
			// Non-members learn nothing about the organization's existence.
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to find organization membership",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return err
	}

	if !hasRequiredRole(membership.Role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role
func hasRequiredRole(userRole, requiredRole domain.OrganizationRole) bool {
	switch requiredRole {
	case domain.RoleReadOnly:
		return userRole == domain.RoleReadOnly || userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}
