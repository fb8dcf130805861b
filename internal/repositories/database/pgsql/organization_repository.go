package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/finbooks/finbooks_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryFacade
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationColumns = `organization_id, slug, name, description, base_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanOrganization(row pgx.Row) (models.Organization, error) {
	var m models.Organization
	err := row.Scan(
		&m.OrganizationID,
		&m.Slug,
		&m.Name,
		&m.Description,
		&m.BaseCurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveOrganization persists a new organization and the creator's ADMIN
// membership within one DB transaction.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization, creatorMembership domain.OrganizationMember) error {
	modelOrg := mapping.ToModelOrganization(org)

	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	orgQuery := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, orgQuery,
		modelOrg.OrganizationID,
		modelOrg.Slug,
		modelOrg.Name,
		modelOrg.Description,
		modelOrg.BaseCurrencyCode,
		modelOrg.IsActive,
		modelOrg.CreatedAt,
		modelOrg.CreatedBy,
		modelOrg.LastUpdatedAt,
		modelOrg.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return fmt.Errorf("%w: organization slug %s already taken", apperrors.ErrDuplicate, modelOrg.Slug)
			}
			if pgErr.Code == "23503" {
				return fmt.Errorf("%w: base currency %s does not exist", apperrors.ErrValidation, modelOrg.BaseCurrencyCode)
			}
		}
		return apperrors.NewAppError(500, "failed to save organization "+modelOrg.OrganizationID, err)
	}

	memberQuery := `
		INSERT INTO organization_users (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = tx.Exec(ctx, memberQuery,
		creatorMembership.UserID,
		creatorMembership.OrganizationID,
		string(creatorMembership.Role),
		creatorMembership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save creator membership for organization "+modelOrg.OrganizationID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit organization "+modelOrg.OrganizationID, err)
	}

	return nil
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE organization_id = $1;`

	modelOrg, err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find organization by ID "+organizationID, err)
	}

	domainOrg := mapping.ToDomainOrganization(modelOrg)
	return &domainOrg, nil
}

// FindOrganizationBySlug retrieves an organization by its URL slug.
func (r *PgxOrganizationRepository) FindOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1;`

	modelOrg, err := scanOrganization(r.Pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find organization by slug "+slug, err)
	}

	domainOrg := mapping.ToDomainOrganization(modelOrg)
	return &domainOrg, nil
}

// ListOrganizationsByUser retrieves the organizations a user belongs to.
func (r *PgxOrganizationRepository) ListOrganizationsByUser(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error) {
	query := `
		SELECT o.organization_id, o.slug, o.name, o.description, o.base_currency_code, o.is_active,
		       o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM organizations o
		JOIN organization_users ou ON o.organization_id = ou.organization_id
		WHERE ou.user_id = $1 AND ou.role != $2
	`
	if !includeDisabled {
		query += ` AND o.is_active = TRUE`
	}
	query += ` ORDER BY o.name;`

	rows, err := r.Pool.Query(ctx, query, userID, string(domain.RoleRemoved))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organizations for user "+userID, err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		m, err := scanOrganization(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization row for user "+userID, err)
		}
		orgs = append(orgs, mapping.ToDomainOrganization(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating organization rows for user "+userID, err)
	}

	return orgs, nil
}

// FindMembership retrieves a user's membership in an organization, if any.
func (r *PgxOrganizationRepository) FindMembership(ctx context.Context, userID string, organizationID string) (*domain.OrganizationMember, error) {
	query := `
		SELECT user_id, organization_id, role, joined_at
		FROM organization_users
		WHERE user_id = $1 AND organization_id = $2;
	`
	var m models.OrganizationMember
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(
		&m.UserID,
		&m.OrganizationID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership for user "+userID, err)
	}

	membership := mapping.ToDomainMembership(m)
	return &membership, nil
}

// UpdateOrganization updates mutable organization fields.
func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	modelOrg := mapping.ToModelOrganization(org)

	query := `
		UPDATE organizations
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1;
	`
	// Slug and base_currency_code are fixed at creation time.

	cmdTag, err := r.Pool.Exec(ctx, query,
		modelOrg.OrganizationID,
		modelOrg.Name,
		modelOrg.Description,
		modelOrg.IsActive,
		modelOrg.LastUpdatedAt,
		modelOrg.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update organization "+modelOrg.OrganizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// SaveMembership adds a user to an organization or updates their role.
func (r *PgxOrganizationRepository) SaveMembership(ctx context.Context, membership domain.OrganizationMember) error {
	query := `
		INSERT INTO organization_users (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, organization_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: add user or update their role if they already exist
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.OrganizationID,
		string(membership.Role),
		membership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in organization "+membership.OrganizationID, err)
	}
	return nil
}
