package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements read-model queries over posted entries.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// GetTrialBalance aggregates posted debit/credit base-amount totals per account
// for an organization, over transactions dated on or before asOf. Voided
// transactions are excluded; reversals stay in, they cancel arithmetically.
func (r *reportingRepository) GetTrialBalance(ctx context.Context, organizationID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			SUM(CASE WHEN e.entry_type = 'DEBIT' THEN e.base_amount ELSE 0 END) AS total_debits,
			SUM(CASE WHEN e.entry_type = 'CREDIT' THEN e.base_amount ELSE 0 END) AS total_credits
		FROM ledger_entries e
		JOIN accounts a ON e.account_id = a.account_id
		JOIN transactions t ON e.transaction_id = t.transaction_id
		WHERE t.transaction_date <= $1
			AND a.organization_id = $2
			AND t.status = 'POSTED'
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, asOf, organizationID)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Name,
			&accountType,
			&row.TotalDebits,
			&row.TotalCredits,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.TrialBalanceRow{}, nil
	}

	return result, nil
}
