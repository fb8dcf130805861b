package accounting

import (
	"fmt"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the tolerance, in base currency units, allowed between the
// debit and credit totals of a transaction. It absorbs rounding introduced by
// converting foreign-currency entries to the base currency.
var BalanceEpsilon = decimal.New(1, -2) // 0.01

// SumEntries returns the debit and credit totals of the given entries,
// evaluated in base currency.
func SumEntries(entries []domain.LedgerEntry) (totalDebits, totalCredits decimal.Decimal) {
	totalDebits = decimal.Zero
	totalCredits = decimal.Zero
	for _, e := range entries {
		if e.EntryType == domain.Debit {
			totalDebits = totalDebits.Add(e.BaseAmount)
		} else {
			totalCredits = totalCredits.Add(e.BaseAmount)
		}
	}
	return totalDebits, totalCredits
}

// IsBalanced reports whether debit and credit totals agree within BalanceEpsilon.
func IsBalanced(totalDebits, totalCredits decimal.Decimal) bool {
	return totalDebits.Sub(totalCredits).Abs().LessThanOrEqual(BalanceEpsilon)
}

// SignedBaseAmount applies the correct sign to an entry's base amount given
// the account type, following the normal-balance convention:
// DEBIT to ASSET/EXPENSE increases the account, CREDIT decreases it;
// the other account types work the opposite way.
func SignedBaseAmount(entry domain.LedgerEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	signed := entry.BaseAmount
	isDebit := entry.EntryType == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signed = signed.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signed = signed.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, entry.AccountID)
	}
	return signed, nil
}
