package numbering

import "fmt"

// Prefix is the leading tag of every transaction number.
const Prefix = "TXN"

// Format renders a human-readable transaction number, e.g. TXN-2025-000042.
// Uniqueness is enforced per organization at persistence time.
func Format(year int, sequence int64) string {
	return fmt.Sprintf("%s-%d-%06d", Prefix, year, sequence)
}
