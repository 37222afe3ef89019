package reconcile

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/shopspring/decimal"

	"khata/internal/timeutil"
)

// ImportHash identifies a statement line by date, description and amount,
// where amount is the credit when positive and the debit otherwise.
func ImportHash(date time.Time, description string, debit, credit decimal.Decimal) string {
	amount := debit
	if credit.IsPositive() {
		amount = credit
	}
	sum := sha256.Sum256([]byte(timeutil.FormatDate(date) + "|" + description + "|" + amount.String()))
	return hex.EncodeToString(sum[:])
}
