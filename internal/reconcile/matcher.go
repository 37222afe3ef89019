// Package reconcile parses bank statements and proposes open invoices for
// incoming bank credits.
package reconcile

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"khata/internal/domain"
)

// Score weights.
const (
	ScoreExactBalance      = 50
	ScoreExactTotal        = 40
	ScoreNearBalance       = 20
	ScorePartyName         = 15
	ScoreNumberInNarrative = 30
	ScoreReferenceInNumber = 20
)

// MaxCandidates is how many candidates are kept per transaction.
const MaxCandidates = 3

var (
	amountTolerance = decimal.RequireFromString("0.01")
	nearRatio       = decimal.RequireFromString("0.05")
)

// IsOpenForMatching reports whether an invoice can receive a bank credit.
func IsOpenForMatching(doc *domain.Document) bool {
	if doc.Kind != domain.DocumentSales || doc.DeletedAt != nil || !doc.BalanceDue.IsPositive() {
		return false
	}
	switch doc.Status {
	case domain.StatusSent, domain.StatusPartiallyPaid, domain.StatusOverdue:
		return true
	}
	return false
}

func closeTo(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(amountTolerance)
}

// Score rates how likely txn pays doc. Zero means no evidence at all.
func Score(txn *domain.BankTransaction, doc *domain.Document) int {
	score := 0
	credit := txn.Credit

	switch {
	case closeTo(credit, doc.BalanceDue):
		score += ScoreExactBalance
	case closeTo(credit, doc.TotalAmount):
		score += ScoreExactTotal
	case doc.BalanceDue.IsPositive() &&
		credit.Sub(doc.BalanceDue).Abs().Div(doc.BalanceDue).LessThan(nearRatio):
		score += ScoreNearBalance
	}

	narrative := strings.ToLower(txn.Description + " " + txn.Narration)
	for _, w := range strings.Fields(strings.ToLower(doc.PartyName)) {
		if utf8.RuneCountInString(w) > 2 && strings.Contains(narrative, w) {
			score += ScorePartyName
			break
		}
	}

	if doc.DocumentNumber != "" && strings.Contains(narrative, strings.ToLower(doc.DocumentNumber)) {
		score += ScoreNumberInNarrative
	}

	if txn.ReferenceNumber != "" && strings.Contains(doc.DocumentNumber, txn.ReferenceNumber) {
		score += ScoreReferenceInNumber
	}
	return score
}

// Suggest ranks open invoices for every unmatched bank credit. Candidates
// with equal scores keep the order of open. Transactions with no candidate
// are left out.
func Suggest(txns []domain.BankTransaction, open []domain.Document) []domain.MatchSuggestion {
	eligible := make([]domain.Document, 0, len(open))
	for i := range open {
		if IsOpenForMatching(&open[i]) {
			eligible = append(eligible, open[i])
		}
	}

	var out []domain.MatchSuggestion
	for i := range txns {
		txn := &txns[i]
		if txn.Status != domain.BankTxnUnmatched || !txn.Credit.IsPositive() {
			continue
		}

		var candidates []domain.MatchCandidate
		for j := range eligible {
			if s := Score(txn, &eligible[j]); s > 0 {
				candidates = append(candidates, domain.MatchCandidate{Document: eligible[j], Score: s})
			}
		}
		if len(candidates) == 0 {
			continue
		}

		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].Score > candidates[b].Score
		})
		if len(candidates) > MaxCandidates {
			candidates = candidates[:MaxCandidates]
		}
		out = append(out, domain.MatchSuggestion{Transaction: *txn, Candidates: candidates})
	}
	return out
}

// DefaultMatchAmount is the payment created when a match confirms without an
// explicit amount: the smaller of the credit and the balance due.
func DefaultMatchAmount(txn *domain.BankTransaction, doc *domain.Document) decimal.Decimal {
	return decimal.Min(txn.Credit, doc.BalanceDue)
}
