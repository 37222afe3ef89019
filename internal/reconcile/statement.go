package reconcile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"khata/internal/domain"
)

// StatementRow is one parsed bank statement line.
type StatementRow struct {
	Line            int                 `validate:"-"`
	TxnDate         time.Time           `validate:"required"`
	Description     string              `validate:"required,max=500"`
	Narration       string              `validate:"max=1000"`
	ReferenceNumber string              `validate:"max=100"`
	Debit           decimal.Decimal     `validate:"-"`
	Credit          decimal.Decimal     `validate:"-"`
	Balance         decimal.NullDecimal `validate:"-"`
}

// Transaction converts the row into an unmatched bank transaction.
func (r StatementRow) Transaction(tenantID uuid.UUID, accountLabel string) domain.BankTransaction {
	return domain.BankTransaction{
		ID:              uuid.New(),
		TenantID:        tenantID,
		AccountLabel:    accountLabel,
		TxnDate:         r.TxnDate,
		Description:     r.Description,
		Narration:       r.Narration,
		ReferenceNumber: r.ReferenceNumber,
		Debit:           r.Debit,
		Credit:          r.Credit,
		Balance:         r.Balance,
		ImportHash:      ImportHash(r.TxnDate, r.Description, r.Debit, r.Credit),
		Status:          domain.BankTxnUnmatched,
	}
}

var rowValidator = newRowValidator()

func newRowValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		row := sl.Current().Interface().(StatementRow)
		if row.Debit.IsNegative() {
			sl.ReportError(row.Debit, "Debit", "Debit", "gte0", "")
		}
		if row.Credit.IsNegative() {
			sl.ReportError(row.Credit, "Credit", "Credit", "gte0", "")
		}
		if row.Debit.IsZero() && row.Credit.IsZero() {
			sl.ReportError(row.Credit, "Credit", "Credit", "debitorcredit", "")
		}
	}, StatementRow{})
	return v
}

// Validate checks a row for import.
func (r StatementRow) Validate() error {
	if err := rowValidator.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return domain.Validationf("row %d: %s failed %q", r.Line, strings.ToLower(fe.Field()), fe.Tag())
		}
		return domain.Validationf("row %d: %v", r.Line, err)
	}
	return nil
}

type column string

const (
	colDate        column = "date"
	colDescription column = "description"
	colNarration   column = "narration"
	colReference   column = "reference"
	colDebit       column = "debit"
	colCredit      column = "credit"
	colBalance     column = "balance"
)

var headerAliases = map[string]column{
	"date":             colDate,
	"txn date":         colDate,
	"transaction date": colDate,
	"value date":       colDate,
	"description":      colDescription,
	"particulars":      colDescription,
	"narration":        colNarration,
	"remarks":          colNarration,
	"reference":        colReference,
	"ref no":           colReference,
	"ref no.":          colReference,
	"reference number": colReference,
	"chq/ref no":       colReference,
	"cheque no":        colReference,
	"utr":              colReference,
	"debit":            colDebit,
	"withdrawal":       colDebit,
	"withdrawal amt":   colDebit,
	"credit":           colCredit,
	"deposit":          colCredit,
	"deposit amt":      colCredit,
	"balance":          colBalance,
	"closing balance":  colBalance,
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"02-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02/01/06",
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

// ParseDate parses a statement date in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// ParseAmount parses a statement amount, tolerating thousands separators,
// currency marks and blank cells.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", "₹", "", "INR", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cleaned)
}

// ParseStatementCSV reads a bank statement export. The first record is the
// header. Any malformed row rejects the whole statement.
func ParseStatementCSV(r io.Reader) ([]StatementRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.Validationf("statement is empty")
		}
		return nil, domain.Validationf("reading statement header: %v", err)
	}

	index := map[column]int{}
	for i, h := range header {
		if col, ok := headerAliases[normalizeHeader(h)]; ok {
			if _, seen := index[col]; !seen {
				index[col] = i
			}
		}
	}
	if _, ok := index[colDate]; !ok {
		return nil, domain.Validationf("statement has no date column")
	}
	if _, ok := index[colDescription]; !ok {
		return nil, domain.Validationf("statement has no description column")
	}
	_, hasDebit := index[colDebit]
	_, hasCredit := index[colCredit]
	if !hasDebit && !hasCredit {
		return nil, domain.Validationf("statement has no debit or credit column")
	}

	var rows []StatementRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, domain.Validationf("row %d: %v", line, err)
		}
		if isBlank(record) {
			continue
		}

		row, err := parseRecord(record, index, line)
		if err != nil {
			return nil, err
		}
		if err := row.Validate(); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func cell(record []string, index map[column]int, col column) string {
	i, ok := index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseRecord(record []string, index map[column]int, line int) (StatementRow, error) {
	row := StatementRow{
		Line:            line,
		Description:     cell(record, index, colDescription),
		Narration:       cell(record, index, colNarration),
		ReferenceNumber: cell(record, index, colReference),
	}

	var err error
	if row.TxnDate, err = ParseDate(cell(record, index, colDate)); err != nil {
		return row, domain.Validationf("row %d: %v", line, err)
	}
	if row.Debit, err = ParseAmount(cell(record, index, colDebit)); err != nil {
		return row, domain.Validationf("row %d: invalid debit %q", line, cell(record, index, colDebit))
	}
	if row.Credit, err = ParseAmount(cell(record, index, colCredit)); err != nil {
		return row, domain.Validationf("row %d: invalid credit %q", line, cell(record, index, colCredit))
	}
	if raw := cell(record, index, colBalance); raw != "" {
		bal, err := ParseAmount(raw)
		if err != nil {
			return row, domain.Validationf("row %d: invalid balance %q", line, raw)
		}
		row.Balance = decimal.NewNullDecimal(bal)
	}
	return row, nil
}
