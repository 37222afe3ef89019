package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"khata/internal/domain"
)

// PartySheetRow is one data row of a party workbook.
type PartySheetRow struct {
	Line  int
	Input CreatePartyInput
}

// PartyImportFailure is a row that could not be created.
type PartyImportFailure struct {
	Line  int    `json:"line"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// PartyImportResult summarises a workbook import.
type PartyImportResult struct {
	Created int                  `json:"created"`
	Failed  []PartyImportFailure `json:"failed"`
}

var partySheetColumns = map[string]string{
	"name":            "name",
	"party name":      "name",
	"gstin":           "gstin",
	"pan":             "pan",
	"state code":      "state_code",
	"state":           "state_code",
	"email":           "email",
	"phone":           "phone",
	"mobile":          "phone",
	"address":         "address",
	"billing address": "address",
	"opening balance": "opening_balance",
}

// ReadPartySheet reads the first sheet of an XLSX workbook. The first row
// is the header; blank rows are skipped.
func ReadPartySheet(r io.Reader, kind domain.PartyKind) ([]PartySheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.Validationf("opening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.Validationf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, domain.Validationf("sheet %q is empty", sheets[0])
	}

	index := map[string]int{}
	for i, h := range rows[0] {
		key := strings.Join(strings.Fields(strings.ToLower(h)), " ")
		if col, ok := partySheetColumns[key]; ok {
			if _, seen := index[col]; !seen {
				index[col] = i
			}
		}
	}
	if _, ok := index["name"]; !ok {
		return nil, domain.Validationf("sheet has no name column")
	}

	cell := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var out []PartySheetRow
	for n, record := range rows[1:] {
		line := n + 2
		name := cell(record, "name")
		if name == "" && strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}
		in := CreatePartyInput{
			Kind:           kind,
			Name:           name,
			GSTIN:          cell(record, "gstin"),
			PAN:            cell(record, "pan"),
			StateCode:      cell(record, "state_code"),
			Email:          cell(record, "email"),
			Phone:          cell(record, "phone"),
			BillingAddress: cell(record, "address"),
			OpeningBalance: decimal.Zero,
			TDSRate:        decimal.Zero,
		}
		if ob := strings.ReplaceAll(cell(record, "opening_balance"), ",", ""); ob != "" {
			v, err := decimal.NewFromString(ob)
			if err != nil {
				return nil, domain.Validationf("row %d: invalid opening balance %q", line, ob)
			}
			in.OpeningBalance = v
		}
		if len(in.StateCode) == 1 {
			in.StateCode = "0" + in.StateCode
		}
		out = append(out, PartySheetRow{Line: line, Input: in})
	}
	return out, nil
}

// ImportParties creates every row through svc. Rows that fail validation are
// reported and do not stop the import.
func ImportParties(ctx context.Context, svc PartyService, tenantID uuid.UUID, rows []PartySheetRow) (*PartyImportResult, error) {
	res := &PartyImportResult{Failed: []PartyImportFailure{}}
	for _, row := range rows {
		if _, err := svc.Create(ctx, tenantID, row.Input); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Failed = append(res.Failed, PartyImportFailure{Line: row.Line, Name: row.Input.Name, Error: err.Error()})
			continue
		}
		res.Created++
	}
	return res, nil
}
