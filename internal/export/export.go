// Package export writes ranked leads as CSV and XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/scorer"
)

// bom marks the CSV as UTF-8 for spreadsheet applications.
const bom = "\ufeff"

// Column is one exported field. Value returns a string, int or int64.
type Column[T any] struct {
	Header string
	Value  func(model.Scored[T]) any
}

// FundingColumns is the full funding export layout.
var FundingColumns = []Column[model.FundingLead]{
	{"Rank", func(s model.Scored[model.FundingLead]) any { return string(s.Rank) }},
	{"Score", func(s model.Scored[model.FundingLead]) any { return s.Score }},
	{"Company", func(s model.Scored[model.FundingLead]) any { return s.Lead.Company }},
	{"Domain", func(s model.Scored[model.FundingLead]) any { return s.Lead.Domain }},
	{"LinkedIn", func(s model.Scored[model.FundingLead]) any { return s.Lead.LinkedIn }},
	{"Amount (USD)", func(s model.Scored[model.FundingLead]) any { return s.Lead.Amount }},
	{"Round", func(s model.Scored[model.FundingLead]) any { return s.Lead.Round }},
	{"Lead Investor", func(s model.Scored[model.FundingLead]) any { return s.Lead.LeadInvestor }},
	{"All Investors", func(s model.Scored[model.FundingLead]) any { return strings.Join(s.Lead.Investors, "; ") }},
	{"Country", func(s model.Scored[model.FundingLead]) any { return s.Lead.Country }},
	{"Date Announced", func(s model.Scored[model.FundingLead]) any { return s.Lead.DateAnnounced }},
	{"Hiring Tier", func(s model.Scored[model.FundingLead]) any { return string(s.Lead.HiringTier) }},
	{"Tech Roles", func(s model.Scored[model.FundingLead]) any { return s.Lead.TechRoles }},
	{"ATS Provider", func(s model.Scored[model.FundingLead]) any { return s.Lead.ATSProvider }},
	{"Careers URL", func(s model.Scored[model.FundingLead]) any { return s.Lead.CareersURL }},
	{"Source URL", func(s model.Scored[model.FundingLead]) any { return s.Lead.SourceURL }},
	factorColumn[model.FundingLead]("Score: Funding Stage", scorer.FactorFundingStage),
	factorColumn[model.FundingLead]("Score: Funding Amount", scorer.FactorFundingAmount),
	factorColumn[model.FundingLead]("Score: Investor Quality", scorer.FactorInvestorQuality),
	factorColumn[model.FundingLead]("Score: Hiring Activity", scorer.FactorHiringActivity),
	factorColumn[model.FundingLead]("Score: Tech Roles", scorer.FactorTechRoles),
}

// PersonColumns is the full person export layout.
var PersonColumns = []Column[model.PersonLead]{
	{"Rank", func(s model.Scored[model.PersonLead]) any { return string(s.Rank) }},
	{"Score", func(s model.Scored[model.PersonLead]) any { return s.Score }},
	{"Name", func(s model.Scored[model.PersonLead]) any { return s.Lead.Name }},
	{"Title", func(s model.Scored[model.PersonLead]) any { return s.Lead.Title }},
	{"Company", func(s model.Scored[model.PersonLead]) any { return s.Lead.Company.Name }},
	{"Company HQ", func(s model.Scored[model.PersonLead]) any { return s.Lead.Company.HQLocation }},
	{"Funding Stage", func(s model.Scored[model.PersonLead]) any { return string(s.Lead.Company.FundingStage) }},
	{"Location", func(s model.Scored[model.PersonLead]) any { return s.Lead.Location }},
	{"Email", func(s model.Scored[model.PersonLead]) any { return s.Lead.Email }},
	{"LinkedIn", func(s model.Scored[model.PersonLead]) any { return s.Lead.LinkedInURL }},
	{"Publications", func(s model.Scored[model.PersonLead]) any { return len(s.Lead.Publications) }},
	factorColumn[model.PersonLead]("Score: Role Fit", scorer.FactorRoleFit),
	factorColumn[model.PersonLead]("Score: Company Intent", scorer.FactorCompanyIntent),
	factorColumn[model.PersonLead]("Score: Technographic", scorer.FactorTechnographic),
	factorColumn[model.PersonLead]("Score: Location", scorer.FactorLocation),
	factorColumn[model.PersonLead]("Score: Scientific Intent", scorer.FactorScientificIntent),
}

func factorColumn[T any](header, factor string) Column[T] {
	return Column[T]{
		Header: header,
		Value:  func(s model.Scored[T]) any { return s.Breakdown.Points(factor) },
	}
}

// Headers returns the column headers in order.
func Headers[T any](cols []Column[T]) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

// Filename returns the attachment name for an export, e.g.
// "fundscout_leads_export.csv".
func Filename(prefix, ext string) string {
	return prefix + "_leads_export." + ext
}

// WriteCSV writes a BOM, a header row and one row per lead in the given order.
func WriteCSV[T any](w io.Writer, scored []model.Scored[T], cols []Column[T]) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return eris.Wrap(err, "export: write bom")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Headers(cols)); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	record := make([]string, len(cols))
	for _, s := range scored {
		for i, c := range cols {
			record[i] = cellString(c.Value(s))
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// XLSXOptions configures the workbook layout.
type XLSXOptions struct {
	SheetName      string
	MaxColumnWidth int
}

// WriteXLSX writes a single-sheet workbook. Numbers are stored as numeric
// cells and each column is sized to its longest value plus two, capped at
// MaxColumnWidth.
func WriteXLSX[T any](w io.Writer, scored []model.Scored[T], cols []Column[T], opts XLSXOptions) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(opts.SheetName)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %q", opts.SheetName)
	}

	widths := make([]int, len(cols))
	header := sheet.AddRow()
	for i, c := range cols {
		header.AddCell().SetString(c.Header)
		widths[i] = utf8.RuneCountInString(c.Header)
	}

	for _, s := range scored {
		row := sheet.AddRow()
		for i, c := range cols {
			v := c.Value(s)
			setCell(row.AddCell(), v)
			widths[i] = max(widths[i], utf8.RuneCountInString(cellString(v)))
		}
	}

	// Column indices in the sheet's col store are 1-based.
	for i, width := range ColumnWidths(widths, opts.MaxColumnWidth) {
		sheet.SetColWidth(i+1, i+1, float64(width))
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

// ColumnWidths converts content lengths into column widths: length + 2,
// capped at maxWidth when maxWidth is positive.
func ColumnWidths(lengths []int, maxWidth int) []int {
	out := make([]int, len(lengths))
	for i, n := range lengths {
		out[i] = n + 2
		if maxWidth > 0 {
			out[i] = min(out[i], maxWidth)
		}
	}
	return out
}

func setCell(c *xlsx.Cell, v any) {
	switch x := v.(type) {
	case int:
		c.SetInt(x)
	case int64:
		c.SetInt64(x)
	case string:
		c.SetString(x)
	default:
		c.SetString(cellString(v))
	}
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}
