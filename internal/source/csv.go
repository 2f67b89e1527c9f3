package source

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscout/internal/model"
)

// fundingRow is the flat tabular shape of a funding lead. Numbers stay as
// text so blank cells and thousands separators can be handled here.
type fundingRow struct {
	ID            string `csv:"id"`
	Company       string `csv:"company"`
	Domain        string `csv:"domain"`
	LinkedIn      string `csv:"linkedin"`
	Amount        string `csv:"amount"`
	Round         string `csv:"round"`
	LeadInvestor  string `csv:"lead_investor"`
	Investors     string `csv:"investors"`
	Country       string `csv:"country"`
	DateAnnounced string `csv:"date_announced"`
	HiringTier    string `csv:"hiring_tier"`
	TechRoles     string `csv:"tech_roles"`
	ATSProvider   string `csv:"ats_provider"`
	CareersURL    string `csv:"careers_url"`
	SourceURL     string `csv:"source_url"`
}

// rowReader is satisfied by *csv.Reader and by xlsx sheet rows.
type rowReader interface {
	Read() ([]string, error)
}

func readFundingCSV(r io.Reader) ([]model.FundingLead, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return decodeFundingRows(cr)
}

// decodeFundingRows maps header-named rows onto funding leads. Line numbers in
// errors are 1-based and count the header.
func decodeFundingRows(rr rowReader) ([]model.FundingLead, error) {
	dec, err := csvutil.NewDecoder(rr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "csv: read header")
	}
	dec.Map = func(field, _ string, _ any) string {
		return strings.TrimSpace(field)
	}

	var out []model.FundingLead
	for line := 2; ; line++ {
		var row fundingRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, eris.Wrapf(err, "csv: decode line %d", line)
		}

		lead, err := row.lead()
		if err != nil {
			return nil, eris.Wrapf(err, "csv: line %d", line)
		}
		out = append(out, lead)
	}
}

func (r fundingRow) lead() (model.FundingLead, error) {
	amount, err := parseInt(r.Amount, 64)
	if err != nil {
		return model.FundingLead{}, eris.Wrapf(err, "amount %q", r.Amount)
	}
	roles, err := parseInt(r.TechRoles, 0)
	if err != nil {
		return model.FundingLead{}, eris.Wrapf(err, "tech_roles %q", r.TechRoles)
	}

	return model.FundingLead{
		ID:            r.ID,
		Company:       r.Company,
		Domain:        r.Domain,
		LinkedIn:      r.LinkedIn,
		Amount:        amount,
		Round:         r.Round,
		LeadInvestor:  r.LeadInvestor,
		Investors:     splitList(r.Investors),
		Country:       r.Country,
		DateAnnounced: r.DateAnnounced,
		HiringTier:    model.HiringTier(r.HiringTier),
		TechRoles:     int(roles),
		ATSProvider:   r.ATSProvider,
		CareersURL:    r.CareersURL,
		SourceURL:     r.SourceURL,
	}, nil
}

// parseInt accepts blanks as zero and ignores thousands separators.
func parseInt(s string, bits int) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, bits)
}

// splitList splits a ';'-separated cell, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
