// Package dataset bundles the sample lead sets used when no input file is
// configured.
package dataset

import (
	"bytes"
	_ "embed"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/source"
)

var (
	//go:embed funding.yaml
	fundingYAML []byte

	//go:embed people.yaml
	peopleYAML []byte
)

// Funding returns a fresh copy of the sample funding leads.
func Funding() ([]model.FundingLead, error) {
	leads, err := source.DecodeYAML[model.FundingLead](bytes.NewReader(fundingYAML))
	if err != nil {
		return nil, eris.Wrap(err, "dataset: decode funding leads")
	}
	source.NormalizeFunding(leads)
	return leads, nil
}

// People returns a fresh copy of the sample person leads.
func People() ([]model.PersonLead, error) {
	leads, err := source.DecodeYAML[model.PersonLead](bytes.NewReader(peopleYAML))
	if err != nil {
		return nil, eris.Wrap(err, "dataset: decode person leads")
	}
	source.NormalizePeople(leads)
	return leads, nil
}
