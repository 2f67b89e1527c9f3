// Package source loads raw funding and person leads from JSON, YAML, CSV and
// XLSX files.
package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadscout/internal/model"
)

// Format is a lead file encoding, derived from the file extension.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("source: unsupported file type %q", filepath.Ext(path))
	}
}

// LoadFunding reads funding leads from path. Leads without an ID are given a
// stable one.
func LoadFunding(ctx context.Context, path string) ([]model.FundingLead, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var leads []model.FundingLead
	switch format {
	case FormatXLSX:
		leads, err = readFundingXLSX(path, XLSXOptions{})
	default:
		leads, err = withFile(path, func(r io.Reader) ([]model.FundingLead, error) {
			switch format {
			case FormatJSON:
				return readJSON[model.FundingLead](ctx, r)
			case FormatYAML:
				return DecodeYAML[model.FundingLead](r)
			default:
				return readFundingCSV(r)
			}
		})
	}
	if err != nil {
		return nil, eris.Wrapf(err, "source: load funding leads from %s", path)
	}

	NormalizeFunding(leads)
	zap.L().Info("source: loaded funding leads",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("count", len(leads)),
	)
	return leads, nil
}

// LoadPeople reads person leads from path. Only JSON and YAML carry the
// nested company and publication records.
func LoadPeople(ctx context.Context, path string) ([]model.PersonLead, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format != FormatJSON && format != FormatYAML {
		return nil, eris.Errorf("source: person leads cannot be loaded from %s files", format)
	}

	leads, err := withFile(path, func(r io.Reader) ([]model.PersonLead, error) {
		if format == FormatJSON {
			return readJSON[model.PersonLead](ctx, r)
		}
		return DecodeYAML[model.PersonLead](r)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "source: load person leads from %s", path)
	}

	NormalizePeople(leads)
	zap.L().Info("source: loaded person leads",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("count", len(leads)),
	)
	return leads, nil
}

// DecodeYAML decodes a YAML sequence of leads. An empty document yields no
// leads.
func DecodeYAML[T any](r io.Reader) ([]T, error) {
	var out []T
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "yaml: decode leads")
	}
	return out, nil
}

func withFile[T any](path string, fn func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "open file")
	}
	defer f.Close() //nolint:errcheck

	return fn(f)
}

var leadNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("leadscout"))

// NormalizeFunding trims investor lists, maps blank hiring tiers to Unknown
// and assigns name-based IDs where missing.
func NormalizeFunding(leads []model.FundingLead) {
	for i := range leads {
		l := &leads[i]
		l.Investors = trimAll(l.Investors)
		l.HiringTier = model.HiringTier(strings.TrimSpace(string(l.HiringTier)))
		if l.HiringTier == "" {
			l.HiringTier = model.HiringTierUnknown
		}
		if l.ID == "" {
			key := l.Domain
			if key == "" {
				key = l.Company
			}
			l.ID = stableID("funding", key+"|"+l.Round)
		}
	}
}

// NormalizePeople assigns name-based IDs where missing.
func NormalizePeople(leads []model.PersonLead) {
	for i := range leads {
		l := &leads[i]
		if l.ID == "" {
			key := l.Email
			if key == "" {
				key = l.Name + "|" + l.Company.Name
			}
			l.ID = stableID("person", key)
		}
	}
}

func stableID(kind, key string) string {
	return uuid.NewSHA1(leadNamespace, []byte(kind+":"+strings.ToLower(strings.TrimSpace(key)))).String()
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
