package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/export"
	"github.com/sells-group/leadscout/internal/filter"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/scorer"
	"github.com/sells-group/leadscout/internal/summary"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score, rank and filter leads",
	Long: `Score funding-round or person leads against the configured rubric and
print them in priority order.

Leads are read from --input, then source.funding_path / source.person_path,
then the bundled sample dataset. The file format follows the extension:
.json, .yaml/.yml, .csv or .xlsx (CSV and XLSX hold funding leads only).

Examples:
  # Rank the bundled funding sample
  score --variant funding

  # Medium-or-better person leads in Cambridge
  score --variant person --category cambridge --min-score 40

  # Export filtered funding leads to a spreadsheet
  score --input leads.csv --search "series a" --format xlsx --output leads.xlsx`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("variant", variantFunding, "lead variant: funding or person")
	f.String("input", "", "lead file (overrides source config)")
	f.String("search", "", "case-insensitive free-text search")
	f.String("category", "", "country (funding) or location (person) substring")
	f.Int("min-score", 0, "minimum score; must be 0 or a rank threshold")
	f.String("format", "table", "output format: table, csv, xlsx or json")
	f.String("output", "", "output file path (default: stdout)")
	f.Int("concurrency", 0, "scoring workers (overrides config)")
	f.Int("current-year", 0, "publication recency anchor for person leads (overrides config)")

	rootCmd.AddCommand(scoreCmd)
}

type scoreOptions struct {
	variant  string
	input    string
	format   string
	output   string
	criteria filter.Criteria
}

func scoreOptionsFromFlags(cmd *cobra.Command) (scoreOptions, error) {
	var o scoreOptions
	o.variant, _ = cmd.Flags().GetString("variant")
	o.input, _ = cmd.Flags().GetString("input")
	o.format, _ = cmd.Flags().GetString("format")
	o.output, _ = cmd.Flags().GetString("output")
	o.criteria.Search, _ = cmd.Flags().GetString("search")
	o.criteria.Category, _ = cmd.Flags().GetString("category")
	o.criteria.MinScore, _ = cmd.Flags().GetInt("min-score")

	if err := validateVariant(o.variant); err != nil {
		return o, eris.Wrap(err, "score")
	}
	switch o.format {
	case "table", "csv", "json":
	case "xlsx":
		if o.output == "" {
			return o, eris.New("score: --format xlsx requires --output")
		}
	default:
		return o, eris.Errorf("score: --format must be table, csv, xlsx or json (got %q)", o.format)
	}
	return o, nil
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := applyScoringOverrides(cmd, cfg)
	if err := c.Validate("score"); err != nil {
		return err
	}

	opts, err := scoreOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	return scoreVariant(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), c, opts, time.Now())
}

// applyScoringOverrides returns a copy of the base config with CLI flag overrides applied.
func applyScoringOverrides(cmd *cobra.Command, base *config.Config) *config.Config {
	c := *base

	if v, _ := cmd.Flags().GetInt("concurrency"); v > 0 {
		c.Scoring.Concurrency = v
	}
	if v, _ := cmd.Flags().GetInt("current-year"); v > 0 {
		c.Scoring.Person.CurrentYear = v
	}

	return &c
}

// scoreVariant ranks, filters and renders one variant. Results go to out (or
// --output); notices that would corrupt machine-readable stdout go to errOut.
func scoreVariant(ctx context.Context, out, errOut io.Writer, c *config.Config, opts scoreOptions, now time.Time) error {
	log := zap.L().With(zap.String("command", "score"), zap.String("variant", opts.variant))
	log.Info("scoring leads",
		zap.String("input", firstNonEmpty(opts.input, "bundled")),
		zap.String("search", opts.criteria.Search),
		zap.String("category", opts.criteria.Category),
		zap.Int("min_score", opts.criteria.MinScore),
	)

	switch opts.variant {
	case variantPerson:
		r, ranked, err := rankPeople(ctx, c, opts.input, now)
		if err != nil {
			return eris.Wrap(err, "score")
		}
		return present(out, errOut, r, ranked, opts, view[model.PersonLead]{
			emptyMessage: "No people found matching criteria.",
			sheet:        c.Export.PersonSheet,
			maxWidth:     c.Export.MaxColumnWidth,
			fields:       filter.PersonFields,
			columns:      export.PersonColumns,
			table:        writePersonTable,
			summary:      printPersonSummary,
		})
	default:
		r, ranked, err := rankFunding(ctx, c, opts.input)
		if err != nil {
			return eris.Wrap(err, "score")
		}
		return present(out, errOut, r, ranked, opts, view[model.FundingLead]{
			emptyMessage: "No companies found matching criteria.",
			sheet:        c.Export.FundingSheet,
			maxWidth:     c.Export.MaxColumnWidth,
			fields:       filter.FundingFields,
			columns:      export.FundingColumns,
			table:        writeFundingTable,
			summary:      printFundingSummary,
		})
	}
}

// view bundles the per-variant rendering pieces.
type view[T any] struct {
	emptyMessage string
	sheet        string
	maxWidth     int
	fields       filter.Fields[T]
	columns      []export.Column[T]
	table        func(io.Writer, []model.Scored[T]) error
	summary      func(io.Writer, []model.Scored[T])
}

// present filters the ranked leads and writes them in the requested format.
// An empty match still produces an export (header-only CSV or XLSX, JSON [])
// so a stale --output file is never left in place.
func present[T any](out, errOut io.Writer, r *scorer.Rubric[T], ranked []model.Scored[T], opts scoreOptions, v view[T]) error {
	if err := opts.criteria.Validate(r.Ranks.Thresholds()); err != nil {
		return eris.Wrap(err, "score: invalid --min-score")
	}

	leads := filter.Apply(ranked, opts.criteria, v.fields)
	if len(leads) == 0 && opts.format == "table" && opts.output == "" {
		fmt.Fprintln(out, v.emptyMessage)
		return nil
	}

	if err := outputScoreResults(out, leads, opts, v); err != nil {
		return err
	}
	if len(leads) == 0 {
		if opts.output == "" {
			fmt.Fprintln(errOut, v.emptyMessage)
		} else {
			fmt.Fprintln(out, v.emptyMessage)
		}
		return nil
	}
	if opts.format == "table" || opts.output != "" {
		v.summary(out, leads)
	}
	return nil
}

func outputScoreResults[T any](stdout io.Writer, leads []model.Scored[T], opts scoreOptions, v view[T]) error {
	w := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return eris.Wrapf(err, "score: create output file %s", opts.output)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch opts.format {
	case "csv":
		return export.WriteCSV(w, leads, v.columns)
	case "xlsx":
		return export.WriteXLSX(w, leads, v.columns, export.XLSXOptions{
			SheetName:      v.sheet,
			MaxColumnWidth: v.maxWidth,
		})
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(leads); err != nil {
			return eris.Wrap(err, "score: write JSON")
		}
		return nil
	case "table":
		return v.table(w, leads)
	default:
		return eris.Errorf("score: unsupported format %q", opts.format)
	}
}

func writeFundingTable(w io.Writer, leads []model.Scored[model.FundingLead]) error {
	header := fmt.Sprintf("%-9s %5s  %-28s %-10s %12s %-7s %5s  %-16s\n",
		"Rank", "Score", "Company", "Round", "Amount", "Hiring", "Tech", "Country")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "score: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 102)); err != nil {
		return eris.Wrap(err, "score: write table separator")
	}

	for _, s := range leads {
		l := s.Lead
		line := fmt.Sprintf("%-9s %5d  %-28s %-10s %12s %-7s %5d  %-16s\n",
			s.Rank, s.Score, truncate(l.Company, 28), truncate(l.Round, 10),
			summary.FormatAmount(l.Amount), l.HiringTier, l.TechRoles, truncate(l.Country, 16))
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "score: write table row")
		}
	}
	return nil
}

func writePersonTable(w io.Writer, leads []model.Scored[model.PersonLead]) error {
	header := fmt.Sprintf("%-9s %5s  %-24s %-30s %-24s %-20s\n",
		"Rank", "Score", "Name", "Title", "Company", "Location")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "score: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 118)); err != nil {
		return eris.Wrap(err, "score: write table separator")
	}

	for _, s := range leads {
		l := s.Lead
		line := fmt.Sprintf("%-9s %5d  %-24s %-30s %-24s %-20s\n",
			s.Rank, s.Score, truncate(l.Name, 24), truncate(l.Title, 30),
			truncate(l.Company.Name, 24), truncate(l.Location, 20))
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "score: write table row")
		}
	}
	return nil
}

func printFundingSummary(w io.Writer, leads []model.Scored[model.FundingLead]) {
	s := summary.Funding(leads)
	fmt.Fprintf(w, "\n--- Summary ---\n")
	fmt.Fprintf(w, "Total leads:      %d\n", s.Total)
	fmt.Fprintf(w, "Very high:        %d\n", s.VeryHigh)
	fmt.Fprintf(w, "High priority:    %d\n", s.HighPriority)
	fmt.Fprintf(w, "Active hiring:    %d\n", s.ActiveHiring)
	fmt.Fprintf(w, "Average funding:  %s ($%s)\n", summary.FormatAmount(s.AverageFunding), summary.FormatNumber(s.AverageFunding))
	fmt.Fprintf(w, "Average score:    %.1f\n", s.AverageScore)
}

func printPersonSummary(w io.Writer, leads []model.Scored[model.PersonLead]) {
	s := summary.People(leads)
	fmt.Fprintf(w, "\n--- Summary ---\n")
	fmt.Fprintf(w, "Total leads:    %d\n", s.Total)
	fmt.Fprintf(w, "Very high:      %d\n", s.VeryHigh)
	fmt.Fprintf(w, "High:           %d\n", s.High)
	fmt.Fprintf(w, "Medium:         %d\n", s.Medium)
	fmt.Fprintf(w, "Low:            %d\n", s.Low)
	fmt.Fprintf(w, "Average score:  %.1f\n", s.AverageScore)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
