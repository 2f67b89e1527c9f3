package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/scorer"
)

var rubricCmd = &cobra.Command{
	Use:   "rubric",
	Short: "Show the active scoring rubric",
	Long:  "Prints each factor and its weight, the rank thresholds and the rubric hash after config overrides are applied.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		variant, _ := cmd.Flags().GetString("variant")
		return printRubric(cmd.OutOrStdout(), cfg, variant, time.Now())
	},
}

func init() {
	rubricCmd.Flags().String("variant", variantFunding, "lead variant: funding or person")
	rootCmd.AddCommand(rubricCmd)
}

func printRubric(w io.Writer, c *config.Config, variant string, now time.Time) error {
	if err := validateVariant(variant); err != nil {
		return eris.Wrap(err, "rubric")
	}

	var (
		name      string
		hash      string
		ranks     scorer.RankTable
		maxPoints int
		factors   []string
		weights   []int
	)
	switch variant {
	case variantPerson:
		r, err := buildPersonRubric(c, now)
		if err != nil {
			return eris.Wrap(err, "rubric")
		}
		name, hash, ranks, maxPoints = r.Name, r.Hash, r.Ranks, r.MaxPoints()
		for _, rule := range r.Rules {
			factors = append(factors, rule.Factor)
			weights = append(weights, rule.Weight)
		}
	default:
		r, err := buildFundingRubric(c)
		if err != nil {
			return eris.Wrap(err, "rubric")
		}
		name, hash, ranks, maxPoints = r.Name, r.Hash, r.Ranks, r.MaxPoints()
		for _, rule := range r.Rules {
			factors = append(factors, rule.Factor)
			weights = append(weights, rule.Weight)
		}
	}

	fmt.Fprintf(w, "Rubric:  %s\n", name)
	fmt.Fprintf(w, "Hash:    %s\n\n", hash)
	fmt.Fprintf(w, "%-20s %6s\n", "Factor", "Weight")
	fmt.Fprintln(w, strings.Repeat("-", 27))
	for i, f := range factors {
		fmt.Fprintf(w, "%-20s %6d\n", f, weights[i])
	}
	fmt.Fprintf(w, "%-20s %6d (total capped at %d)\n", "max points", maxPoints, scorer.MaxScore)

	fmt.Fprintf(w, "\nRanks:\n")
	fmt.Fprintf(w, "  Very High  >= %d\n", ranks.VeryHigh)
	fmt.Fprintf(w, "  High       >= %d\n", ranks.High)
	fmt.Fprintf(w, "  Medium     >= %d\n", ranks.Medium)
	fmt.Fprintf(w, "  Low         < %d\n", ranks.Medium)
	return nil
}
