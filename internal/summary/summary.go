// Package summary computes headline statistics over ranked leads.
package summary

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/leadscout/internal/model"
)

// FundingStats are the headline numbers for a funding lead list.
type FundingStats struct {
	Total          int     `json:"total"`
	VeryHigh       int     `json:"veryHigh"`
	HighPriority   int     `json:"highPriority"`
	ActiveHiring   int     `json:"activeHiring"`
	AverageFunding int64   `json:"averageFunding"`
	AverageScore   float64 `json:"averageScore"`
}

// PersonStats are the headline numbers for a person lead list.
type PersonStats struct {
	Total        int     `json:"total"`
	VeryHigh     int     `json:"veryHigh"`
	High         int     `json:"high"`
	Medium       int     `json:"medium"`
	Low          int     `json:"low"`
	AverageScore float64 `json:"averageScore"`
}

// Funding summarizes funding leads. High priority counts High and Very High;
// active hiring counts tiers A and B. Undisclosed amounts count as zero in
// the average.
func Funding(scored []model.Scored[model.FundingLead]) FundingStats {
	var s FundingStats
	var amount int64
	var score int
	for _, l := range scored {
		s.Total++
		score += l.Score
		amount += l.Lead.Amount
		switch l.Rank {
		case model.RankVeryHigh:
			s.VeryHigh++
			s.HighPriority++
		case model.RankHigh:
			s.HighPriority++
		}
		if l.Lead.HiringTier == model.HiringTierA || l.Lead.HiringTier == model.HiringTierB {
			s.ActiveHiring++
		}
	}
	if s.Total > 0 {
		s.AverageFunding = amount / int64(s.Total)
		s.AverageScore = average(score, s.Total)
	}
	return s
}

// People summarizes person leads by rank.
func People(scored []model.Scored[model.PersonLead]) PersonStats {
	var s PersonStats
	var score int
	for _, l := range scored {
		s.Total++
		score += l.Score
		switch l.Rank {
		case model.RankVeryHigh:
			s.VeryHigh++
		case model.RankHigh:
			s.High++
		case model.RankMedium:
			s.Medium++
		default:
			s.Low++
		}
	}
	if s.Total > 0 {
		s.AverageScore = average(score, s.Total)
	}
	return s
}

// average rounds to one decimal place.
func average(sum, n int) float64 {
	return math.Round(float64(sum)/float64(n)*10) / 10
}

// FormatAmount renders a funding amount the way the dashboard does:
// "Undisclosed", "$1.2B", "$60M" or "$750K".
func FormatAmount(amount int64) string {
	switch {
	case amount <= 0:
		return "Undisclosed"
	case amount >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", float64(amount)/1e9)
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.0fM", float64(amount)/1e6)
	default:
		return fmt.Sprintf("$%.0fK", float64(amount)/1e3)
	}
}

var printer = message.NewPrinter(language.English)

// FormatNumber groups digits with commas, e.g. 60000000 -> "60,000,000".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}
