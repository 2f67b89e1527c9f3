package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Rank is the discrete priority tier derived from a score.
type Rank string

const (
	RankLow      Rank = "Low"
	RankMedium   Rank = "Medium"
	RankHigh     Rank = "High"
	RankVeryHigh Rank = "Very High"
)

// Level orders ranks from Low (0) to Very High (3). Unknown ranks are -1.
func (r Rank) Level() int {
	switch r {
	case RankLow:
		return 0
	case RankMedium:
		return 1
	case RankHigh:
		return 2
	case RankVeryHigh:
		return 3
	default:
		return -1
	}
}

// FactorScore is one factor's contribution to a total.
type FactorScore struct {
	Factor string `json:"factor"`
	Points int    `json:"points"`
	Weight int    `json:"weight"`
}

// ScoreBreakdown explains a score factor by factor, in rubric order.
// Total is min(100, sum of Points).
type ScoreBreakdown struct {
	Factors []FactorScore
	Total   int
}

// Points returns the contribution of the named factor, or 0 if absent.
func (b ScoreBreakdown) Points(factor string) int {
	for _, f := range b.Factors {
		if f.Factor == factor {
			return f.Points
		}
	}
	return 0
}

// Sum returns the unclamped sum of factor contributions.
func (b ScoreBreakdown) Sum() int {
	var n int
	for _, f := range b.Factors {
		n += f.Points
	}
	return n
}

// MarshalJSON renders the breakdown as a flat object keyed by factor name,
// followed by "total".
func (b ScoreBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, f := range b.Factors {
		key, err := json.Marshal(f.Factor)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(f.Points))
		buf.WriteByte(',')
	}
	buf.WriteString(`"total":`)
	buf.WriteString(strconv.Itoa(b.Total))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Scored pairs a raw lead with its score, rank and breakdown.
// Values are produced once by a rubric and never mutated afterwards.
type Scored[T any] struct {
	Lead      T              `json:"lead"`
	Score     int            `json:"calculatedScore"`
	Rank      Rank           `json:"rank"`
	Breakdown ScoreBreakdown `json:"scoreBreakdown"`
}
