package server

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/export"
	"github.com/sells-group/leadscout/internal/filter"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/scorer"
	"github.com/sells-group/leadscout/internal/summary"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Collection is an immutable ranked lead set served under /api/v1/{Name}.
type Collection[T any] struct {
	Name         string
	FilePrefix   string
	EmptyMessage string
	SheetName    string
	MaxWidth     int

	Rubric  *scorer.Rubric[T]
	Leads   []model.Scored[T]
	Fields  filter.Fields[T]
	Columns []export.Column[T]
	Stats   func([]model.Scored[T]) any
}

// FundingCollection wraps ranked funding leads.
func FundingCollection(r *scorer.Rubric[model.FundingLead], ranked []model.Scored[model.FundingLead], exp config.ExportConfig) *Collection[model.FundingLead] {
	return &Collection[model.FundingLead]{
		Name:         "funding",
		FilePrefix:   "fundscout",
		EmptyMessage: "No companies found matching criteria.",
		SheetName:    exp.FundingSheet,
		MaxWidth:     exp.MaxColumnWidth,
		Rubric:       r,
		Leads:        ranked,
		Fields:       filter.FundingFields,
		Columns:      export.FundingColumns,
		Stats: func(s []model.Scored[model.FundingLead]) any {
			return summary.Funding(s)
		},
	}
}

// PersonCollection wraps ranked person leads.
func PersonCollection(r *scorer.Rubric[model.PersonLead], ranked []model.Scored[model.PersonLead], exp config.ExportConfig) *Collection[model.PersonLead] {
	return &Collection[model.PersonLead]{
		Name:         "person",
		FilePrefix:   "leadagent",
		EmptyMessage: "No people found matching criteria.",
		SheetName:    exp.PersonSheet,
		MaxWidth:     exp.MaxColumnWidth,
		Rubric:       r,
		Leads:        ranked,
		Fields:       filter.PersonFields,
		Columns:      export.PersonColumns,
		Stats: func(s []model.Scored[model.PersonLead]) any {
			return summary.People(s)
		},
	}
}

func (c *Collection[T]) name() string { return c.Name }

func (c *Collection[T]) mount(r chi.Router) {
	r.Route("/api/v1/"+c.Name, func(r chi.Router) {
		r.Get("/leads", c.handleLeads)
		r.Get("/export.csv", c.handleExportCSV)
		r.Get("/export.xlsx", c.handleExportXLSX)
		r.Get("/stats", c.handleStats)
		r.Get("/rubric", c.handleRubric)
	})
}

// criteria reads q, category and min_score from the query string.
func (c *Collection[T]) criteria(r *http.Request) (filter.Criteria, error) {
	q := r.URL.Query()
	crit := filter.Criteria{
		Search:   q.Get("q"),
		Category: q.Get("category"),
	}
	if raw := strings.TrimSpace(q.Get("min_score")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return crit, err
		}
		crit.MinScore = n
	}
	if err := crit.Validate(c.Rubric.Ranks.Thresholds()); err != nil {
		return crit, err
	}
	return crit, nil
}

// filtered applies request criteria, writing a 400 on bad input.
func (c *Collection[T]) filtered(w http.ResponseWriter, r *http.Request) ([]model.Scored[T], bool) {
	crit, err := c.criteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid min_score: must be one of "+joinInts(c.Rubric.Ranks.Thresholds()))
		return nil, false
	}
	return filter.Apply(c.Leads, crit, c.Fields), true
}

type leadsResponse[T any] struct {
	Count   int               `json:"count"`
	Leads   []model.Scored[T] `json:"leads"`
	Message string            `json:"message,omitempty"`
}

func (c *Collection[T]) handleLeads(w http.ResponseWriter, r *http.Request) {
	leads, ok := c.filtered(w, r)
	if !ok {
		return
	}
	resp := leadsResponse[T]{Count: len(leads), Leads: leads}
	if len(leads) == 0 {
		resp.Message = c.EmptyMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

func (c *Collection[T]) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	leads, ok := c.filtered(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, leads, c.Columns); err != nil {
		c.internalError(w, "export csv", err)
		return
	}
	writeAttachment(w, "text/csv; charset=utf-8", export.Filename(c.FilePrefix, "csv"), buf.Bytes())
}

func (c *Collection[T]) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	leads, ok := c.filtered(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	opts := export.XLSXOptions{SheetName: c.SheetName, MaxColumnWidth: c.MaxWidth}
	if err := export.WriteXLSX(&buf, leads, c.Columns, opts); err != nil {
		c.internalError(w, "export xlsx", err)
		return
	}
	writeAttachment(w, xlsxContentType, export.Filename(c.FilePrefix, "xlsx"), buf.Bytes())
}

func (c *Collection[T]) handleStats(w http.ResponseWriter, r *http.Request) {
	leads, ok := c.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Stats(leads))
}

type factorWeight struct {
	Factor string `json:"factor"`
	Weight int    `json:"weight"`
}

type rubricResponse struct {
	Name       string           `json:"name"`
	Hash       string           `json:"hash"`
	MaxPoints  int              `json:"maxPoints"`
	Factors    []factorWeight   `json:"factors"`
	Ranks      scorer.RankTable `json:"ranks"`
	Thresholds []int            `json:"thresholds"`
}

func (c *Collection[T]) handleRubric(w http.ResponseWriter, _ *http.Request) {
	resp := rubricResponse{
		Name:       c.Rubric.Name,
		Hash:       c.Rubric.Hash,
		MaxPoints:  c.Rubric.MaxPoints(),
		Ranks:      c.Rubric.Ranks,
		Thresholds: c.Rubric.Ranks.Thresholds(),
	}
	for _, rule := range c.Rubric.Rules {
		resp.Factors = append(resp.Factors, factorWeight{Factor: rule.Factor, Weight: rule.Weight})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (c *Collection[T]) internalError(w http.ResponseWriter, action string, err error) {
	zap.L().Error("server: "+action+" failed", zap.String("variant", c.Name), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
