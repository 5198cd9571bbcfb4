// Package api exposes the compensation engine and the reconciliation
// matcher over HTTP. Handlers are stateless: every request carries its
// own datasets and is computed from scratch.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gyeh/revshare/internal/compensation"
	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/reconcile"
	"github.com/gyeh/revshare/internal/registry"
	"github.com/gyeh/revshare/internal/schema"
	"github.com/gyeh/revshare/internal/tabular"
)

// Table is a dataset in a request body.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// CompensationRequest is the body of POST /v1/compensation.
type CompensationRequest struct {
	Billing   Table  `json:"billing"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Physician string `json:"physician,omitempty"`
}

// CompensationResponse is the result of POST /v1/compensation.
type CompensationResponse struct {
	Results    []model.CompensationResult          `json:"results"`
	PeerGroups []model.PeerGroupAverage            `json:"peer_groups"`
	Procedures map[string][]model.ProcedureSummary `json:"procedures"`
	Quality    model.DataQuality                   `json:"quality"`
	Explain    map[string]string                   `json:"explain"`
}

// ReconciliationRequest is the body of POST /v1/reconciliation.
type ReconciliationRequest struct {
	Expected Table `json:"expected"`
	Paid     Table `json:"paid"`
}

// ReconciliationResponse is the result of POST /v1/reconciliation.
type ReconciliationResponse struct {
	*model.ReconciliationResult
	MatchRate float64 `json:"match_rate"`
}

// Handler serves the analytics endpoints.
type Handler struct {
	registry *registry.Registry
	aliases  schema.Aliases
	rates    compensation.Rates
	log      zerolog.Logger
}

// NewHandler creates a handler over a fixed registry, header aliases and
// split table.
func NewHandler(reg *registry.Registry, aliases schema.Aliases, rates compensation.Rates, log zerolog.Logger) *Handler {
	return &Handler{registry: reg, aliases: aliases, rates: rates, log: log}
}

// RegisterRoutes registers the analytics endpoints on the provided group.
//
//	POST /v1/compensation    - per-physician revenue split
//	POST /v1/reconciliation  - expected vs paid ledger match
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/compensation", h.Compensation)
	g.POST("/reconciliation", h.Reconciliation)
}

// Compensation handles POST /v1/compensation.
func (h *Handler) Compensation(c echo.Context) error {
	var req CompensationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
	}

	tbl := tabular.Build("billing", req.Billing.Columns, req.Billing.Rows, h.aliases)
	if err := schema.Billing.Validate(tbl.Columns); err != nil {
		return schemaError(c, err)
	}

	filter, err := parseWindow(req.From, req.To)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	records, quality := normalize.Normalize(tbl, h.registry)
	records = filter.Apply(records)
	rep := h.rates.ComputeAll(records)
	if req.Physician != "" {
		res, ok := rep.For(req.Physician)
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "physician has no records in the selected window: " + req.Physician,
			})
		}
		rep.Results = []model.CompensationResult{res}
	}

	resp := CompensationResponse{
		Results:    rep.Results,
		PeerGroups: rep.PeerGroups,
		Procedures: make(map[string][]model.ProcedureSummary, len(rep.Results)),
		Quality:    quality,
		Explain:    make(map[string]string, len(rep.Results)),
	}
	for _, res := range rep.Results {
		resp.Procedures[res.Physician] = compensation.Procedures(compensation.ForPhysician(records, res.Physician))
		avg, _ := rep.PeerGroup(res.PeerGroup)
		resp.Explain[res.Physician] = compensation.Explain(res, avg)
	}
	if quality.Issues() > 0 {
		h.log.Warn().
			Int("bad_dates", quality.BadDates).
			Int("bad_amounts", quality.BadAmounts).
			Int("bad_percentages", quality.BadPercentages).
			Int("unknown_physicians", quality.UnknownPhysicians).
			Msg("data quality issues absorbed")
	}
	return c.JSON(http.StatusOK, resp)
}

// Reconciliation handles POST /v1/reconciliation.
func (h *Handler) Reconciliation(c echo.Context) error {
	var req ReconciliationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
	}

	expected := tabular.Build("expected", req.Expected.Columns, req.Expected.Rows, h.aliases)
	paid := tabular.Build("paid", req.Paid.Columns, req.Paid.Rows, h.aliases)

	res, err := reconcile.NewMatcher(h.log).Match(expected, paid)
	if err != nil {
		return schemaError(c, err)
	}
	return c.JSON(http.StatusOK, ReconciliationResponse{
		ReconciliationResult: res,
		MatchRate:            reconcile.MatchRate(len(res.Matched), res.Total()),
	})
}

type schemaErrorBody struct {
	Error   string              `json:"error"`
	Missing map[string][]string `json:"missing"`
}

// schemaError renders every *schema.Error in err as 422; anything else is 500.
func schemaError(c echo.Context, err error) error {
	body := schemaErrorBody{Error: err.Error(), Missing: map[string][]string{}}
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	for _, e := range errs {
		var se *schema.Error
		if errors.As(e, &se) {
			body.Missing[se.Dataset] = se.Missing
		}
	}
	if len(body.Missing) == 0 {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusUnprocessableEntity, body)
}

func parseWindow(from, to string) (compensation.Filter, error) {
	var f compensation.Filter
	if from != "" {
		if f.From = normalize.ParseDate(from); f.From == nil {
			return f, errors.New("from: unparseable date " + from)
		}
	}
	if to != "" {
		if f.To = normalize.ParseDate(to); f.To == nil {
			return f, errors.New("to: unparseable date " + to)
		}
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, errors.New("from " + f.From.Format(time.DateOnly) + " is after to " + f.To.Format(time.DateOnly))
	}
	return f, nil
}
