package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ledgerbook/internal/adapter/http/dto"
	"github.com/iho/ledgerbook/internal/report"
	"github.com/iho/ledgerbook/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Build(ctx context.Context, kind usecase.ReportKind, asOf time.Time, showEmpty bool) (report.Report, error)
	GenerateText(ctx context.Context, kind usecase.ReportKind, asOf time.Time, showEmpty bool) (string, error)
}

// ReportHandler serves rendered financial reports.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Generate renders the report named in the URL. The as_of query
// defaults to now; show_empty=true includes zero-balance accounts;
// format=json returns structured lines instead of the text table.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	kind := usecase.ReportKind(chi.URLParam(r, "kind"))

	asOf, err := parseTimeQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of parameter", err.Error())
		return
	}
	at := time.Now()
	if asOf != nil {
		at = *asOf
	}

	showEmpty := r.URL.Query().Get("show_empty") == "true"

	if r.URL.Query().Get("format") == "json" {
		h.generateJSON(w, r, kind, at, showEmpty)
		return
	}

	text, err := h.reportUC.GenerateText(r.Context(), kind, at, showEmpty)
	if err != nil {
		writeReportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func (h *ReportHandler) generateJSON(w http.ResponseWriter, r *http.Request, kind usecase.ReportKind, asOf time.Time, showEmpty bool) {
	rep, err := h.reportUC.Build(r.Context(), kind, asOf, showEmpty)
	if err != nil {
		writeReportError(w, err)
		return
	}

	resp, err := dto.ReportFromDomain(rep)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeReportError(w http.ResponseWriter, err error) {
	if errors.Is(err, usecase.ErrUnknownReport) {
		writeError(w, http.StatusNotFound, "unknown report", err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "failed to generate report", err.Error())
}
