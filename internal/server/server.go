package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/breach-estimator/internal/estimate"
	"github.com/iwvelando/breach-estimator/internal/reference"
	"github.com/iwvelando/breach-estimator/pkg/constants"
	"github.com/iwvelando/breach-estimator/pkg/output"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

type handler struct {
	logger         *zap.Logger
	store          *reference.Store
	calculator     *estimate.Calculator
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the selection lists and
// the calculate API over store.
func NewHandler(logger *zap.Logger, store *reference.Store, calculator *estimate.Calculator, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if calculator == nil {
		calculator = estimate.NewCalculator(store, estimate.WithLogger(logger))
	}

	h := &handler{
		logger:         logger,
		store:          store,
		calculator:     calculator,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
	}

	mux := http.NewServeMux()

	// Selection lists, each narrowed by the previous choice
	mux.HandleFunc("/api/states", h.handleStates)
	mux.HandleFunc("/api/states/regulations", h.handleStateRegulations)
	mux.HandleFunc("/api/federal/regulations", h.handleFederalRegulations)
	mux.HandleFunc("/api/federal/violations", h.handleFederalViolations)

	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return h.withRequestID(mux)
}

type listResponse struct {
	Values []string `json:"values"`
}

type calculateResponse struct {
	Report   *estimate.Report `json:"report"`
	Text     string           `json:"text"`
	CSV      string           `json:"csv"`
	Duration string           `json:"duration"`
}

// calculateRequest accepts records as either a JSON string or number so the
// raw entry reaches the record-count parser unchanged.
type calculateRequest struct {
	State             string      `json:"state"`
	StateRegulation   string      `json:"stateRegulation"`
	FederalRegulation string      `json:"federalRegulation"`
	FederalViolation  string      `json:"federalViolation"`
	Records           recordsText `json:"records"`
}

type recordsText string

func (r *recordsText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*r = ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*r = recordsText(s)
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("records must be a string or number")
		}
		*r = recordsText(n.String())
	}
	return nil
}

func (h *handler) handleStates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, listResponse{Values: nonNil(h.store.DistinctStates())})
}

func (h *handler) handleStateRegulations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	state := r.URL.Query().Get("state")
	h.writeJSON(w, http.StatusOK, listResponse{Values: nonNil(h.store.StateRegulationsFor(state))})
}

func (h *handler) handleFederalRegulations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, listResponse{Values: nonNil(h.store.FederalRegulations())})
}

func (h *handler) handleFederalViolations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	regulation := r.URL.Query().Get("regulation")
	h.writeJSON(w, http.StatusOK, listResponse{Values: nonNil(h.store.FederalViolationsFor(regulation))})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
		case errors.Is(err, io.EOF):
			h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing request body", op)
		default:
			h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		}
		return
	}

	report, err := h.calculator.Calculate(estimate.Selection{
		State:             req.State,
		StateRegulation:   req.StateRegulation,
		FederalRegulation: req.FederalRegulation,
		FederalViolation:  req.FederalViolation,
		RecordCount:       string(req.Records),
	})
	if err != nil {
		var countErr *estimate.InvalidRecordCountError
		if errors.As(err, &countErr) {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, countErr.Message(), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to calculate fines: %v", err), op)
		return
	}

	csvText, err := output.CsvString(report)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	elapsed := time.Since(start)

	response := calculateResponse{
		Report:   report,
		Text:     output.PrettyString(report),
		CSV:      csvText,
		Duration: elapsed.String(),
	}

	h.logger.Info("fines calculated",
		zap.String("op", op),
		zap.String("request_id", w.Header().Get(RequestIDHeader)),
		zap.Bool("state_matched", report.State.Matched),
		zap.Bool("federal_matched", report.Federal.Matched),
		zap.Int64("records", report.RecordCount),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// withRequestID tags every request with an ID, reusing the caller's when one
// is supplied, and logs the outcome.
func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.logger.Debug("request handled",
			zap.String("op", "server.withRequestID"),
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// respondErrorWithOp logs client mistakes at Warn and server failures at
// Error before writing the JSON error body.
func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	log := h.logger.Error
	if status < http.StatusInternalServerError {
		log = h.logger.Warn
	}
	log("calculate request failed",
		zap.String("op", op),
		zap.String("request_id", w.Header().Get(RequestIDHeader)),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
