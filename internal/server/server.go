// Package server exposes the validator and repayment calculator over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type handler struct {
	logger        *zap.Logger
	formatter     *format.Formatter
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	formatter, err := format.NewFormatter(cfg.Output.Locale, cfg.Output.CurrencySymbol)
	if err != nil {
		logger.Warn("falling back to default currency formatting",
			zap.String("op", "server.NewHandler"),
			zap.Error(err),
		)
		formatter = format.Default()
	}

	h := &handler{
		logger:        logger,
		formatter:     formatter,
		maxUploadSize: cfg.UploadSizeBytes(),
		version:       trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimit.RequestsPerSecond > 0 {
			r.Use(rateLimit(logger, rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)))
		}
		r.Post("/validate", h.handleValidate)
		r.Post("/calculate", h.handleCalculate)
		r.Post("/clear", h.handleClear)
		r.Get("/version", h.handleVersion)
	})

	return r
}

type validateResponse struct {
	Valid  bool                      `json:"valid"`
	Errors mortgage.ValidationErrors `json:"errors"`
}

type errorsResponse struct {
	Errors mortgage.ValidationErrors `json:"errors"`
}

type clearResponse struct {
	Form   mortgage.RawInputs        `json:"form"`
	Errors mortgage.ValidationErrors `json:"errors"`
}

func (h *handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	raw, ok := h.decodeInputs(w, r, "server.handleValidate")
	if !ok {
		return
	}

	errs := mortgage.Validate(raw)
	h.writeJSON(w, http.StatusOK, validateResponse{Valid: errs.Valid(), Errors: errs})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	raw, ok := h.decodeInputs(w, r, "server.handleCalculate")
	if !ok {
		return
	}

	outcome, err := calculator.Calculate(h.logger, raw)
	if err != nil {
		if errors.Is(err, mortgage.ErrInvalidInput) {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleCalculate")
			return
		}
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to calculate repayment: %v", err), "server.handleCalculate")
		return
	}
	if !outcome.Valid() {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorsResponse{Errors: outcome.Errors})
		return
	}

	h.logger.Info("repayment computed",
		zap.String("op", "server.handleCalculate"),
		zap.String("requestId", middleware.GetReqID(r.Context())),
		zap.Stringer("type", outcome.Inputs.Type),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, output.NewJSONReport(h.formatter, output.Report{
		Inputs: outcome.Inputs,
		Result: outcome.Result,
	}))
}

func (h *handler) handleClear(w http.ResponseWriter, _ *http.Request) {
	form, errs := calculator.Reset()
	h.writeJSON(w, http.StatusOK, clearResponse{Form: form, Errors: errs})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeInputs(w http.ResponseWriter, r *http.Request, op string) (mortgage.RawInputs, bool) {
	var raw mortgage.RawInputs

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return raw, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode inputs: %v", err), op)
		return raw, false
	}

	return raw, true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculator request failed",
		zap.String("op", op),
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
