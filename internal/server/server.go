package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/crunch-the-numbers/internal/calculate"
	"github.com/iwvelando/crunch-the-numbers/internal/config"
	"github.com/iwvelando/crunch-the-numbers/internal/preferences"
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// UserHeader identifies the caller whose preferences apply to a request.
const UserHeader = "X-User-ID"

type handler struct {
	logger  *zap.Logger
	engine  *calculate.Engine
	store   preferences.Store
	version string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
// A nil store keeps preferences in memory.
func NewHandler(logger *zap.Logger, store preferences.Store, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = preferences.NewMemoryStore()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:  logger,
		engine:  calculate.NewEngine(logger),
		store:   store,
		version: trimmedVersion,
	}

	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(bodyLimit(maxUploadSize))

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/calculators", h.handleCatalog)
		r.Post("/calculators/{name}", h.handleCalculate)
		r.Post("/calculators/{name}/export", h.handleExport)
		r.Get("/preferences/{user}/currency", h.handleGetCurrency)
		r.Put("/preferences/{user}/currency", h.handleSetCurrency)
	})

	return router
}

type calculateResponse struct {
	Calculator string           `json:"calculator"`
	Title      string           `json:"title"`
	Currency   string           `json:"currency"`
	Summary    []output.Section `json:"summary"`
	Result     any              `json:"result"`
	Warnings   []string         `json:"warnings,omitempty"`
	InputsYAML string           `json:"inputsYaml,omitempty"`
	Duration   string           `json:"duration"`
}

type catalogResponse struct {
	Calculators []config.Info `json:"calculators"`
	Formats     []string      `json:"formats"`
}

type currencyPreference struct {
	User     string `json:"user,omitempty"`
	Currency string `json:"currency"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, catalogResponse{
		Calculators: config.Catalog,
		Formats:     output.Formats(),
	})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	name := chi.URLParam(r, "name")
	inputs, status, err := h.decodeInputs(r, name)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	result, err := h.engine.Run(name, inputs)
	if err != nil {
		h.respondErrorWithOp(w, runStatus(err), err.Error(), op)
		return
	}

	var inputsYAML string
	if encoded, err := yaml.Marshal(inputs); err != nil {
		h.logger.Warn("failed to marshal inputs as YAML",
			zap.String("op", op),
			zap.Error(err),
		)
	} else {
		inputsYAML = string(encoded)
	}

	elapsed := time.Since(start)
	h.logger.Info("calculation computed",
		zap.String("op", op),
		zap.String("calculator", name),
		zap.Int("rows", len(result.Report.Table.Rows)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Calculator: name,
		Title:      result.Report.Title,
		Currency:   result.Report.Currency,
		Summary:    result.Report.Sections,
		Result:     result.Report.Data,
		Warnings:   result.Warnings,
		InputsYAML: inputsYAML,
		Duration:   elapsed.String(),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	outputFormat := strings.ToLower(r.URL.Query().Get("format"))
	if outputFormat == "" {
		outputFormat = constants.OutputFormatCSV
	}

	name := chi.URLParam(r, "name")
	inputs, status, err := h.decodeInputs(r, name)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	result, err := h.engine.Run(name, inputs)
	if err != nil {
		h.respondErrorWithOp(w, runStatus(err), err.Error(), op)
		return
	}

	var buf bytes.Buffer
	if err := output.Render(&buf, outputFormat, result.Report); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, output.ErrUnsupportedFormat) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	w.Header().Set("Content-Type", output.ContentType(outputFormat))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Report.FileName(outputFormat)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write export",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleGetCurrency(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	code, err := preferences.Resolve(r.Context(), h.store, user)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, err.Error(), "server.handleGetCurrency")
		return
	}
	h.writeJSON(w, http.StatusOK, currencyPreference{User: user, Currency: code})
}

func (h *handler) handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSetCurrency"
	user := chi.URLParam(r, "user")

	var payload currencyPreference
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode preference: %v", err), op)
		return
	}

	if err := h.store.SetCurrency(r.Context(), user, payload.Currency); err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, preferences.ErrInvalidCurrency) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	code, err := h.store.Currency(r.Context(), user)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, currencyPreference{User: user, Currency: code})
}

// decodeInputs reads the JSON inputs for a calculator and fills a missing
// currency from the caller's stored preference.
func (h *handler) decodeInputs(r *http.Request, name string) (any, int, error) {
	inputs, err := config.NewInputs(name)
	if err != nil {
		return nil, http.StatusNotFound, err
	}

	if err := json.NewDecoder(r.Body).Decode(inputs); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("failed to decode %s inputs: %w", name, err)
	}

	code, err := preferences.Resolve(r.Context(), h.store, r.Header.Get(UserHeader))
	if err != nil {
		h.logger.Warn("currency preference unavailable, using default",
			zap.String("op", "server.decodeInputs"),
			zap.Error(err),
		)
		code = constants.DefaultCurrency
	}
	calculate.FillCurrency(inputs, code)
	return inputs, http.StatusOK, nil
}

func runStatus(err error) int {
	switch {
	case errors.Is(err, calculate.ErrInvalidInputs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, config.ErrUnknownCalculator):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
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
