// Package server exposes the calculators and usage analytics over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/finance-tools/internal/calculator"
	"github.com/iwvelando/finance-tools/internal/usage"
	"github.com/iwvelando/finance-tools/pkg/constants"
	"github.com/iwvelando/finance-tools/pkg/loans"
	"github.com/iwvelando/finance-tools/pkg/numparse"
	"go.uber.org/zap"
)

// maxStatsDays bounds the look-back window of usage reports.
const maxStatsDays = 365

type handler struct {
	logger      *zap.Logger
	service     *calculator.Service
	recorder    usage.Recorder
	limiter     *RateLimiter
	maxBodySize int64
	version     string
}

// Options tunes the handler. Zero values select the defaults.
type Options struct {
	Version     string
	MaxBodySize int64
	// Limiter throttles the calculator endpoints per client. Nil disables it.
	Limiter *RateLimiter
}

// NewHandler constructs the HTTP handler that serves the calculator and usage
// APIs. recorder receives events posted by clients; when it also implements
// usage.StatsReader the stats and chart endpoints are served from it.
func NewHandler(logger *zap.Logger, service *calculator.Service, recorder usage.Recorder, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if service == nil {
		service = calculator.NewService(logger, nil, 0)
	}
	if recorder == nil {
		recorder = usage.Nop{}
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:      logger,
		service:     service,
		recorder:    recorder,
		limiter:     opts.Limiter,
		maxBodySize: maxBodySize,
		version:     version,
	}

	mux := http.NewServeMux()

	// Calculator catalog and computation
	mux.HandleFunc("GET /api/calculators", h.handleCalculators)
	mux.HandleFunc("POST /api/calculators/{name}", h.rateLimit(h.handleCompute))
	mux.HandleFunc("POST /api/calculators/balance-transfer/schedule", h.rateLimit(h.handleTransferSchedule))

	// Usage analytics
	mux.HandleFunc("POST /api/calculator-usage", h.handleUsage)
	mux.HandleFunc("GET /api/calculator-usage/stats", h.handleUsageStats)
	mux.HandleFunc("GET /api/calculator-usage/chart", h.handleUsageChart)

	mux.HandleFunc("GET /api/version", h.handleVersion)

	return mux
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCalculators(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"calculators": calculator.All(),
	})
}

func (h *handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompute"
	start := time.Now()

	name := r.PathValue("name")
	if _, err := calculator.Lookup(name); err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}

	raw, status, err := h.decodeInputs(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	outcome, err := h.service.Run(r.Context(), name, raw)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calculator.ErrUnknownCalculator) {
			status = http.StatusNotFound
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	h.logger.Info("calculator computed",
		zap.String("op", op),
		zap.String("calculator", outcome.Calculator),
		zap.Bool("ok", outcome.OK),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, outcome)
}

func (h *handler) handleTransferSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTransferSchedule"

	raw, status, err := h.decodeInputs(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	schedule, err := h.service.TransferSchedule(raw)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"payments":      schedule,
		"totalInterest": loans.TotalInterest(schedule),
	})
}

// decodeInputs reads a JSON object of calculator inputs. Values may be strings
// or numbers; nulls are treated as absent.
func (h *handler) decodeInputs(w http.ResponseWriter, r *http.Request) (map[string]string, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request exceeds limit of %d bytes", h.maxBodySize)
		}
		if errors.Is(err, io.EOF) {
			return map[string]string{}, http.StatusOK, nil
		}
		return nil, http.StatusBadRequest, fmt.Errorf("failed to decode inputs: %w", err)
	}
	return numparse.FromMap(payload), http.StatusOK, nil
}

// usagePayload is the body a client posts after running a calculator.
type usagePayload struct {
	CalculatorType string          `json:"calculatorType"`
	InputData      json.RawMessage `json:"inputData"`
	ResultData     json.RawMessage `json:"resultData"`
}

func (h *handler) handleUsage(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUsage"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var payload usagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode usage event: %v", err), op)
		return
	}

	// The server assigns the ID and timestamp.
	event := usage.Event{
		CalculatorType: payload.CalculatorType,
		InputData:      payload.InputData,
		ResultData:     payload.ResultData,
	}
	if err := event.Normalize(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if err := h.recorder.Record(r.Context(), event); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to record usage: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{"id": event.ID})
}

func (h *handler) handleUsageStats(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUsageStats"

	summary, status, err := h.summary(r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *handler) handleUsageChart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUsageChart"

	summary, status, err := h.summary(r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	png, err := usage.Chart(summary)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usage.ErrNoUsage) {
			status = http.StatusNotFound
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.Error("failed to write chart", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) summary(r *http.Request) (usage.Summary, int, error) {
	reader, ok := h.recorder.(usage.StatsReader)
	if !ok {
		return usage.Summary{}, http.StatusNotImplemented, usage.ErrStatsUnsupported
	}

	days, err := parseDays(r.URL.Query().Get("days"))
	if err != nil {
		return usage.Summary{}, http.StatusBadRequest, err
	}

	stats, err := reader.Stats(r.Context(), usage.Since(time.Now().UTC(), days))
	if errors.Is(err, usage.ErrStatsUnsupported) {
		return usage.Summary{}, http.StatusNotImplemented, err
	}
	if err != nil {
		return usage.Summary{}, http.StatusInternalServerError, fmt.Errorf("failed to read usage: %w", err)
	}
	return usage.Summarize(stats, days), http.StatusOK, nil
}

func parseDays(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultUsageStatsDays, nil
	}
	days, err := strconv.Atoi(trimmed)
	if err != nil || days <= 0 || days > maxStatsDays {
		return 0, fmt.Errorf("days must be a whole number between 1 and %d, got %q", maxStatsDays, value)
	}
	return days, nil
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
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}
