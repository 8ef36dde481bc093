// Package api - HTTP handlers for grain classification
// Handlers wrap the classifier - they contain NO classification logic.
package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"presolar/core/batch"
	"presolar/core/classify"
	"presolar/core/output"
	"presolar/internal/errors"
)

// Handler handles classification requests
type Handler struct {
	runner       *batch.Runner
	maxBatchSize int
	maxBodyBytes int64
	log          *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(runner *batch.Runner, maxBatchSize int, maxBodyBytes int64, log *zap.Logger) *Handler {
	return &Handler{
		runner:       runner,
		maxBatchSize: maxBatchSize,
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

// HandleClassify handles POST /classify
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req ClassifyRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeDecodeError(w, requestID, err)
		return
	}

	resp := &ClassifyResponse{RequestID: requestID}
	switch req.Mode {
	case "", ModeType:
		res, err := classify.Classify(req.Grain)
		if err != nil {
			h.writeDomainError(w, requestID, err)
			return
		}
		probs := output.ProbabilityMap(res.Probabilities)
		resp.Type = res.Type.String()
		resp.Subtype = string(res.Subtype)
		resp.Probabilities = &probs
	case ModeProbabilities:
		p, err := classify.ClassifyProbabilities(req.Grain)
		if err != nil {
			h.writeDomainError(w, requestID, err)
			return
		}
		probs := output.ProbabilityMap(p)
		resp.Probabilities = &probs
	default:
		h.writeError(w, requestID, "VALIDATION_ERROR", fmt.Sprintf("invalid mode %q", req.Mode), http.StatusBadRequest)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// HandleBatch handles POST /classify/batch
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req BatchRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeDecodeError(w, requestID, err)
		return
	}
	if len(req.Grains) == 0 {
		h.writeError(w, requestID, "VALIDATION_ERROR", "grains must not be empty", http.StatusBadRequest)
		return
	}
	if len(req.Grains) > h.maxBatchSize {
		h.writeError(w, requestID, "VALIDATION_ERROR",
			fmt.Sprintf("batch of %d grains exceeds limit of %d", len(req.Grains), h.maxBatchSize),
			http.StatusRequestEntityTooLarge)
		return
	}
	for i := range req.Grains {
		if req.Grains[i].ID == "" {
			req.Grains[i].ID = fmt.Sprintf("grain-%d", i+1)
		}
	}

	report, err := h.runner.Run(r.Context(), req.Grains)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	opts := output.Options{ShowProbabilities: req.Probabilities, Compare: req.Compare}
	writeJSON(w, &BatchResponse{
		RequestID:  requestID,
		ReportView: output.NewReportView(report, opts),
	}, http.StatusOK)
}

// HandleCategories handles GET /categories
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	cats := make([]CategoryInfo, 0, classify.NumCategories)
	for i, c := range classify.Categories {
		info := CategoryInfo{Label: c.String(), Priority: i}
		for _, s := range classify.SubtypesOf(c) {
			info.Subtypes = append(info.Subtypes, string(s))
		}
		cats = append(cats, info)
	}
	writeJSON(w, map[string]interface{}{
		"categories":      cats,
		"unclassified":    classify.Unclassified.String(),
		"min_probability": classify.MinProbability,
	}, http.StatusOK)
}

// decode reads a JSON body of at most maxBodyBytes
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, requestID string, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		h.writeError(w, requestID, "BODY_TOO_LARGE",
			fmt.Sprintf("request body exceeds limit of %d bytes", tooLarge.Limit),
			http.StatusRequestEntityTooLarge)
	case errors.IsType(err, errors.TypeMeasurement):
		h.writeDomainError(w, requestID, err)
	default:
		h.writeError(w, requestID, "INVALID_JSON", err.Error(), http.StatusBadRequest)
	}
}

func (h *Handler) writeDomainError(w http.ResponseWriter, requestID string, err error) {
	var domainErr *errors.Error
	if !stderrors.As(err, &domainErr) {
		domainErr = errors.Internal("classification failed", err)
	}

	switch domainErr.Type {
	case errors.TypeMeasurement, errors.TypeInput, errors.TypeParsing:
		h.writeError(w, requestID, string(domainErr.Type), err.Error(), http.StatusBadRequest)
	default:
		h.log.Error("request failed", zap.String("request_id", requestID), zap.Error(domainErr))
		h.writeError(w, requestID, string(domainErr.Type), domainErr.Message, http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, requestID, code, message string, status int) {
	writeJSON(w, &ErrorResponse{
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Error:     ErrorDetail{Code: code, Message: message},
	}, status)
}

func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

type requestIDKey struct{}

const requestIDHeader = "X-Request-ID"

func generateRequestID() string {
	return "cls-" + uuid.NewString()
}

func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return id
	}
	return generateRequestID()
}
