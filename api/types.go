// Package api - API types for grain classification
// These types define the contract for the /classify endpoints.
// API is stateless and deterministic: the same grain always gets the same answer.
package api

import (
	"time"

	"presolar/core/classify"
	"presolar/core/input"
	"presolar/core/output"
)

// ClassifyMode selects what POST /classify returns
type ClassifyMode string

const (
	// ModeType returns the winning type and subtype with probabilities
	ModeType ClassifyMode = "type"

	// ModeProbabilities returns only the per-type probabilities
	ModeProbabilities ClassifyMode = "probabilities"
)

// ClassifyRequest is the input to POST /classify
type ClassifyRequest struct {
	// Grain holds the measurements
	Grain classify.Grain `json:"grain"`

	// Mode defaults to ModeType
	Mode ClassifyMode `json:"mode,omitempty"`
}

// ClassifyResponse is the output of POST /classify
type ClassifyResponse struct {
	RequestID     string                 `json:"request_id"`
	Type          string                 `json:"type,omitempty"`
	Subtype       string                 `json:"subtype,omitempty"`
	Probabilities *output.ProbabilityMap `json:"probabilities"`
}

// BatchRequest is the input to POST /classify/batch
type BatchRequest struct {
	Grains []input.Record `json:"grains"`

	// Probabilities includes per-type probabilities for every grain
	Probabilities bool `json:"probabilities,omitempty"`

	// Compare checks grains carrying a recorded type
	Compare bool `json:"compare,omitempty"`
}

// BatchResponse is the output of POST /classify/batch
type BatchResponse struct {
	RequestID string `json:"request_id"`
	output.ReportView
}

// CategoryInfo describes one grain type
type CategoryInfo struct {
	Label    string   `json:"label"`
	Priority int      `json:"priority"`
	Subtypes []string `json:"subtypes,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an error for the client
type ErrorResponse struct {
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
	Error     ErrorDetail `json:"error"`
}
