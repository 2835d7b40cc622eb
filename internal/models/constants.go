// Package models contains data types and constants for the chat widget.
package models

// Endpoint paths on the Response Service, relative to the configured base URL.
const (
	PathChat   = "/chat"
	PathHealth = "/api/health"
)

// DefaultEndpoint matches the address the reference backend listens on.
const DefaultEndpoint = "http://127.0.0.1:8000"

// Fixed assistant texts shown when a turn cannot produce a real reply.
const (
	// FallbackProtocolText is shown when the reply lacks a response field.
	FallbackProtocolText = "Something went wrong."
	// FallbackTransportText is shown when the call itself failed.
	FallbackTransportText = "Error connecting to the server."
)

// HeaderRequestID carries the per-turn request ID to the backend.
const HeaderRequestID = "X-Request-ID"

// DefaultHeaders returns the headers sent with every chat request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

// HealthStatusOK is the status value the health endpoint reports when up.
const HealthStatusOK = "ok"
