// Package models contains data types and constants for the storefront chat backend.
package models

// Endpoint paths, relative to the backend base URL
const (
	EndpointChat = "/chat"
	EndpointPing = "/ping"
)

// DefaultBackendURL is used when no override is configured
const DefaultBackendURL = "http://127.0.0.1:8000"

// NoAnswerPlaceholder is shown when a successful reply carries no answer
const NoAnswerPlaceholder = "No answer."

// ErrorPrefix starts every assistant message synthesized from a failure
const ErrorPrefix = "Error: "

// UserAgent identifies the client to the backend
const UserAgent = "storechat/0.1"

// DefaultHeaders returns headers sent with every JSON request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   UserAgent,
	}
}
