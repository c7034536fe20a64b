// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Every response — success or failure — carries the same envelope:
//
//	{ "success": true,  "message": "Student added successfully", ... }
//	{ "success": false, "message": "Student not found" }
//
// Consistent response shapes make life easier for API consumers —
// they always know where to look for the outcome and the detail.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope. Payload, when present, is
// flattened into the top-level JSON object alongside success/message
// so handlers can attach operation-specific fields (a profile, a
// listing, the updated fee balance) without nesting.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Payload map[string]any `json:"-"`
}

// MarshalJSON flattens Payload into the envelope. success/message win
// over payload keys of the same name.
func (r Response) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Payload)+2)
	for k, v := range r.Payload {
		out[k] = v
	}
	out["success"] = r.Success
	if r.Message != "" {
		out["message"] = r.Message
	}
	return json.Marshal(out)
}

// WriteJSON writes a JSON-encoded response with the given HTTP status
// code. Header order matters: Content-Type must be set before
// WriteHeader locks the headers in.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK builds a success envelope with an optional message and payload.
func OK(message string, payload map[string]any) Response {
	return Response{Success: true, Message: message, Payload: payload}
}

// Error builds a failure envelope from any Go error.
func Error(err error) Response {
	return Response{Success: false, Message: err.Error()}
}

// ValidationError converts a slice of validator.FieldError values into
// a single failure envelope. The go-playground/validator package
// returns one FieldError per failing struct field; each is turned into
// a plain English sentence and joined with ", " so the client sees one
// descriptive message.
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "oneof":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be one of: %s", e.Field(), e.Param()))
		case "gt":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be greater than %s", e.Field(), e.Param()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Success: false,
		Message: strings.Join(errMessages, ", "),
	}
}
