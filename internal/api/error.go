package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ibnfzy/gizichain/internal/normalize"
)

// Kind partitions failures the way the UI layer reacts to them.
type Kind int

const (
	// KindTransport covers network failures, timeouts and unusable
	// responses; the caller may retry.
	KindTransport Kind = iota
	// KindEnvelope is a structured backend rejection (ok=false), possibly
	// carrying per-field messages for form binding.
	KindEnvelope
	// KindNotFound marks a 404-backed rejection so callers can distinguish
	// "no such record" from a real error without matching message text.
	KindNotFound
)

// FieldErrors maps a field path to a human-readable message.
type FieldErrors map[string]string

// Error is the single error type produced at the API boundary. It is built
// once per failed call and not mutated afterwards.
type Error struct {
	Kind        Kind
	Message     string
	FieldErrors FieldErrors
	StatusCode  int
	Payload     []byte
}

func (e *Error) Error() string { return e.Message }

// genericMessage matches the retry-suggesting copy the app shows for
// unclassifiable failures.
const genericMessage = "Terjadi kesalahan. Coba lagi nanti."

// Normalize converts any failure into an *Error. It is idempotent: an error
// that already is (or wraps) an *Error passes through unchanged. It never
// returns nil and never panics.
func Normalize(err error) *Error {
	if err == nil {
		return &Error{Kind: KindTransport, Message: genericMessage}
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = genericMessage
	}
	return &Error{Kind: KindTransport, Message: msg}
}

// IsNotFound reports whether err classifies as a not-found rejection.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

// envelopeError builds the Error for an ok=false envelope (or a non-2xx bare
// payload): message is the envelope message, a string inside data, or the
// generic fallback; fieldErrors come from data.errors, or data itself when no
// errors key exists.
func envelopeError(statusCode int, message, data any, body []byte) *Error {
	kind := KindEnvelope
	if statusCode == http.StatusNotFound {
		kind = KindNotFound
	}
	msg := messageString(message)
	if msg == "" {
		if m := normalize.AsMap(data); m != nil {
			msg = messageString(m["message"])
		}
	}
	if msg == "" {
		msg = genericMessage
	}
	return &Error{
		Kind:        kind,
		Message:     msg,
		FieldErrors: extractFieldErrors(data),
		StatusCode:  statusCode,
		Payload:     body,
	}
}

// messageString resolves a message value that may be a string or an array of
// strings (first non-empty wins).
func messageString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// extractFieldErrors treats data.errors (or data itself when errors is
// absent) as a field→message(s) map, keeping only entries that resolve to a
// non-empty string.
func extractFieldErrors(data any) FieldErrors {
	m := normalize.AsMap(data)
	if m == nil {
		return nil
	}
	if inner := normalize.AsMap(m["errors"]); inner != nil {
		m = inner
	}
	out := FieldErrors{}
	for field, raw := range m {
		if msg := messageString(raw); msg != "" {
			out[field] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
