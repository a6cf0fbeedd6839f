package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// maxServerMessage bounds how much of a response body is copied into an error.
const maxServerMessage = 200

// MapTransportError maps a failed round trip to an AppError.
// Context errors become Timeout/Canceled; anything else is Unavailable.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return Unavailable(err)
}

// FromResponse maps a non-success HTTP status and body to an AppError.
// 409 is a Conflict; 401/403 on an authenticated call is Unauthenticated;
// 404 is NotFound; everything else is Rejected with the server's text.
func FromResponse(status int, body []byte) *AppError {
	msg := ServerMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}

	var e *AppError
	switch status {
	case http.StatusConflict:
		e = Conflict(msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		e = Unauthenticated(msg)
	case http.StatusNotFound:
		e = NotFound(msg)
	default:
		e = Rejected(status, msg)
	}
	e.Status = status
	return e
}

// ServerMessage extracts a short human-readable message from an error body.
// JSON bodies with a message or error field are unpacked; anything else is
// used as plain text.
func ServerMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	if strings.HasPrefix(text, "{") {
		var obj struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal([]byte(text), &obj) == nil {
			switch {
			case obj.Message != "":
				text = obj.Message
			case obj.Error != "":
				text = obj.Error
			}
		}
	}

	if len(text) > maxServerMessage {
		text = text[:maxServerMessage] + "..."
	}
	return text
}
