package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ProviderError is a failed completion call. StatusCode is zero when the
// request never produced an HTTP response (network error, timeout).
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return "provider error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// quotaMarkers are substrings OpenAI-compatible providers put in quota and
// billing failures.
var quotaMarkers = []string{
	"exceeded your current quota",
	"billing details",
}

// IsQuotaExceeded reports whether err is a quota or rate-limit failure.
// It matches HTTP 429 or a known quota message anywhere in the chain.
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}
	var perr *ProviderError
	if errors.As(err, &perr) && perr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// AsProviderError returns err as a *ProviderError, wrapping it when it is
// some other failure.
func AsProviderError(err error) *ProviderError {
	if err == nil {
		return nil
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr
	}
	return &ProviderError{Message: err.Error(), Err: err}
}
