package llm

import (
	"errors"
	"fmt"
	"strings"
)

// contextLengthMarker is the substring the provider includes when the input
// exceeded the model's context window. The upstream error is untyped, so
// this heuristic match is isolated here as the single swappable constant.
const contextLengthMarker = "maximum context length"

// ErrContextTooLarge reports that the model rejected the input as exceeding
// its context window. Callers match it with errors.Is.
var ErrContextTooLarge = errors.New("model context window exceeded")

// GatewayError wraps any other provider failure with its message.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("model api error (status %d): %s", e.StatusCode, e.Message)
}

// classifyAPIError turns a provider error message into a domain error.
func classifyAPIError(status int, message string) error {
	if strings.Contains(message, contextLengthMarker) {
		return fmt.Errorf("%w: %s", ErrContextTooLarge, message)
	}
	return &GatewayError{StatusCode: status, Message: message}
}
