package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var encOnce = sync.OnceValues(func() (*tiktoken.Tiktoken, error) {
	return tiktoken.EncodingForModel("gpt-3.5-turbo")
})

// countTokens estimates the token size of an outgoing request body for
// logging. Best effort: provider tokenizers differ, and an unavailable
// encoding just reports zero.
func countTokens(data []byte) int {
	enc, err := encOnce()
	if err != nil {
		return 0
	}
	return len(enc.Encode(string(data), nil, nil))
}
