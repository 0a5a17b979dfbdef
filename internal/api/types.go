package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AskRequest is the JSON body of POST /api/ask.
type AskRequest struct {
	Question string `json:"question" validate:"required"`
}

// Validate returns a map of field name to message, empty when the request
// is valid.
func (r *AskRequest) Validate() map[string]string {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}

// SummarizeResponse is the JSON body returned by POST /api/summarize.
type SummarizeResponse struct {
	SessionID string `json:"session_id"`
	Summary   string `json:"summary"`
}

// AskResponse is the JSON body returned by POST /api/ask.
type AskResponse struct {
	Answer string `json:"answer"`
}
