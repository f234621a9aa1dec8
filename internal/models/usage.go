// internal/models/usage.go
package models

import "errors"

// ProcessRequest is the body of the metered processing endpoint. The content
// payload is handed to the agent untouched; the engine only sees the token
// and cost outcome.
type ProcessRequest struct {
	Content string `json:"content"`
}

func (r *ProcessRequest) Validate() error {
	if r.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// ProcessResponse reports the agent result together with what was metered.
type ProcessResponse struct {
	Message    string  `json:"message"`
	Modality   string  `json:"modality"`
	Result     string  `json:"result"`
	TokensUsed int64   `json:"tokensUsed"`
	Cost       float64 `json:"cost"`
}

// CheckTokensRequest asks whether a planned consumption fits the budget.
type CheckTokensRequest struct {
	Tokens int64 `json:"tokens"`
}

func (r *CheckTokensRequest) Validate() error {
	if r.Tokens < 0 {
		return errors.New("tokens must not be negative")
	}
	return nil
}
