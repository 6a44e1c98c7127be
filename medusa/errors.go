package medusa

import (
	"encoding/json"
	"errors"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
	"github.com/MarketingDevWebexpR/b2b-template-sub010/internal/httpx"
)

// medusaError is the store API error body: {"message": "...", "type": "..."}.
type medusaError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
}

// apiError translates an httpx failure into a commerce.APIError carrying
// this provider's name. Transport errors surface with status zero.
func apiError(op string, err error) error {
	if err == nil {
		return nil
	}

	var se *httpx.StatusError
	if errors.As(err, &se) {
		apiErr := &commerce.APIError{
			Provider:  ProviderName,
			Op:        op,
			Status:    se.Status,
			RequestID: se.RequestID,
		}
		var body medusaError
		if jsonErr := json.Unmarshal(se.Body, &body); jsonErr == nil {
			apiErr.Message = body.Message
			if body.Code != "" {
				apiErr.Code = body.Code
			} else {
				apiErr.Code = body.Type
			}
		}
		return apiErr
	}

	return &commerce.APIError{Provider: ProviderName, Op: op, Message: err.Error()}
}
