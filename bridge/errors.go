package bridge

import (
	"encoding/json"
	"errors"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
	"github.com/MarketingDevWebexpR/b2b-template-sub010/internal/httpx"
)

// apiError translates an httpx failure into a commerce.APIError carrying
// this provider's name. Vendor error bodies are mined for a code and a
// message; transport errors surface with status zero.
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
		var body apiMessage
		if jsonErr := json.Unmarshal(se.Body, &body); jsonErr == nil {
			switch {
			case body.Error != nil:
				apiErr.Code = body.Error.Code
				apiErr.Message = body.Error.Message
			case body.Message != "":
				apiErr.Message = body.Message
			}
		}
		return apiErr
	}

	return &commerce.APIError{Provider: ProviderName, Op: op, Message: err.Error()}
}
