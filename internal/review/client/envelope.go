package client

import (
	"encoding/json"
	"fmt"
)

// Envelope is the uniform response wrapper every API reply is
// normalized into.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// normalizeEnvelope applies the single fallback rule: if the body
// already carries the `code` discriminator it is the envelope and is
// passed through; otherwise the whole body becomes `data`, the HTTP
// status becomes `code` and the message is the literal "success".
func normalizeEnvelope(status int, body []byte) (Envelope, error) {
	// Error wraps keep the message empty so the caller can dig the
	// backend's own message out of the body instead.
	wrapMsg := ""
	if status < 400 {
		wrapMsg = "success"
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err == nil {
		if _, ok := probe["code"]; ok {
			var env Envelope
			if err := json.Unmarshal(body, &env); err != nil {
				return Envelope{}, fmt.Errorf("decode envelope: %w", err)
			}
			return env, nil
		}
		return Envelope{Code: status, Message: wrapMsg, Data: body}, nil
	}

	// Non-object bodies (arrays, scalars) are wrapped as-is.
	if json.Valid(body) {
		return Envelope{Code: status, Message: wrapMsg, Data: body}, nil
	}
	return Envelope{}, fmt.Errorf("response is not valid JSON")
}
