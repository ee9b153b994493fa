package studio

import (
	"encoding/json"
	"sort"
)

// ImageResponse mirrors a successful studio response.
type ImageResponse struct {
	Data ImageData `json:"data"`
}

// ImageData carries the rendered image location.
type ImageData struct {
	ImageURL string `json:"imageUrl"`
}

// ValidationDetails mirrors the body of a 422 response.
type ValidationDetails struct {
	StatusCode int             `json:"statusCode,omitempty"`
	Message    string          `json:"message,omitempty"`
	Errors     []FieldError    `json:"errors,omitempty"`
	Raw        json.RawMessage `json:"-"`
}

// decodeValidationDetails reads a 422 body. Any JSON document is accepted
// and kept in Raw; Message and Errors are filled from whatever recognizable
// shape the body has. Only a body that is not JSON at all is an error.
func decodeValidationDetails(body []byte) (ValidationDetails, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ValidationDetails{}, err
	}
	var details ValidationDetails
	if err := json.Unmarshal(raw, &details); err == nil {
		details.Raw = raw
		return details, nil
	}
	details = ValidationDetails{Raw: raw}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		details.Errors = decodeFieldErrors(raw)
		return details, nil
	}
	_ = json.Unmarshal(obj["statusCode"], &details.StatusCode)
	if err := json.Unmarshal(obj["message"], &details.Message); err != nil {
		details.Message = ""
	}
	if errs, ok := obj["errors"]; ok {
		details.Errors = decodeFieldErrors(errs)
	}
	return details, nil
}

// decodeFieldErrors accepts a list of {field, message} objects, a list of
// strings, or an object mapping field to message.
func decodeFieldErrors(raw json.RawMessage) []FieldError {
	var list []FieldError
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var messages []string
	if err := json.Unmarshal(raw, &messages); err == nil {
		out := make([]FieldError, 0, len(messages))
		for _, m := range messages {
			out = append(out, FieldError{Message: m})
		}
		return out
	}
	var byField map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byField); err == nil {
		keys := make([]string, 0, len(byField))
		for k := range byField {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]FieldError, 0, len(keys))
		for _, k := range keys {
			var msg string
			if err := json.Unmarshal(byField[k], &msg); err != nil {
				msg = string(byField[k])
			}
			out = append(out, FieldError{Field: k, Message: msg})
		}
		return out
	}
	return nil
}

// FieldError is one rejected parameter.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is delivered by the Go* entry points when a request completes.
type Result struct {
	Response *ImageResponse
	Err      error
}

// Outcome classifies the result.
func (r Result) Outcome() OutcomeKind {
	return Classify(r.Err)
}
