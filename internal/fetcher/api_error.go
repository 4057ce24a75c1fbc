package fetcher

import (
	"encoding/json"
	"net/http"

	"github.com/eraptis/eustat-cli/internal/apperr"
)

// errorEnvelope mirrors the API's error body. The "error" member is an
// object in most responses but an array in some; RawMessage defers the
// choice.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

type errorDetail struct {
	Status int    `json:"status"`
	Label  string `json:"label"`
}

// responseError maps a non-2xx response to the error taxonomy: 404 becomes
// DatasetNotFoundError, 400 InvalidParameterError, everything else APIError.
// The JSON error envelope refines status and message when present; a
// non-JSON body falls back to the HTTP status alone.
func responseError(datasetCode string, httpStatus int, body []byte) error {
	status := httpStatus
	message := ""

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Error) > 0 {
		var detail errorDetail
		if env.Error[0] == '[' {
			var details []errorDetail
			if err := json.Unmarshal(env.Error, &details); err == nil && len(details) > 0 {
				detail = details[0]
			}
		} else {
			_ = json.Unmarshal(env.Error, &detail)
		}
		if detail.Status != 0 {
			status = detail.Status
		}
		message = detail.Label
	}

	switch status {
	case http.StatusNotFound:
		return apperr.NotFound(datasetCode)
	case http.StatusBadRequest:
		if message == "" {
			message = "invalid request parameters"
		}
		return apperr.InvalidParameter(message)
	default:
		return apperr.API(status, message)
	}
}
