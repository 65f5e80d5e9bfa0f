package api

import (
	"net/http"

	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// HTTPStatus maps an error code category to a response status: validation and
// business-rule failures are the client's fault (400), missing resources 404,
// everything else an internal error (500).
func HTTPStatus(err error) int {
	code := errors.GetCode(err)

	// A held instrument without market data is a server-side data gap, not a
	// client mistake.
	if code == errors.ErrCodeMarketDataMissing {
		return http.StatusInternalServerError
	}

	switch {
	case code >= 100 && code < 200:
		return http.StatusBadRequest
	case code >= 200 && code < 300:
		return http.StatusNotFound
	case code >= 500 && code < 600:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse is the JSON body returned for any failed request.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
