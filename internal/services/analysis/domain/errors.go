package domain

import (
	"errors"
	"fmt"
	"net/http"

	"verihub/internal/adapters/remote/verif"
	perr "verihub/internal/platform/errors"
)

// ErrorKind is the closed taxonomy surfaced to callers
type ErrorKind string

// Error kinds
const (
	KindRateLimit      ErrorKind = "rate_limit"
	KindServerError    ErrorKind = "server_error"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindNetworkError   ErrorKind = "network_error"
	KindUnknown        ErrorKind = "unknown_error"
)

// Descriptor is the structured analysis failure handed to the gateway.
// Local marks limits tripped before any network call was attempted
type Descriptor struct {
	Kind              ErrorKind
	Local             bool
	RetryAfterSeconds int
	Detail            string
}

func (d *Descriptor) Error() string {
	return fmt.Sprintf("analysis failed: %s (%s)", d.Kind, d.Detail)
}

// LocalRateLimited builds the pre-flight limit descriptor
func LocalRateLimited() *Descriptor {
	return &Descriptor{Kind: KindRateLimit, Local: true, Detail: "tab request window exhausted"}
}

// Classify maps an upstream failure onto the taxonomy.
// Status errors map by code, transport failures become network errors,
// anything else falls through to unknown
func Classify(err error) *Descriptor {
	var se *verif.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Status == http.StatusTooManyRequests:
			return &Descriptor{Kind: KindRateLimit, RetryAfterSeconds: 60, Detail: se.Detail}
		case se.Status >= 500:
			return &Descriptor{Kind: KindServerError, Detail: se.Detail}
		case se.Status == http.StatusBadRequest:
			return &Descriptor{Kind: KindInvalidRequest, Detail: se.Detail}
		default:
			return &Descriptor{Kind: KindUnknown, Detail: se.Detail}
		}
	}
	if perr.IsCode(err, perr.ErrorCodeUnavailable) {
		return &Descriptor{Kind: KindNetworkError, Detail: err.Error()}
	}
	return &Descriptor{Kind: KindUnknown, Detail: err.Error()}
}
