package apierror

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

// Kind is the closed error-category enumeration. Values match the wire
// codes the storefront API puts in the error payload's "code" field;
// anything outside this set collapses to KindUnknown.
type Kind string

const (
	KindResourceNotFound  Kind = "RESOURCE_NOT_FOUND"
	KindResourceInUse     Kind = "RESOURCE_IN_USE"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindPaymentFailed     Kind = "PAYMENT_FAILED"
	KindCartEmpty         Kind = "CART_EMPTY"
	KindDuplicateResource Kind = "DUPLICATE_RESOURCE"
	KindValidationFailed  Kind = "VALIDATION_FAILED"
	KindInvalidArgument   Kind = "INVALID_ARGUMENT"
	KindBadCredentials    Kind = "BAD_CREDENTIALS"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindAccessDenied      Kind = "ACCESS_DENIED"
	KindInternalError     Kind = "INTERNAL_ERROR"
	KindUnknown           Kind = "UNKNOWN_ERROR"
)

const fallbackMessage = "An unexpected error occurred"

// Descriptor is the canonical normalized failure. Every failing request in
// the client is reduced to one of these; construction is total and can
// absorb any input without raising.
type Descriptor struct {
	Kind         Kind
	HTTPStatus   int
	Message      string
	ServerReason string
	Timestamp    string
}

// Error implements the error interface
func (d *Descriptor) Error() string {
	if d.HTTPStatus > 0 {
		return fmt.Sprintf("[%d] %s: %s", d.HTTPStatus, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// errorPayload is the API's error body contract. Any subset of fields may
// be absent.
type errorPayload struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

func toKind(code string) Kind {
	switch Kind(code) {
	case KindResourceNotFound, KindResourceInUse, KindInsufficientStock,
		KindPaymentFailed, KindCartEmpty, KindDuplicateResource,
		KindValidationFailed, KindInvalidArgument, KindBadCredentials,
		KindUnauthorized, KindAccessDenied, KindInternalError:
		return Kind(code)
	default:
		return KindUnknown
	}
}

// Classify normalizes a failed HTTP response into a Descriptor. The body
// may be empty, malformed, or missing any field; Classify never fails.
func Classify(resp *resty.Response) *Descriptor {
	statusCode := resp.StatusCode()
	statusText := http.StatusText(statusCode)

	var payload errorPayload
	_ = json.Unmarshal(resp.Body(), &payload)

	d := &Descriptor{
		Kind:         toKind(payload.Code),
		HTTPStatus:   statusCode,
		Message:      payload.Message,
		ServerReason: payload.Error,
		Timestamp:    payload.Timestamp,
	}
	if payload.Status != 0 {
		d.HTTPStatus = payload.Status
	}
	if d.Message == "" {
		d.Message = fmt.Sprintf("API error: %d %s", statusCode, statusText)
	}
	if d.ServerReason == "" {
		d.ServerReason = statusText
	}
	return d
}

// FromUnknown normalizes an arbitrary error into a Descriptor. Passing an
// already-classified descriptor back through returns it unchanged.
func FromUnknown(err error) *Descriptor {
	if d, ok := err.(*Descriptor); ok {
		return d
	}
	if err != nil {
		return &Descriptor{
			Kind:    KindUnknown,
			Message: err.Error(),
		}
	}
	return &Descriptor{
		Kind:    KindUnknown,
		Message: fallbackMessage,
	}
}

// CheckResponse funnels a resty call through classification. Transport
// errors (no response) wrap as KindUnknown with HTTPStatus 0; non-2xx
// responses classify from the body.
func CheckResponse(resp *resty.Response, err error) error {
	if err != nil {
		return FromUnknown(err)
	}

	if !resp.IsSuccess() {
		return Classify(resp)
	}

	return nil
}

// KindOf returns the Kind of any error, classifying it first if needed.
func KindOf(err error) Kind {
	return FromUnknown(err).Kind
}

// IsUnauthorized checks if error means the session is missing or expired
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// IsAccessDenied checks if error is due to insufficient permissions
func IsAccessDenied(err error) bool {
	return KindOf(err) == KindAccessDenied
}

// IsNotFound checks if error is due to resource not found
func IsNotFound(err error) bool {
	return KindOf(err) == KindResourceNotFound
}

// IsServerError checks if error is due to a server-side failure (5xx)
func IsServerError(err error) bool {
	return FromUnknown(err).HTTPStatus >= 500
}

// IsSessionInvalidating reports whether the error should destroy local
// session state. Only auth failures qualify; network blips, timeouts and
// server errors are treated as transient.
func IsSessionInvalidating(err error) bool {
	k := KindOf(err)
	return k == KindUnauthorized || k == KindAccessDenied
}
