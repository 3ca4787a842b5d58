package apierror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
)

// respond spins up a one-shot server and returns the resty response for it.
func respond(t *testing.T, status int, body string) *resty.Response {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	resp, err := resty.New().R().Get(srv.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestClassify_FullPayload(t *testing.T) {
	body := `{"timestamp":"2025-03-01T10:00:00Z","status":409,"error":"Conflict","code":"DUPLICATE_RESOURCE","message":"Email already registered"}`
	d := Classify(respond(t, http.StatusConflict, body))

	if d.Kind != KindDuplicateResource {
		t.Errorf("expected DUPLICATE_RESOURCE, got %s", d.Kind)
	}
	if d.HTTPStatus != 409 {
		t.Errorf("expected status 409, got %d", d.HTTPStatus)
	}
	if d.Message != "Email already registered" {
		t.Errorf("unexpected message: %s", d.Message)
	}
	if d.ServerReason != "Conflict" {
		t.Errorf("unexpected reason: %s", d.ServerReason)
	}
	if d.Timestamp != "2025-03-01T10:00:00Z" {
		t.Errorf("unexpected timestamp: %s", d.Timestamp)
	}
}

func TestClassify_PayloadStatusPreferred(t *testing.T) {
	// Payload reports a different status than the transport
	body := `{"status":422,"code":"VALIDATION_FAILED","message":"price must be positive"}`
	d := Classify(respond(t, http.StatusBadRequest, body))

	if d.HTTPStatus != 422 {
		t.Errorf("payload status should win, got %d", d.HTTPStatus)
	}
}

func TestClassify_EmptyBody(t *testing.T) {
	d := Classify(respond(t, http.StatusNotFound, ""))

	if d.Kind != KindUnknown {
		t.Errorf("absent code should yield UNKNOWN_ERROR, got %s", d.Kind)
	}
	if d.HTTPStatus != 404 {
		t.Errorf("expected 404, got %d", d.HTTPStatus)
	}
	if d.Message != "API error: 404 Not Found" {
		t.Errorf("unexpected synthesized message: %s", d.Message)
	}
	if d.ServerReason != "Not Found" {
		t.Errorf("unexpected reason: %s", d.ServerReason)
	}
}

func TestClassify_MalformedBody(t *testing.T) {
	d := Classify(respond(t, http.StatusInternalServerError, "<html>oops</html>"))

	if d.Kind != KindUnknown {
		t.Errorf("malformed body should yield UNKNOWN_ERROR, got %s", d.Kind)
	}
	if d.HTTPStatus != 500 {
		t.Errorf("expected 500, got %d", d.HTTPStatus)
	}
}

func TestClassify_UnrecognizedCode(t *testing.T) {
	// Codes outside the closed set collapse to UNKNOWN_ERROR, case-sensitively
	for _, code := range []string{"TEAPOT", "unauthorized", "Resource_Not_Found", ""} {
		body := `{"code":"` + code + `","message":"whatever"}`
		d := Classify(respond(t, http.StatusBadRequest, body))
		if d.Kind != KindUnknown {
			t.Errorf("code %q should collapse to UNKNOWN_ERROR, got %s", code, d.Kind)
		}
	}
}

func TestClassify_EveryKnownCode(t *testing.T) {
	codes := []Kind{
		KindResourceNotFound, KindResourceInUse, KindInsufficientStock,
		KindPaymentFailed, KindCartEmpty, KindDuplicateResource,
		KindValidationFailed, KindInvalidArgument, KindBadCredentials,
		KindUnauthorized, KindAccessDenied, KindInternalError,
	}
	for _, code := range codes {
		body := `{"code":"` + string(code) + `"}`
		d := Classify(respond(t, http.StatusBadRequest, body))
		if d.Kind != code {
			t.Errorf("code %s misclassified as %s", code, d.Kind)
		}
	}
}

func TestFromUnknown_GenericError(t *testing.T) {
	d := FromUnknown(errors.New("connection refused"))

	if d.Kind != KindUnknown {
		t.Errorf("expected UNKNOWN_ERROR, got %s", d.Kind)
	}
	if d.HTTPStatus != 0 {
		t.Errorf("client-side errors carry status 0, got %d", d.HTTPStatus)
	}
	if d.Message != "connection refused" {
		t.Errorf("message should be preserved, got %s", d.Message)
	}
}

func TestFromUnknown_Idempotent(t *testing.T) {
	original := Classify(respond(t, http.StatusUnauthorized, `{"code":"UNAUTHORIZED"}`))

	again := FromUnknown(original)
	if again != original {
		t.Error("already-classified descriptor should pass through unchanged")
	}
}

func TestFromUnknown_Nil(t *testing.T) {
	d := FromUnknown(nil)

	if d == nil {
		t.Fatal("FromUnknown must be total")
	}
	if d.Kind != KindUnknown || d.Message == "" {
		t.Errorf("expected generic unknown descriptor, got %+v", d)
	}
}

func TestCheckResponse_TransportError(t *testing.T) {
	// Point at a closed server to force a transport-level failure
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp, err := resty.New().R().Get(url)
	checked := CheckResponse(resp, err)

	if checked == nil {
		t.Fatal("expected an error")
	}
	d := FromUnknown(checked)
	if d.Kind != KindUnknown || d.HTTPStatus != 0 {
		t.Errorf("transport errors classify as UNKNOWN_ERROR/status 0, got %+v", d)
	}
}

func TestCheckResponse_Success(t *testing.T) {
	if err := CheckResponse(respond(t, http.StatusOK, `{}`), nil); err != nil {
		t.Errorf("2xx should not produce an error, got %v", err)
	}
}

func TestPredicates(t *testing.T) {
	unauthorized := Classify(respond(t, http.StatusUnauthorized, `{"code":"UNAUTHORIZED"}`))
	denied := Classify(respond(t, http.StatusForbidden, `{"code":"ACCESS_DENIED"}`))
	notFound := Classify(respond(t, http.StatusNotFound, `{"code":"RESOURCE_NOT_FOUND"}`))
	internal := Classify(respond(t, http.StatusInternalServerError, `{"code":"INTERNAL_ERROR"}`))

	if !IsUnauthorized(unauthorized) || IsUnauthorized(denied) {
		t.Error("IsUnauthorized misbehaves")
	}
	if !IsAccessDenied(denied) || IsAccessDenied(unauthorized) {
		t.Error("IsAccessDenied misbehaves")
	}
	if !IsNotFound(notFound) {
		t.Error("IsNotFound misbehaves")
	}
	if !IsServerError(internal) || IsServerError(notFound) {
		t.Error("IsServerError misbehaves")
	}
	if !IsSessionInvalidating(unauthorized) || !IsSessionInvalidating(denied) {
		t.Error("auth failures must invalidate the session")
	}
	if IsSessionInvalidating(internal) || IsSessionInvalidating(errors.New("timeout")) {
		t.Error("transient failures must not invalidate the session")
	}
}

func TestDescriptorError(t *testing.T) {
	d := &Descriptor{Kind: KindCartEmpty, HTTPStatus: 400, Message: "cart is empty"}
	if !strings.Contains(d.Error(), "CART_EMPTY") || !strings.Contains(d.Error(), "400") {
		t.Errorf("unexpected Error() output: %s", d.Error())
	}

	clientSide := &Descriptor{Kind: KindUnknown, Message: "boom"}
	if strings.Contains(clientSide.Error(), "[0]") {
		t.Errorf("status 0 should not render a bracket prefix: %s", clientSide.Error())
	}
}
