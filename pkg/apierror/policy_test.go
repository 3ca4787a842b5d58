package apierror

import (
	"errors"
	"testing"
)

func TestPolicyFor_UnauthorizedRedirects(t *testing.T) {
	p := PolicyFor(&Descriptor{Kind: KindUnauthorized, HTTPStatus: 401})

	if p.Action != ActionRedirectLogin {
		t.Errorf("UNAUTHORIZED must redirect to login, got %s", p.Action)
	}
	if p.Message != "Your session expired. Please sign in again." {
		t.Errorf("unexpected message: %s", p.Message)
	}
}

func TestPolicyFor_OnlyUnauthorizedRedirects(t *testing.T) {
	kinds := []Kind{
		KindResourceNotFound, KindResourceInUse, KindInsufficientStock,
		KindPaymentFailed, KindCartEmpty, KindDuplicateResource,
		KindValidationFailed, KindInvalidArgument, KindBadCredentials,
		KindAccessDenied, KindInternalError, KindUnknown,
	}
	for _, k := range kinds {
		p := PolicyFor(&Descriptor{Kind: k, Message: "detail"})
		if p.Action != ActionNone {
			t.Errorf("kind %s should not trigger a redirect", k)
		}
	}
}

func TestPolicyFor_ServerMessagePreferredForValidation(t *testing.T) {
	for _, k := range []Kind{KindValidationFailed, KindInvalidArgument, KindResourceInUse} {
		p := PolicyFor(&Descriptor{Kind: k, Message: "price must be positive"})
		if p.Message != "price must be positive" {
			t.Errorf("kind %s should surface the server message, got %q", k, p.Message)
		}
	}

	// Other kinds keep the generic per-kind message
	p := PolicyFor(&Descriptor{Kind: KindPaymentFailed, Message: "gateway said no"})
	if p.Message != "Payment failed. Please try a different payment method." {
		t.Errorf("generic message expected, got %q", p.Message)
	}
}

func TestPolicyFor_UnknownFallsBackToDescriptorMessage(t *testing.T) {
	p := PolicyFor(errors.New("dial tcp: connection refused"))
	if p.Message != "dial tcp: connection refused" {
		t.Errorf("unknown kind should surface the raw message, got %q", p.Message)
	}
	if p.Action != ActionNone {
		t.Error("unknown kind should not redirect")
	}
}

func TestPolicyFor_Deterministic(t *testing.T) {
	d := &Descriptor{Kind: KindInsufficientStock, HTTPStatus: 409, Message: "2 left"}

	first := PolicyFor(d)
	second := PolicyFor(d)

	if first != second {
		t.Errorf("policy must be pure: %+v vs %+v", first, second)
	}
}

func TestPolicyFor_TotalOverNil(t *testing.T) {
	p := PolicyFor(nil)
	if p.Message == "" {
		t.Error("policy message must never be empty")
	}
}
