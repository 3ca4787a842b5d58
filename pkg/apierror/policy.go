package apierror

// Action is the recommended recovery for a classified failure.
type Action string

const (
	ActionNone          Action = "none"
	ActionRedirectLogin Action = "redirect_login"
)

// Policy is the uniform user-facing directive derived from a Descriptor.
type Policy struct {
	Message string
	Action  Action
}

var policyMessages = map[Kind]string{
	KindResourceNotFound:  "The requested resource was not found.",
	KindInsufficientStock: "Some items are no longer available in the requested quantity.",
	KindPaymentFailed:     "Payment failed. Please try a different payment method.",
	KindCartEmpty:         "Your cart is empty.",
	KindDuplicateResource: "This item already exists.",
	KindValidationFailed:  "Please review the highlighted form data.",
	KindInvalidArgument:   "Some input values are invalid.",
	KindBadCredentials:    "Invalid email or password.",
	KindUnauthorized:      "Your session expired. Please sign in again.",
	KindAccessDenied:      "You do not have permission to perform this action.",
	KindInternalError:     "Something went wrong on the server. Please try again.",
}

// prefersServerMessage reports whether the server's own message carries
// user-actionable detail that beats the generic per-kind string.
func prefersServerMessage(k Kind) bool {
	return k == KindValidationFailed || k == KindInvalidArgument || k == KindResourceInUse
}

// PolicyFor derives the user-facing policy for any error. It is a pure
// function of the classified descriptor: same input, same policy.
func PolicyFor(err error) Policy {
	d := FromUnknown(err)

	message := policyMessages[d.Kind]
	if prefersServerMessage(d.Kind) && d.Message != "" {
		message = d.Message
	}
	if message == "" {
		message = d.Message
	}
	if message == "" {
		message = fallbackMessage
	}

	action := ActionNone
	if d.Kind == KindUnauthorized {
		action = ActionRedirectLogin
	}

	return Policy{Message: message, Action: action}
}
