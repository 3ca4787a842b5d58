package service

import (
	"github.com/tigreau/nto-music/pkg/apierror"
	"github.com/tigreau/nto-music/pkg/output"
)

// reportError renders an API failure using its display policy. The hint to
// sign in again is attached only when the policy says the session is gone.
func reportError(err error) {
	policy := apierror.PolicyFor(err)
	output.PrintError("%s", policy.Message)
	if policy.Action == apierror.ActionRedirectLogin {
		output.PrintInfo("Run 'nto auth login' to sign in.")
	}
}
