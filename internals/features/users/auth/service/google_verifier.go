package service

import (
	"context"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// NewGoogleVerifier checks signature and audience, then decodes the claim set.
// Returns nil when no client id is configured.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil
	}
	v := googleAuthIDTokenVerifier.Verifier{}
	return func(_ context.Context, idToken string) (*GoogleIdentity, error) {
		if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
			return nil, err
		}
		claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
		if err != nil {
			return nil, err
		}
		return &GoogleIdentity{
			Subject:       claimSet.Sub,
			Email:         claimSet.Email,
			EmailVerified: claimSet.EmailVerified,
			Name:          claimSet.Name,
			Picture:       claimSet.Picture,
		}, nil
	}
}
