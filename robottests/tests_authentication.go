package robottests

import (
	"github.com/robotadmin/api-contract-tests/apiclient"
	"github.com/robotadmin/api-contract-tests/servicedef"
)

const (
	invalidToken = "invalid_token"
	loginPath    = "/auth/telegram/verify"
)

func DoAuthenticationTests(t *T) {
	t.Run("login", func(t *T) {
		login(t)
	})

	t.Run("current user with token", func(t *T) {
		t.RequireCredential()
		t.Get("/me")
	})

	t.Run("current user with invalid token", func(t *T) {
		o := t.Get("/me", WithCredential(invalidToken), ExpectFailure())
		if o.Success {
			t.RequireClientError(o)
		}
	})

	t.Run("logout", func(t *T) {
		token := t.RequireCredential()
		o := t.Post("/auth/logout", nil)
		if !o.Success {
			return
		}
		if !tokenRevoked(o) {
			t.Debug("logout did not report the token as revoked; keeping it")
			return
		}
		t.Run("revoked token rejected", func(t *T) {
			o := t.Get("/me", WithCredential(token), ExpectFailure())
			if o.Success {
				t.RequireClientError(o)
			}
		})
		t.Session().ClearCredential()
		t.Run("login again", func(t *T) {
			login(t)
		})
	})
}

// login verifies the configured login with the backend and installs the returned token.
func login(t *T) {
	s := t.Session()
	o := t.Post(loginPath, servicedef.LoginPayload(s.Settings().Login, s.now()))
	if !o.Success {
		return
	}
	token, ok := accessToken(o)
	if !ok {
		t.Errorf("login succeeded but the response contained no token")
		return
	}
	s.SetCredential(token)
	t.Debug("logged in, token has %d characters", len(token))
}

func accessToken(o apiclient.Outcome) (string, bool) {
	for _, key := range []string{"token", "access_token"} {
		if v := o.Payload.Field(key); v.IsString() && v.StringValue() != "" {
			return v.StringValue(), true
		}
	}
	return "", false
}

func tokenRevoked(o apiclient.Outcome) bool {
	for _, key := range []string{"revoked", "invalidated"} {
		if v := o.Payload.Field(key); v.BoolValue() {
			return true
		}
	}
	return false
}
