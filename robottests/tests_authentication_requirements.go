package robottests

// malformedToken is not a syntactically valid JWT.
const malformedToken = "not-a-jwt"

var protectedEndpoints = []string{"/orders", "/me"}

func DoAuthenticationRequirementTests(t *T) {
	for _, endpoint := range protectedEndpoints {
		t.Run(endpoint+" without credential", func(t *T) {
			o := t.Get(endpoint, WithoutCredential(), ExpectFailure())
			if o.Success {
				t.RequireClientError(o)
			}
		})

		t.Run(endpoint+" with malformed credential", func(t *T) {
			o := t.Get(endpoint, WithCredential(malformedToken), ExpectFailure())
			if o.Success {
				t.RequireClientError(o)
			}
		})
	}
}
