package robottests

import (
	"github.com/robotadmin/api-contract-tests/apiclient"

	"github.com/stretchr/testify/assert"
)

func DoHealthTests(t *T) {
	t.Run("health endpoint", func(t *T) {
		t.Get("/health", WithTimeout(t.Session().Settings().HealthTimeout))
	})

	t.Run("interactive docs", func(t *T) {
		t.Get("/docs")
	})

	t.Run("OpenAPI schema", func(t *T) {
		o := t.Get("/openapi.json")
		if o.Success {
			assert.Equal(t, apiclient.PayloadObject, o.Payload.Kind(), "OpenAPI schema should be a JSON object")
			assert.False(t, o.Payload.Field("paths").IsNull(), "OpenAPI schema has no paths")
		}
	})
}
