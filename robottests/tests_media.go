package robottests

import (
	"github.com/robotadmin/api-contract-tests/servicedef"
)

func DoMediaTests(t *T) {
	t.Run("sign upload", func(t *T) {
		o := t.Post("/media/sign-upload", servicedef.MediaSignParams{})
		if o.Success && o.Payload.Field("signature").IsNull() {
			t.Debug("upload signature response has no signature field: %s", o.Payload)
		}
	})

	t.Run("sign upload with parameters", func(t *T) {
		t.Post("/media/sign-upload", servicedef.MediaUploadParams())
	})
}
