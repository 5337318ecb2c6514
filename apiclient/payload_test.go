package apiclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePayloadKinds(t *testing.T) {
	for _, p := range []struct {
		body string
		kind PayloadKind
	}{
		{``, PayloadEmpty},
		{"  \n", PayloadEmpty},
		{`null`, PayloadEmpty},
		{`{"id":"x"}`, PayloadObject},
		{`[{"id":"x"}]`, PayloadArray},
		{`"ok"`, PayloadScalar},
		{`42`, PayloadScalar},
		{`<html>Not Found</html>`, PayloadText},
		{`{"unterminated":`, PayloadText},
	} {
		assert.Equal(t, p.kind, DecodePayload([]byte(p.body)).Kind(), "body: %q", p.body)
	}
}

func TestPayloadID(t *testing.T) {
	id, ok := DecodePayload([]byte(`{"id":"cat-1"}`)).ID()
	assert.True(t, ok)
	assert.Equal(t, "cat-1", id)

	id, ok = DecodePayload([]byte(`{"id":17}`)).ID()
	assert.True(t, ok)
	assert.Equal(t, "17", id)

	_, ok = DecodePayload([]byte(`{"name":"x"}`)).ID()
	assert.False(t, ok)

	_, ok = DecodePayload([]byte(`[{"id":"x"}]`)).ID()
	assert.False(t, ok)

	_, ok = DecodePayload([]byte(`not json`)).ID()
	assert.False(t, ok)
}

func TestPayloadContainsID(t *testing.T) {
	p := DecodePayload([]byte(`[{"id":"a"},{"id":2},{"name":"no id"}]`))
	assert.True(t, p.ContainsID("a"))
	assert.True(t, p.ContainsID("2"))
	assert.False(t, p.ContainsID("b"))
	assert.False(t, DecodePayload([]byte(`{"id":"a"}`)).ContainsID("a"))
	assert.Len(t, p.Elements(), 3)
}

func TestPayloadContains(t *testing.T) {
	p := DecodePayload([]byte(`{"name":{"ua":"Борщ український"}}`))
	assert.True(t, p.Contains("Борщ"))
	assert.False(t, p.Contains("Pizza"))
	assert.True(t, DecodePayload([]byte(`plain text`)).Contains("text"))
	assert.False(t, DecodePayload(nil).Contains(""))
}

func TestPayloadMarshalJSON(t *testing.T) {
	data, err := json.Marshal(DecodePayload(nil))
	assert.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(DecodePayload([]byte("oops")))
	assert.NoError(t, err)
	assert.Equal(t, `"oops"`, string(data))

	data, err = json.Marshal(DecodePayload([]byte(`{"a": [1, 2]}`)))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"a":[1,2]}`, string(data))
}

func TestValidationIssues(t *testing.T) {
	p := DecodePayload([]byte(`{"detail":[{"loc":["body","name"],"msg":"field required"},{"msg":"bad"}]}`))
	assert.Equal(t, []string{`["body","name"]: field required`, "bad"}, ValidationIssues(p))
	assert.Nil(t, ValidationIssues(DecodePayload([]byte(`{"detail":"x"}`))))
}
