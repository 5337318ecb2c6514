package apiclient

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// PayloadKind identifies which variant of a decoded response body a Payload holds.
type PayloadKind int

const (
	// PayloadEmpty means the body was empty or the JSON literal null.
	PayloadEmpty PayloadKind = iota
	// PayloadObject means the body was a JSON object.
	PayloadObject
	// PayloadArray means the body was a JSON array.
	PayloadArray
	// PayloadScalar means the body was a JSON string, number, or boolean.
	PayloadScalar
	// PayloadText means the body could not be parsed as JSON.
	PayloadText
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadEmpty:
		return "empty"
	case PayloadObject:
		return "object"
	case PayloadArray:
		return "array"
	case PayloadScalar:
		return "scalar"
	case PayloadText:
		return "text"
	default:
		return "unknown"
	}
}

// Payload is a decoded response body. Callers should switch on Kind rather than probing for
// fields that may not exist.
type Payload struct {
	kind  PayloadKind
	value ldvalue.Value
	raw   string
}

// DecodePayload classifies a response body.
func DecodePayload(body []byte) Payload {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Payload{}
	}
	var v ldvalue.Value
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return Payload{kind: PayloadText, raw: string(body)}
	}
	p := Payload{value: v, raw: string(body)}
	switch v.Type() {
	case ldvalue.NullType:
		p.kind = PayloadEmpty
	case ldvalue.ObjectType:
		p.kind = PayloadObject
	case ldvalue.ArrayType:
		p.kind = PayloadArray
	default:
		p.kind = PayloadScalar
	}
	return p
}

func (p Payload) Kind() PayloadKind { return p.kind }

// Value returns the structured value, or a null value for empty and text payloads.
func (p Payload) Value() ldvalue.Value { return p.value }

// Text returns the raw body as received.
func (p Payload) Text() string { return p.raw }

// Field returns a property of an object payload, or a null value for any other kind.
func (p Payload) Field(name string) ldvalue.Value {
	if p.kind != PayloadObject {
		return ldvalue.Null()
	}
	return p.value.GetByKey(name)
}

// Elements returns the elements of an array payload.
func (p Payload) Elements() []ldvalue.Value {
	if p.kind != PayloadArray {
		return nil
	}
	ret := make([]ldvalue.Value, 0, p.value.Count())
	for i := 0; i < p.value.Count(); i++ {
		ret = append(ret, p.value.GetByIndex(i))
	}
	return ret
}

// ID returns the "id" property of an object payload. Numeric ids are converted to their decimal
// string form.
func (p Payload) ID() (string, bool) {
	return IDOf(p.Field("id"))
}

// ContainsID returns true if an array payload has an element whose "id" equals the given id.
func (p Payload) ContainsID(id string) bool {
	for _, e := range p.Elements() {
		if eid, ok := IDOf(e.GetByKey("id")); ok && eid == id {
			return true
		}
	}
	return false
}

// Contains does a plain substring search over the body.
func (p Payload) Contains(s string) bool {
	if p.kind == PayloadEmpty {
		return false
	}
	return strings.Contains(p.raw, s) || strings.Contains(p.value.JSONString(), s)
}

func (p Payload) String() string {
	return p.raw
}

// MarshalJSON writes structured payloads as JSON, text payloads as a JSON string, and empty
// payloads as null.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case PayloadEmpty:
		return []byte("null"), nil
	case PayloadText:
		return json.Marshal(p.raw)
	default:
		return []byte(p.value.JSONString()), nil
	}
}

// IDOf converts an id property to a string. Numeric ids become their decimal form; missing, empty
// and non-scalar ids are not ids.
func IDOf(v ldvalue.Value) (string, bool) {
	switch v.Type() {
	case ldvalue.StringType:
		if v.StringValue() == "" {
			return "", false
		}
		return v.StringValue(), true
	case ldvalue.NumberType:
		if v.IsInt() {
			return strconv.Itoa(v.IntValue()), true
		}
		return strconv.FormatFloat(v.Float64Value(), 'f', -1, 64), true
	default:
		return "", false
	}
}
