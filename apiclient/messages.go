package apiclient

import (
	"fmt"
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// errorMessageFor derives a failure description from a response that did not meet expectations.
//
// Precedence: a "detail" field (validation error list summarized as a count, or a plain string),
// then a "message" field, then the status line.
func errorMessageFor(statusCode int, expectSuccess bool, payload Payload) string {
	if !expectSuccess && statusCode < 400 {
		return "expected rejection, got " + statusLine(statusCode)
	}
	detail := payload.Field("detail")
	switch detail.Type() {
	case ldvalue.ArrayType:
		return fmt.Sprintf("Validation errors: %d issues", detail.Count())
	case ldvalue.StringType:
		if detail.StringValue() != "" {
			return detail.StringValue()
		}
	}
	if message := payload.Field("message"); message.IsString() && message.StringValue() != "" {
		return message.StringValue()
	}
	return statusLine(statusCode)
}

// ValidationIssues returns the individual messages of a "detail" list, in the shape
// {"loc": [...], "msg": "..."}.
func ValidationIssues(payload Payload) []string {
	detail := payload.Field("detail")
	if detail.Type() != ldvalue.ArrayType {
		return nil
	}
	var ret []string
	for i := 0; i < detail.Count(); i++ {
		issue := detail.GetByIndex(i)
		loc := issue.GetByKey("loc")
		if loc.IsNull() {
			ret = append(ret, issue.GetByKey("msg").StringValue())
			continue
		}
		ret = append(ret, fmt.Sprintf("%s: %s", loc.JSONString(), issue.GetByKey("msg").StringValue()))
	}
	return ret
}

func statusLine(statusCode int) string {
	return fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode))
}
