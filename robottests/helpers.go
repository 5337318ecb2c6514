package robottests

import (
	"net/url"
	"sort"

	"github.com/robotadmin/api-contract-tests/apiclient"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// withQuery appends encoded query parameters given as name/value pairs.
func withQuery(path string, pairs ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		q.Add(pairs[i], pairs[i+1])
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// listing returns the elements of a collection response, which is either a JSON array or an
// object wrapping one array property.
func listing(p apiclient.Payload) []ldvalue.Value {
	if p.Kind() == apiclient.PayloadArray {
		return p.Elements()
	}
	if p.Kind() != apiclient.PayloadObject {
		return nil
	}
	v := p.Value()
	keys := v.Keys()
	sort.Strings(keys)
	for _, key := range keys {
		if field := v.GetByKey(key); field.Type() == ldvalue.ArrayType {
			ret := make([]ldvalue.Value, 0, field.Count())
			for i := 0; i < field.Count(); i++ {
				ret = append(ret, field.GetByIndex(i))
			}
			return ret
		}
	}
	return nil
}

func listingContains(p apiclient.Payload, id string) bool {
	for _, e := range listing(p) {
		if eid, ok := apiclient.IDOf(e.GetByKey("id")); ok && eid == id {
			return true
		}
	}
	return false
}

func firstListedID(p apiclient.Payload) (string, bool) {
	for _, e := range listing(p) {
		if id, ok := apiclient.IDOf(e.GetByKey("id")); ok {
			return id, true
		}
	}
	return "", false
}
