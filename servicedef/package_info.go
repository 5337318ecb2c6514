// Package servicedef defines the request bodies that the test harness sends to the backend, and the
// fixture data used to fill them in.
//
// Response bodies are not modeled here: the harness treats them as opaque JSON and inspects them
// through apiclient.Payload.
package servicedef
