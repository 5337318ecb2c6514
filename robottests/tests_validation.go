package robottests

import (
	"github.com/robotadmin/api-contract-tests/apiclient"
	"github.com/robotadmin/api-contract-tests/lifecycle"
	"github.com/robotadmin/api-contract-tests/servicedef"

	"github.com/google/uuid"
)

// DoValidationTests sends requests that the backend must reject.
func DoValidationTests(t *T) {
	t.Run("category without name", func(t *T) {
		t.Create(lifecycle.KindCategory, servicedef.Category{Visible: true}, ExpectFailure())
	})

	t.Run("item with malformed category id", func(t *T) {
		t.Create(lifecycle.KindItem, servicedef.Borscht.AsItem("invalid-uuid"), ExpectFailure())
	})

	t.Run("unknown category", func(t *T) {
		t.Get("/categories/non-existent-id", ExpectFailure())
	})

	t.Run("unknown order", func(t *T) {
		t.Get("/orders/"+uuid.NewString(), ExpectFailure())
	})

	t.Run("malformed JSON body", func(t *T) {
		o := t.Post("/categories", nil, WithRawBody([]byte("invalid json")), ExpectFailure())
		if o.Success {
			t.RequireClientError(o)
			for _, issue := range apiclient.ValidationIssues(o.Payload) {
				t.Debug("validation issue: %s", issue)
			}
		}
	})

	t.Run("order without items", func(t *T) {
		order := servicedef.NewOrder(servicedef.Customer{Name: "Test User", Phone: "+380123456789"},
			t.RequireLocation(), servicedef.Delivery{Type: "pickup"})
		order.Items = []servicedef.OrderLine{}
		t.Create(lifecycle.KindOrder, order, ExpectFailure())
	})

	t.Run("order with unknown item", func(t *T) {
		t.Create(lifecycle.KindOrder, servicedef.MinimalOrder(t.RequireLocation(), "invalid-item-id"), ExpectFailure())
	})

	t.Run("order for unknown location", func(t *T) {
		itemID, ok := t.Session().MenuItemID(servicedef.Bread.Key)
		if !ok {
			itemID = uuid.NewString()
		}
		t.Create(lifecycle.KindOrder, servicedef.MinimalOrder("invalid-location", itemID), ExpectFailure())
	})

	t.Run("invalid status filter", func(t *T) {
		t.Get(withQuery("/orders", "status", servicedef.InvalidStatus), ExpectFailure())
	})

	t.Run("invalid status transition", func(t *T) {
		id := t.RequireResource(lifecycle.KindOrder)
		t.Patch("/orders/"+id+"/status", servicedef.StatusUpdate{Status: servicedef.InvalidStatus}, ExpectFailure())
	})

	t.Run("status update of unknown order", func(t *T) {
		status := t.Session().Settings().Vocabulary.Transitions[0]
		t.Patch("/orders/"+uuid.NewString()+"/status", servicedef.StatusUpdate{Status: status}, ExpectFailure())
	})
}
