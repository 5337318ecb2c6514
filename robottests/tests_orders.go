package robottests

import (
	"github.com/robotadmin/api-contract-tests/lifecycle"
	"github.com/robotadmin/api-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

// courierOrderSubtotal is (65.00+3.00)*2 + (25.00+2.00)*1.
const courierOrderSubtotal = 163.00

func DoOrderTests(t *T) {
	t.Run("create courier order", func(t *T) {
		borscht := t.RequireMenuItem(servicedef.Borscht.Key)
		bread := t.RequireMenuItem(servicedef.Bread.Key)
		order := servicedef.CourierOrder(t.RequireLocation(), borscht, bread)

		var computed float64
		for _, line := range order.Items {
			computed += (line.Price + line.PackagingPrice) * float64(line.Quantity)
		}
		assert.Equal(t, courierOrderSubtotal, servicedef.Money(computed), "harness-side subtotal")
		assert.Equal(t, courierOrderSubtotal, order.Subtotal, "subtotal sent to the backend")

		t.Create(lifecycle.KindOrder, order)
	})

	t.Run("read back", func(t *T) {
		id := t.RequireResource(lifecycle.KindOrder)
		first := t.Get("/orders/" + id)
		second := t.Get("/orders/" + id)
		if !first.Success || !second.Success {
			return
		}
		for _, field := range []string{"id", "total", "subtotal", "status", "items"} {
			assert.Equal(t, first.Payload.Field(field), second.Payload.Field(field),
				"order field %q changed between two reads", field)
		}
		name := first.Payload.Field("items").GetByIndex(0).GetByKey("name").GetByKey("ua")
		if name.IsString() {
			t.Debug("Ukrainian item name preserved: %s", name.StringValue())
		}
	})

	t.Run("status transitions", func(t *T) {
		id := t.RequireResource(lifecycle.KindOrder)
		for _, status := range t.Session().Settings().Vocabulary.Transitions {
			if o := t.Patch("/orders/"+id+"/status", servicedef.StatusUpdate{Status: status}); o.Success {
				t.Debug("status updated to %s", status)
			}
		}
	})

	t.Run("create pickup order", func(t *T) {
		pizza := t.RequireMenuItem(servicedef.Pizza.Key)
		t.Create(lifecycle.KindOrder, servicedef.PickupOrder(t.RequireLocation(), pizza))
	})

	t.Run("create and delete", func(t *T) {
		bread := t.RequireMenuItem(servicedef.Bread.Key)
		id, _ := t.Create(lifecycle.KindOrder, servicedef.MinimalOrder(t.RequireLocation(), bread))
		if id != "" {
			t.Remove(lifecycle.KindOrder, id)
		}
	})
}
