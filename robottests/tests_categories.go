package robottests

import (
	"github.com/robotadmin/api-contract-tests/lifecycle"
	"github.com/robotadmin/api-contract-tests/servicedef"
)

func DoCategoryTests(t *T) {
	t.Run("list", func(t *T) {
		t.Probe("/categories")
	})

	t.Run("create with localized name", func(t *T) {
		t.Create(lifecycle.KindCategory, servicedef.MenuCategory())
	})

	t.Run("new category is listed", func(t *T) {
		id := t.RequireResource(lifecycle.KindCategory)
		o := t.Get("/categories")
		if o.Success && !listingContains(o.Payload, id) {
			t.Errorf("read-after-write inconsistency: category %s was created but is not in the listing", id)
		}
	})

	t.Run("read", func(t *T) {
		id := t.RequireResource(lifecycle.KindCategory)
		o := t.Get("/categories/" + id)
		if got, ok := o.Payload.ID(); o.Success && ok && got != id {
			t.Errorf("GET /categories/%s returned category %s", id, got)
		}
	})

	t.Run("update", func(t *T) {
		id := t.RequireResource(lifecycle.KindCategory)
		t.Put("/categories/"+id, servicedef.UpdatedCategory())
	})

	t.Run("reorder", func(t *T) {
		id := t.RequireResource(lifecycle.KindCategory)
		t.Patch("/categories/reorder", []servicedef.CategoryOrder{{ID: id, Order: 1}})
	})

	t.Run("create and delete", func(t *T) {
		id, _ := t.Create(lifecycle.KindCategory, servicedef.ThrowawayCategory(t.Session().RunTag()))
		if id != "" {
			t.Remove(lifecycle.KindCategory, id)
		}
	})
}
