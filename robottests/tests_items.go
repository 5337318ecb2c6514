package robottests

import (
	"github.com/robotadmin/api-contract-tests/lifecycle"
	"github.com/robotadmin/api-contract-tests/servicedef"
)

// editedMenuItem is the menu item that the read, update and availability steps work on. The
// orders scenario does not depend on its name or price.
const editedMenuItem = "pizza"

func DoItemTests(t *T) {
	t.Run("list", func(t *T) {
		t.Probe("/items")
	})

	t.Run("filter by category", func(t *T) {
		categoryID := t.RequireResource(lifecycle.KindCategory)
		t.Get(withQuery("/items", "categoryId", categoryID))
	})

	for _, m := range servicedef.Menu {
		t.Run("create "+m.Key, func(t *T) {
			categoryID := t.RequireResource(lifecycle.KindCategory)
			if id, _ := t.Create(lifecycle.KindItem, m.AsItem(categoryID)); id != "" {
				t.Session().rememberMenuItem(m.Key, id)
			}
		})
	}

	t.Run("read", func(t *T) {
		id := t.RequireMenuItem(editedMenuItem)
		t.Get("/items/" + id)
	})

	t.Run("update", func(t *T) {
		id := t.RequireMenuItem(editedMenuItem)
		t.Put("/items/"+id, servicedef.UpdatedItem())
	})

	t.Run("availability toggle", func(t *T) {
		id := t.RequireMenuItem(editedMenuItem)
		for _, available := range []bool{false, true} {
			t.Patch("/items/"+id+"/availability", servicedef.Availability{Available: available})
		}
	})

	t.Run("create and delete", func(t *T) {
		categoryID := t.RequireResource(lifecycle.KindCategory)
		id, _ := t.Create(lifecycle.KindItem, servicedef.ThrowawayItem(categoryID, t.Session().RunTag()))
		if id != "" {
			t.Remove(lifecycle.KindItem, id)
		}
	})
}
