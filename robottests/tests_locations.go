package robottests

import (
	"github.com/robotadmin/api-contract-tests/servicedef"
)

func DoLocationTests(t *T) {
	t.Run("list", func(t *T) {
		o := t.Probe("/locations")
		if id, ok := firstListedID(o.Payload); ok {
			t.Session().SetLocationID(id)
			t.Debug("using location %s", id)
		}
	})

	t.Run("update details with banking", func(t *T) {
		id := t.RequireLocation()
		t.Put("/locations/"+id, servicedef.LocationDetails())
	})

	t.Run("establishment toggle", func(t *T) {
		id := t.RequireLocation()
		for _, enabled := range []bool{false, true} {
			t.Put("/locations/"+id, servicedef.EstablishmentToggle(enabled))
		}
	})
}

func DoDeliverySettingsTests(t *T) {
	path := func(t *T) string {
		return "/locations/" + t.RequireLocation() + "/delivery-settings"
	}

	t.Run("read", func(t *T) {
		t.Get(path(t))
	})

	t.Run("default methods", func(t *T) {
		t.Put(path(t), servicedef.DefaultDeliveryMethods())
	})

	t.Run("custom methods", func(t *T) {
		t.Put(path(t), servicedef.CustomDeliveryMethods())
	})

	t.Run("pickup only", func(t *T) {
		t.Put(path(t), servicedef.PickupOnlyDelivery())
	})
}
