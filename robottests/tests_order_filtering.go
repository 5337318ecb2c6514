package robottests

import (
	"strconv"

	"github.com/robotadmin/api-contract-tests/servicedef"
)

const (
	filterDateFrom = "2024-01-01"
	filterDateTo   = "2024-12-31"
)

// orderFilterProbes lists the read-only order queries, in issue order.
func orderFilterProbes(s *Session) []string {
	vocabulary := s.Settings().Vocabulary
	probes := []string{"/orders"}
	for _, status := range vocabulary.FilterStatuses {
		probes = append(probes, withQuery("/orders", "status", status))
	}
	if loc := s.LocationID(); loc != "" {
		probes = append(probes, withQuery("/orders", "location_id", loc))
	}
	for _, source := range servicedef.OrderSources {
		probes = append(probes, withQuery("/orders", "source", source))
	}
	probes = append(probes,
		withQuery("/orders", "date_from", filterDateFrom, "date_to", filterDateTo),
		withQuery("/orders", "status", vocabulary.FilterStatuses[0], "source", servicedef.OrderSources[0],
			"date_from", filterDateFrom),
	)
	for _, limit := range []int{5, 100} {
		probes = append(probes, withQuery("/orders", "limit", strconv.Itoa(limit)))
	}
	return probes
}

func DoOrderFilteringTests(t *T) {
	t.Run("filters", func(t *T) {
		t.ProbeAll(orderFilterProbes(t.Session()))
	})

	t.Run("limit is honored", func(t *T) {
		o := t.Get(withQuery("/orders", "limit", "5"))
		if n := len(listing(o.Payload)); o.Success && n > 5 {
			t.Errorf("GET /orders?limit=5 returned %d orders", n)
		}
	})

	t.Run("statistics summary", func(t *T) {
		t.Probe("/orders/stats/summary")
	})
}
