package servicedef

import (
	"fmt"
	"strings"
)

// StatusVocabulary is one of the sets of order status names a backend may use.
type StatusVocabulary struct {
	Name string
	// Transitions are applied to a new order, in this order.
	Transitions []string
	// FilterStatuses are used as values of the status filter when listing orders.
	FilterStatuses []string
}

var (
	EnglishStatuses = StatusVocabulary{
		Name:           "english",
		Transitions:    []string{"confirmed", "preparing", "ready", "out_for_delivery", "delivered"},
		FilterStatuses: []string{"pending", "confirmed", "preparing", "ready", "delivered"},
	}
	UkrainianStatuses = StatusVocabulary{
		Name:           "ukrainian",
		Transitions:    []string{"нове", "у реалізації", "виконано"},
		FilterStatuses: []string{"нове", "у реалізації", "виконано"},
	}
)

// InvalidStatus is a status name that no vocabulary contains.
const InvalidStatus = "invalid_status"

// OrderSources are the channels an order can come from.
var OrderSources = []string{"resto", "telegram", "glovo", "bolt", "wolt", "custom"}

// Vocabulary returns the status vocabulary with the given name. An empty name selects English.
func Vocabulary(name string) (StatusVocabulary, error) {
	switch strings.ToLower(name) {
	case "", EnglishStatuses.Name:
		return EnglishStatuses, nil
	case UkrainianStatuses.Name:
		return UkrainianStatuses, nil
	default:
		return StatusVocabulary{}, fmt.Errorf("unknown status vocabulary %q (expected %q or %q)",
			name, EnglishStatuses.Name, UkrainianStatuses.Name)
	}
}
