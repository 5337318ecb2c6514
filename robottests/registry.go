package robottests

import (
	"fmt"
	"sort"
	"strings"
)

// Scenario is one named unit of the test run.
type Scenario struct {
	Name   string
	Action func(*T)
}

// AllScenarios is the fixed run order. Scenarios that create resources come before the ones that
// use them.
var AllScenarios = []Scenario{
	{"health", DoHealthTests},
	{"authentication", DoAuthenticationTests},
	{"categories", DoCategoryTests},
	{"items", DoItemTests},
	{"locations", DoLocationTests},
	{"delivery settings", DoDeliverySettingsTests},
	{"media", DoMediaTests},
	{"orders", DoOrderTests},
	{"order filtering", DoOrderFilteringTests},
	{"validation", DoValidationTests},
	{"authentication requirements", DoAuthenticationRequirementTests},
}

// Suite is a named selection of scenarios. Scenarios always run in AllScenarios order regardless
// of the order they are listed in.
type Suite struct {
	Name        string
	Description string
	Scenarios   []string
}

var Suites = []Suite{
	{
		Name:        "full",
		Description: "every scenario",
		Scenarios:   scenarioNames(AllScenarios),
	},
	{
		Name:        "backend",
		Description: "menu, locations, media and input validation",
		Scenarios: []string{"health", "authentication", "categories", "items", "locations",
			"delivery settings", "media", "validation"},
	},
	{
		Name:        "orders",
		Description: "order lifecycle, filtering and statistics, with the menu they need",
		Scenarios: []string{"health", "authentication", "categories", "items", "orders",
			"order filtering", "validation", "authentication requirements"},
	},
	{
		Name:        "settings",
		Description: "locations with banking, delivery methods and media signing",
		Scenarios: []string{"health", "authentication", "categories", "items", "locations",
			"delivery settings", "media"},
	},
	{
		Name:        "smoke",
		Description: "connectivity and authentication only",
		Scenarios:   []string{"health", "authentication", "authentication requirements"},
	},
}

func scenarioNames(scenarios []Scenario) []string {
	ret := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		ret = append(ret, s.Name)
	}
	return ret
}

// SuiteNamed looks up a suite by name.
func SuiteNamed(name string) (Suite, error) {
	for _, s := range Suites {
		if s.Name == name {
			return s, nil
		}
	}
	var names []string
	for _, s := range Suites {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return Suite{}, fmt.Errorf("unknown suite %q (available: %s)", name, strings.Join(names, ", "))
}

// Select returns the suite's scenarios in run order. An unknown scenario name is an error.
func (s Suite) Select() ([]Scenario, error) {
	wanted := make(map[string]bool, len(s.Scenarios))
	for _, name := range s.Scenarios {
		wanted[name] = true
	}
	var ret []Scenario
	for _, sc := range AllScenarios {
		if wanted[sc.Name] {
			ret = append(ret, sc)
			delete(wanted, sc.Name)
		}
	}
	if len(wanted) > 0 {
		var unknown []string
		for name := range wanted {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("suite %q names unknown scenarios: %s", s.Name, strings.Join(unknown, ", "))
	}
	return ret, nil
}
