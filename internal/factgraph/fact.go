package factgraph

import "maps"

// Predicate labels a directed edge in the fact graph.
type Predicate string

const (
	HasResponsibilityIn     Predicate = "hasResponsibilityIn"
	Triggers                Predicate = "triggers"
	Suggests                Predicate = "suggests"
	RequiresUnderstandingOf Predicate = "requiresUnderstandingOf"
	IsNotRecommended        Predicate = "isNotRecommended"
	Covers                  Predicate = "covers"
	Requires                Predicate = "requires"
	LeadsTo                 Predicate = "leadsTo"
	FailsToResultIn         Predicate = "failsToResultIn"
	IsPartOf                Predicate = "isPartOf"
)

// AllPredicates returns every known predicate in declaration order.
func AllPredicates() []Predicate {
	return []Predicate{
		HasResponsibilityIn, Triggers, Suggests, RequiresUnderstandingOf,
		IsNotRecommended, Covers, Requires, LeadsTo, FailsToResultIn, IsPartOf,
	}
}

// Valid reports whether p is one of the known predicates.
func (p Predicate) Valid() bool {
	for _, known := range AllPredicates() {
		if p == known {
			return true
		}
	}
	return false
}

// Well-known attribute keys.
const (
	AttrOrder       = "order"
	AttrSource      = "source"
	AttrExplanation = "explanation"
)

// Attrs holds edge or node attributes.
type Attrs map[string]any

// Int returns the attribute as an int. YAML and JSON decoders hand back
// different numeric types, so all of them are accepted.
func (a Attrs) Int(key string) (int, bool) {
	switch v := a[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// String returns the attribute as a string.
func (a Attrs) String(key string) (string, bool) {
	v, ok := a[key].(string)
	return v, ok
}

func (a Attrs) clone() Attrs {
	if a == nil {
		return Attrs{}
	}
	return maps.Clone(a)
}

// Fact is a (subject, predicate, object) triple with attributes.
type Fact struct {
	Subject   string
	Predicate Predicate
	Object    string
	Attrs     Attrs
}

// Edge is one side of a fact as seen from a node: Node is the object for
// outgoing edges and the subject for incoming ones.
type Edge struct {
	Node      string
	Predicate Predicate
	Attrs     Attrs
}

// Scenario is a (role, game state) pair linked by a hasResponsibilityIn fact.
type Scenario struct {
	Role      string `json:"position"`
	GameState string `json:"game_state"`
}
