package factgraph

import (
	"errors"
	"math/rand/v2"
	"slices"
)

// ErrEmptyStore is returned when a random scenario is requested from a
// store that holds no hasResponsibilityIn facts.
var ErrEmptyStore = errors.New("fact store has no responsibility facts")

// Store is an immutable directed labeled graph. It is safe for concurrent
// use because nothing mutates it after Build.
type Store struct {
	facts     []Fact
	order     []int // fact indices in iteration order
	nodes     []string
	out       map[string][]int
	in        map[string][]int
	nodeAttrs map[string]Attrs
	resp      []int
}

type factKey struct {
	subject   string
	predicate Predicate
	object    string
}

// Builder accumulates facts. It is the only writer of a Store.
type Builder struct {
	facts     []Fact
	nodes     []string
	seen      map[string]bool
	index     map[factKey]int
	nodeAttrs map[string]Attrs
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		seen:      make(map[string]bool),
		index:     make(map[factKey]int),
		nodeAttrs: make(map[string]Attrs),
	}
}

func (b *Builder) addNode(n string) {
	if !b.seen[n] {
		b.seen[n] = true
		b.nodes = append(b.nodes, n)
	}
}

// AddFact records a triple. Adding a triple that already exists merges
// attrs into the existing edge instead of creating a second one.
func (b *Builder) AddFact(subject string, p Predicate, object string, attrs Attrs) {
	b.addNode(subject)
	b.addNode(object)

	key := factKey{subject, p, object}
	if i, ok := b.index[key]; ok {
		for k, v := range attrs {
			b.facts[i].Attrs[k] = v
		}
		return
	}
	b.index[key] = len(b.facts)
	b.facts = append(b.facts, Fact{
		Subject:   subject,
		Predicate: p,
		Object:    object,
		Attrs:     attrs.clone(),
	})
}

// SetNodeAttr sets a single attribute on a node, creating the node if needed.
func (b *Builder) SetNodeAttr(node, key string, value any) {
	b.addNode(node)
	a, ok := b.nodeAttrs[node]
	if !ok {
		a = Attrs{}
		b.nodeAttrs[node] = a
	}
	a[key] = value
}

// Build freezes a snapshot of the accumulated facts into a Store. The
// builder stays usable; later writes never reach stores built earlier.
func (b *Builder) Build() *Store {
	s := &Store{
		facts:     make([]Fact, len(b.facts)),
		nodes:     slices.Clone(b.nodes),
		out:       make(map[string][]int),
		in:        make(map[string][]int),
		nodeAttrs: make(map[string]Attrs, len(b.nodeAttrs)),
	}
	for i, f := range b.facts {
		f.Attrs = f.Attrs.clone()
		s.facts[i] = f
	}
	for n, a := range b.nodeAttrs {
		s.nodeAttrs[n] = a.clone()
	}
	for i, f := range s.facts {
		s.out[f.Subject] = append(s.out[f.Subject], i)
		s.in[f.Object] = append(s.in[f.Object], i)
	}

	// Iteration order walks nodes in first-seen order and each node's
	// outgoing facts in insertion order.
	s.order = make([]int, 0, len(s.facts))
	for _, n := range s.nodes {
		s.order = append(s.order, s.out[n]...)
	}
	for _, i := range s.order {
		if s.facts[i].Predicate == HasResponsibilityIn {
			s.resp = append(s.resp, i)
		}
	}

	return s
}

// Len returns the number of facts.
func (s *Store) Len() int { return len(s.facts) }

// Nodes returns all nodes in first-seen order.
func (s *Store) Nodes() []string {
	out := make([]string, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Facts returns every fact in store iteration order.
func (s *Store) Facts() []Fact {
	out := make([]Fact, len(s.order))
	for i, idx := range s.order {
		f := s.facts[idx]
		f.Attrs = f.Attrs.clone()
		out[i] = f
	}
	return out
}

// EdgesFrom returns the outgoing edges of node in insertion order.
func (s *Store) EdgesFrom(node string) []Edge {
	idxs := s.out[node]
	out := make([]Edge, len(idxs))
	for i, idx := range idxs {
		f := s.facts[idx]
		out[i] = Edge{Node: f.Object, Predicate: f.Predicate, Attrs: f.Attrs.clone()}
	}
	return out
}

// EdgesTo returns the incoming edges of node in insertion order.
func (s *Store) EdgesTo(node string) []Edge {
	idxs := s.in[node]
	out := make([]Edge, len(idxs))
	for i, idx := range idxs {
		f := s.facts[idx]
		out[i] = Edge{Node: f.Subject, Predicate: f.Predicate, Attrs: f.Attrs.clone()}
	}
	return out
}

// NodeAttrs returns a copy of the node's attributes. Unknown nodes yield
// an empty map.
func (s *Store) NodeAttrs(node string) Attrs {
	return s.nodeAttrs[node].clone()
}

// Scenarios returns the distinct responsibility pairs in iteration order.
func (s *Store) Scenarios() []Scenario {
	seen := make(map[Scenario]bool, len(s.resp))
	var out []Scenario
	for _, idx := range s.resp {
		sc := Scenario{Role: s.facts[idx].Subject, GameState: s.facts[idx].Object}
		if !seen[sc] {
			seen[sc] = true
			out = append(out, sc)
		}
	}
	return out
}

// Roles returns the distinct subjects of responsibility facts.
func (s *Store) Roles() []string {
	return s.distinctResp(func(f Fact) string { return f.Subject })
}

// GameStates returns the distinct objects of responsibility facts.
func (s *Store) GameStates() []string {
	return s.distinctResp(func(f Fact) string { return f.Object })
}

func (s *Store) distinctResp(pick func(Fact) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, idx := range s.resp {
		v := pick(s.facts[idx])
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// RandomResponsibilityPair samples uniformly over all hasResponsibilityIn
// facts. A nil rng uses the package-level source.
func (s *Store) RandomResponsibilityPair(rng *rand.Rand) (Scenario, error) {
	if len(s.resp) == 0 {
		return Scenario{}, ErrEmptyStore
	}
	var n int
	if rng == nil {
		n = rand.IntN(len(s.resp))
	} else {
		n = rng.IntN(len(s.resp))
	}
	f := s.facts[s.resp[n]]
	return Scenario{Role: f.Subject, GameState: f.Object}, nil
}
