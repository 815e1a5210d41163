package factgraph

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSource tags scenarios whose record does not name a source.
const DefaultSource = "llm"

// ScenarioRecord is one entry of a declarative scenario file.
type ScenarioRecord struct {
	SituationID        string   `yaml:"situation_id" json:"situation_id"`
	Position           string   `yaml:"position" json:"position"`
	GameState          string   `yaml:"game_state" json:"game_state"`
	Play               string   `yaml:"play" json:"play"`
	RecommendedActions []string `yaml:"recommended_actions" json:"recommended_actions"`
	KeyConcepts        []string `yaml:"key_concepts" json:"key_concepts"`
	Explanation        *string  `yaml:"explanation" json:"explanation,omitempty"`
	Source             string   `yaml:"source" json:"source"`
}

// RecordError describes everything wrong with one scenario record.
type RecordError struct {
	Index       int
	SituationID string
	Problems    []string
}

func (r RecordError) String() string {
	id := r.SituationID
	if id == "" {
		id = "unknown_id"
	}
	return fmt.Sprintf("record %d (%s): %s", r.Index, id, strings.Join(r.Problems, "; "))
}

// ValidationError aggregates every invalid record of a scenario file.
// A load that produces one builds no store at all.
type ValidationError struct {
	Records []RecordError
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Records))
	for i, r := range e.Records {
		lines[i] = r.String()
	}
	return fmt.Sprintf("scenario validation failed:\n  %s", strings.Join(lines, "\n  "))
}

// LoadFile reads a YAML (or JSON) scenario file into a Store.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenarios: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Load decodes scenario records from r, validates all of them and expands
// them into a Store.
func Load(r io.Reader) (*Store, error) {
	var records []ScenarioRecord
	if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scenarios: %w", err)
	}
	return FromRecords(records)
}

// FromRecords validates records and expands them into a Store.
func FromRecords(records []ScenarioRecord) (*Store, error) {
	if err := ValidateRecords(records); err != nil {
		return nil, err
	}

	b := NewBuilder()
	for _, rec := range records {
		source := rec.Source
		if source == "" {
			source = DefaultSource
		}

		b.AddFact(rec.Position, HasResponsibilityIn, rec.GameState, Attrs{AttrSource: source})
		b.AddFact(rec.GameState, Triggers, rec.Play, Attrs{AttrSource: source})
		for i, a := range rec.RecommendedActions {
			b.AddFact(rec.Play, Suggests, a, Attrs{AttrSource: source, AttrOrder: i})
		}
		for _, c := range rec.KeyConcepts {
			b.AddFact(rec.Play, RequiresUnderstandingOf, c, Attrs{AttrSource: source})
		}

		if rec.Explanation != nil {
			b.SetNodeAttr(rec.Play, AttrExplanation, *rec.Explanation)
		}
		b.SetNodeAttr(rec.Play, AttrSource, source)
	}
	return b.Build(), nil
}

// ValidateRecords checks required fields and that no game state would
// trigger two different plays. It returns a *ValidationError listing every
// offending record, or nil.
func ValidateRecords(records []ScenarioRecord) error {
	var bad []RecordError
	triggered := make(map[string]string)

	for i, rec := range records {
		var problems []string
		var missing []string
		if strings.TrimSpace(rec.Position) == "" {
			missing = append(missing, "position")
		}
		if strings.TrimSpace(rec.GameState) == "" {
			missing = append(missing, "game_state")
		}
		if strings.TrimSpace(rec.Play) == "" {
			missing = append(missing, "play")
		}
		if len(missing) > 0 {
			problems = append(problems, "missing "+strings.Join(missing, ", "))
		}

		if rec.GameState != "" && rec.Play != "" {
			if prev, ok := triggered[rec.GameState]; ok && prev != rec.Play {
				problems = append(problems, fmt.Sprintf("game_state %q already triggers %q, cannot also trigger %q", rec.GameState, prev, rec.Play))
			} else if !ok {
				triggered[rec.GameState] = rec.Play
			}
		}

		if len(problems) > 0 {
			bad = append(bad, RecordError{Index: i, SituationID: rec.SituationID, Problems: problems})
		}
	}

	if len(bad) > 0 {
		return &ValidationError{Records: bad}
	}
	return nil
}

// CheckTriggers reports game states that trigger more than one play.
// Stores built by FromRecords always pass.
func CheckTriggers(s *Store) error {
	var errs []string
	for _, n := range s.Nodes() {
		var plays []string
		for _, e := range s.EdgesFrom(n) {
			if e.Predicate == Triggers {
				plays = append(plays, e.Node)
			}
		}
		if len(plays) > 1 {
			errs = append(errs, fmt.Sprintf("%q triggers %d plays: %s", n, len(plays), strings.Join(plays, ", ")))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("trigger check failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
