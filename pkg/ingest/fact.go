package ingest

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dd0wney/semgraph/pkg/graph"
	"github.com/dd0wney/semgraph/pkg/validation"
)

var (
	// ErrInvalidFact is returned for facts missing a subject or attribute.
	ErrInvalidFact = errors.New("invalid fact")
)

// Fact is one subject–attribute–value record supplied by an extractor.
// Topic, Section and Group are optional structural units; facts sharing a
// Group form a single record for co-occurrence.
type Fact struct {
	Entity    string `json:"entity" yaml:"entity" validate:"required"`
	Attribute string `json:"attribute" yaml:"attribute" validate:"required"`
	Value     string `json:"value" yaml:"value"`
	Category  string `json:"category,omitempty" yaml:"category,omitempty"`
	Topic     string `json:"topic,omitempty" yaml:"topic,omitempty"`
	Section   string `json:"section,omitempty" yaml:"section,omitempty"`
	Group     string `json:"group,omitempty" yaml:"group,omitempty"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Validate checks the fact's required fields.
func (f *Fact) Validate() error {
	if err := validation.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFact, err)
	}
	if graph.NormalizeTerm(f.Entity) == "" {
		return fmt.Errorf("%w: Entity: blank", ErrInvalidFact)
	}
	return nil
}

// entityValue reports whether v names something worth its own node: it has
// at least one letter and no more than maxWords words. Numbers, prices and
// long prose stay attribute data.
func entityValue(v string, maxWords int) bool {
	words := strings.Fields(v)
	if len(words) == 0 || len(words) > maxWords {
		return false
	}
	return strings.IndexFunc(v, unicode.IsLetter) >= 0
}
