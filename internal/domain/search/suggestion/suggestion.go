// Package suggestion defines typed autocomplete candidates.
package suggestion

// Kind is the suggestion source type.
type Kind string

// Suggestion kinds.
const (
	KindTerm   Kind = "term"
	KindFilter Kind = "filter"
	KindValue  Kind = "value"
)

// Suggestion is a ranked autocomplete candidate.
type Suggestion struct {
	kind        Kind
	label       string
	description string
	confidence  float64
	frequency   float64
}

// New creates a suggestion.
func New(kind Kind, label, description string, confidence, frequency float64) Suggestion {
	return Suggestion{
		kind:        kind,
		label:       label,
		description: description,
		confidence:  confidence,
		frequency:   frequency,
	}
}

// Kind returns the suggestion type.
func (s *Suggestion) Kind() Kind { return s.kind }

// Label returns the display label.
func (s *Suggestion) Label() string { return s.label }

// Description returns the optional description.
func (s *Suggestion) Description() string { return s.description }

// Confidence returns the source confidence in [0,1].
func (s *Suggestion) Confidence() float64 { return s.confidence }

// Frequency returns the usage-frequency weight.
func (s *Suggestion) Frequency() float64 { return s.frequency }

// RankWeight is the final ordering key: confidence*100 + frequency.
func (s *Suggestion) RankWeight() float64 {
	return s.confidence*100 + s.frequency
}
