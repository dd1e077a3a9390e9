package ingest

import (
	"github.com/dd0wney/semgraph/pkg/distance"
)

// DefaultMaxValueWords bounds how long a value may be and still become a node.
const DefaultMaxValueWords = 4

// CooccursLabel labels edges between entities that merely share a record.
const CooccursLabel = "co-occurs"

// Options controls how facts become a graph.
type Options struct {
	// MaxValueWords is the longest value, in words, that becomes a node.
	MaxValueWords int
	// CentralEntity is the term of the dataset's central entity, if any.
	CentralEntity string
	// PrimarySection names the primary (monetization) section.
	PrimarySection string
	// Distance tunes the calculator used to weigh edges.
	Distance distance.Options
}

// DefaultOptions returns the standard ingestion options.
func DefaultOptions() Options {
	return Options{
		MaxValueWords: DefaultMaxValueWords,
		Distance:      distance.DefaultOptions(),
	}
}
