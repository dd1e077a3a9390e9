package graph

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// namespace seeds the name-based UUIDs handed out for nodes and edges so the
// same term maps to the same UID in every session.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://semgraph.dev/term"))

// NormalizeTerm folds case and collapses runs of whitespace. Two terms that
// normalize to the same string are the same node.
func NormalizeTerm(term string) string {
	return cases.Fold().String(strings.Join(strings.Fields(term), " "))
}

// TermUID returns the session-independent identifier for a term.
func TermUID(term string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(NormalizeTerm(term)))
}

// edgeUID derives an edge identifier from its endpoints, label and ordinal
// among parallel edges carrying the same label. Endpoint order is
// canonicalized since edges are undirected.
func edgeUID(from, to uuid.UUID, label string, ordinal int) uuid.UUID {
	a, b := from.String(), to.String()
	if b < a {
		a, b = b, a
	}
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("%s|%s|%s|%d", a, b, label, ordinal)))
}
