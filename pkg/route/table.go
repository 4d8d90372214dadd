// pkg/route/table.go
package route

import (
	"fmt"
	"strconv"
	"strings"
)

// varFeature is the bucket feature used when a path position holds variable
// content. Never derived from request data, so it cannot collide with a
// literal (literals cannot contain "{").
const varFeature = "{}"

// Table indexes compiled patterns for best-match lookup. Populated during
// the single-threaded build phase, then frozen; BestMatch never mutates
// state, so the serve phase needs no locking.
type Table struct {
	buckets  map[string][]*Pattern // exact structure: "<count>|<firstFeature>"
	wild     map[string][]*Pattern // wildcard space: "<firstFeature>"
	fallback *Pattern
	seq      int
	frozen   bool
}

// NewTable returns an empty route table.
func NewTable() *Table {
	return &Table{
		buckets: make(map[string][]*Pattern),
		wild:    make(map[string][]*Pattern),
	}
}

func primaryKey(count int, feature string) string {
	return strconv.Itoa(count) + "|" + feature
}

// Insert registers a pattern, preserving registration order within each
// bucket. At most one fallback pattern may be installed.
func (t *Table) Insert(p *Pattern) error {
	if t.frozen {
		panic("route: Insert after Freeze")
	}
	p.seq = t.seq
	t.seq++

	if p.Fallback {
		if t.fallback != nil {
			return &InvalidRouteError{Path: p.Raw, Reason: fmt.Sprintf("fallback route already registered as %q", t.fallback.Raw)}
		}
		t.fallback = p
		return nil
	}

	key := primaryKey(len(p.segments), p.firstFeature())
	t.buckets[key] = append(t.buckets[key], p)
	if p.wild {
		t.wild[p.firstFeature()] = append(t.wild[p.firstFeature()], p)
	}
	return nil
}

// Freeze marks the table read-only. Inserting afterwards panics.
func (t *Table) Freeze() { t.frozen = true }

// Fallback returns the installed catch-all pattern, if any.
func (t *Table) Fallback() *Pattern { return t.fallback }

// Len reports the number of registered patterns, fallback included.
func (t *Table) Len() int { return t.seq }

// BestMatch resolves the most specific pattern for a verb and path, or nil.
//
// The path is segmented once. Exact-structure buckets are probed first
// (literal feature, then the variable feature); only if no candidate there
// scores positive does the wildcard space get scanned, so any structurally
// exact pattern outranks every catch-all. The fallback pattern, matched
// regardless of verb, is the last resort. Equal scores resolve to the
// earliest registered pattern.
func (t *Table) BestMatch(verb, path string) *Pattern {
	segs := SplitPath(path)

	feature := varFeature
	if len(segs) > 0 {
		feature = strings.ToLower(segs[0])
	}

	best := t.pick(nil, t.buckets[primaryKey(len(segs), feature)], verb, segs)
	if feature != varFeature {
		best = t.pick(best, t.buckets[primaryKey(len(segs), varFeature)], verb, segs)
	}
	if best == nil {
		best = t.pick(nil, t.wild[feature], verb, segs)
		if feature != varFeature {
			best = t.pick(best, t.wild[varFeature], verb, segs)
		}
	}
	if best == nil {
		best = t.fallback
	}
	return best
}

// pick scores candidates against the current best, keeping the highest
// score and breaking ties by insertion sequence.
func (t *Table) pick(best *Pattern, candidates []*Pattern, verb string, segs []string) *Pattern {
	bestScore := 0
	if best != nil {
		bestScore = best.Score(verb, segs)
	}
	for _, p := range candidates {
		s := p.Score(verb, segs)
		if s <= 0 {
			continue
		}
		if best == nil || s > bestScore || (s == bestScore && p.seq < best.seq) {
			best, bestScore = p, s
		}
	}
	return best
}
