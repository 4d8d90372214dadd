// pkg/route/pattern.go
package route

import (
	"fmt"
	"reflect"
	"strings"
)

// Score weights. Literal matches outrank variable bindings, which outrank
// wildcard absorption; the base keeps a structurally compatible zero-segment
// pattern ("/") positive.
const (
	scoreBase     = 1
	scoreLiteral  = 10
	scoreVariable = 3
	scoreWildcard = 1
)

// SegmentKind classifies one compiled path segment.
type SegmentKind int

const (
	SegLiteral SegmentKind = iota
	SegVariable
	SegWildcard
)

// Segment is one compiled piece of a route path. Literal text is stored
// lowercased; matching is case-insensitive per HTTP path convention.
type Segment struct {
	Kind    SegmentKind
	Literal string
	Name    string
}

// Spec is the declared form of a route, before compilation.
type Spec struct {
	Path     string
	Verbs    []string
	Summary  string
	Notes    string
	Fallback bool
}

// Pattern is a compiled route. Immutable after Compile; the insertion
// sequence is assigned by the Table and used as the tie-break when two
// patterns score equally.
type Pattern struct {
	Identity reflect.Type
	Raw      string
	Summary  string
	Notes    string
	Fallback bool

	verbs    map[string]struct{} // empty means all verbs
	segments []Segment
	wild     bool // trailing wildcard present
	seq      int
}

// InvalidRouteError reports a route declaration rejected at build time.
type InvalidRouteError struct {
	Path   string
	Reason string
}

func (e *InvalidRouteError) Error() string {
	return fmt.Sprintf("invalid route %q: %s", e.Path, e.Reason)
}

// Compile turns a declared path into a Pattern. The path must start with "/"
// and may not contain query syntax. "{name}" segments bind variables; a
// trailing "*" absorbs any remaining path segments.
func Compile(identity reflect.Type, s Spec) (*Pattern, error) {
	if !strings.HasPrefix(s.Path, "/") {
		return nil, &InvalidRouteError{Path: s.Path, Reason: "path must start with /"}
	}
	if i := strings.IndexAny(s.Path, "?#"); i >= 0 {
		return nil, &InvalidRouteError{Path: s.Path, Reason: "path must not contain query syntax"}
	}

	raw := SplitPath(s.Path)
	segments := make([]Segment, 0, len(raw))
	wild := false
	for i, part := range raw {
		switch {
		case part == "*":
			if i != len(raw)-1 {
				return nil, &InvalidRouteError{Path: s.Path, Reason: "wildcard must be the final segment"}
			}
			segments = append(segments, Segment{Kind: SegWildcard})
			wild = true
		case strings.HasPrefix(part, "{"):
			if !strings.HasSuffix(part, "}") || len(part) < 3 {
				return nil, &InvalidRouteError{Path: s.Path, Reason: fmt.Sprintf("malformed variable segment %q", part)}
			}
			segments = append(segments, Segment{Kind: SegVariable, Name: part[1 : len(part)-1]})
		default:
			segments = append(segments, Segment{Kind: SegLiteral, Literal: strings.ToLower(part)})
		}
	}

	verbs := make(map[string]struct{}, len(s.Verbs))
	for _, v := range s.Verbs {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" {
			verbs[v] = struct{}{}
		}
	}

	return &Pattern{
		Identity: identity,
		Raw:      s.Path,
		Summary:  s.Summary,
		Notes:    s.Notes,
		Fallback: s.Fallback,
		verbs:    verbs,
		segments: segments,
		wild:     wild,
	}, nil
}

// SplitPath normalizes a request path into its segments. "/" yields none.
func SplitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Segments exposes a copy of the compiled segments.
func (p *Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// AllowsVerb reports whether the pattern accepts the verb. A fallback
// pattern and a pattern with no declared verbs accept everything.
func (p *Pattern) AllowsVerb(verb string) bool {
	if p.Fallback || len(p.verbs) == 0 {
		return true
	}
	_, ok := p.verbs[strings.ToUpper(verb)]
	return ok
}

// fixedCount is the number of segments ahead of a trailing wildcard.
func (p *Pattern) fixedCount() int {
	if p.wild {
		return len(p.segments) - 1
	}
	return len(p.segments)
}

// Score rates how well the pattern matches the verb and path segments.
// Non-positive means no match. Higher is more specific: every exactly
// matched literal outranks any number of variable bindings, which in turn
// outrank wildcard absorption.
func (p *Pattern) Score(verb string, segs []string) int {
	if !p.AllowsVerb(verb) {
		return 0
	}
	fixed := p.fixedCount()
	if p.wild {
		if len(segs) < fixed {
			return 0
		}
	} else if len(segs) != fixed {
		return 0
	}

	score := scoreBase
	for i := 0; i < fixed; i++ {
		switch p.segments[i].Kind {
		case SegLiteral:
			if !strings.EqualFold(p.segments[i].Literal, segs[i]) {
				return 0
			}
			score += scoreLiteral
		case SegVariable:
			score += scoreVariable
		}
	}
	if p.wild {
		score += scoreWildcard
	}
	return score
}

// Variables binds the pattern's variable segments against a matched path.
// The caller must have verified the match via Score.
func (p *Pattern) Variables(segs []string) map[string]string {
	var vars map[string]string
	for i := 0; i < p.fixedCount() && i < len(segs); i++ {
		if p.segments[i].Kind == SegVariable {
			if vars == nil {
				vars = make(map[string]string)
			}
			vars[p.segments[i].Name] = segs[i]
		}
	}
	return vars
}

// firstFeature is the structural bucket feature of the pattern: the first
// literal segment lowercased, or varFeature when the first segment carries
// variable content.
func (p *Pattern) firstFeature() string {
	if len(p.segments) == 0 || p.segments[0].Kind != SegLiteral {
		return varFeature
	}
	return p.segments[0].Literal
}
