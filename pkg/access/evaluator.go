// pkg/access/evaluator.go
package access

import (
	"fmt"
	"reflect"
	"strings"
)

// Decision is the outcome of one policy check. When denied, Failed holds,
// per declared scenario, the attribute bits the request was missing.
type Decision struct {
	Allowed bool
	Failed  []Attributes
	Hint    string
}

// AuthorizationError is returned when a policy denies a request. Execution
// never begins for a denied request.
type AuthorizationError struct {
	Identity reflect.Type
	Failed   []Attributes
	Hint     string
}

func (e *AuthorizationError) Error() string {
	parts := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		parts[i] = f.String()
	}
	msg := fmt.Sprintf("access denied for %s: missing %s", typeName(e.Identity), strings.Join(parts, ", "))
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Evaluator holds the restriction scenarios declared per request identity.
// Declared during the build phase, frozen alongside the registry; Check is
// read-only and safe for concurrent use after Freeze.
type Evaluator struct {
	enabled  bool
	policies map[reflect.Type][]Attributes
	frozen   bool
}

// NewEvaluator returns an evaluator. When enabled is false every check
// passes, matching hosts that turn restriction enforcement off wholesale.
func NewEvaluator(enabled bool) *Evaluator {
	return &Evaluator{
		enabled:  enabled,
		policies: make(map[reflect.Type][]Attributes),
	}
}

// Enabled reports whether restriction enforcement is on.
func (e *Evaluator) Enabled() bool { return e.enabled }

// Declare appends restriction scenarios for an identity. Build phase only.
func (e *Evaluator) Declare(identity reflect.Type, scenarios ...Attributes) {
	if e.frozen {
		panic("access: Declare after Freeze")
	}
	if len(scenarios) == 0 {
		return
	}
	e.policies[identity] = append(e.policies[identity], scenarios...)
}

// Freeze marks the evaluator read-only. Declaring afterwards panics.
func (e *Evaluator) Freeze() { e.frozen = true }

// Check evaluates the declared scenarios against the actual attributes of a
// request. The request passes when enforcement is disabled, when the
// identity declares no scenarios, or when the actual attributes are a
// superset of at least one scenario. A denied decision reports the missing
// bits of every scenario, plus a hint when the call plainly originated
// inside the network yet still failed.
func (e *Evaluator) Check(identity reflect.Type, actual Attributes) Decision {
	if !e.enabled {
		return Decision{Allowed: true}
	}
	scenarios := e.policies[identity]
	if len(scenarios) == 0 {
		return Decision{Allowed: true}
	}

	failed := make([]Attributes, 0, len(scenarios))
	for _, s := range scenarios {
		if actual.Has(s) {
			return Decision{Allowed: true}
		}
		failed = append(failed, s&^actual)
	}

	d := Decision{Failed: failed}
	if actual&(Localhost|InternalNetwork) != 0 {
		d.Hint = "call originated from a privileged network but no scenario was satisfied"
	}
	return d
}

// Err converts a denied decision into an AuthorizationError.
func (d Decision) Err(identity reflect.Type) error {
	if d.Allowed {
		return nil
	}
	return &AuthorizationError{Identity: identity, Failed: d.Failed, Hint: d.Hint}
}
