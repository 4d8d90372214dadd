package access

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type secureOnly struct{}

func secureIdent() reflect.Type { return reflect.TypeOf(secureOnly{}) }

func TestEvaluator_OrOfAnds(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(true)
	ev.Declare(secureIdent(), Authenticated, InternalNetwork)
	ev.Freeze()

	// Any satisfied scenario allows.
	assert.True(t, ev.Check(secureIdent(), Authenticated|External).Allowed)
	assert.True(t, ev.Check(secureIdent(), InternalNetwork).Allowed)

	// Nothing satisfied: denied, both scenarios reported.
	d := ev.Check(secureIdent(), 0)
	require.False(t, d.Allowed)
	assert.Equal(t, []Attributes{Authenticated, InternalNetwork}, d.Failed)
}

func TestEvaluator_ScenarioRequiresAllBits(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(true)
	ev.Declare(secureIdent(), Secure|Authenticated)
	ev.Freeze()

	assert.True(t, ev.Check(secureIdent(), Secure|Authenticated|External).Allowed)

	d := ev.Check(secureIdent(), Secure)
	require.False(t, d.Allowed)
	require.Len(t, d.Failed, 1)
	assert.Equal(t, Authenticated, d.Failed[0])
}

func TestEvaluator_UnrestrictedIdentity(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(true)
	ev.Freeze()
	assert.True(t, ev.Check(secureIdent(), 0).Allowed)
}

func TestEvaluator_Disabled(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(false)
	ev.Declare(secureIdent(), Authenticated)
	ev.Freeze()
	assert.True(t, ev.Check(secureIdent(), 0).Allowed)
}

func TestEvaluator_PrivilegedNetworkHint(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(true)
	ev.Declare(secureIdent(), Authenticated)
	ev.Freeze()

	denied := ev.Check(secureIdent(), Localhost|Insecure)
	require.False(t, denied.Allowed)
	assert.NotEmpty(t, denied.Hint)

	external := ev.Check(secureIdent(), External|Insecure)
	require.False(t, external.Allowed)
	assert.Empty(t, external.Hint)
}

func TestEvaluator_DeclareAfterFreezePanics(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(true)
	ev.Freeze()
	assert.Panics(t, func() { ev.Declare(secureIdent(), Authenticated) })
}

func TestDecision_Err(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(true)
	ev.Declare(secureIdent(), Secure|Authenticated)
	ev.Freeze()

	d := ev.Check(secureIdent(), Localhost)
	err := d.Err(secureIdent())
	require.Error(t, err)

	var ae *AuthorizationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, secureIdent(), ae.Identity)
	assert.Contains(t, err.Error(), "Secure|Authenticated")

	assert.NoError(t, Decision{Allowed: true}.Err(secureIdent()))
}

func TestAttributes_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "None", Attributes(0).String())
	assert.Equal(t, "Localhost|Secure", (Localhost | Secure).String())
}
