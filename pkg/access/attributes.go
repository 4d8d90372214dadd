// pkg/access/attributes.go
package access

import "strings"

// Attributes is a bitmask describing the ambient facts of one inbound
// request: where it came from, how it travelled, and whether the caller is
// authenticated. A restriction scenario is expressed in the same mask space.
type Attributes uint64

const (
	Localhost Attributes = 1 << iota
	InternalNetwork
	External
	Secure
	Insecure
	Authenticated
	Anonymous
	HTTP
	MessageQueue
)

// AnyNetwork spans every locality bit, useful when a scenario only cares
// about transport or authentication facts.
const AnyNetwork = Localhost | InternalNetwork | External

var attrNames = []struct {
	bit  Attributes
	name string
}{
	{Localhost, "Localhost"},
	{InternalNetwork, "InternalNetwork"},
	{External, "External"},
	{Secure, "Secure"},
	{Insecure, "Insecure"},
	{Authenticated, "Authenticated"},
	{Anonymous, "Anonymous"},
	{HTTP, "HTTP"},
	{MessageQueue, "MessageQueue"},
}

// Has reports whether every bit of b is present.
func (a Attributes) Has(b Attributes) bool { return a&b == b }

func (a Attributes) String() string {
	if a == 0 {
		return "None"
	}
	var parts []string
	for _, n := range attrNames {
		if a&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "|")
}
