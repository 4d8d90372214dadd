// pkg/dispatch/message.go
package dispatch

// Message is a pre-addressed envelope from a queueing transport. The
// controller only unwraps the body; framing, acking, and redelivery belong
// to the transport.
type Message interface {
	Body() any
}

// BasicMessage is the plain envelope used when the transport has nothing
// more to say than the payload itself.
type BasicMessage struct {
	Payload any
	ReplyTo string
}

func (m *BasicMessage) Body() any { return m.Payload }
