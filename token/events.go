package token

// EventKind discriminates the domain events the engine emits.
type EventKind int

const (
	// EventTransfer is emitted when tokens move between accounts.
	EventTransfer EventKind = iota
	// EventApproval is emitted when an allowance is granted, carrying
	// the delta, and again by TransferFrom carrying the amount
	// consumed. The same event kind deliberately serves both meanings;
	// consumers must interpret it by context.
	EventApproval
)

func (k EventKind) String() string {
	switch k {
	case EventTransfer:
		return "Transfer"
	case EventApproval:
		return "Approval"
	default:
		return "Unknown"
	}
}

// Event is a tagged union over the engine's domain events. For
// EventTransfer, From and To are the sender and recipient. For
// EventApproval, From is the owner and To the spender.
type Event struct {
	Kind  EventKind
	From  Address
	To    Address
	Value Amount
}

// Emitter receives domain events for the host to record. The engine
// emits only once every precondition has passed, so an emitted event
// always describes a mutation that took effect.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a plain function to the Emitter interface.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(ev Event) { f(ev) }
