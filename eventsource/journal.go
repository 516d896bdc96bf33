package eventsource

import (
	"context"
	"fmt"

	"github.com/pflow-xyz/go-ledger/token"
)

// Operation event types recorded by the Journal. The journal records
// accepted operations (commands), not the engine's domain events:
// replaying the operations through a fresh engine reproduces both the
// ledger state and the exact domain event stream, which a raw Approval
// record could not (the engine reuses the Approval event for both
// grants and consumption).
const (
	OpIssue        = "Issue"
	OpTransfer     = "Transfer"
	OpApprove      = "Approve"
	OpTransferFrom = "TransferFrom"
)

// IssueOp is the payload of an OpIssue event. Amounts travel as
// decimal strings so 256-bit values survive JSON intact.
type IssueOp struct {
	Caller      string `json:"caller"`
	Name        string `json:"name"`
	Ticker      string `json:"ticker"`
	TotalSupply string `json:"total_supply"`
}

// TransferOp is the payload of an OpTransfer event.
type TransferOp struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	Value  string `json:"value"`
}

// ApproveOp is the payload of an OpApprove event.
type ApproveOp struct {
	Caller  string `json:"caller"`
	Spender string `json:"spender"`
	Value   string `json:"value"`
}

// TransferFromOp is the payload of an OpTransferFrom event.
type TransferFromOp struct {
	Spender string `json:"spender"`
	From    string `json:"from"`
	To      string `json:"to"`
	Value   string `json:"value"`
}

// Journal binds a token engine to an event stream: every accepted
// operation is appended to the stream, rejected operations leave the
// stream untouched. Opening a journal on an existing stream replays it
// first, so the ledger resumes exactly where the stream left off.
//
// The journal inherits the engine's concurrency contract: one
// operation at a time, serialized by the host.
type Journal struct {
	store    Store
	streamID string
	version  int
	ledger   *token.Ledger
	engine   *token.Engine
}

// OpenJournal replays the stream into a fresh ledger and returns a
// journal positioned at its tail. Replay does not emit: emitter only
// sees events for operations applied through this journal afterwards.
func OpenJournal(ctx context.Context, store Store, streamID string, emitter token.Emitter) (*Journal, error) {
	events, err := store.Read(ctx, streamID, 0)
	if err != nil {
		return nil, err
	}

	ledger := token.NewLedger()
	replay := token.NewEngine(ledger, nil)
	version := -1
	for _, ev := range events {
		if err := applyOp(replay, ev); err != nil {
			return nil, fmt.Errorf("eventsource: replay %s at version %d: %w", ev.Type, ev.Version, err)
		}
		version = ev.Version
	}

	return &Journal{
		store:    store,
		streamID: streamID,
		version:  version,
		ledger:   ledger,
		engine:   token.NewEngine(ledger, emitter),
	}, nil
}

// Ledger returns the journal's live ledger.
func (j *Journal) Ledger() *token.Ledger {
	return j.ledger
}

// Version returns the stream version of the last recorded operation,
// -1 for an empty stream.
func (j *Journal) Version() int {
	return j.version
}

// Issue applies and records an issuance.
func (j *Journal) Issue(ctx context.Context, caller token.Address, name, ticker []byte, totalSupply token.Amount) error {
	if err := j.engine.Issue(caller, name, ticker, totalSupply); err != nil {
		return err
	}
	return j.record(ctx, OpIssue, IssueOp{
		Caller:      string(caller),
		Name:        string(name),
		Ticker:      string(ticker),
		TotalSupply: totalSupply.Dec(),
	})
}

// Transfer applies and records a transfer.
func (j *Journal) Transfer(ctx context.Context, caller, to token.Address, value token.Amount) error {
	if err := j.engine.Transfer(caller, to, value); err != nil {
		return err
	}
	return j.record(ctx, OpTransfer, TransferOp{
		Caller: string(caller),
		To:     string(to),
		Value:  value.Dec(),
	})
}

// Approve applies and records an allowance increase.
func (j *Journal) Approve(ctx context.Context, caller, spender token.Address, value token.Amount) error {
	if err := j.engine.Approve(caller, spender, value); err != nil {
		return err
	}
	return j.record(ctx, OpApprove, ApproveOp{
		Caller:  string(caller),
		Spender: string(spender),
		Value:   value.Dec(),
	})
}

// TransferFrom applies and records a delegated transfer.
func (j *Journal) TransferFrom(ctx context.Context, spender, from, to token.Address, value token.Amount) error {
	if err := j.engine.TransferFrom(spender, from, to, value); err != nil {
		return err
	}
	return j.record(ctx, OpTransferFrom, TransferFromOp{
		Spender: string(spender),
		From:    string(from),
		To:      string(to),
		Value:   value.Dec(),
	})
}

func (j *Journal) record(ctx context.Context, opType string, payload any) error {
	ev, err := NewEvent(j.streamID, opType, payload)
	if err != nil {
		return err
	}
	version, err := j.store.Append(ctx, j.streamID, j.version, []*Event{ev})
	if err != nil {
		// The ledger already applied the operation; a failed append
		// means store and ledger have diverged and the journal must be
		// reopened before further use.
		return fmt.Errorf("eventsource: record %s: %w", opType, err)
	}
	j.version = version
	return nil
}

// Replay rebuilds a ledger from a stream without opening a journal.
func Replay(ctx context.Context, store Store, streamID string) (*token.Ledger, error) {
	j, err := OpenJournal(ctx, store, streamID, nil)
	if err != nil {
		return nil, err
	}
	return j.Ledger(), nil
}

// applyOp feeds a recorded operation back through an engine.
func applyOp(engine *token.Engine, ev *Event) error {
	switch ev.Type {
	case OpIssue:
		var op IssueOp
		if err := ev.Unmarshal(&op); err != nil {
			return err
		}
		supply, err := token.ParseAmount(op.TotalSupply)
		if err != nil {
			return err
		}
		return engine.Issue(token.Address(op.Caller), []byte(op.Name), []byte(op.Ticker), supply)

	case OpTransfer:
		var op TransferOp
		if err := ev.Unmarshal(&op); err != nil {
			return err
		}
		value, err := token.ParseAmount(op.Value)
		if err != nil {
			return err
		}
		return engine.Transfer(token.Address(op.Caller), token.Address(op.To), value)

	case OpApprove:
		var op ApproveOp
		if err := ev.Unmarshal(&op); err != nil {
			return err
		}
		value, err := token.ParseAmount(op.Value)
		if err != nil {
			return err
		}
		return engine.Approve(token.Address(op.Caller), token.Address(op.Spender), value)

	case OpTransferFrom:
		var op TransferFromOp
		if err := ev.Unmarshal(&op); err != nil {
			return err
		}
		value, err := token.ParseAmount(op.Value)
		if err != nil {
			return err
		}
		return engine.TransferFrom(token.Address(op.Spender), token.Address(op.From), token.Address(op.To), value)

	default:
		return fmt.Errorf("eventsource: unknown operation type %q", ev.Type)
	}
}
