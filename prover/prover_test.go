package prover

import (
	"errors"
	"math/big"
	"testing"

	"github.com/pflow-xyz/go-ledger/token"
)

func amt(v uint64) token.Amount {
	return token.NewAmount(v)
}

func newTransferProver(t *testing.T) *Prover {
	t.Helper()
	p := NewProver()
	if err := p.RegisterCircuit("transfer", &TransferCircuit{}); err != nil {
		t.Fatalf("register circuit: %v", err)
	}
	return p
}

func TestProveValidTransfer(t *testing.T) {
	p := newTransferProver(t)

	assignment, err := NewTransferAssignment(amt(1000), amt(300), amt(150))
	if err != nil {
		t.Fatalf("assignment: %v", err)
	}

	result, err := p.Prove("transfer", assignment)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if len(result.Proof) == 0 {
		t.Error("empty proof")
	}
	if len(result.PublicInputs) != 5 {
		t.Errorf("got %d public inputs, want 5", len(result.PublicInputs))
	}
	if result.CircuitName != "transfer" || result.Constraints == 0 {
		t.Errorf("unexpected metadata: %+v", result)
	}

	if err := p.Verify("transfer", assignment); err != nil {
		t.Errorf("verify: %v", err)
	}
}

func TestProveRejectsGuardViolation(t *testing.T) {
	p := newTransferProver(t)

	// Bypass NewTransferAssignment to feed the circuit a move the
	// engine would refuse: amount exceeds the sender balance, with the
	// post balances wrapped in the field.
	pre := big.NewInt(5)
	amount := big.NewInt(10)
	assignment := &TransferCircuit{
		PreFrom:  pre,
		PreTo:    big.NewInt(0),
		PostFrom: new(big.Int).Sub(pre, amount),
		PostTo:   amount,
		Amount:   amount,
	}

	if _, err := p.Prove("transfer", assignment); err == nil {
		t.Error("proved a transfer with insufficient balance")
	}
}

func TestProveRejectsNonConservingMove(t *testing.T) {
	p := newTransferProver(t)

	// Receiver credited with more than the sender gave up.
	assignment := &TransferCircuit{
		PreFrom:  big.NewInt(1000),
		PreTo:    big.NewInt(0),
		PostFrom: big.NewInt(900),
		PostTo:   big.NewInt(200),
		Amount:   big.NewInt(100),
	}

	if _, err := p.Prove("transfer", assignment); err == nil {
		t.Error("proved a non-conserving move")
	}
}

func TestNewTransferAssignment(t *testing.T) {
	t.Run("InsufficientBalance", func(t *testing.T) {
		_, err := NewTransferAssignment(amt(5), amt(0), amt(10))
		if !errors.Is(err, token.ErrInsufficientBalance) {
			t.Errorf("err = %v, want ErrInsufficientBalance", err)
		}
	})

	t.Run("AmountTooWide", func(t *testing.T) {
		wide := token.MaxAmount()
		_, err := NewTransferAssignment(wide, amt(0), amt(1))
		if !errors.Is(err, ErrAmountTooWide) {
			t.Errorf("err = %v, want ErrAmountTooWide", err)
		}
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		assignment, err := NewTransferAssignment(amt(100), amt(50), amt(0))
		if err != nil {
			t.Fatalf("assignment: %v", err)
		}
		p := newTransferProver(t)
		if err := p.Verify("transfer", assignment); err != nil {
			t.Errorf("verify zero-amount move: %v", err)
		}
	})
}

func TestUnregisteredCircuit(t *testing.T) {
	p := NewProver()
	if _, err := p.Prove("transfer", &TransferCircuit{}); err == nil {
		t.Error("prove on unregistered circuit succeeded")
	}
	if got := p.ListCircuits(); len(got) != 0 {
		t.Errorf("unexpected circuits: %v", got)
	}
}
