package prover

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/pflow-xyz/go-ledger/token"
)

// AmountBits bounds the balances and amounts the transfer circuit can
// prove. Field arithmetic has no native unsigned comparison, so the
// guard is a range check on the difference; 62 bits keeps the sum of
// any two in-range values well inside the BN254 scalar field.
const AmountBits = 62

var maxCircuitAmount = new(big.Int).Lsh(big.NewInt(1), AmountBits)

// TransferCircuit proves that a balance move respected the engine's
// guards: the sender held at least the amount, and both post-move
// balances follow from checked arithmetic, so the move conserved
// supply. All five values are public; a verifier holding pre/post
// state commitments can bind them to ledger snapshots.
type TransferCircuit struct {
	PreFrom  frontend.Variable `gnark:",public"`
	PreTo    frontend.Variable `gnark:",public"`
	PostFrom frontend.Variable `gnark:",public"`
	PostTo   frontend.Variable `gnark:",public"`
	Amount   frontend.Variable `gnark:",public"`
}

func (c *TransferCircuit) Define(api frontend.API) error {
	// Inputs are constrained to the amount range first; without this a
	// wrapped field value could satisfy the difference check.
	api.AssertIsLessOrEqual(c.Amount, maxCircuitAmount)
	api.AssertIsLessOrEqual(c.PreFrom, maxCircuitAmount)
	api.AssertIsLessOrEqual(c.PreTo, maxCircuitAmount)

	// Guard: pre_from >= amount. The difference of two in-range values
	// only stays in range when no underflow occurred.
	diff := api.Sub(c.PreFrom, c.Amount)
	api.AssertIsLessOrEqual(diff, maxCircuitAmount)

	// Post-state follows deterministically from the move.
	api.AssertIsEqual(c.PostFrom, api.Sub(c.PreFrom, c.Amount))
	api.AssertIsEqual(c.PostTo, api.Add(c.PreTo, c.Amount))
	return nil
}

// NewTransferAssignment builds a witness for a transfer from the
// pre-move balances. It fails with token.ErrInsufficientBalance when
// the guard cannot hold and with ErrAmountTooWide when a value exceeds
// the circuit's range.
func NewTransferAssignment(preFrom, preTo, amount token.Amount) (*TransferCircuit, error) {
	for _, a := range []token.Amount{preFrom, preTo, amount} {
		if a.BitLen() > AmountBits {
			return nil, ErrAmountTooWide
		}
	}
	if preFrom.Lt(&amount) {
		return nil, token.ErrInsufficientBalance
	}

	var postFrom, postTo token.Amount
	postFrom.Sub(&preFrom, &amount)
	postTo.Add(&preTo, &amount)

	return &TransferCircuit{
		PreFrom:  preFrom.ToBig(),
		PreTo:    preTo.ToBig(),
		PostFrom: postFrom.ToBig(),
		PostTo:   postTo.ToBig(),
		Amount:   amount.ToBig(),
	}, nil
}
