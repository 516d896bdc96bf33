// Package commit derives deterministic commitments to ledger state.
// The host can record a root per executed block and compare roots
// across replicas without shipping the ledger itself. Roots use the
// MiMC hash over the BN254 scalar field so the same commitment can be
// consumed by proof circuits.
package commit

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/pflow-xyz/go-ledger/token"
)

// Root computes the commitment to a ledger snapshot. Two snapshots
// have equal roots iff their observable state is equal; iteration
// order of the snapshot maps never affects the result.
func Root(snap token.Snapshot) ([]byte, error) {
	h := mimc.NewMiMC()
	w := &elementWriter{h: h}

	w.writeBytes(snap.Token.Name)
	w.writeBytes(snap.Token.Ticker)
	w.writeBool(snap.Issued)
	w.writeAmount(snap.Token.TotalSupply)

	accounts := sortedAccounts(snap.Balances)
	w.writeUint(uint64(len(accounts)))
	for _, a := range accounts {
		w.writeBytes([]byte(a))
		w.writeAmount(snap.Balances[a])
	}

	pairs := sortedPairs(snap.Allowances)
	w.writeUint(uint64(len(pairs)))
	for _, p := range pairs {
		w.writeBytes([]byte(p.Owner))
		w.writeBytes([]byte(p.Spender))
		w.writeAmount(snap.Allowances[p])
	}

	if w.err != nil {
		return nil, fmt.Errorf("commit: %w", w.err)
	}
	return h.Sum(nil), nil
}

// elementWriter feeds canonical field elements into the hash. MiMC
// accepts only 32-byte blocks below the field modulus, so every input
// is mapped into the field first: byte strings via SHA-256 then
// modular reduction, amounts as two 128-bit limbs (lossless, since
// each limb is far below the modulus).
type elementWriter struct {
	h   hash.Hash
	err error
}

func (w *elementWriter) writeElement(e fr.Element) {
	if w.err != nil {
		return
	}
	b := e.Marshal()
	if _, err := w.h.Write(b); err != nil {
		w.err = err
	}
}

func (w *elementWriter) writeBytes(b []byte) {
	digest := sha256.Sum256(b)
	var e fr.Element
	e.SetBytes(digest[:])
	w.writeElement(e)
}

func (w *elementWriter) writeUint(v uint64) {
	var e fr.Element
	e.SetUint64(v)
	w.writeElement(e)
}

func (w *elementWriter) writeBool(v bool) {
	if v {
		w.writeUint(1)
	} else {
		w.writeUint(0)
	}
}

func (w *elementWriter) writeAmount(a token.Amount) {
	b := a.Bytes32()
	var hi, lo fr.Element
	hi.SetBytes(b[:16])
	lo.SetBytes(b[16:])
	w.writeElement(hi)
	w.writeElement(lo)
}

func sortedAccounts(m map[token.Address]token.Amount) []token.Address {
	out := make([]token.Address, 0, len(m))
	for a := range m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedPairs(m map[token.AllowancePair]token.Amount) []token.AllowancePair {
	out := make([]token.AllowancePair, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Owner != out[j].Owner {
			return out[i].Owner < out[j].Owner
		}
		return out[i].Spender < out[j].Spender
	})
	return out
}
