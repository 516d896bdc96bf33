// Package token implements fungible-token ledger accounting as an
// embeddable state-transition core. The host execution engine supplies
// an authenticated caller identity per call and records the events the
// engine emits; this package owns the balance, allowance, and token
// metadata stores and the four operations that mutate them.
//
// Two invariants hold before and after every operation: the sum of all
// balances equals the total supply (conservation), and no balance or
// allowance is ever negative (all arithmetic is checked and unsigned).
package token

// Size caps for token metadata. Unbounded byte sequences are avoided
// in ledger state.
const (
	MaxNameBytes   = 64
	MaxTickerBytes = 32
)

// Address is an opaque account identity supplied by the host's
// authentication layer.
type Address string

// Token holds the metadata and total supply of the single token
// instance. It is set once by issuance and immutable thereafter.
type Token struct {
	Name        []byte
	Ticker      []byte
	TotalSupply Amount
}

// clone returns a deep copy so callers cannot alias registry state.
func (t Token) clone() Token {
	return Token{
		Name:        append([]byte(nil), t.Name...),
		Ticker:      append([]byte(nil), t.Ticker...),
		TotalSupply: t.TotalSupply,
	}
}

// Registry stores the token record. Mutation happens only through
// Engine.Issue.
type Registry struct {
	token  Token
	issued bool
}

// Details returns the token record. The zero Token is returned before
// issuance.
func (r *Registry) Details() Token {
	return r.token.clone()
}

// Issued reports whether the token has been created.
func (r *Registry) Issued() bool {
	return r.issued
}
