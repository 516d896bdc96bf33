package token

import "sort"

// Balances maps account identities to token balances. Absent accounts
// hold zero. The type exposes no mutators; writes go through Engine so
// invariant checks cannot be bypassed.
type Balances struct {
	m map[Address]Amount
}

// BalanceOf returns the balance of an account, zero for unseen accounts.
func (b *Balances) BalanceOf(account Address) Amount {
	return b.m[account]
}

// Accounts returns every account that has ever been referenced, in
// sorted order. Entries persist at zero.
func (b *Balances) Accounts() []Address {
	accounts := make([]Address, 0, len(b.m))
	for a := range b.m {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i] < accounts[j] })
	return accounts
}

func (b *Balances) set(account Address, v Amount) {
	b.m[account] = v
}

// AllowancePair keys an allowance entry by owner and spender.
type AllowancePair struct {
	Owner   Address
	Spender Address
}

// Allowances maps (owner, spender) pairs to delegated-spend limits.
// Absent pairs hold zero. No exported mutators; writes go through
// Engine.
type Allowances struct {
	m map[AllowancePair]Amount
}

// Allowance returns the amount owner permits spender to transfer on
// their behalf, zero for unseen pairs.
func (a *Allowances) Allowance(owner, spender Address) Amount {
	return a.m[AllowancePair{Owner: owner, Spender: spender}]
}

// Pairs returns every (owner, spender) pair ever referenced, sorted by
// owner then spender.
func (a *Allowances) Pairs() []AllowancePair {
	pairs := make([]AllowancePair, 0, len(a.m))
	for p := range a.m {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Owner != pairs[j].Owner {
			return pairs[i].Owner < pairs[j].Owner
		}
		return pairs[i].Spender < pairs[j].Spender
	})
	return pairs
}

func (a *Allowances) set(owner, spender Address, v Amount) {
	a.m[AllowancePair{Owner: owner, Spender: spender}] = v
}

// Ledger is the context object owning the three stores. It is passed
// by reference into Engine operations; fresh instances give isolated
// state for tests and for replay.
type Ledger struct {
	registry   Registry
	balances   Balances
	allowances Allowances
}

// NewLedger returns an empty ledger with no token issued.
func NewLedger() *Ledger {
	return &Ledger{
		balances:   Balances{m: make(map[Address]Amount)},
		allowances: Allowances{m: make(map[AllowancePair]Amount)},
	}
}

// TokenDetails returns the token record, zero before issuance.
func (l *Ledger) TokenDetails() Token {
	return l.registry.Details()
}

// Issued reports whether the token has been created.
func (l *Ledger) Issued() bool {
	return l.registry.Issued()
}

// BalanceOf returns the balance of an account, zero for unseen accounts.
func (l *Ledger) BalanceOf(account Address) Amount {
	return l.balances.BalanceOf(account)
}

// Allowance returns the delegated-spend limit for (owner, spender),
// zero for unseen pairs.
func (l *Ledger) Allowance(owner, spender Address) Amount {
	return l.allowances.Allowance(owner, spender)
}

// Snapshot is a point-in-time deep copy of ledger state, safe to hold
// across further operations.
type Snapshot struct {
	Token      Token
	Issued     bool
	Balances   map[Address]Amount
	Allowances map[AllowancePair]Amount
}

// Snapshot returns a deep copy of the current state.
func (l *Ledger) Snapshot() Snapshot {
	snap := Snapshot{
		Token:      l.registry.Details(),
		Issued:     l.registry.issued,
		Balances:   make(map[Address]Amount, len(l.balances.m)),
		Allowances: make(map[AllowancePair]Amount, len(l.allowances.m)),
	}
	for a, v := range l.balances.m {
		snap.Balances[a] = v
	}
	for p, v := range l.allowances.m {
		snap.Allowances[p] = v
	}
	return snap
}

// CheckConservation verifies that the sum of all balances equals the
// total supply. It returns nil before issuance (all balances zero) and
// ErrOverflow if the balance sum itself cannot be represented, which
// is unreachable while the invariant holds.
func (l *Ledger) CheckConservation() error {
	var sum Amount
	for _, v := range l.balances.m {
		s, err := addChecked(&sum, &v)
		if err != nil {
			return err
		}
		sum = s
	}
	supply := l.registry.token.TotalSupply
	if !sum.Eq(&supply) {
		return ErrConservation
	}
	return nil
}
