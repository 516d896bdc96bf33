package token

// Engine is the stateless operation layer. It validates preconditions
// against the ledger, applies mutations atomically, and emits domain
// events. The host serializes calls; the engine holds no state of its
// own beyond the ledger and emitter it was built with.
type Engine struct {
	ledger  *Ledger
	emitter Emitter
}

// NewEngine returns an engine operating on ledger. A nil emitter
// drops events.
func NewEngine(ledger *Ledger, emitter Emitter) *Engine {
	return &Engine{ledger: ledger, emitter: emitter}
}

// Ledger returns the ledger the engine operates on.
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

func (e *Engine) emit(ev Event) {
	if e.emitter != nil {
		e.emitter.Emit(ev)
	}
}

// Issue creates the token and credits the caller with the full supply.
// It fails with ErrNameTooLong or ErrTickerTooLong on oversized
// metadata and with ErrAlreadyIssued if a token exists: overwriting
// the token record would reset the issuer's balance against a new
// supply without touching other holders, breaking conservation. No
// event is emitted; the host records the issuance transaction itself.
func (e *Engine) Issue(caller Address, name, ticker []byte, totalSupply Amount) error {
	if len(name) > MaxNameBytes {
		return ErrNameTooLong
	}
	if len(ticker) > MaxTickerBytes {
		return ErrTickerTooLong
	}
	if e.ledger.registry.issued {
		return ErrAlreadyIssued
	}

	e.ledger.registry.token = Token{
		Name:        append([]byte(nil), name...),
		Ticker:      append([]byte(nil), ticker...),
		TotalSupply: totalSupply,
	}
	e.ledger.registry.issued = true
	e.ledger.balances.set(caller, totalSupply)
	return nil
}

// Transfer moves value from the caller to another account. It fails
// with ErrInsufficientBalance if the caller holds less than value and
// with ErrOverflow if the recipient balance would not fit; on any
// failure nothing is written. Emits Transfer(caller, to, value).
func (e *Engine) Transfer(caller, to Address, value Amount) error {
	mv, err := e.stageMove(caller, to, value)
	if err != nil {
		return err
	}
	e.apply(mv)
	e.emit(Event{Kind: EventTransfer, From: caller, To: to, Value: value})
	return nil
}

// Approve increases the allowance of (caller, spender) by value. The
// increase is additive, not an overwrite: approving 10 then 5 yields
// an allowance of 15, unlike the set-absolute semantics of the
// conventional ERC20 approve. Fails only with
// ErrOverflow. Emits Approval(caller, spender, value) carrying the
// delta, not the new total.
func (e *Engine) Approve(caller, spender Address, value Amount) error {
	current := e.ledger.allowances.Allowance(caller, spender)
	updated, err := addChecked(&current, &value)
	if err != nil {
		return err
	}
	e.ledger.allowances.set(caller, spender, updated)
	e.emit(Event{Kind: EventApproval, From: caller, To: spender, Value: value})
	return nil
}

// TransferFrom moves value from `from` to `to` on the authority of an
// allowance previously granted to spender. The allowance decrement and
// the balance move form one atomic unit: every precondition is checked
// before the first write, so a failure at the balance step leaves the
// allowance untouched. Emits Approval(from, spender, value) for the
// consumed allowance, then Transfer(from, to, value).
func (e *Engine) TransferFrom(spender, from, to Address, value Amount) error {
	current := e.ledger.allowances.Allowance(from, spender)
	if current.Lt(&value) {
		return ErrInsufficientAllowance
	}
	updated, err := subChecked(&current, &value)
	if err != nil {
		return err
	}

	mv, err := e.stageMove(from, to, value)
	if err != nil {
		return err
	}

	e.ledger.allowances.set(from, spender, updated)
	e.emit(Event{Kind: EventApproval, From: from, To: spender, Value: value})
	e.apply(mv)
	e.emit(Event{Kind: EventTransfer, From: from, To: to, Value: value})
	return nil
}

// balanceMove is a fully validated two-account balance update, staged
// so callers can combine it with other writes atomically.
type balanceMove struct {
	from, to       Address
	newFrom, newTo Amount
}

// stageMove validates a balance move without writing anything. The
// receiver side is credited on top of the staged debit when the two
// accounts coincide, so a move to self leaves the balance unchanged.
func (e *Engine) stageMove(from, to Address, value Amount) (balanceMove, error) {
	senderBalance := e.ledger.balances.BalanceOf(from)
	if senderBalance.Lt(&value) {
		return balanceMove{}, ErrInsufficientBalance
	}
	newFrom, err := subChecked(&senderBalance, &value)
	if err != nil {
		return balanceMove{}, err
	}
	receiverBalance := e.ledger.balances.BalanceOf(to)
	if from == to {
		receiverBalance = newFrom
	}
	newTo, err := addChecked(&receiverBalance, &value)
	if err != nil {
		return balanceMove{}, err
	}
	return balanceMove{from: from, to: to, newFrom: newFrom, newTo: newTo}, nil
}

func (e *Engine) apply(mv balanceMove) {
	e.ledger.balances.set(mv.from, mv.newFrom)
	e.ledger.balances.set(mv.to, mv.newTo)
}
