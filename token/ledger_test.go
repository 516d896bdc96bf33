package token

import (
	"errors"
	"testing"
)

func TestSnapshotIsDeepCopy(t *testing.T) {
	engine, ledger, _ := newTestEngine(t)
	mustIssue(t, engine, "alice", 1000)
	if err := engine.Approve("alice", "bob", amt(50)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	snap := ledger.Snapshot()

	if err := engine.Transfer("alice", "bob", amt(400)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if err := engine.TransferFrom("bob", "alice", "carol", amt(50)); err != nil {
		t.Fatalf("transfer_from failed: %v", err)
	}

	// The snapshot still describes the pre-transfer state.
	want := amt(1000)
	if got := snap.Balances["alice"]; !got.Eq(&want) {
		t.Errorf("snapshot alice balance = %s, want 1000", got.Dec())
	}
	fifty := amt(50)
	if got := snap.Allowances[AllowancePair{Owner: "alice", Spender: "bob"}]; !got.Eq(&fifty) {
		t.Errorf("snapshot allowance = %s, want 50", got.Dec())
	}

	// Mutating the snapshot's token name must not reach the registry.
	snap.Token.Name[0] = 'X'
	if string(ledger.TokenDetails().Name) != "Tok" {
		t.Error("snapshot aliases registry metadata")
	}
}

func TestAccountsAndPairsSorted(t *testing.T) {
	engine, ledger, _ := newTestEngine(t)
	mustIssue(t, engine, "carol", 100)
	if err := engine.Transfer("carol", "alice", amt(10)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if err := engine.Transfer("carol", "bob", amt(10)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if err := engine.Approve("carol", "alice", amt(1)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := engine.Approve("alice", "bob", amt(1)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	accounts := ledger.balances.Accounts()
	wantAccounts := []Address{"alice", "bob", "carol"}
	if len(accounts) != len(wantAccounts) {
		t.Fatalf("got %d accounts, want %d", len(accounts), len(wantAccounts))
	}
	for i, a := range wantAccounts {
		if accounts[i] != a {
			t.Errorf("accounts[%d] = %s, want %s", i, accounts[i], a)
		}
	}

	pairs := ledger.allowances.Pairs()
	wantPairs := []AllowancePair{
		{Owner: "alice", Spender: "bob"},
		{Owner: "carol", Spender: "alice"},
	}
	if len(pairs) != len(wantPairs) {
		t.Fatalf("got %d pairs, want %d", len(pairs), len(wantPairs))
	}
	for i, p := range wantPairs {
		if pairs[i] != p {
			t.Errorf("pairs[%d] = %+v, want %+v", i, pairs[i], p)
		}
	}
}

func TestZeroBalanceEntriesPersist(t *testing.T) {
	engine, ledger, _ := newTestEngine(t)
	mustIssue(t, engine, "alice", 100)
	if err := engine.Transfer("alice", "bob", amt(100)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	// alice drained to zero but remains a ledger entry.
	accounts := ledger.balances.Accounts()
	found := false
	for _, a := range accounts {
		if a == "alice" {
			found = true
		}
	}
	if !found {
		t.Error("drained account dropped from the ledger")
	}
}

func TestCheckConservationDetectsCorruption(t *testing.T) {
	engine, ledger, _ := newTestEngine(t)
	mustIssue(t, engine, "alice", 1000)

	// Corrupt a balance behind the engine's back.
	ledger.balances.set("bob", amt(1))
	if err := ledger.CheckConservation(); !errors.Is(err, ErrConservation) {
		t.Fatalf("err = %v, want ErrConservation", err)
	}
}

func TestCheckConservationBeforeIssue(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.CheckConservation(); err != nil {
		t.Fatalf("empty ledger conservation check failed: %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	if err != nil {
		t.Fatalf("parse max failed: %v", err)
	}
	max := MaxAmount()
	if !a.Eq(&max) {
		t.Errorf("parsed = %s, want max", a.Dec())
	}

	if _, err := ParseAmount("not-a-number"); err == nil {
		t.Error("parse of garbage succeeded")
	}
}
