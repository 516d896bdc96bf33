package commit_test

import (
	"bytes"
	"testing"

	"github.com/pflow-xyz/go-ledger/commit"
	"github.com/pflow-xyz/go-ledger/token"
)

func amt(v uint64) token.Amount {
	return token.NewAmount(v)
}

// buildLedger constructs the canonical test state: alice 550, bob 300,
// dave 150, allowance(alice, carol) 50.
func buildLedger(t *testing.T) *token.Ledger {
	t.Helper()
	ledger := token.NewLedger()
	engine := token.NewEngine(ledger, nil)
	if err := engine.Issue("alice", []byte("Tok"), []byte("TOK"), amt(1000)); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := engine.Transfer("alice", "bob", amt(300)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if err := engine.Approve("alice", "carol", amt(200)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := engine.TransferFrom("carol", "alice", "dave", amt(150)); err != nil {
		t.Fatalf("transfer_from: %v", err)
	}
	return ledger
}

func TestRootDeterministic(t *testing.T) {
	ledger := buildLedger(t)

	r1, err := commit.Root(ledger.Snapshot())
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	r2, err := commit.Root(ledger.Snapshot())
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !bytes.Equal(r1, r2) {
		t.Error("roots differ across snapshots of the same state")
	}
	if len(r1) == 0 {
		t.Error("empty root")
	}
}

func TestRootMatchesAcrossIndependentReplicas(t *testing.T) {
	// The same operations applied on two fresh ledgers must commit to
	// the same root regardless of map iteration order.
	a := buildLedger(t)
	b := buildLedger(t)

	ra, err := commit.Root(a.Snapshot())
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	rb, err := commit.Root(b.Snapshot())
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !bytes.Equal(ra, rb) {
		t.Error("replica roots differ")
	}
}

func TestRootSensitivity(t *testing.T) {
	base := buildLedger(t)
	baseRoot, err := commit.Root(base.Snapshot())
	if err != nil {
		t.Fatalf("root: %v", err)
	}

	t.Run("BalanceChange", func(t *testing.T) {
		ledger := buildLedger(t)
		engine := token.NewEngine(ledger, nil)
		if err := engine.Transfer("bob", "dave", amt(1)); err != nil {
			t.Fatalf("transfer: %v", err)
		}
		root, err := commit.Root(ledger.Snapshot())
		if err != nil {
			t.Fatalf("root: %v", err)
		}
		if bytes.Equal(root, baseRoot) {
			t.Error("balance change did not change the root")
		}
	})

	t.Run("AllowanceChange", func(t *testing.T) {
		ledger := buildLedger(t)
		engine := token.NewEngine(ledger, nil)
		if err := engine.Approve("alice", "carol", amt(1)); err != nil {
			t.Fatalf("approve: %v", err)
		}
		root, err := commit.Root(ledger.Snapshot())
		if err != nil {
			t.Fatalf("root: %v", err)
		}
		if bytes.Equal(root, baseRoot) {
			t.Error("allowance change did not change the root")
		}
	})

	t.Run("EmptyVersusIssued", func(t *testing.T) {
		empty, err := commit.Root(token.NewLedger().Snapshot())
		if err != nil {
			t.Fatalf("root: %v", err)
		}
		if bytes.Equal(empty, baseRoot) {
			t.Error("empty ledger commits to the same root as issued state")
		}
	})
}
