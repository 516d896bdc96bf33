package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pflow-xyz/go-ledger/commit"
	"github.com/pflow-xyz/go-ledger/eventsource"
	"github.com/pflow-xyz/go-ledger/token"
)

// withLedger replays the event log read-only and runs fn on the
// resulting ledger.
func withLedger(db string, fn func(l *token.Ledger) error) error {
	ctx := context.Background()

	store, err := eventsource.NewSQLiteStore(db)
	if err != nil {
		return err
	}
	defer store.Close()

	ledger, err := eventsource.Replay(ctx, store, streamID)
	if err != nil {
		return err
	}
	return fn(ledger)
}

func balance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	db := fs.String("db", "ledger.db", "Event log database file")
	account := fs.String("account", "", "Account to query (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *account == "" {
		return fmt.Errorf("balance requires --account")
	}

	return withLedger(*db, func(l *token.Ledger) error {
		b := l.BalanceOf(token.Address(*account))
		fmt.Printf("%s: %s\n", *account, b.Dec())
		return nil
	})
}

func allowance(args []string) error {
	fs := flag.NewFlagSet("allowance", flag.ExitOnError)
	db := fs.String("db", "ledger.db", "Event log database file")
	owner := fs.String("owner", "", "Owner account (required)")
	spender := fs.String("spender", "", "Spender account (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *owner == "" || *spender == "" {
		return fmt.Errorf("allowance requires --owner and --spender")
	}

	return withLedger(*db, func(l *token.Ledger) error {
		a := l.Allowance(token.Address(*owner), token.Address(*spender))
		fmt.Printf("allowance(%s, %s) = %s\n", *owner, *spender, a.Dec())
		return nil
	})
}

func details(args []string) error {
	fs := flag.NewFlagSet("details", flag.ExitOnError)
	db := fs.String("db", "ledger.db", "Event log database file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withLedger(*db, func(l *token.Ledger) error {
		if !l.Issued() {
			fmt.Println("no token issued")
			return nil
		}
		d := l.TokenDetails()
		fmt.Printf("name:   %s\n", d.Name)
		fmt.Printf("ticker: %s\n", d.Ticker)
		fmt.Printf("supply: %s\n", d.TotalSupply.Dec())
		return nil
	})
}

func root(args []string) error {
	fs := flag.NewFlagSet("root", flag.ExitOnError)
	db := fs.String("db", "ledger.db", "Event log database file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withLedger(*db, func(l *token.Ledger) error {
		r, err := commit.Root(l.Snapshot())
		if err != nil {
			return err
		}
		fmt.Printf("%x\n", r)
		return nil
	})
}
