package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pflow-xyz/go-ledger/eventsource"
	"github.com/pflow-xyz/go-ledger/token"
)

// streamID is the single event stream the CLI records operations to.
const streamID = "token"

// withJournal opens the event log, replays it, runs fn against the
// journal, and closes the store.
func withJournal(db string, fn func(ctx context.Context, j *eventsource.Journal) error) error {
	ctx := context.Background()

	store, err := eventsource.NewSQLiteStore(db)
	if err != nil {
		return err
	}
	defer store.Close()

	j, err := eventsource.OpenJournal(ctx, store, streamID, printEmitter{})
	if err != nil {
		return err
	}
	return fn(ctx, j)
}

// printEmitter echoes domain events as they are emitted, the CLI's
// stand-in for the host's event recorder.
type printEmitter struct{}

func (printEmitter) Emit(ev token.Event) {
	fmt.Printf("event: %s(%s, %s, %s)\n", ev.Kind, ev.From, ev.To, ev.Value.Dec())
}

func issue(args []string) error {
	fs := flag.NewFlagSet("issue", flag.ExitOnError)
	db := fs.String("db", "ledger.db", "Event log database file")
	caller := fs.String("caller", "", "Caller identity (required)")
	name := fs.String("name", "", "Token name, at most 64 bytes (required)")
	ticker := fs.String("ticker", "", "Token ticker, at most 32 bytes (required)")
	supply := fs.String("supply", "", "Total supply as a decimal integer (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *name == "" || *ticker == "" || *supply == "" {
		return fmt.Errorf("issue requires --caller, --name, --ticker, and --supply")
	}

	totalSupply, err := token.ParseAmount(*supply)
	if err != nil {
		return err
	}
	return withJournal(*db, func(ctx context.Context, j *eventsource.Journal) error {
		if err := j.Issue(ctx, token.Address(*caller), []byte(*name), []byte(*ticker), totalSupply); err != nil {
			return err
		}
		fmt.Printf("issued %s (%s), supply %s held by %s\n", *name, *ticker, totalSupply.Dec(), *caller)
		return nil
	})
}

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	db := fs.String("db", "ledger.db", "Event log database file")
	caller := fs.String("caller", "", "Caller identity (required)")
	to := fs.String("to", "", "Recipient account (required)")
	value := fs.String("value", "", "Amount as a decimal integer (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *to == "" || *value == "" {
		return fmt.Errorf("transfer requires --caller, --to, and --value")
	}

	amount, err := token.ParseAmount(*value)
	if err != nil {
		return err
	}
	return withJournal(*db, func(ctx context.Context, j *eventsource.Journal) error {
		return j.Transfer(ctx, token.Address(*caller), token.Address(*to), amount)
	})
}

func approve(args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	db := fs.String("db", "ledger.db", "Event log database file")
	caller := fs.String("caller", "", "Caller identity (required)")
	spender := fs.String("spender", "", "Spender account (required)")
	value := fs.String("value", "", "Allowance increase as a decimal integer (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *spender == "" || *value == "" {
		return fmt.Errorf("approve requires --caller, --spender, and --value")
	}

	amount, err := token.ParseAmount(*value)
	if err != nil {
		return err
	}
	return withJournal(*db, func(ctx context.Context, j *eventsource.Journal) error {
		if err := j.Approve(ctx, token.Address(*caller), token.Address(*spender), amount); err != nil {
			return err
		}
		updated := j.Ledger().Allowance(token.Address(*caller), token.Address(*spender))
		fmt.Printf("allowance(%s, %s) = %s\n", *caller, *spender, updated.Dec())
		return nil
	})
}

func transferFrom(args []string) error {
	fs := flag.NewFlagSet("transferfrom", flag.ExitOnError)
	db := fs.String("db", "ledger.db", "Event log database file")
	caller := fs.String("caller", "", "Spender identity (required)")
	from := fs.String("from", "", "Owner account to debit (required)")
	to := fs.String("to", "", "Recipient account (required)")
	value := fs.String("value", "", "Amount as a decimal integer (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *from == "" || *to == "" || *value == "" {
		return fmt.Errorf("transferfrom requires --caller, --from, --to, and --value")
	}

	amount, err := token.ParseAmount(*value)
	if err != nil {
		return err
	}
	return withJournal(*db, func(ctx context.Context, j *eventsource.Journal) error {
		return j.TransferFrom(ctx, token.Address(*caller), token.Address(*from), token.Address(*to), amount)
	})
}
