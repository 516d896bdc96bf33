package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pflow-xyz/go-ledger/eventsource"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	db := fs.String("db", "ledger.db", "Event log database file")
	from := fs.Int("from", 0, "First stream version to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	store, err := eventsource.NewSQLiteStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	recorded, err := store.Read(ctx, streamID, *from)
	if err != nil {
		return err
	}
	if len(recorded) == 0 {
		fmt.Println("no recorded operations")
		return nil
	}

	for _, ev := range recorded {
		fmt.Printf("%4d  %s  %-12s  %s\n",
			ev.Version,
			ev.Timestamp.Format("2006-01-02 15:04:05"),
			ev.Type,
			ev.Data)
	}
	return nil
}
