package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "issue":
		if err := issue(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "transfer":
		if err := transfer(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "approve":
		if err := approve(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "transferfrom":
		if err := transferFrom(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "balance":
		if err := balance(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "allowance":
		if err := allowance(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "details":
		if err := details(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "root":
		if err := root(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "events":
		if err := events(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ledger - fungible-token ledger with a durable operation log

Usage:
  ledger <command> [options]

State lives in a SQLite event log (--db, default ledger.db). Each
command replays the log, applies the operation, and appends it.
--caller stands in for the host's authenticated identity.

Commands:
  issue         Create the token and grant the full supply to the caller
  transfer      Move tokens from the caller to another account
  approve       Increase a spender's allowance (additive)
  transferfrom  Spend an allowance on behalf of an owner
  balance       Show an account balance
  allowance     Show a delegated-spend limit
  details       Show token metadata and total supply
  root          Show the state commitment root
  events        Show the recorded operation log
  help          Show this help message

Examples:
  # Issue 1000 TOK to alice
  ledger issue --caller alice --name Tok --ticker TOK --supply 1000

  # Move 300 to bob
  ledger transfer --caller alice --to bob --value 300

  # Let carol spend 200 on alice's behalf
  ledger approve --caller alice --spender carol --value 200
  ledger transferfrom --caller carol --from alice --to dave --value 150

  # Inspect state
  ledger balance --account alice
  ledger events`)
}
