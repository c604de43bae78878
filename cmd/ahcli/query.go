package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/urfave/cli/v2"
)

var receipt = cli.Command{
	Name:      "receipt",
	Usage:     "get a sale receipt, or list those of the marketplace if no id is given",
	ArgsUsage: "[id]",
	Flags:     []cli.Flag{&marketplaceFlag},
	Action:    receiptAction,
}

var journal = cli.Command{
	Name:  "journal",
	Usage: "print the operations applied to the ledger",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "from",
			Usage: "the sequence number of the first entry",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "the max number of entries per request",
			Value: 100,
		},
		&cli.BoolFlag{
			Name:  "follow",
			Usage: "keep polling for new entries",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "the polling interval when following",
			Value: 2 * time.Second,
		},
	},
	Action: journalAction,
}

var account = cli.Command{
	Name:      "account",
	Usage:     "show the settlement currency balance of an account, defaults to the signing key",
	ArgsUsage: "[address]",
	Action:    accountAction,
}

func receiptAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	if ctx.NArg() > 0 {
		var r domain.SaleReceipt
		if err := client.get("/v1/receipts/"+ctx.Args().First(), &r); err != nil {
			return err
		}
		printRespJSON(r)
		return nil
	}

	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	var receipts []domain.SaleReceipt
	if err := client.get(
		fmt.Sprintf("/v1/marketplaces/%s/receipts", addr), &receipts,
	); err != nil {
		return err
	}

	printRespJSON(receipts)
	return nil
}

func journalAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	from := ctx.Uint64("from")
	limit := ctx.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be a positive number")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	ticker := time.NewTicker(ctx.Duration("interval"))
	defer ticker.Stop()

	for {
		var entries []domain.JournalEntry
		err := client.get(
			fmt.Sprintf("/v1/journal?from=%d&limit=%d", from, limit), &entries,
		)
		if err != nil && !ctx.Bool("follow") {
			return err
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "[ahcli] %v\n", err)
		}

		for _, e := range entries {
			fmt.Printf(
				"%d\t%s\t%s\t%s\n", e.Sequence,
				time.Unix(e.Timestamp, 0).Format(time.RFC3339), e.Operation, e.Signer,
			)
			from = e.Sequence + 1
		}

		if !ctx.Bool("follow") {
			if len(entries) < limit {
				return nil
			}
			continue
		}

		select {
		case <-sigChan:
			return nil
		case <-ticker.C:
		}
	}
}

func accountAction(ctx *cli.Context) error {
	var addr address.Address
	var err error
	if ctx.NArg() > 0 {
		if addr, err = address.FromString(ctx.Args().First()); err != nil {
			return err
		}
	} else {
		signingClient, err := getSigningClient()
		if err != nil {
			return err
		}
		addr = signingClient.keypair.Address()
	}

	client, err := getClient()
	if err != nil {
		return err
	}
	var a domain.NativeAccount
	if err := client.get("/v1/accounts/"+addr.String(), &a); err != nil {
		return err
	}

	fmt.Printf("%s balance: %s\n", a.Address, formatAmount(a.Balance))
	return nil
}
