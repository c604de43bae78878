package main

import (
	"fmt"

	"github.com/tdex-network/auction-house/internal/core/domain"
	httpinterface "github.com/tdex-network/auction-house/internal/interfaces/http"
	"github.com/urfave/cli/v2"
)

var (
	escrow = cli.Command{
		Name:  "escrow",
		Usage: "manage the funds committed to a marketplace",
		Subcommands: []*cli.Command{
			escrowDepositCmd, escrowWithdrawCmd, escrowCloseCmd, escrowBalanceCmd,
		},
	}

	escrowDepositCmd = &cli.Command{
		Name:  "deposit",
		Usage: "move funds of the signing key into its escrow",
		Flags: []cli.Flag{
			&marketplaceFlag,
			&cli.StringFlag{
				Name:  "amount",
				Usage: "the amount to deposit",
			},
		},
		Action: escrowDepositAction,
	}
	escrowWithdrawCmd = &cli.Command{
		Name:  "withdraw",
		Usage: "move funds from the escrow back to the signing key",
		Flags: []cli.Flag{
			&marketplaceFlag,
			&cli.StringFlag{
				Name:  "amount",
				Usage: "the amount to withdraw",
			},
		},
		Action: escrowWithdrawAction,
	}
	escrowCloseCmd = &cli.Command{
		Name:   "close",
		Usage:  "close the empty escrow of the signing key",
		Flags:  []cli.Flag{&marketplaceFlag},
		Action: escrowCloseAction,
	}
	escrowBalanceCmd = &cli.Command{
		Name:   "balance",
		Usage:  "show the escrow balance of the signing key",
		Flags:  []cli.Flag{&marketplaceFlag},
		Action: escrowBalanceAction,
	}
)

func escrowDepositAction(ctx *cli.Context) error {
	return moveEscrowFunds(ctx, "/v1/escrow/deposit")
}

func escrowWithdrawAction(ctx *cli.Context) error {
	return moveEscrowFunds(ctx, "/v1/escrow/withdraw")
}

func moveEscrowFunds(ctx *cli.Context, path string) error {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx, "amount")
	if err != nil {
		return err
	}
	client, err := getSigningClient()
	if err != nil {
		return err
	}

	var e domain.EscrowAccount
	if err := client.post(path, httpinterface.AmountRequest{
		Marketplace: addr,
		Amount:      amount,
	}, &e); err != nil {
		return err
	}

	fmt.Printf("escrow %s balance: %s\n", e.Address, formatAmount(e.Balance))
	return nil
}

func escrowCloseAction(ctx *cli.Context) error {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	client, err := getSigningClient()
	if err != nil {
		return err
	}

	if err := client.post("/v1/escrow/close", httpinterface.MarketplaceRequest{
		Marketplace: addr,
	}, nil); err != nil {
		return err
	}

	fmt.Println("escrow closed")
	return nil
}

func escrowBalanceAction(ctx *cli.Context) error {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	client, err := getSigningClient()
	if err != nil {
		return err
	}

	var e domain.EscrowAccount
	if err := client.get(fmt.Sprintf(
		"/v1/marketplaces/%s/escrows/%s", addr, client.keypair.Address(),
	), &e); err != nil {
		return err
	}

	fmt.Printf("escrow %s balance: %s\n", e.Address, formatAmount(e.Balance))
	return nil
}
