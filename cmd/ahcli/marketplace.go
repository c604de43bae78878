package main

import (
	"fmt"

	"github.com/tdex-network/auction-house/internal/core/domain"
	httpinterface "github.com/tdex-network/auction-house/internal/interfaces/http"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/urfave/cli/v2"
)

const nativeMint = "So11111111111111111111111111111111111111112"

var (
	marketplace = cli.Command{
		Name:  "marketplace",
		Usage: "create and administer a marketplace",
		Subcommands: []*cli.Command{
			marketplaceCreateCmd, marketplaceInfoCmd, marketplaceListCmd,
			marketplaceUpdateCmd, marketplaceWithdrawCmd, marketplaceDelegateCmd,
			marketplaceTradeStatesCmd,
		},
	}

	marketplaceCreateCmd = &cli.Command{
		Name:  "create",
		Usage: "create a new marketplace administered by the signing key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "treasury_mint",
				Usage: "the mint of the settlement currency",
				Value: nativeMint,
			},
			&cli.UintFlag{
				Name:  "fee_bps",
				Usage: "the marketplace fee in basis points",
			},
			&cli.BoolFlag{
				Name:  "can_change_sale_price",
				Usage: "allow the authority to settle at a price other than the listed one",
			},
			&cli.StringFlag{
				Name:  "fee_destination",
				Usage: "the recipient of fee withdrawals, defaults to the signing key",
			},
			&cli.StringFlag{
				Name:  "treasury_destination",
				Usage: "the recipient of treasury withdrawals, defaults to the signing key",
			},
		},
		Action: marketplaceCreateAction,
	}
	marketplaceInfoCmd = &cli.Command{
		Name:   "info",
		Usage:  "get info about the current marketplace",
		Flags:  []cli.Flag{&marketplaceFlag},
		Action: marketplaceInfoAction,
	}
	marketplaceListCmd = &cli.Command{
		Name:   "list",
		Usage:  "list all marketplaces",
		Action: marketplaceListAction,
	}
	marketplaceUpdateCmd = &cli.Command{
		Name:  "update",
		Usage: "update the settings of the current marketplace",
		Flags: []cli.Flag{
			&marketplaceFlag,
			&cli.UintFlag{
				Name:  "fee_bps",
				Usage: "the new marketplace fee in basis points",
			},
			&cli.BoolFlag{
				Name:  "can_change_sale_price",
				Usage: "allow the authority to settle at a price other than the listed one",
			},
			&cli.StringFlag{
				Name:  "new_authority",
				Usage: "transfer the administration of the marketplace",
			},
			&cli.StringFlag{
				Name:  "fee_destination",
				Usage: "the new recipient of fee withdrawals",
			},
			&cli.StringFlag{
				Name:  "treasury_destination",
				Usage: "the new recipient of treasury withdrawals",
			},
		},
		Action: marketplaceUpdateAction,
	}
	marketplaceWithdrawCmd = &cli.Command{
		Name:  "withdraw",
		Usage: "withdraw from the fee or treasury account to its destination",
		Flags: []cli.Flag{
			&marketplaceFlag,
			&cli.StringFlag{
				Name:  "amount",
				Usage: "the amount to withdraw",
			},
			&cli.BoolFlag{
				Name:  "treasury",
				Usage: "withdraw from the treasury instead of the fee account",
			},
		},
		Action: marketplaceWithdrawAction,
	}
	marketplaceDelegateCmd = &cli.Command{
		Name:  "delegate",
		Usage: "delegate listings and bids to an auctioneer authority",
		Flags: []cli.Flag{
			&marketplaceFlag,
			&cli.StringFlag{
				Name:  "auctioneer_authority",
				Usage: "the authority to delegate to, defaults to the timed auction strategy",
			},
		},
		Action: marketplaceDelegateAction,
	}
	marketplaceTradeStatesCmd = &cli.Command{
		Name:   "tradestates",
		Usage:  "list the active trade states of the current marketplace",
		Flags:  []cli.Flag{&marketplaceFlag},
		Action: marketplaceTradeStatesAction,
	}
)

func marketplaceCreateAction(ctx *cli.Context) error {
	client, err := getSigningClient()
	if err != nil {
		return err
	}

	treasuryMint, err := parseAddressFlag(ctx, "treasury_mint")
	if err != nil {
		return err
	}
	feeDestination, err := addressOrSigner(ctx, "fee_destination", client)
	if err != nil {
		return err
	}
	treasuryDestination, err := addressOrSigner(ctx, "treasury_destination", client)
	if err != nil {
		return err
	}

	var m domain.Marketplace
	if err := client.post("/v1/marketplace/create", httpinterface.CreateMarketplaceRequest{
		TreasuryMint:                  treasuryMint,
		FeeWithdrawalDestination:      feeDestination,
		TreasuryWithdrawalDestination: treasuryDestination,
		FeeBasisPoints:                uint16(ctx.Uint("fee_bps")),
		CanChangeSalePrice:            ctx.Bool("can_change_sale_price"),
	}, &m); err != nil {
		return err
	}

	if err := setState(map[string]string{marketplaceKey: m.Address.String()}); err != nil {
		return err
	}

	printRespJSON(m)
	return nil
}

func marketplaceInfoAction(ctx *cli.Context) error {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	var m domain.Marketplace
	if err := client.get("/v1/marketplaces/"+addr.String(), &m); err != nil {
		return err
	}
	var fee, treasury domain.NativeAccount
	if err := client.get("/v1/accounts/"+m.FeeAccount.String(), &fee); err != nil {
		return err
	}
	if err := client.get("/v1/accounts/"+m.TreasuryAccount.String(), &treasury); err != nil {
		return err
	}

	printRespJSON(m)
	fmt.Printf("fee account balance: %s\n", formatAmount(fee.Balance))
	fmt.Printf("treasury balance: %s\n", formatAmount(treasury.Balance))
	return nil
}

func marketplaceListAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	var marketplaces []domain.Marketplace
	if err := client.get("/v1/marketplaces", &marketplaces); err != nil {
		return err
	}

	printRespJSON(marketplaces)
	return nil
}

func marketplaceUpdateAction(ctx *cli.Context) error {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	client, err := getSigningClient()
	if err != nil {
		return err
	}

	req := httpinterface.UpdateMarketplaceRequest{Marketplace: addr}
	if ctx.IsSet("fee_bps") {
		bps := uint16(ctx.Uint("fee_bps"))
		req.FeeBasisPoints = &bps
	}
	if ctx.IsSet("can_change_sale_price") {
		canChange := ctx.Bool("can_change_sale_price")
		req.CanChangeSalePrice = &canChange
	}
	if req.NewAuthority, err = optionalAddress(ctx, "new_authority"); err != nil {
		return err
	}
	if req.FeeWithdrawalDestination, err = optionalAddress(ctx, "fee_destination"); err != nil {
		return err
	}
	if req.TreasuryWithdrawalDestination, err = optionalAddress(
		ctx, "treasury_destination",
	); err != nil {
		return err
	}

	var m domain.Marketplace
	if err := client.post("/v1/marketplace/update", req, &m); err != nil {
		return err
	}

	printRespJSON(m)
	return nil
}

func marketplaceWithdrawAction(ctx *cli.Context) error {
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

	path := "/v1/marketplace/withdrawfee"
	if ctx.Bool("treasury") {
		path = "/v1/marketplace/withdrawtreasury"
	}
	if err := client.post(path, httpinterface.AmountRequest{
		Marketplace: addr,
		Amount:      amount,
	}, nil); err != nil {
		return err
	}

	fmt.Printf("withdrew %s\n", formatAmount(amount))
	return nil
}

func marketplaceDelegateAction(ctx *cli.Context) error {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	client, err := getSigningClient()
	if err != nil {
		return err
	}

	authority, err := optionalAddress(ctx, "auctioneer_authority")
	if err != nil {
		return err
	}
	if authority == nil {
		var reply httpinterface.DerivedAddressReply
		if err := client.get(
			fmt.Sprintf("/v1/marketplaces/%s/auctioneer", addr), &reply,
		); err != nil {
			return err
		}
		authority = &reply.Address
	}

	var delegation domain.AuctioneerDelegation
	if err := client.post("/v1/marketplace/delegate", httpinterface.DelegateRequest{
		Marketplace:         addr,
		AuctioneerAuthority: *authority,
	}, &delegation); err != nil {
		return err
	}

	printRespJSON(delegation)
	return nil
}

func marketplaceTradeStatesAction(ctx *cli.Context) error {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	var tradeStates []domain.TradeState
	if err := client.get(
		fmt.Sprintf("/v1/marketplaces/%s/tradestates", addr), &tradeStates,
	); err != nil {
		return err
	}

	printRespJSON(tradeStates)
	return nil
}

func addressOrSigner(
	ctx *cli.Context, name string, client *client,
) (address.Address, error) {
	if ctx.String(name) == "" {
		return client.keypair.Address(), nil
	}
	return parseAddressFlag(ctx, name)
}

func optionalAddress(ctx *cli.Context, name string) (*address.Address, error) {
	if ctx.String(name) == "" {
		return nil, nil
	}
	addr, err := parseAddressFlag(ctx, name)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}
