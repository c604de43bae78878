package main

import (
	"fmt"
	"time"

	"github.com/tdex-network/auction-house/internal/core/application/auctioneer"
	"github.com/tdex-network/auction-house/internal/core/domain"
	httpinterface "github.com/tdex-network/auction-house/internal/interfaces/http"
	"github.com/urfave/cli/v2"
)

var (
	auction = cli.Command{
		Name:  "auction",
		Usage: "list and bid through the timed auction strategy",
		Subcommands: []*cli.Command{
			auctionAuthorizeCmd, auctionSellCmd, auctionBidCmd, auctionCancelCmd,
			auctionSettleCmd, auctionDepositCmd, auctionWithdrawCmd,
			auctionListCmd, auctionInfoCmd,
		},
	}

	listingFlag = cli.StringFlag{
		Name:  "listing",
		Usage: "the address of the listing config",
	}

	auctionAuthorizeCmd = &cli.Command{
		Name:   "authorize",
		Usage:  "let the timed auction strategy act on the marketplace administered by the signing key",
		Flags:  []cli.Flag{&marketplaceFlag},
		Action: auctionAuthorizeAction,
	}
	auctionSellCmd = &cli.Command{
		Name:  "sell",
		Usage: "open a timed auction for units held by the signing key",
		Flags: []cli.Flag{
			&marketplaceFlag,
			&mintFlag,
			&quantityFlag,
			&cli.DurationFlag{
				Name:  "start_in",
				Usage: "delay before the auction opens",
			},
			&cli.DurationFlag{
				Name:  "duration",
				Usage: "how long the auction stays open",
				Value: 24 * time.Hour,
			},
			&cli.StringFlag{
				Name:  "reserve_price",
				Usage: "the minimum acceptable bid",
				Value: "0",
			},
			&cli.StringFlag{
				Name:  "min_bid_increment",
				Usage: "the minimum raise over the highest bid",
				Value: "0",
			},
			&cli.DurationFlag{
				Name:  "time_ext_period",
				Usage: "bids placed this close to the end extend the auction",
			},
			&cli.DurationFlag{
				Name:  "time_ext_delta",
				Usage: "how far from the bid time the end is pushed",
			},
		},
		Action: auctionSellAction,
	}
	auctionBidCmd = &cli.Command{
		Name:   "bid",
		Usage:  "bid on an open auction",
		Flags:  []cli.Flag{&marketplaceFlag, &mintFlag, &sellerFlag, &priceFlag, &quantityFlag},
		Action: auctionBidAction,
	}
	auctionCancelCmd = &cli.Command{
		Name:   "cancel",
		Usage:  "cancel an auction or a bid that is not the highest",
		Flags:  []cli.Flag{&tradeStateFlag},
		Action: auctionCancelAction,
	}
	auctionSettleCmd = &cli.Command{
		Name:   "settle",
		Usage:  "settle an ended auction with its highest bid",
		Flags:  []cli.Flag{&listingFlag},
		Action: auctionSettleAction,
	}
	auctionDepositCmd = &cli.Command{
		Name:  "deposit",
		Usage: "move funds of the signing key into its escrow",
		Flags: []cli.Flag{
			&marketplaceFlag,
			&cli.StringFlag{
				Name:  "amount",
				Usage: "the amount to deposit",
			},
		},
		Action: auctionDepositAction,
	}
	auctionWithdrawCmd = &cli.Command{
		Name:  "withdraw",
		Usage: "move funds not backing a highest bid back to the signing key",
		Flags: []cli.Flag{
			&marketplaceFlag,
			&cli.StringFlag{
				Name:  "amount",
				Usage: "the amount to withdraw",
			},
		},
		Action: auctionWithdrawAction,
	}
	auctionListCmd = &cli.Command{
		Name:   "list",
		Usage:  "list the active auctions of the marketplace",
		Flags:  []cli.Flag{&marketplaceFlag},
		Action: auctionListAction,
	}
	auctionInfoCmd = &cli.Command{
		Name:   "info",
		Usage:  "get info about an auction",
		Flags:  []cli.Flag{&listingFlag},
		Action: auctionInfoAction,
	}
)

func auctionAuthorizeAction(ctx *cli.Context) error {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	client, err := getSigningClient()
	if err != nil {
		return err
	}

	var authority domain.AuctioneerAuthority
	if err := client.post("/v1/auctioneer/authorize", httpinterface.MarketplaceRequest{
		Marketplace: addr,
	}, &authority); err != nil {
		return err
	}

	printRespJSON(authority)
	fmt.Println("delegate to it with 'marketplace delegate'")
	return nil
}

func auctionSellAction(ctx *cli.Context) error {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	mint, err := parseAddressFlag(ctx, "mint")
	if err != nil {
		return err
	}
	reservePrice, err := parseAmount(ctx, "reserve_price")
	if err != nil {
		return err
	}
	minBidIncrement, err := parseAmount(ctx, "min_bid_increment")
	if err != nil {
		return err
	}
	client, err := getSigningClient()
	if err != nil {
		return err
	}
	tokenAccount, err := client.tokenAccountOf(client.keypair.Address(), mint)
	if err != nil {
		return err
	}

	start := time.Now().Add(ctx.Duration("start_in"))
	end := start.Add(ctx.Duration("duration"))

	var res auctioneer.SellResult
	if err := client.post("/v1/auctioneer/sell", httpinterface.AuctionRequest{
		Marketplace:     addr,
		TokenAccount:    tokenAccount,
		Quantity:        ctx.Uint64("quantity"),
		StartTime:       start.Unix(),
		EndTime:         end.Unix(),
		ReservePrice:    reservePrice,
		MinBidIncrement: minBidIncrement,
		TimeExtPeriod:   uint32(ctx.Duration("time_ext_period").Seconds()),
		TimeExtDelta:    uint32(ctx.Duration("time_ext_delta").Seconds()),
	}, &res); err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func auctionBidAction(ctx *cli.Context) error {
	req, client, err := parseTradeRequest(ctx, true)
	if err != nil {
		return err
	}

	var res auctioneer.BuyResult
	if err := client.post("/v1/auctioneer/buy", req, &res); err != nil {
		return err
	}

	printRespJSON(res)
	if res.Extended {
		fmt.Printf(
			"auction extended until %s\n",
			time.Unix(res.Listing.EndTime, 0).Format(time.RFC3339),
		)
	}
	return nil
}

func auctionCancelAction(ctx *cli.Context) error {
	return cancelTradeState(ctx, "/v1/auctioneer/cancel")
}

// auctionSettleAction matches the listing with its highest bid.
func auctionSettleAction(ctx *cli.Context) error {
	listingAddr, err := parseAddressFlag(ctx, "listing")
	if err != nil {
		return err
	}
	client, err := getSigningClient()
	if err != nil {
		return err
	}

	var listing domain.ListingConfig
	if err := client.get("/v1/listings/"+listingAddr.String(), &listing); err != nil {
		return err
	}
	if listing.HighestBid == nil {
		return fmt.Errorf("auction has no bids")
	}

	var sellTradeState httpinterface.DerivedAddressReply
	if err := client.get(fmt.Sprintf(
		"/v1/derive/tradestate?wallet=%s&marketplace=%s&tokenAccount=%s&quantity=%d",
		listing.Seller, listing.Marketplace, listing.TokenAccount, listing.Quantity,
	), &sellTradeState); err != nil {
		return err
	}

	var r domain.SaleReceipt
	if err := client.post("/v1/auctioneer/executesale", httpinterface.ExecuteSaleRequest{
		Marketplace:    listing.Marketplace,
		SellTradeState: sellTradeState.Address,
		BuyTradeState:  listing.HighestBid.BuyerTradeState,
		Price:          listing.HighestBid.Amount,
		Quantity:       listing.Quantity,
	}, &r); err != nil {
		return err
	}

	printRespJSON(r)
	return nil
}

func auctionDepositAction(ctx *cli.Context) error {
	return moveEscrowFunds(ctx, "/v1/auctioneer/deposit")
}

func auctionWithdrawAction(ctx *cli.Context) error {
	return moveEscrowFunds(ctx, "/v1/auctioneer/withdraw")
}

func auctionListAction(ctx *cli.Context) error {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	var listings []domain.ListingConfig
	if err := client.get(
		fmt.Sprintf("/v1/marketplaces/%s/listings", addr), &listings,
	); err != nil {
		return err
	}

	printRespJSON(listings)
	return nil
}

func auctionInfoAction(ctx *cli.Context) error {
	listingAddr, err := parseAddressFlag(ctx, "listing")
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}

	var listing domain.ListingConfig
	if err := client.get("/v1/listings/"+listingAddr.String(), &listing); err != nil {
		return err
	}

	printRespJSON(listing)
	return nil
}
