package main

import (
	"github.com/tdex-network/auction-house/internal/core/application/auctionhouse"
	"github.com/tdex-network/auction-house/internal/core/domain"
	httpinterface "github.com/tdex-network/auction-house/internal/interfaces/http"
	"github.com/urfave/cli/v2"
)

var (
	mintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "the mint of the asset",
	}
	priceFlag = cli.StringFlag{
		Name:  "price",
		Usage: "the price in settlement currency",
	}
	quantityFlag = cli.Uint64Flag{
		Name:  "quantity",
		Usage: "the number of units",
		Value: 1,
	}
	tradeStateFlag = cli.StringFlag{
		Name:  "trade_state",
		Usage: "the address of the trade state",
	}
	sellerFlag = cli.StringFlag{
		Name:  "seller",
		Usage: "the owner of the listed asset",
	}
)

var sell = cli.Command{
	Name:   "sell",
	Usage:  "list units of an asset held by the signing key at a fixed price",
	Flags:  []cli.Flag{&marketplaceFlag, &mintFlag, &priceFlag, &quantityFlag},
	Action: sellAction,
}

var buy = cli.Command{
	Name:   "buy",
	Usage:  "place a bid at a fixed price backed by the escrow of the signing key",
	Flags:  []cli.Flag{&marketplaceFlag, &mintFlag, &sellerFlag, &priceFlag, &quantityFlag},
	Action: buyAction,
}

var cancel = cli.Command{
	Name:   "cancel",
	Usage:  "retire a listing or a bid of the signing key",
	Flags:  []cli.Flag{&tradeStateFlag},
	Action: cancelAction,
}

var executeSale = cli.Command{
	Name:  "executesale",
	Usage: "settle a matching listing and bid",
	Flags: []cli.Flag{
		&marketplaceFlag,
		&cli.StringFlag{
			Name:  "sell_trade_state",
			Usage: "the address of the listing",
		},
		&cli.StringFlag{
			Name:  "buy_trade_state",
			Usage: "the address of the bid",
		},
		&priceFlag,
		&quantityFlag,
		&cli.StringFlag{
			Name:  "royalties",
			Usage: "comma separated list of <address>:<share>, defaults to the asset creators",
		},
	},
	Action: executeSaleAction,
}

func sellAction(ctx *cli.Context) error {
	req, client, err := parseTradeRequest(ctx, false)
	if err != nil {
		return err
	}

	var res auctionhouse.SellResult
	if err := client.post("/v1/sell", req, &res); err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func buyAction(ctx *cli.Context) error {
	req, client, err := parseTradeRequest(ctx, true)
	if err != nil {
		return err
	}

	var ts domain.TradeState
	if err := client.post("/v1/buy", req, &ts); err != nil {
		return err
	}

	printRespJSON(ts)
	return nil
}

func cancelAction(ctx *cli.Context) error {
	return cancelTradeState(ctx, "/v1/cancel")
}

func cancelTradeState(ctx *cli.Context, path string) error {
	tradeState, err := parseAddressFlag(ctx, "trade_state")
	if err != nil {
		return err
	}
	client, err := getSigningClient()
	if err != nil {
		return err
	}

	var ts domain.TradeState
	if err := client.post(path, httpinterface.CancelRequest{
		TradeState: tradeState,
	}, &ts); err != nil {
		return err
	}

	printRespJSON(ts)
	return nil
}

func executeSaleAction(ctx *cli.Context) error {
	req, client, err := parseExecuteSaleRequest(ctx)
	if err != nil {
		return err
	}

	var r domain.SaleReceipt
	if err := client.post("/v1/executesale", req, &r); err != nil {
		return err
	}

	printRespJSON(r)
	return nil
}

// parseTradeRequest resolves the token account holding the asset, owned by
// the signing key or by the given seller when bidding.
func parseTradeRequest(
	ctx *cli.Context, bid bool,
) (*httpinterface.TradeRequest, *client, error) {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return nil, nil, err
	}
	mint, err := parseAddressFlag(ctx, "mint")
	if err != nil {
		return nil, nil, err
	}
	price, err := parseAmount(ctx, "price")
	if err != nil {
		return nil, nil, err
	}
	client, err := getSigningClient()
	if err != nil {
		return nil, nil, err
	}

	owner := client.keypair.Address()
	if bid {
		if owner, err = parseAddressFlag(ctx, "seller"); err != nil {
			return nil, nil, err
		}
	}
	tokenAccount, err := client.tokenAccountOf(owner, mint)
	if err != nil {
		return nil, nil, err
	}

	return &httpinterface.TradeRequest{
		Marketplace:  addr,
		TokenAccount: tokenAccount,
		Price:        price,
		Quantity:     ctx.Uint64("quantity"),
	}, client, nil
}

func parseExecuteSaleRequest(
	ctx *cli.Context,
) (*httpinterface.ExecuteSaleRequest, *client, error) {
	addr, err := getMarketplace(ctx)
	if err != nil {
		return nil, nil, err
	}
	sellTradeState, err := parseAddressFlag(ctx, "sell_trade_state")
	if err != nil {
		return nil, nil, err
	}
	buyTradeState, err := parseAddressFlag(ctx, "buy_trade_state")
	if err != nil {
		return nil, nil, err
	}
	royalties, err := parseCreators(ctx.String("royalties"))
	if err != nil {
		return nil, nil, err
	}
	client, err := getSigningClient()
	if err != nil {
		return nil, nil, err
	}

	var price uint64
	if ctx.String("price") != "" {
		if price, err = parseAmount(ctx, "price"); err != nil {
			return nil, nil, err
		}
	} else {
		// settle at the bid price
		var bid domain.TradeState
		if err := client.get("/v1/tradestates/"+buyTradeState.String(), &bid); err != nil {
			return nil, nil, err
		}
		price = bid.Price.Value()
	}

	return &httpinterface.ExecuteSaleRequest{
		Marketplace:    addr,
		SellTradeState: sellTradeState,
		BuyTradeState:  buyTradeState,
		Price:          price,
		Quantity:       ctx.Uint64("quantity"),
		Royalties:      royalties,
	}, client, nil
}
