package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdex-network/auction-house/internal/core/domain"
	httpinterface "github.com/tdex-network/auction-house/internal/interfaces/http"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/urfave/cli/v2"
)

var faucet = cli.Command{
	Name:  "faucet",
	Usage: "credit an account with settlement currency, if enabled by the daemon",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "address",
			Usage: "the account to credit, defaults to the signing key",
		},
		&cli.StringFlag{
			Name:  "amount",
			Usage: "the amount to credit",
		},
	},
	Action: faucetAction,
}

var asset = cli.Command{
	Name:  "asset",
	Usage: "import an asset produced by an external minter",
	Subcommands: []*cli.Command{
		{
			Name:  "import",
			Usage: "import an asset and credit its whole supply to the signing key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "mint",
					Usage: "the mint of the asset, a new one is generated if missing",
				},
				&cli.StringFlag{
					Name:  "name",
					Usage: "the name of the asset",
				},
				&cli.StringFlag{
					Name:  "symbol",
					Usage: "the symbol of the asset",
				},
				&cli.StringFlag{
					Name:  "uri",
					Usage: "the uri of the off-chain metadata",
				},
				&cli.UintFlag{
					Name:  "seller_fee_bps",
					Usage: "the royalty in basis points",
				},
				&cli.StringFlag{
					Name:  "creators",
					Usage: "comma separated list of <address>:<share> whose shares sum up to 100",
				},
				&cli.Uint64Flag{
					Name:  "supply",
					Usage: "the number of units to import",
					Value: 1,
				},
			},
			Action: importAssetAction,
		},
		{
			Name:      "balance",
			Usage:     "show the token account of the signing key for the given mint",
			ArgsUsage: "<mint>",
			Action:    assetBalanceAction,
		},
	},
}

func faucetAction(ctx *cli.Context) error {
	amount, err := parseAmount(ctx, "amount")
	if err != nil {
		return err
	}

	var addr address.Address
	if ctx.String("address") != "" {
		if addr, err = parseAddressFlag(ctx, "address"); err != nil {
			return err
		}
	}

	client, err := getClient()
	if err != nil {
		return err
	}
	if addr.IsZero() {
		signingClient, err := getSigningClient()
		if err != nil {
			return err
		}
		addr = signingClient.keypair.Address()
	}

	var account domain.NativeAccount
	if err := client.post("/v1/faucet", httpinterface.FaucetRequest{
		Address: addr,
		Amount:  amount,
	}, &account); err != nil {
		return err
	}

	fmt.Printf("%s balance: %s\n", account.Address, formatAmount(account.Balance))
	return nil
}

func importAssetAction(ctx *cli.Context) error {
	client, err := getSigningClient()
	if err != nil {
		return err
	}

	var mint address.Address
	if ctx.String("mint") != "" {
		if mint, err = parseAddressFlag(ctx, "mint"); err != nil {
			return err
		}
	} else {
		kp, err := address.NewKeypair()
		if err != nil {
			return err
		}
		mint = kp.Address()
	}

	creators, err := parseCreators(ctx.String("creators"))
	if err != nil {
		return err
	}

	var tokenAccount domain.TokenAccount
	if err := client.post("/v1/asset/import", httpinterface.ImportAssetRequest{
		Mint:                 mint,
		Name:                 ctx.String("name"),
		Symbol:               ctx.String("symbol"),
		URI:                  ctx.String("uri"),
		SellerFeeBasisPoints: uint16(ctx.Uint("seller_fee_bps")),
		Creators:             creators,
		Supply:               ctx.Uint64("supply"),
	}, &tokenAccount); err != nil {
		return err
	}

	printRespJSON(tokenAccount)
	return nil
}

func assetBalanceAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("mint is missing")
	}
	mint, err := address.FromString(ctx.Args().First())
	if err != nil {
		return err
	}

	client, err := getSigningClient()
	if err != nil {
		return err
	}
	addr, err := client.tokenAccountOf(client.keypair.Address(), mint)
	if err != nil {
		return err
	}

	var tokenAccount domain.TokenAccount
	if err := client.get("/v1/tokens/"+addr.String(), &tokenAccount); err != nil {
		return err
	}

	printRespJSON(tokenAccount)
	return nil
}

func parseCreators(str string) ([]domain.RoyaltyShare, error) {
	if str == "" {
		return nil, nil
	}

	creators := make([]domain.RoyaltyShare, 0)
	for _, c := range strings.Split(str, ",") {
		parts := strings.Split(strings.TrimSpace(c), ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid creator %s, must be <address>:<share>", c)
		}
		addr, err := address.FromString(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid creator address: %w", err)
		}
		share, err := strconv.ParseUint(parts[1], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid creator share: %w", err)
		}
		creators = append(creators, domain.RoyaltyShare{
			Address: addr,
			Share:   uint8(share),
		})
	}
	return creators, nil
}
