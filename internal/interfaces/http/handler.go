package httpinterface

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tdex-network/auction-house/internal/core/application/auctioneer"
	"github.com/tdex-network/auction-house/internal/core/application/auctionhouse"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

type handler struct {
	auctionHouse auctionhouse.Service
	auctioneer   auctioneer.Service
	enableFaucet bool
}

func decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedRequest, err)
	}
	return nil
}

// serve decodes the request into req, runs op and writes its result.
func serve(
	w http.ResponseWriter, r *http.Request, req interface{},
	op func() (interface{}, error),
) {
	if req != nil {
		if err := decode(r, req); err != nil {
			writeError(w, err)
			return
		}
	}
	res, err := op()
	if err != nil {
		writeError(w, err)
		return
	}
	if res == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) createMarketplace(w http.ResponseWriter, r *http.Request) {
	var req CreateMarketplaceRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctionHouse.CreateMarketplace(
			r.Context(), signerFromContext(r.Context()),
			domain.MarketplaceArgs{
				Authority:                     signerFromContext(r.Context()),
				TreasuryMint:                  req.TreasuryMint,
				FeeWithdrawalDestination:      req.FeeWithdrawalDestination,
				TreasuryWithdrawalDestination: req.TreasuryWithdrawalDestination,
				FeeBasisPoints:                req.FeeBasisPoints,
				CanChangeSalePrice:            req.CanChangeSalePrice,
			},
		)
	})
}

func (h *handler) updateMarketplace(w http.ResponseWriter, r *http.Request) {
	var req UpdateMarketplaceRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctionHouse.UpdateMarketplace(
			r.Context(), signerFromContext(r.Context()), req.Marketplace,
			domain.MarketplaceUpdate{
				FeeBasisPoints:                req.FeeBasisPoints,
				CanChangeSalePrice:            req.CanChangeSalePrice,
				NewAuthority:                  req.NewAuthority,
				FeeWithdrawalDestination:      req.FeeWithdrawalDestination,
				TreasuryWithdrawalDestination: req.TreasuryWithdrawalDestination,
			},
		)
	})
}

func (h *handler) withdrawFromFee(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	serve(w, r, &req, func() (interface{}, error) {
		return nil, h.auctionHouse.WithdrawFromFee(
			r.Context(), signerFromContext(r.Context()), req.Marketplace, req.Amount,
		)
	})
}

func (h *handler) withdrawFromTreasury(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	serve(w, r, &req, func() (interface{}, error) {
		return nil, h.auctionHouse.WithdrawFromTreasury(
			r.Context(), signerFromContext(r.Context()), req.Marketplace, req.Amount,
		)
	})
}

func (h *handler) delegateAuctioneer(w http.ResponseWriter, r *http.Request) {
	var req DelegateRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctionHouse.DelegateAuctioneer(
			r.Context(), signerFromContext(r.Context()),
			req.Marketplace, req.AuctioneerAuthority,
		)
	})
}

func (h *handler) deposit(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctionHouse.Deposit(
			r.Context(), signerFromContext(r.Context()), req.Marketplace, req.Amount, nil,
		)
	})
}

func (h *handler) withdraw(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctionHouse.Withdraw(
			r.Context(), signerFromContext(r.Context()), req.Marketplace, req.Amount, nil,
		)
	})
}

func (h *handler) closeEscrow(w http.ResponseWriter, r *http.Request) {
	var req MarketplaceRequest
	serve(w, r, &req, func() (interface{}, error) {
		return nil, h.auctionHouse.CloseEscrow(
			r.Context(), signerFromContext(r.Context()), req.Marketplace,
		)
	})
}

func (h *handler) sell(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	serve(w, r, &req, func() (interface{}, error) {
		price, err := address.FixedPrice(req.Price)
		if err != nil {
			return nil, err
		}
		return h.auctionHouse.Sell(
			r.Context(), signerFromContext(r.Context()),
			auctionhouse.SellArgs{
				Marketplace:  req.Marketplace,
				TokenAccount: req.TokenAccount,
				Price:        price,
				Quantity:     req.Quantity,
			},
			nil,
		)
	})
}

func (h *handler) buy(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctionHouse.Buy(
			r.Context(), signerFromContext(r.Context()),
			auctionhouse.BuyArgs{
				Marketplace:  req.Marketplace,
				TokenAccount: req.TokenAccount,
				Price:        req.Price,
				Quantity:     req.Quantity,
			},
			nil,
		)
	})
}

func (h *handler) cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctionHouse.Cancel(
			r.Context(), signerFromContext(r.Context()), req.TradeState, nil,
		)
	})
}

func (h *handler) executeSale(w http.ResponseWriter, r *http.Request) {
	var req ExecuteSaleRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctionHouse.ExecuteSale(
			r.Context(), signerFromContext(r.Context()), req.toArgs(), nil,
		)
	})
}

func (h *handler) importAsset(w http.ResponseWriter, r *http.Request) {
	var req ImportAssetRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctionHouse.ImportAsset(
			r.Context(), signerFromContext(r.Context()),
			auctionhouse.ImportAssetArgs{
				Mint:                 req.Mint,
				Name:                 req.Name,
				Symbol:               req.Symbol,
				URI:                  req.URI,
				SellerFeeBasisPoints: req.SellerFeeBasisPoints,
				Creators:             req.Creators,
				Supply:               req.Supply,
				MaxSupply:            req.MaxSupply,
			},
		)
	})
}

func (h *handler) faucet(w http.ResponseWriter, r *http.Request) {
	if !h.enableFaucet {
		writeError(w, ErrFaucetDisabled)
		return
	}
	var req FaucetRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctionHouse.Fund(r.Context(), req.Address, req.Amount)
	})
}

func (h *handler) authorizeAuctioneer(w http.ResponseWriter, r *http.Request) {
	var req MarketplaceRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctioneer.Authorize(
			r.Context(), signerFromContext(r.Context()), req.Marketplace,
		)
	})
}

func (h *handler) auctioneerSell(w http.ResponseWriter, r *http.Request) {
	var req AuctionRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctioneer.Sell(
			r.Context(), signerFromContext(r.Context()),
			auctioneer.SellArgs{
				Marketplace:  req.Marketplace,
				TokenAccount: req.TokenAccount,
				Quantity:     req.Quantity,
				Timing: domain.ListingTiming{
					StartTime:       req.StartTime,
					EndTime:         req.EndTime,
					ReservePrice:    req.ReservePrice,
					MinBidIncrement: req.MinBidIncrement,
					TimeExtPeriod:   req.TimeExtPeriod,
					TimeExtDelta:    req.TimeExtDelta,
				},
			},
		)
	})
}

func (h *handler) auctioneerBuy(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctioneer.Buy(
			r.Context(), signerFromContext(r.Context()),
			auctioneer.BuyArgs{
				Marketplace:  req.Marketplace,
				TokenAccount: req.TokenAccount,
				Price:        req.Price,
				Quantity:     req.Quantity,
			},
		)
	})
}

func (h *handler) auctioneerCancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctioneer.Cancel(
			r.Context(), signerFromContext(r.Context()), req.TradeState,
		)
	})
}

func (h *handler) auctioneerExecuteSale(w http.ResponseWriter, r *http.Request) {
	var req ExecuteSaleRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctioneer.ExecuteSale(
			r.Context(), signerFromContext(r.Context()), req.toArgs(),
		)
	})
}

func (h *handler) auctioneerDeposit(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctioneer.Deposit(
			r.Context(), signerFromContext(r.Context()), req.Marketplace, req.Amount,
		)
	})
}

func (h *handler) auctioneerWithdraw(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	serve(w, r, &req, func() (interface{}, error) {
		return h.auctioneer.Withdraw(
			r.Context(), signerFromContext(r.Context()), req.Marketplace, req.Amount,
		)
	})
}

func (r ExecuteSaleRequest) toArgs() auctionhouse.ExecuteSaleArgs {
	return auctionhouse.ExecuteSaleArgs{
		Marketplace:    r.Marketplace,
		SellTradeState: r.SellTradeState,
		BuyTradeState:  r.BuyTradeState,
		Price:          r.Price,
		Quantity:       r.Quantity,
		Royalties:      r.Royalties,
	}
}
