package httpinterface

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/tdex-network/auction-house/pkg/address"
)

const defaultJournalPageSize = 100

func pathAddress(r *http.Request, key string) (address.Address, error) {
	return parseAddress(mux.Vars(r)[key], key)
}

func queryAddress(r *http.Request, key string) (address.Address, error) {
	return parseAddress(r.URL.Query().Get(key), key)
}

func parseAddress(str, key string) (address.Address, error) {
	addr, err := address.FromString(str)
	if err != nil {
		return address.Address{}, fmt.Errorf("%w: invalid %s", ErrMalformedRequest, key)
	}
	return addr, nil
}

func queryUint(r *http.Request, key string, defaultValue uint64) (uint64, error) {
	str := r.URL.Query().Get(key)
	if str == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", ErrMalformedRequest, key)
	}
	return v, nil
}

// serveAddress runs op with the address found in the request path.
func serveAddress(
	w http.ResponseWriter, r *http.Request,
	op func(addr address.Address) (interface{}, error),
) {
	serve(w, r, nil, func() (interface{}, error) {
		addr, err := pathAddress(r, "address")
		if err != nil {
			return nil, err
		}
		return op(addr)
	})
}

func (h *handler) listMarketplaces(w http.ResponseWriter, r *http.Request) {
	serve(w, r, nil, func() (interface{}, error) {
		return h.auctionHouse.ListMarketplaces(r.Context())
	})
}

func (h *handler) getMarketplace(w http.ResponseWriter, r *http.Request) {
	serveAddress(w, r, func(addr address.Address) (interface{}, error) {
		return h.auctionHouse.GetMarketplace(r.Context(), addr)
	})
}

func (h *handler) getAuctioneerAuthority(w http.ResponseWriter, r *http.Request) {
	serveAddress(w, r, func(addr address.Address) (interface{}, error) {
		return DerivedAddressReply{Address: h.auctioneer.AuthorityAddress(addr)}, nil
	})
}

func (h *handler) getEscrow(w http.ResponseWriter, r *http.Request) {
	serveAddress(w, r, func(addr address.Address) (interface{}, error) {
		wallet, err := pathAddress(r, "wallet")
		if err != nil {
			return nil, err
		}
		return h.auctionHouse.GetEscrow(r.Context(), addr, wallet)
	})
}

func (h *handler) listActiveTradeStates(w http.ResponseWriter, r *http.Request) {
	serveAddress(w, r, func(addr address.Address) (interface{}, error) {
		return h.auctionHouse.ListActiveTradeStates(r.Context(), addr)
	})
}

func (h *handler) listActiveListings(w http.ResponseWriter, r *http.Request) {
	serveAddress(w, r, func(addr address.Address) (interface{}, error) {
		return h.auctioneer.ListActiveListings(r.Context(), addr)
	})
}

func (h *handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	serveAddress(w, r, func(addr address.Address) (interface{}, error) {
		return h.auctionHouse.ListReceipts(r.Context(), addr)
	})
}

func (h *handler) getTradeState(w http.ResponseWriter, r *http.Request) {
	serveAddress(w, r, func(addr address.Address) (interface{}, error) {
		return h.auctionHouse.GetTradeState(r.Context(), addr)
	})
}

func (h *handler) getListingConfig(w http.ResponseWriter, r *http.Request) {
	serveAddress(w, r, func(addr address.Address) (interface{}, error) {
		return h.auctioneer.GetListingConfig(r.Context(), addr)
	})
}

func (h *handler) getNativeAccount(w http.ResponseWriter, r *http.Request) {
	serveAddress(w, r, func(addr address.Address) (interface{}, error) {
		return h.auctionHouse.GetNativeAccount(r.Context(), addr)
	})
}

func (h *handler) getTokenAccount(w http.ResponseWriter, r *http.Request) {
	serveAddress(w, r, func(addr address.Address) (interface{}, error) {
		return h.auctionHouse.GetTokenAccount(r.Context(), addr)
	})
}

func (h *handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	serve(w, r, nil, func() (interface{}, error) {
		return h.auctionHouse.GetReceipt(r.Context(), mux.Vars(r)["id"])
	})
}

func (h *handler) listJournal(w http.ResponseWriter, r *http.Request) {
	serve(w, r, nil, func() (interface{}, error) {
		from, err := queryUint(r, "from", 0)
		if err != nil {
			return nil, err
		}
		limit, err := queryUint(r, "limit", defaultJournalPageSize)
		if err != nil {
			return nil, err
		}
		return h.auctionHouse.ListJournal(r.Context(), from, int(limit))
	})
}

func (h *handler) deriveMarketplace(w http.ResponseWriter, r *http.Request) {
	serve(w, r, nil, func() (interface{}, error) {
		creator, err := queryAddress(r, "creator")
		if err != nil {
			return nil, err
		}
		treasuryMint, err := queryAddress(r, "treasuryMint")
		if err != nil {
			return nil, err
		}
		addr, bump := h.auctionHouse.Deriver().Marketplace(creator, treasuryMint)
		return DerivedAddressReply{addr, bump}, nil
	})
}

func (h *handler) deriveEscrow(w http.ResponseWriter, r *http.Request) {
	serve(w, r, nil, func() (interface{}, error) {
		marketplace, err := queryAddress(r, "marketplace")
		if err != nil {
			return nil, err
		}
		wallet, err := queryAddress(r, "wallet")
		if err != nil {
			return nil, err
		}
		addr, bump := h.auctionHouse.Deriver().Escrow(marketplace, wallet)
		return DerivedAddressReply{addr, bump}, nil
	})
}

func (h *handler) deriveTokenAccount(w http.ResponseWriter, r *http.Request) {
	serve(w, r, nil, func() (interface{}, error) {
		owner, err := queryAddress(r, "owner")
		if err != nil {
			return nil, err
		}
		mint, err := queryAddress(r, "mint")
		if err != nil {
			return nil, err
		}
		addr, bump := h.auctionHouse.Deriver().AssociatedTokenAccount(owner, mint)
		return DerivedAddressReply{addr, bump}, nil
	})
}

// deriveTradeState resolves the trade state of wallet for the asset held by
// tokenAccount. A missing price selects the unbound auction listing.
func (h *handler) deriveTradeState(w http.ResponseWriter, r *http.Request) {
	serve(w, r, nil, func() (interface{}, error) {
		wallet, err := queryAddress(r, "wallet")
		if err != nil {
			return nil, err
		}
		marketplaceAddr, err := queryAddress(r, "marketplace")
		if err != nil {
			return nil, err
		}
		tokenAccountAddr, err := queryAddress(r, "tokenAccount")
		if err != nil {
			return nil, err
		}
		quantity, err := queryUint(r, "quantity", 1)
		if err != nil {
			return nil, err
		}
		price := address.Unbound()
		if r.URL.Query().Get("price") != "" {
			amount, err := queryUint(r, "price", 0)
			if err != nil {
				return nil, err
			}
			if price, err = address.FixedPrice(amount); err != nil {
				return nil, err
			}
		}

		marketplace, err := h.auctionHouse.GetMarketplace(r.Context(), marketplaceAddr)
		if err != nil {
			return nil, err
		}
		tokenAccount, err := h.auctionHouse.GetTokenAccount(r.Context(), tokenAccountAddr)
		if err != nil {
			return nil, err
		}
		addr, bump := h.auctionHouse.Deriver().TradeState(
			wallet, marketplace.Address, tokenAccount.Address,
			marketplace.TreasuryMint, tokenAccount.Mint, price, quantity,
		)
		return DerivedAddressReply{addr, bump}, nil
	})
}
