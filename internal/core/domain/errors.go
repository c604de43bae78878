package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the signer is not the owner or the
	// authority required by the operation.
	ErrUnauthorized = errors.New("signer is not authorized to perform this operation")
	// ErrNotAuthorized is returned when an auctioneer-mediated operation is
	// attempted without a matching delegation and authorization.
	ErrNotAuthorized = errors.New("auctioneer is not authorized for this marketplace")
	// ErrNoAuctioneer is returned when an auctioneer-mediated operation targets
	// a marketplace without a delegated auctioneer.
	ErrNoAuctioneer = fmt.Errorf("%w: no auctioneer set for this marketplace", ErrNotAuthorized)
	// ErrAlreadyExists is returned when a derived address is already
	// initialized.
	ErrAlreadyExists = errors.New("account already exists at derived address")
	// ErrNotFound ...
	ErrNotFound = errors.New("account not found")
	// ErrStaleTradeState is returned when a trade state is missing or retired.
	ErrStaleTradeState = errors.New("trade state is not active")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNotEmpty is returned when closing an escrow with a positive balance.
	ErrNotEmpty = errors.New("escrow balance must be zero to close it")
	// ErrInvalidRoyaltySplit is returned when royalty shares do not sum to 100.
	ErrInvalidRoyaltySplit = errors.New("royalty shares must sum up to 100")
	// ErrAuctionNotOpen ...
	ErrAuctionNotOpen = errors.New("auction is not open")
	// ErrBelowReserve ...
	ErrBelowReserve = errors.New("bid is below reserve price")
	// ErrIncrementTooSmall ...
	ErrIncrementTooSmall = errors.New("bid does not meet the minimum increment over the highest bid")
	// ErrMismatch is returned when a sell and a buy trade state disagree on
	// asset, marketplace, price or quantity.
	ErrMismatch = errors.New("trade states do not match")
	// ErrInvalidBasisPoints ...
	ErrInvalidBasisPoints = errors.New("basis points must be less than or equal to 10000")
	// ErrInvalidQuantity ...
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrNotEnoughTokens is returned when the holding account does not hold
	// the quantity being listed or bought.
	ErrNotEnoughTokens = errors.New("not enough tokens available")
	// ErrDelegateMissing is returned at settlement when the seller's holding
	// account did not approve the program signer for the listed quantity.
	ErrDelegateMissing = errors.New("token account delegate is not set for the program signer")
	// ErrFreeSaleRequiresSignoff ...
	ErrFreeSaleRequiresSignoff = errors.New("cannot match free sales unless the authority or seller signs off")
	// ErrCannotCancelHighestBid ...
	ErrCannotCancelHighestBid = errors.New("cannot cancel the highest bid")
	// ErrNotHighestBidder ...
	ErrNotHighestBidder = errors.New("buyer is not the highest bidder")
	// ErrAuctionActive is returned when settling an auction that did not end.
	ErrAuctionActive = errors.New("auction has not ended yet")
	// ErrInvalidTiming ...
	ErrInvalidTiming = errors.New("auction end time must be after start time")
	// ErrUnboundPriceRequiresAuctioneer ...
	ErrUnboundPriceRequiresAuctioneer = errors.New("unbound price listings require an auctioneer")
	// ErrPriceChangeNotAllowed is returned when settling at a price different
	// from the listing on a marketplace that does not allow it.
	ErrPriceChangeNotAllowed = errors.New("marketplace does not allow changing the sale price")
	// ErrDerivedKeyInvalid is returned when a provided address does not match
	// its expected derivation.
	ErrDerivedKeyInvalid = errors.New("derived key invalid")
	// ErrNumericalOverflow ...
	ErrNumericalOverflow = errors.New("numerical overflow")
	// ErrNonceUsed is returned when a signer reuses the nonce of a request
	// that was already applied.
	ErrNonceUsed = errors.New("request nonce already used")
	// ErrRequestExpired ...
	ErrRequestExpired = errors.New("request is expired")
)
