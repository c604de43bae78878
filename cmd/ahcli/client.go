package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	httpinterface "github.com/tdex-network/auction-house/internal/interfaces/http"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/circuitbreaker"
	"github.com/tdex-network/auction-house/pkg/mathutil"
	"github.com/urfave/cli/v2"
)

const (
	// base units per unit of the settlement currency
	currencyPrecision = 9
	requestTimeout    = 30 * time.Second
)

type client struct {
	baseURL string
	keypair *address.Keypair
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
}

type reply struct {
	status int
	body   []byte
}

func getClient() (*client, error) {
	rpcServer, err := getFromState(rpcServerKey)
	if err != nil {
		return nil, err
	}

	return &client{
		baseURL: strings.TrimSuffix(rpcServer, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		cb:      circuitbreaker.NewCircuitBreaker("auctionhoused"),
	}, nil
}

// getSigningClient returns a client that signs requests with the key found
// at the configured keyfile.
func getSigningClient() (*client, error) {
	c, err := getClient()
	if err != nil {
		return nil, err
	}
	keyFile, err := getFromState(keyFileKey)
	if err != nil {
		return nil, err
	}
	if c.keypair, err = address.LoadKeypair(keyFile); err != nil {
		return nil, fmt.Errorf("loading key: %w, try 'keygen'", err)
	}
	return c, nil
}

func (c *client) post(path string, req, resp interface{}) error {
	buf, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return c.do("POST", path, buf, resp)
}

func (c *client) get(path string, resp interface{}) error {
	return c.do("GET", path, nil, resp)
}

// do sends the request through the circuit breaker. Only transport errors
// and server failures count against the breaker, rejections of the protocol
// are returned to the caller as they are.
func (c *client) do(method, path string, body []byte, resp interface{}) error {
	res, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.keypair != nil && body != nil {
			httpinterface.SignRequest(req, c.keypair, body)
		}

		r, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to server: %w", err)
		}
		defer r.Body.Close()

		buf, err := ioutil.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if r.StatusCode >= http.StatusInternalServerError {
			return nil, replyError(r.StatusCode, buf)
		}
		return &reply{r.StatusCode, buf}, nil
	})
	if err != nil {
		return err
	}

	r := res.(*reply)
	if r.status >= http.StatusBadRequest {
		return replyError(r.status, r.body)
	}
	if resp == nil || r.status == http.StatusNoContent {
		return nil
	}
	return json.Unmarshal(r.body, resp)
}

func replyError(status int, body []byte) error {
	var e httpinterface.ErrorReply
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return fmt.Errorf("%s", http.StatusText(status))
	}
	return fmt.Errorf("%s (%d)", e.Error, status)
}

func parseAddressFlag(ctx *cli.Context, name string) (address.Address, error) {
	str := ctx.String(name)
	if str == "" {
		return address.Address{}, fmt.Errorf("missing %s", name)
	}
	addr, err := address.FromString(str)
	if err != nil {
		return address.Address{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return addr, nil
}

// getMarketplace returns the marketplace flag if given, the one in the local
// state otherwise.
func getMarketplace(ctx *cli.Context) (address.Address, error) {
	if ctx.String(marketplaceKey) != "" {
		return parseAddressFlag(ctx, marketplaceKey)
	}
	str, err := getFromState(marketplaceKey)
	if err != nil {
		return address.Address{}, err
	}
	return address.FromString(str)
}

// parseAmount converts a decimal amount of the settlement currency into base
// units.
func parseAmount(ctx *cli.Context, name string) (uint64, error) {
	str := ctx.String(name)
	if str == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	amount, err := mathutil.ToUnits(str, currencyPrecision)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return amount, nil
}

func formatAmount(units uint64) string {
	return mathutil.FromUnits(units, currencyPrecision)
}

// tokenAccountOf resolves the associated token account of owner for mint.
func (c *client) tokenAccountOf(owner, mint address.Address) (address.Address, error) {
	var reply httpinterface.DerivedAddressReply
	if err := c.get(
		fmt.Sprintf("/v1/derive/tokenaccount?owner=%s&mint=%s", owner, mint), &reply,
	); err != nil {
		return address.Address{}, err
	}
	return reply.Address, nil
}

var marketplaceFlag = cli.StringFlag{
	Name:  marketplaceKey,
	Usage: "the marketplace address, defaults to the one in the local state",
}
