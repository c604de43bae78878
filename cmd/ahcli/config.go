package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v2"
)

const (
	rpcServerKey   = "rpcserver"
	keyFileKey     = "keyfile"
	marketplaceKey = "marketplace"
)

var stateKeys = map[string]bool{
	rpcServerKey:   true,
	keyFileKey:     true,
	marketplaceKey: true,
}

var (
	rpcFlag = cli.StringFlag{
		Name:  rpcServerKey,
		Usage: "auctionhoused address scheme://host:port",
		Value: "http://localhost:9090",
	}

	keyFileFlag = cli.StringFlag{
		Name:  keyFileKey,
		Usage: "path of the file holding the hex encoded signing key",
		Value: filepath.Join(ahcliDataDir, "key"),
	}
)

var config = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the ahcli",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&rpcFlag,
				&keyFileFlag,
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(state))
	for key := range state {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%s: %s\n", key, state[key])
	}
	return nil
}

func configInitAction(c *cli.Context) error {
	return setState(map[string]string{
		rpcServerKey: c.String(rpcServerKey),
		keyFileKey:   c.String(keyFileKey),
	})
}

func configSetAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: config set <key> <value>")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)
	if !stateKeys[key] {
		return fmt.Errorf("unknown key %q", key)
	}

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}
	fmt.Printf("%s set to %s\n", key, value)
	return nil
}

func getFromState(key string) (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	value, ok := state[key]
	if !ok || value == "" {
		return "", fmt.Errorf("set %s with `config set %s`", key, key)
	}
	return value, nil
}
