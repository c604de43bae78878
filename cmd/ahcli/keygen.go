package main

import (
	"fmt"
	"os"

	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/urfave/cli/v2"
)

var keygen = cli.Command{
	Name:  "keygen",
	Usage: "generate a new signing key and store it at the configured keyfile",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "force",
			Usage: "overwrite an existing key",
		},
	},
	Action: keygenAction,
}

var whoami = cli.Command{
	Name:   "whoami",
	Usage:  "print the address of the configured signing key",
	Action: whoamiAction,
}

func keygenAction(ctx *cli.Context) error {
	keyFile, err := getFromState(keyFileKey)
	if err != nil {
		return err
	}
	if _, err := os.Stat(keyFile); err == nil && !ctx.Bool("force") {
		return fmt.Errorf("key already exists at %s, use --force to replace it", keyFile)
	}

	kp, err := address.NewKeypair()
	if err != nil {
		return err
	}
	if err := kp.Store(keyFile); err != nil {
		return err
	}

	fmt.Println(kp.Address())
	return nil
}

func whoamiAction(ctx *cli.Context) error {
	keyFile, err := getFromState(keyFileKey)
	if err != nil {
		return err
	}
	kp, err := address.LoadKeypair(keyFile)
	if err != nil {
		return err
	}

	fmt.Println(kp.Address())
	return nil
}
