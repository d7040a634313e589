package main

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/code-payments/dapp-payments/pkg/solana"
	"github.com/code-payments/dapp-payments/pkg/usdc"
)

const lamportsPerSol = 9

func blockhashFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "blockhash",
		Aliases:  []string{"b"},
		Usage:    "Recent blockhash (base58)",
		Required: true,
	}
}

func keyFlag(name, usage string, required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     name,
		Usage:    usage + " (base58)",
		Required: required,
	}
}

func publicKeyArg(c *cli.Context, name string) (ed25519.PublicKey, error) {
	pub, err := solana.PublicKeyFromString(c.String(name))
	if err != nil {
		return nil, errors.Wrapf(err, "--%s", name)
	}
	return pub, nil
}

func blockhashArg(c *cli.Context) (solana.Blockhash, error) {
	bh, err := solana.BlockhashFromString(c.String("blockhash"))
	if err != nil {
		return solana.Blockhash{}, errors.Wrap(err, "--blockhash")
	}
	return bh, nil
}

// parseAmount scales a whole-unit amount such as "0.5" into base units
func parseAmount(s string, decimals uint8) (uint64, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid amount %q", s)
	}
	return usdc.ToBaseUnits(amount, decimals)
}
