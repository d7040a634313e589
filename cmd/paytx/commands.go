package main

import (
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/code-payments/dapp-payments/pkg/payment"
	"github.com/code-payments/dapp-payments/pkg/solana"
	"github.com/code-payments/dapp-payments/pkg/solana/token"
	"github.com/code-payments/dapp-payments/pkg/usdc"
)

func nativeCommand() *cli.Command {
	return &cli.Command{
		Name:  "native",
		Usage: "Build a SOL transfer",
		Flags: []cli.Flag{
			keyFlag("from", "Sender wallet", true),
			keyFlag("to", "Recipient wallet", true),
			&cli.Uint64Flag{
				Name:  "lamports",
				Usage: "Amount in lamports",
			},
			&cli.StringFlag{
				Name:  "sol",
				Usage: "Amount in SOL, for example 0.01",
			},
			blockhashFlag(),
		},
		Action: func(c *cli.Context) error {
			from, err := publicKeyArg(c, "from")
			if err != nil {
				return err
			}
			to, err := publicKeyArg(c, "to")
			if err != nil {
				return err
			}
			bh, err := blockhashArg(c)
			if err != nil {
				return err
			}

			lamports := c.Uint64("lamports")
			if c.IsSet("sol") {
				if c.IsSet("lamports") {
					return errors.New("--lamports and --sol are mutually exclusive")
				}
				if lamports, err = parseAmount(c.String("sol"), lamportsPerSol); err != nil {
					return err
				}
			}
			if lamports == 0 {
				return errors.New("an amount is required")
			}

			txn, err := payment.MakeNativeTransferTransaction(from, to, lamports, bh)
			if err != nil {
				return err
			}
			return printEnvelope(c, payment.FlowNativeTransfer, txn)
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Build an SPL token transfer between associated token accounts",
		Flags: []cli.Flag{
			keyFlag("from", "Sender wallet", true),
			keyFlag("to", "Recipient wallet", true),
			keyFlag("mint", "Token mint", false),
			&cli.UintFlag{
				Name:  "decimals",
				Usage: "Decimals of the mint",
			},
			&cli.BoolFlag{
				Name:  "usdc",
				Usage: "Pay in USDC, setting the mint and decimals",
			},
			&cli.Uint64Flag{
				Name:  "amount",
				Usage: "Amount in base units",
			},
			&cli.StringFlag{
				Name:  "ui-amount",
				Usage: "Amount in whole tokens, for example 1.5",
			},
			&cli.BoolFlag{
				Name:  "create",
				Usage: "Create the recipient's associated token account in the same transaction",
			},
			blockhashFlag(),
		},
		Action: func(c *cli.Context) error {
			from, err := publicKeyArg(c, "from")
			if err != nil {
				return err
			}
			to, err := publicKeyArg(c, "to")
			if err != nil {
				return err
			}
			bh, err := blockhashArg(c)
			if err != nil {
				return err
			}

			var (
				mint     = usdc.TokenMint
				decimals = uint8(usdc.Decimals)
			)
			if c.Bool("usdc") {
				if c.IsSet("mint") || c.IsSet("decimals") {
					return errors.New("--usdc can't be combined with --mint or --decimals")
				}
			} else {
				if mint, err = publicKeyArg(c, "mint"); err != nil {
					return err
				}
				if !c.IsSet("decimals") {
					return errors.New("--decimals is required with --mint")
				}
				if c.Uint("decimals") > 255 {
					return errors.Errorf("--decimals %d out of range", c.Uint("decimals"))
				}
				decimals = uint8(c.Uint("decimals"))
			}

			amount := c.Uint64("amount")
			if c.IsSet("ui-amount") {
				if c.IsSet("amount") {
					return errors.New("--amount and --ui-amount are mutually exclusive")
				}

				if amount, err = parseAmount(c.String("ui-amount"), decimals); err != nil {
					return err
				}
			}
			if amount == 0 {
				return errors.New("an amount is required")
			}

			flow := payment.FlowTokenTransfer
			assemble := payment.MakeTokenTransferTransaction
			if c.Bool("create") {
				flow = payment.FlowTokenTransferWithCreate
				assemble = payment.MakeTokenTransferWithCreateTransaction
			}

			txn, err := assemble(from, to, mint, amount, decimals, bh)
			if err != nil {
				return err
			}
			return printEnvelope(c, flow, txn)
		},
	}
}

func ataCommand() *cli.Command {
	return &cli.Command{
		Name:  "ata",
		Usage: "Derive a wallet's associated token account",
		Flags: []cli.Flag{
			keyFlag("wallet", "Owner wallet", true),
			keyFlag("mint", "Token mint", false),
			&cli.BoolFlag{
				Name:  "usdc",
				Usage: "Use the USDC mint",
			},
		},
		Action: func(c *cli.Context) error {
			wallet, err := publicKeyArg(c, "wallet")
			if err != nil {
				return err
			}

			mint := usdc.TokenMint
			if !c.Bool("usdc") {
				if mint, err = publicKeyArg(c, "mint"); err != nil {
					return err
				}
			}

			address, bump, err := token.GetAssociatedAccountAndBump(wallet, mint)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "%s %d\n", base58.Encode(address), bump)
			return nil
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Decode a base64 transaction or envelope",
		ArgsUsage: "ENVELOPE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("exactly one envelope is required")
			}

			raw, err := base64.StdEncoding.DecodeString(c.Args().First())
			if err != nil {
				return errors.Wrap(err, "invalid base64")
			}

			var txn solana.Transaction
			if err := txn.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "invalid transaction")
			}

			fmt.Fprint(c.App.Writer, txn.String())
			return nil
		},
	}
}

func printEnvelope(c *cli.Context, flow payment.Flow, txn solana.Transaction) error {
	envelope, err := txn.Envelope()
	if err != nil {
		return err
	}
	if len(envelope) > solana.MaxTransactionSize {
		return errors.Wrapf(payment.ErrTransactionTooLarge, "%d bytes", len(envelope))
	}

	logrus.StandardLogger().WithFields(logrus.Fields{
		"type": "paytx",
		"flow": flow.String(),
		"size": len(envelope),
	}).Debug("built envelope")

	fmt.Fprintln(c.App.Writer, base64.StdEncoding.EncodeToString(envelope))
	return nil
}
