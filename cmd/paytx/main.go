package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	// Set via ldflags during build
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.StandardLogger().WithError(err).Fatal("paytx failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "paytx",
		Usage: "Build and inspect unsigned Solana payment transactions",
		Description: `Offline tooling around the payment transaction builder.

Envelopes are printed as base64 and carry zeroed signature slots, ready to be
signed by the sender's wallet. Nothing is read from or sent to the network: the
recent blockhash must be supplied.`,
		Version: version + " (commit: " + commit + ")",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			nativeCommand(),
			tokenCommand(),
			ataCommand(),
			inspectCommand(),
		},
	}
}
