package payment

import (
	"github.com/code-payments/dapp-payments/pkg/config"
	"github.com/code-payments/dapp-payments/pkg/config/env"
	"github.com/code-payments/dapp-payments/pkg/config/memory"
	"github.com/code-payments/dapp-payments/pkg/config/wrapper"
	"github.com/code-payments/dapp-payments/pkg/solana"
)

const (
	envConfigPrefix = "PAYMENT_BUILDER_"

	MaxTransactionSizeConfigEnvName = envConfigPrefix + "MAX_TRANSACTION_SIZE"
	defaultMaxTransactionSize       = solana.MaxTransactionSize

	DisableAccountCreationConfigEnvName = envConfigPrefix + "DISABLE_ACCOUNT_CREATION"
	defaultDisableAccountCreation       = false
)

type conf struct {
	maxTransactionSize     config.Uint64
	disableAccountCreation config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			maxTransactionSize:     env.NewUint64Config(MaxTransactionSizeConfigEnvName, defaultMaxTransactionSize),
			disableAccountCreation: env.NewBoolConfig(DisableAccountCreationConfigEnvName, defaultDisableAccountCreation),
		}
	}
}

type testOverrides struct {
	maxTransactionSize     uint64
	disableAccountCreation bool
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		maxTransactionSize := overrides.maxTransactionSize
		if maxTransactionSize == 0 {
			maxTransactionSize = defaultMaxTransactionSize
		}

		return &conf{
			maxTransactionSize:     wrapper.NewUint64Config(memory.NewConfig(maxTransactionSize), defaultMaxTransactionSize),
			disableAccountCreation: wrapper.NewBoolConfig(memory.NewConfig(overrides.disableAccountCreation), defaultDisableAccountCreation),
		}
	}
}
