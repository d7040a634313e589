package payment

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/dapp-payments/pkg/metrics"
	"github.com/code-payments/dapp-payments/pkg/solana"
	"github.com/code-payments/dapp-payments/pkg/solana/token"
)

const (
	metricsStructName = "payment.builder"

	transactionBuiltEventName = "PaymentTransactionBuilt"
)

// ChainClient is the RPC boundary the builder reads chain state through
type ChainClient interface {
	// GetRecentBlockhash returns a blockhash recent enough to land a transaction
	GetRecentBlockhash(ctx context.Context) (solana.Blockhash, error)

	// AccountExists reports whether an account has been created on chain
	AccountExists(ctx context.Context, account ed25519.PublicKey) (bool, error)
}

// WalletAuthorizer owns the sender's keys. It fills the signature slots of an
// unsigned envelope and relays the result to the network.
type WalletAuthorizer interface {
	SignAndSend(ctx context.Context, envelope []byte) (solana.Signature, error)
}

type Flow uint8

const (
	FlowUnknown Flow = iota
	FlowNativeTransfer
	FlowTokenTransfer
	FlowTokenTransferWithCreate
)

func (f Flow) String() string {
	switch f {
	case FlowNativeTransfer:
		return "native_transfer"
	case FlowTokenTransfer:
		return "token_transfer"
	case FlowTokenTransferWithCreate:
		return "token_transfer_with_create"
	}
	return "unknown"
}

// BuiltTransaction is an unsigned transaction ready for the wallet authorizer
type BuiltTransaction struct {
	Flow        Flow
	Transaction solana.Transaction
	Envelope    []byte
}

// Builder turns payment intents into unsigned transaction envelopes. It holds
// no per-payment state and is safe for concurrent use.
type Builder struct {
	log    *logrus.Entry
	conf   *conf
	chain  ChainClient
	wallet WalletAuthorizer
}

func NewBuilder(chain ChainClient, wallet WalletAuthorizer, configProvider ConfigProvider) *Builder {
	return &Builder{
		log:    logrus.StandardLogger().WithField("type", "payment/builder"),
		conf:   configProvider(),
		chain:  chain,
		wallet: wallet,
	}
}

// Build selects the flow for intent, assembles it against a fresh blockhash, and
// wraps it into an envelope.
func (b *Builder) Build(ctx context.Context, intent *Intent) (*BuiltTransaction, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Build")
	defer tracer.End()

	built, err := b.build(ctx, intent)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	}
	return built, nil
}

func (b *Builder) build(ctx context.Context, intent *Intent) (*BuiltTransaction, error) {
	log := b.log.WithField("method", "Build")

	if err := intent.Validate(); err != nil {
		log.WithError(err).Info("invalid intent")
		return nil, err
	}
	log = log.WithFields(intent.fields())

	flow, err := b.selectFlow(ctx, intent)
	if err != nil {
		log.WithError(err).Warn("failure selecting flow")
		return nil, err
	}
	log = log.WithField("flow", flow.String())

	bh, err := b.chain.GetRecentBlockhash(ctx)
	if err != nil {
		log.WithError(err).Warn("failure getting recent blockhash")
		return nil, errors.Wrap(err, "error getting recent blockhash")
	}

	var txn solana.Transaction
	switch flow {
	case FlowNativeTransfer:
		txn, err = MakeNativeTransferTransaction(intent.Sender, intent.Recipient, intent.Amount, bh)
	case FlowTokenTransfer:
		txn, err = MakeTokenTransferTransaction(intent.Sender, intent.Recipient, intent.Mint, intent.Amount, intent.Decimals, bh)
	case FlowTokenTransferWithCreate:
		txn, err = MakeTokenTransferWithCreateTransaction(intent.Sender, intent.Recipient, intent.Mint, intent.Amount, intent.Decimals, bh)
	default:
		err = errors.Errorf("unhandled flow %s", flow)
	}
	if err != nil {
		log.WithError(err).Warn("failure assembling transaction")
		return nil, err
	}

	envelope, err := txn.Envelope()
	if err != nil {
		log.WithError(err).Warn("failure wrapping transaction")
		return nil, err
	}

	// Zero means unset
	maxSize := b.conf.maxTransactionSize.Get(ctx)
	if maxSize == 0 || maxSize > solana.MaxTransactionSize {
		maxSize = solana.MaxTransactionSize
	}
	if uint64(len(envelope)) > maxSize {
		log.WithField("size", len(envelope)).Warn("transaction too large")
		return nil, errors.Wrapf(ErrTransactionTooLarge, "%d bytes exceeds %d", len(envelope), maxSize)
	}

	metrics.RecordEvent(ctx, transactionBuiltEventName, map[string]interface{}{
		"flow": flow.String(),
		"size": len(envelope),
	})
	log.WithField("size", len(envelope)).Debug("built transaction")

	return &BuiltTransaction{
		Flow:        flow,
		Transaction: txn,
		Envelope:    envelope,
	}, nil
}

// Pay builds intent and hands the envelope to the wallet authorizer. Failures
// are returned as is; retrying, for example on an expired blockhash, is left to
// the caller.
func (b *Builder) Pay(ctx context.Context, intent *Intent) (solana.Signature, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Pay")
	defer tracer.End()

	built, err := b.Build(ctx, intent)
	if err != nil {
		return solana.Signature{}, err
	}

	log := b.log.WithFields(logrus.Fields{
		"method": "Pay",
		"flow":   built.Flow.String(),
	})

	sig, err := b.wallet.SignAndSend(ctx, built.Envelope)
	if err != nil {
		log.WithError(err).Warn("failure signing and sending transaction")
		tracer.OnError(err)
		return solana.Signature{}, errors.Wrap(err, "error signing and sending transaction")
	}

	tracer.AddAttribute("signature", sig.String())
	log.WithField("signature", sig.String()).Debug("transaction submitted")
	return sig, nil
}

func (b *Builder) selectFlow(ctx context.Context, intent *Intent) (Flow, error) {
	switch intent.Kind {
	case KindNative:
		return FlowNativeTransfer, nil
	case KindToken:
	default:
		return FlowUnknown, errors.Wrapf(ErrInvalidIntent, "unsupported kind %d", intent.Kind)
	}

	destination, err := token.GetAssociatedAccount(intent.Recipient, intent.Mint)
	if err != nil {
		return FlowUnknown, errors.Wrap(err, "error deriving recipient token account")
	}

	exists, err := b.chain.AccountExists(ctx, destination)
	if err != nil {
		return FlowUnknown, errors.Wrap(err, "error checking recipient token account")
	}
	if exists {
		return FlowTokenTransfer, nil
	}

	if b.conf.disableAccountCreation.Get(ctx) {
		return FlowUnknown, ErrAccountCreationDisabled
	}
	return FlowTokenTransferWithCreate, nil
}
