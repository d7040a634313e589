package payment

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/dapp-payments/pkg/solana"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindNative
	KindToken
)

func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindToken:
		return "token"
	}
	return "unknown"
}

// Intent is a fully priced payment handed over by the policy layer. Amount is in
// base units (lamports, or token units already scaled by Decimals).
type Intent struct {
	Kind      Kind
	Sender    ed25519.PublicKey
	Recipient ed25519.PublicKey

	// Token payments only
	Mint     ed25519.PublicKey
	Decimals uint8

	Amount uint64
}

func (i *Intent) Validate() error {
	if i == nil {
		return errors.Wrap(ErrInvalidIntent, "intent is nil")
	}

	if err := solana.ValidateKey(i.Sender); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := solana.ValidateKey(i.Recipient); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if bytes.Equal(i.Sender, i.Recipient) {
		return errors.Wrap(ErrInvalidIntent, "sender and recipient are the same account")
	}
	if i.Amount == 0 {
		return errors.Wrap(ErrInvalidIntent, "amount is zero")
	}

	switch i.Kind {
	case KindNative:
		if len(i.Mint) != 0 || i.Decimals != 0 {
			return errors.Wrap(ErrInvalidIntent, "native payment has token fields set")
		}
	case KindToken:
		if err := solana.ValidateKey(i.Mint); err != nil {
			return errors.Wrap(err, "mint")
		}
	default:
		return errors.Wrapf(ErrInvalidIntent, "unsupported kind %d", i.Kind)
	}

	return nil
}

func (i *Intent) fields() logrus.Fields {
	fields := logrus.Fields{
		"kind":      i.Kind.String(),
		"sender":    base58.Encode(i.Sender),
		"recipient": base58.Encode(i.Recipient),
		"amount":    i.Amount,
	}
	if i.Kind == KindToken {
		fields["mint"] = base58.Encode(i.Mint)
		fields["decimals"] = i.Decimals
	}
	return fields
}
