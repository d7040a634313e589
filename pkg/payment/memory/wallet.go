package memory

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/pkg/errors"

	"github.com/code-payments/dapp-payments/pkg/solana"
)

// WalletAuthorizer signs envelopes with a single key and records the signed
// transactions instead of relaying them.
type WalletAuthorizer struct {
	key ed25519.PrivateKey

	mu      sync.Mutex
	sent    []solana.Transaction
	induced bool
}

func NewWalletAuthorizer(key ed25519.PrivateKey) *WalletAuthorizer {
	return &WalletAuthorizer{
		key: key,
	}
}

func (w *WalletAuthorizer) PublicKey() ed25519.PublicKey {
	return w.key.Public().(ed25519.PublicKey)
}

func (w *WalletAuthorizer) SignAndSend(_ context.Context, envelope []byte) (solana.Signature, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.induced {
		return solana.Signature{}, ErrInduced
	}

	var txn solana.Transaction
	if err := txn.Unmarshal(envelope); err != nil {
		return solana.Signature{}, errors.Wrap(err, "invalid envelope")
	}

	signers := txn.Message.Accounts[:txn.Message.Header.NumSignatures]
	if len(signers) != 1 || !bytes.Equal(signers[0], w.PublicKey()) {
		return solana.Signature{}, errors.New("envelope requires signatures this wallet can't provide")
	}
	for _, sig := range txn.Signatures {
		if sig != (solana.Signature{}) {
			return solana.Signature{}, errors.New("envelope is already signed")
		}
	}

	copy(txn.Signatures[0][:], ed25519.Sign(w.key, txn.Message.Marshal()))
	w.sent = append(w.sent, txn)

	return txn.Signatures[0], nil
}

// Sent returns every transaction signed so far
func (w *WalletAuthorizer) Sent() []solana.Transaction {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]solana.Transaction(nil), w.sent...)
}

func (w *WalletAuthorizer) InduceErrors() {
	w.mu.Lock()
	w.induced = true
	w.mu.Unlock()
}

func (w *WalletAuthorizer) StopInducingErrors() {
	w.mu.Lock()
	w.induced = false
	w.mu.Unlock()
}
