package memory

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/dapp-payments/pkg/solana"
	"github.com/code-payments/dapp-payments/pkg/solana/system"
	"github.com/code-payments/dapp-payments/pkg/testutil"
)

func TestChainClient(t *testing.T) {
	ctx := context.Background()
	keys := testutil.GenerateSolanaKeys(t, 2)

	client := NewChainClient(testutil.GenerateBlockhash(0xaa))

	bh, err := client.GetRecentBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.GenerateBlockhash(0xaa), bh)

	client.SetBlockhash(testutil.GenerateBlockhash(0xbb))
	bh, err = client.GetRecentBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.GenerateBlockhash(0xbb), bh)

	exists, err := client.AccountExists(ctx, keys[0])
	require.NoError(t, err)
	assert.False(t, exists)

	client.CreateAccount(keys[0])
	exists, err = client.AccountExists(ctx, keys[0])
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.AccountExists(ctx, keys[1])
	require.NoError(t, err)
	assert.False(t, exists)

	client.InduceErrors()
	_, err = client.GetRecentBlockhash(ctx)
	assert.Equal(t, ErrInduced, err)
	_, err = client.AccountExists(ctx, keys[0])
	assert.Equal(t, ErrInduced, err)

	client.StopInducingErrors()
	_, err = client.GetRecentBlockhash(ctx)
	assert.NoError(t, err)

	blockhashCalls, existsCalls := client.Calls()
	assert.Equal(t, 4, blockhashCalls)
	assert.Equal(t, 4, existsCalls)
}

func TestWalletAuthorizer(t *testing.T) {
	ctx := context.Background()
	key := testutil.GenerateSolanaKeypair(t)
	wallet := NewWalletAuthorizer(key)
	recipient := testutil.GenerateSolanaKeys(t, 1)[0]

	txn, err := solana.NewTransaction(wallet.PublicKey(), system.Transfer(wallet.PublicKey(), recipient, 1))
	require.NoError(t, err)
	txn.SetBlockhash(testutil.GenerateBlockhash(1))
	envelope, err := txn.Envelope()
	require.NoError(t, err)

	sig, err := wallet.SignAndSend(ctx, envelope)
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(wallet.PublicKey(), txn.Message.Marshal(), sig[:]))

	sent := wallet.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, sig, sent[0].Signatures[0])

	// Signing the signed transaction again is refused.
	_, err = wallet.SignAndSend(ctx, sent[0].Marshal())
	assert.Error(t, err)

	// So is an envelope for another fee payer.
	other, err := solana.NewTransaction(recipient, system.Transfer(recipient, wallet.PublicKey(), 1))
	require.NoError(t, err)
	envelope, err = other.Envelope()
	require.NoError(t, err)
	_, err = wallet.SignAndSend(ctx, envelope)
	assert.Error(t, err)

	_, err = wallet.SignAndSend(ctx, []byte{1, 2, 3})
	assert.Error(t, err)

	wallet.InduceErrors()
	_, err = wallet.SignAndSend(ctx, envelope)
	assert.Equal(t, ErrInduced, err)
	wallet.StopInducingErrors()

	assert.Len(t, wallet.Sent(), 1)
}
