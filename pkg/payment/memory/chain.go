package memory

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/dapp-payments/pkg/solana"
)

var ErrInduced = errors.New("memory: developer induced error")

// ChainClient is an in memory chain view for tests
type ChainClient struct {
	mu        sync.Mutex
	blockhash solana.Blockhash
	accounts  map[string]struct{}
	induced   bool

	blockhashCalls int
	existsCalls    int
}

func NewChainClient(bh solana.Blockhash) *ChainClient {
	return &ChainClient{
		blockhash: bh,
		accounts:  make(map[string]struct{}),
	}
}

func (c *ChainClient) GetRecentBlockhash(_ context.Context) (solana.Blockhash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blockhashCalls++
	if c.induced {
		return solana.Blockhash{}, ErrInduced
	}
	return c.blockhash, nil
}

func (c *ChainClient) AccountExists(_ context.Context, account ed25519.PublicKey) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.existsCalls++
	if c.induced {
		return false, ErrInduced
	}
	_, ok := c.accounts[base58.Encode(account)]
	return ok, nil
}

// SetBlockhash changes the blockhash returned by subsequent calls
func (c *ChainClient) SetBlockhash(bh solana.Blockhash) {
	c.mu.Lock()
	c.blockhash = bh
	c.mu.Unlock()
}

// CreateAccount marks account as existing on chain
func (c *ChainClient) CreateAccount(account ed25519.PublicKey) {
	c.mu.Lock()
	c.accounts[base58.Encode(account)] = struct{}{}
	c.mu.Unlock()
}

// InduceErrors makes every call fail with ErrInduced until StopInducingErrors
func (c *ChainClient) InduceErrors() {
	c.mu.Lock()
	c.induced = true
	c.mu.Unlock()
}

func (c *ChainClient) StopInducingErrors() {
	c.mu.Lock()
	c.induced = false
	c.mu.Unlock()
}

// Calls returns how many times each RPC was made
func (c *ChainClient) Calls() (blockhash, exists int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blockhashCalls, c.existsCalls
}
