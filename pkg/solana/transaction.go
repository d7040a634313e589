package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/dapp-payments/pkg/solana/shortvec"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232

	maxAccounts = math.MaxUint8
)

var (
	ErrDuplicateAccount    = errors.New("duplicate account")
	ErrInvalidAccountOrder = errors.New("invalid account order")
	ErrAccountNotFound     = errors.New("account not found in key table")
	ErrAccountPrivilege    = errors.New("account privilege exceeds key table role")
)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction creates an unsigned transaction whose key table is derived
// from the instructions: payer first, then accounts by role in the order they
// first appear, with programs last. An account referenced more than once gets
// the union of the privileges asked for.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) (Transaction, error) {
	accounts := []AccountMeta{NewAccountMeta(payer, true)}
	merge := func(meta AccountMeta) {
		for i := range accounts {
			if bytes.Equal(accounts[i].PublicKey, meta.PublicKey) {
				accounts[i].IsSigner = accounts[i].IsSigner || meta.IsSigner
				accounts[i].IsWritable = accounts[i].IsWritable || meta.IsWritable
				return
			}
		}
		accounts = append(accounts, meta)
	}

	for _, ixn := range instructions {
		for _, a := range ixn.Accounts {
			merge(a)
		}
	}
	for _, ixn := range instructions {
		merge(NewReadonlyAccountMeta(ixn.Program, false))
	}

	rest := accounts[1:]
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Role() < rest[j].Role()
	})

	return NewTransactionWithAccounts(accounts, instructions...)
}

// NewTransactionWithAccounts creates an unsigned transaction over an explicit,
// caller ordered key table. Unlike NewTransaction, nothing is reordered: the
// table must already be in role order (signer-writable, signer-readonly,
// writable, readonly) with a writable signer fee payer at index 0. The header
// is derived from the roles in the table.
//
// Every program and account referenced by the instructions must be present in
// the table with at least the privileges the instruction asks for.
func NewTransactionWithAccounts(accounts []AccountMeta, instructions ...Instruction) (Transaction, error) {
	if len(accounts) == 0 {
		return Transaction{}, errors.New("no accounts provided")
	}
	if len(accounts) > maxAccounts {
		return Transaction{}, errors.Errorf("too many accounts: %d", len(accounts))
	}
	if len(instructions) == 0 {
		return Transaction{}, errors.New("no instructions provided")
	}
	if len(instructions) > math.MaxUint16 {
		return Transaction{}, errors.Wrapf(shortvec.ErrInvalidLength, "%d instructions", len(instructions))
	}
	if accounts[0].Role() != AccountRoleSignerWritable {
		return Transaction{}, errors.Wrap(ErrInvalidAccountOrder, "fee payer must be a writable signer")
	}

	var m Message
	prev := AccountRoleSignerWritable
	for i, account := range accounts {
		if err := ValidateKey(account.PublicKey); err != nil {
			return Transaction{}, errors.Wrapf(err, "account %d", i)
		}
		if indexOf(m.Accounts, account.PublicKey) >= 0 {
			return Transaction{}, errors.Wrapf(ErrDuplicateAccount, "%s", base58.Encode(account.PublicKey))
		}

		role := account.Role()
		if role < prev {
			return Transaction{}, errors.Wrapf(ErrInvalidAccountOrder, "%s account at %d follows %s", role, i, prev)
		}
		prev = role

		pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
		copy(pub, account.PublicKey)
		m.Accounts = append(m.Accounts, pub)

		switch role {
		case AccountRoleSignerWritable:
			m.Header.NumSignatures++
		case AccountRoleSignerReadonly:
			m.Header.NumSignatures++
			m.Header.NumReadonlySigned++
		case AccountRoleReadonly:
			m.Header.NumReadOnly++
		}
	}

	for n, ixn := range instructions {
		if len(ixn.Accounts) > math.MaxUint16 {
			return Transaction{}, errors.Wrapf(shortvec.ErrInvalidLength, "instruction[%d] has %d accounts", n, len(ixn.Accounts))
		}
		if len(ixn.Data) > math.MaxUint16 {
			return Transaction{}, errors.Wrapf(shortvec.ErrInvalidLength, "instruction[%d] has %d bytes of data", n, len(ixn.Data))
		}

		programIndex := indexOf(m.Accounts, ixn.Program)
		if programIndex < 0 {
			return Transaction{}, errors.Wrapf(ErrAccountNotFound, "instruction[%d] program", n)
		}

		c := CompiledInstruction{
			ProgramIndex: byte(programIndex),
			Accounts:     make([]byte, 0, len(ixn.Accounts)),
			Data:         append([]byte{}, ixn.Data...),
		}

		for j, a := range ixn.Accounts {
			index := indexOf(m.Accounts, a.PublicKey)
			if index < 0 {
				return Transaction{}, errors.Wrapf(ErrAccountNotFound, "instruction[%d] account %d", n, j)
			}

			slot := accounts[index]
			if (a.IsSigner && !slot.IsSigner) || (a.IsWritable && !slot.IsWritable) {
				return Transaction{}, errors.Wrapf(ErrAccountPrivilege, "instruction[%d] account %d", n, j)
			}

			c.Accounts = append(c.Accounts, byte(index))
		}

		m.Instructions = append(m.Instructions, c)
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}, nil
}

// AccountRole returns the role the header assigns to the account at index i.
func (m Message) AccountRole(i int) AccountRole {
	numSigned := int(m.Header.NumSignatures)
	if i < numSigned {
		if i < numSigned-int(m.Header.NumReadonlySigned) {
			return AccountRoleSignerWritable
		}
		return AccountRoleSignerReadonly
	}

	if i < len(m.Accounts)-int(m.Header.NumReadOnly) {
		return AccountRoleWritable
	}
	return AccountRoleReadonly
}

// Validate checks that the header is consistent with the key table and that every
// instruction references accounts within it.
func (m Message) Validate() error {
	if m.Header.NumSignatures == 0 {
		return errors.New("message requires at least one signature")
	}
	if m.Header.NumReadonlySigned >= m.Header.NumSignatures {
		return errors.Errorf("fee payer cannot be readonly: %d readonly of %d signed", m.Header.NumReadonlySigned, m.Header.NumSignatures)
	}
	if int(m.Header.NumSignatures)+int(m.Header.NumReadOnly) > len(m.Accounts) {
		return errors.Errorf("header describes more accounts than the %d present", len(m.Accounts))
	}

	for i := range m.Accounts {
		if err := ValidateKey(m.Accounts[i]); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if indexOf(m.Accounts[:i], m.Accounts[i]) >= 0 {
			return errors.Wrapf(ErrDuplicateAccount, "%s", base58.Encode(m.Accounts[i]))
		}
	}

	for i, c := range m.Instructions {
		if int(c.ProgramIndex) >= len(m.Accounts) {
			return errors.Errorf("program index out of range: %d:%d", i, c.ProgramIndex)
		}
		for _, index := range c.Accounts {
			if int(index) >= len(m.Accounts) {
				return errors.Errorf("account index out of range: %d:%d", i, index)
			}
		}
	}

	return nil
}

func (t *Transaction) Signature() []byte {
	return t.Signatures[0][:]
}

func (t *Transaction) String() string {
	var sb strings.Builder
	sb.WriteString("Signatures:\n")
	for i, s := range t.Signatures {
		sb.WriteString(fmt.Sprintf("  %d: %s\n", i, base58.Encode(s[:])))
	}
	sb.WriteString("Message:\n")
	sb.WriteString("  Header:\n")
	sb.WriteString(fmt.Sprintf("    NumSignatures: %d\n", t.Message.Header.NumSignatures))
	sb.WriteString(fmt.Sprintf("    NumReadOnly: %d\n", t.Message.Header.NumReadOnly))
	sb.WriteString(fmt.Sprintf("    NumReadOnlySigned: %d\n", t.Message.Header.NumReadonlySigned))
	sb.WriteString(fmt.Sprintf("  RecentBlockhash: %s\n", t.Message.RecentBlockhash))
	sb.WriteString("  Accounts:\n")
	for i, a := range t.Message.Accounts {
		sb.WriteString(fmt.Sprintf("    %d: %s (%s)\n", i, base58.Encode(a), t.Message.AccountRole(i)))
	}
	sb.WriteString("  Instructions:\n")
	for i := range t.Message.Instructions {
		sb.WriteString(fmt.Sprintf("    %d:\n", i))
		sb.WriteString(fmt.Sprintf("      ProgramIndex: %d\n", t.Message.Instructions[i].ProgramIndex))
		sb.WriteString(fmt.Sprintf("      Accounts: %v\n", t.Message.Instructions[i].Accounts))
		sb.WriteString(fmt.Sprintf("      Data: %v\n", t.Message.Instructions[i].Data))
	}
	return sb.String()
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

func indexOf(slice []ed25519.PublicKey, item ed25519.PublicKey) int {
	for i, val := range slice {
		if bytes.Equal(val, item) {
			return i
		}
	}

	return -1
}
