package solana

import (
	"crypto/ed25519"
	"errors"
)

var (
	ErrIncorrectProgram     = errors.New("incorrect program")
	ErrIncorrectInstruction = errors.New("incorrect instruction")
)

// AccountRole is the combined signer/writable permission of an account within a
// message. Roles are declared in the order accounts must appear in the key table.
type AccountRole uint8

const (
	AccountRoleSignerWritable AccountRole = iota
	AccountRoleSignerReadonly
	AccountRoleWritable
	AccountRoleReadonly
)

func (r AccountRole) IsSigner() bool {
	return r == AccountRoleSignerWritable || r == AccountRoleSignerReadonly
}

func (r AccountRole) IsWritable() bool {
	return r == AccountRoleSignerWritable || r == AccountRoleWritable
}

func (r AccountRole) String() string {
	switch r {
	case AccountRoleSignerWritable:
		return "signer-writable"
	case AccountRoleSignerReadonly:
		return "signer-readonly"
	case AccountRoleWritable:
		return "writable"
	case AccountRoleReadonly:
		return "readonly"
	}
	return "unknown"
}

// AccountMeta represents the account information required
// for building transactions.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta creates a new AccountMeta representing a writable
// account.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a new AccountMeta representing a readonly
// account.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

// NewAccountMetaWithRole creates an AccountMeta with the permissions of role.
func NewAccountMetaWithRole(pub ed25519.PublicKey, role AccountRole) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   role.IsSigner(),
		IsWritable: role.IsWritable(),
	}
}

// Role returns the AccountRole implied by the meta's permissions.
func (a AccountMeta) Role() AccountRole {
	switch {
	case a.IsSigner && a.IsWritable:
		return AccountRoleSignerWritable
	case a.IsSigner:
		return AccountRoleSignerReadonly
	case a.IsWritable:
		return AccountRoleWritable
	default:
		return AccountRoleReadonly
	}
}

// Instruction represents a transaction instruction.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// CompiledInstruction represents an instruction that has been compiled into a transaction.
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}
