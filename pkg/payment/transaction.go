package payment

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/dapp-payments/pkg/solana"
	"github.com/code-payments/dapp-payments/pkg/solana/system"
	"github.com/code-payments/dapp-payments/pkg/solana/token"
)

// The builders below lay out their key tables explicitly. The fee payer, who is
// also the sender and the only signer, is always at index 0.

// MakeNativeTransferTransaction builds an unsigned transfer of lamports from
// sender to recipient.
//
// Key table: [sender, recipient, system program], header 1/0/1.
func MakeNativeTransferTransaction(sender, recipient ed25519.PublicKey, lamports uint64, bh solana.Blockhash) (solana.Transaction, error) {
	if err := validateKeys(sender, recipient); err != nil {
		return solana.Transaction{}, err
	}

	txn, err := solana.NewTransactionWithAccounts(
		[]solana.AccountMeta{
			solana.NewAccountMetaWithRole(sender, solana.AccountRoleSignerWritable),
			solana.NewAccountMetaWithRole(recipient, solana.AccountRoleWritable),
			solana.NewAccountMetaWithRole(system.ProgramKey[:], solana.AccountRoleReadonly),
		},
		system.Transfer(sender, recipient, lamports),
	)
	if err != nil {
		return solana.Transaction{}, errors.Wrap(err, "error assembling native transfer")
	}

	txn.SetBlockhash(bh)
	return txn, nil
}

// MakeTokenTransferTransaction builds an unsigned transfer of amount base units
// of mint between the associated token accounts of sender and recipient. The
// recipient's associated account must already exist.
//
// Key table: [sender, sender ATA, recipient ATA, mint, token program], header 1/0/2.
func MakeTokenTransferTransaction(sender, recipient, mint ed25519.PublicKey, amount uint64, decimals uint8, bh solana.Blockhash) (solana.Transaction, error) {
	if err := validateKeys(sender, recipient, mint); err != nil {
		return solana.Transaction{}, err
	}

	source, destination, err := getAssociatedAccounts(sender, recipient, mint)
	if err != nil {
		return solana.Transaction{}, err
	}

	txn, err := solana.NewTransactionWithAccounts(
		[]solana.AccountMeta{
			solana.NewAccountMetaWithRole(sender, solana.AccountRoleSignerWritable),
			solana.NewAccountMetaWithRole(source, solana.AccountRoleWritable),
			solana.NewAccountMetaWithRole(destination, solana.AccountRoleWritable),
			solana.NewAccountMetaWithRole(mint, solana.AccountRoleReadonly),
			solana.NewAccountMetaWithRole(token.ProgramKey, solana.AccountRoleReadonly),
		},
		token.TransferChecked(source, mint, destination, sender, amount, decimals),
	)
	if err != nil {
		return solana.Transaction{}, errors.Wrap(err, "error assembling token transfer")
	}

	txn.SetBlockhash(bh)
	return txn, nil
}

// MakeTokenTransferWithCreateTransaction is MakeTokenTransferTransaction for a
// recipient without an associated token account. The account is created, and
// funded by sender, before the transfer executes.
//
// Key table: [sender, sender ATA, recipient ATA, mint, recipient, system program,
// token program, associated token program], header 1/0/5.
func MakeTokenTransferWithCreateTransaction(sender, recipient, mint ed25519.PublicKey, amount uint64, decimals uint8, bh solana.Blockhash) (solana.Transaction, error) {
	if err := validateKeys(sender, recipient, mint); err != nil {
		return solana.Transaction{}, err
	}

	source, err := token.GetAssociatedAccount(sender, mint)
	if err != nil {
		return solana.Transaction{}, errors.Wrap(err, "error deriving sender token account")
	}

	create, destination, err := token.CreateAssociatedTokenAccount(sender, recipient, mint)
	if err != nil {
		return solana.Transaction{}, errors.Wrap(err, "error deriving recipient token account")
	}

	txn, err := solana.NewTransactionWithAccounts(
		[]solana.AccountMeta{
			solana.NewAccountMetaWithRole(sender, solana.AccountRoleSignerWritable),
			solana.NewAccountMetaWithRole(source, solana.AccountRoleWritable),
			solana.NewAccountMetaWithRole(destination, solana.AccountRoleWritable),
			solana.NewAccountMetaWithRole(mint, solana.AccountRoleReadonly),
			solana.NewAccountMetaWithRole(recipient, solana.AccountRoleReadonly),
			solana.NewAccountMetaWithRole(system.ProgramKey[:], solana.AccountRoleReadonly),
			solana.NewAccountMetaWithRole(token.ProgramKey, solana.AccountRoleReadonly),
			solana.NewAccountMetaWithRole(token.AssociatedTokenAccountProgramKey, solana.AccountRoleReadonly),
		},
		create,
		token.TransferChecked(source, mint, destination, sender, amount, decimals),
	)
	if err != nil {
		return solana.Transaction{}, errors.Wrap(err, "error assembling token transfer with create")
	}

	txn.SetBlockhash(bh)
	return txn, nil
}

func getAssociatedAccounts(sender, recipient, mint ed25519.PublicKey) (source, destination ed25519.PublicKey, err error) {
	source, err = token.GetAssociatedAccount(sender, mint)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error deriving sender token account")
	}

	destination, err = token.GetAssociatedAccount(recipient, mint)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error deriving recipient token account")
	}

	return source, destination, nil
}

func validateKeys(keys ...ed25519.PublicKey) error {
	for _, key := range keys {
		if err := solana.ValidateKey(key); err != nil {
			return err
		}
	}
	return nil
}
