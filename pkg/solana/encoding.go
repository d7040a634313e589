package solana

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/pkg/errors"

	"github.com/code-payments/dapp-payments/pkg/solana/shortvec"
)

var (
	ErrTooManySignatures = errors.New("too many signatures")
)

// maxEnvelopeSignatures keeps the signature count encodable as a single byte.
const maxEnvelopeSignatures = 127

// WrapMessage prepends requiredSignatures empty signature slots to a serialized
// message, producing the unsigned transaction handed to a wallet for signing.
//
// The result is exactly 1 + 64*requiredSignatures + len(message) bytes. Each slot
// is later filled with the signature of the signer at the same index in the
// message's key table.
func WrapMessage(message []byte, requiredSignatures int) ([]byte, error) {
	if requiredSignatures < 0 || requiredSignatures > maxEnvelopeSignatures {
		return nil, errors.Wrapf(ErrTooManySignatures, "%d", requiredSignatures)
	}

	envelope := make([]byte, 1+ed25519.SignatureSize*requiredSignatures+len(message))
	envelope[0] = byte(requiredSignatures)
	copy(envelope[1+ed25519.SignatureSize*requiredSignatures:], message)
	return envelope, nil
}

// Envelope returns the unsigned wire form of the transaction, with a zeroed
// signature slot for every signer declared in the message header.
func (t Transaction) Envelope() ([]byte, error) {
	message, err := t.Message.encode()
	if err != nil {
		return nil, err
	}
	return WrapMessage(message, int(t.Message.Header.NumSignatures))
}

// Marshal returns the wire form of the transaction, or nil if a length in it
// can't be encoded.
func (t Transaction) Marshal() []byte {
	b, err := t.encode()
	if err != nil {
		return nil
	}
	return b
}

func (t Transaction) encode() ([]byte, error) {
	b := bytes.NewBuffer(nil)

	// Signatures
	if _, err := shortvec.EncodeLen(b, len(t.Signatures)); err != nil {
		return nil, errors.Wrap(err, "signatures")
	}
	for _, s := range t.Signatures {
		_, _ = b.Write(s[:])
	}

	// Message
	message, err := t.Message.encode()
	if err != nil {
		return nil, err
	}
	_, _ = b.Write(message)

	return b.Bytes(), nil
}

// Marshal returns the wire form of the message, or nil if a length in it can't
// be encoded.
func (m Message) Marshal() []byte {
	b, err := m.encode()
	if err != nil {
		return nil
	}
	return b
}

func (m Message) encode() ([]byte, error) {
	b := bytes.NewBuffer(nil)

	// Header
	_ = b.WriteByte(m.Header.NumSignatures)
	_ = b.WriteByte(m.Header.NumReadonlySigned)
	_ = b.WriteByte(m.Header.NumReadOnly)

	// Accounts
	if _, err := shortvec.EncodeLen(b, len(m.Accounts)); err != nil {
		return nil, errors.Wrap(err, "accounts")
	}
	for _, a := range m.Accounts {
		_, _ = b.Write(a)
	}

	// Recent Blockhash
	_, _ = b.Write(m.RecentBlockhash[:])

	// Instructions
	if _, err := shortvec.EncodeLen(b, len(m.Instructions)); err != nil {
		return nil, errors.Wrap(err, "instructions")
	}
	for n, i := range m.Instructions {
		_ = b.WriteByte(i.ProgramIndex)

		// Accounts
		if _, err := shortvec.EncodeLen(b, len(i.Accounts)); err != nil {
			return nil, errors.Wrapf(err, "instruction[%d] accounts", n)
		}
		_, _ = b.Write(i.Accounts)

		// Data
		if _, err := shortvec.EncodeLen(b, len(i.Data)); err != nil {
			return nil, errors.Wrapf(err, "instruction[%d] data", n)
		}
		_, _ = b.Write(i.Data)
	}

	return b.Bytes(), nil
}

func (m *Message) Unmarshal(b []byte) (err error) {
	if len(b) == 0 {
		return errors.New("empty message")
	}
	// The high bit of the first byte marks a versioned message; only legacy
	// messages are produced here.
	if b[0]&0x80 != 0 {
		return errors.New("versioned messages not supported")
	}

	buf := bytes.NewBuffer(b)

	// Header
	if m.Header.NumSignatures, err = buf.ReadByte(); err != nil {
		return errors.Wrap(err, "failed to read num signatures")
	}
	if m.Header.NumReadonlySigned, err = buf.ReadByte(); err != nil {
		return errors.Wrap(err, "failed to read num readonly signatures")
	}
	if m.Header.NumReadOnly, err = buf.ReadByte(); err != nil {
		return errors.Wrap(err, "failed to read num readonly")
	}

	// Accounts
	accountLen, err := shortvec.DecodeLen(buf)
	if err != nil {
		return errors.Wrap(err, "failed to read account len")
	}
	m.Accounts = make([]ed25519.PublicKey, accountLen)
	for i := 0; i < accountLen; i++ {
		m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		if _, err = io.ReadFull(buf, m.Accounts[i]); err != nil {
			return errors.Wrapf(err, "failed to read account at index %d", i)
		}
	}

	// Recent block hash
	if _, err = io.ReadFull(buf, m.RecentBlockhash[:]); err != nil {
		return errors.Wrap(err, "failed to read recent block hash")
	}

	// Instructions
	instructionLen, err := shortvec.DecodeLen(buf)
	if err != nil {
		return errors.Wrap(err, "failed to read instruction len")
	}
	m.Instructions = make([]CompiledInstruction, instructionLen)
	for i := 0; i < instructionLen; i++ {
		var c CompiledInstruction

		// Program Index
		if c.ProgramIndex, err = buf.ReadByte(); err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d] program index", i)
		}

		// Account Indexes
		accountLen, err = shortvec.DecodeLen(buf)
		if err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d] account len", i)
		}
		c.Accounts = make([]byte, accountLen)
		if _, err = io.ReadFull(buf, c.Accounts); err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d] accounts", i)
		}

		// Data
		dataLen, err := shortvec.DecodeLen(buf)
		if err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d] data len", i)
		}
		c.Data = make([]byte, dataLen)
		if _, err = io.ReadFull(buf, c.Data); err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d] data", i)
		}

		m.Instructions[i] = c
	}

	if buf.Len() != 0 {
		return errors.Errorf("%d trailing bytes after message", buf.Len())
	}

	return m.Validate()
}
