package shortvec

import (
	"bytes"
	"io"
	"math"

	"github.com/pkg/errors"
)

// MaxEncodedSize is the largest number of bytes a compact-u16 can occupy.
const MaxEncodedSize = 3

var (
	// ErrInvalidLength indicates a length that cannot be represented as a compact-u16.
	ErrInvalidLength = errors.New("shortvec: invalid length")

	// ErrInvalidEncoding indicates the encoded value spans more than MaxEncodedSize bytes.
	ErrInvalidEncoding = errors.New("shortvec: invalid encoding")
)

// EncodeLen encodes the specified len into the writer.
//
// If len is negative or exceeds math.MaxUint16, ErrInvalidLength is returned.
func EncodeLen(w io.Writer, len int) (n int, err error) {
	if len < 0 || len > math.MaxUint16 {
		return 0, errors.Wrapf(ErrInvalidLength, "%d outside [0, %d]", len, math.MaxUint16)
	}

	var buf [MaxEncodedSize]byte
	size := 0
	for {
		buf[size] = byte(len & 0x7f)
		len >>= 7
		if len == 0 {
			size++
			break
		}

		buf[size] |= 0x80
		size++
	}

	return w.Write(buf[:size])
}

// DecodeLen decodes a shortvec encoded len from the reader.
func DecodeLen(r io.Reader) (val int, err error) {
	var b [1]byte
	for offset := 0; offset < MaxEncodedSize; offset++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}

		val |= int(b[0]&0x7f) << (offset * 7)
		if b[0]&0x80 == 0 {
			if val > math.MaxUint16 {
				return 0, errors.Wrapf(ErrInvalidEncoding, "%d overflows u16", val)
			}
			return val, nil
		}
	}

	return 0, ErrInvalidEncoding
}

// Encode returns the compact-u16 encoding of v.
func Encode(v int) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := EncodeLen(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a compact-u16 from the start of b, returning the value and the
// number of bytes consumed.
func Decode(b []byte) (value int, consumed int, err error) {
	r := bytes.NewReader(b)
	value, err = DecodeLen(r)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return 0, 0, errors.Wrap(ErrInvalidEncoding, "truncated input")
	} else if err != nil {
		return 0, 0, err
	}

	return value, len(b) - r.Len(), nil
}
