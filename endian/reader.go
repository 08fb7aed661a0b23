package endian

import (
	"io"
	"unicode/utf8"

	"github.com/go-unity/unitybundle/errs"
)

// DefaultMaxStringLen is the default ceiling ReadCString enforces on a
// null-terminated string's byte length (including the terminator) when the
// caller does not request a different limit.
const DefaultMaxStringLen = 65536

// Reader provides ordered primitive reads over an io.Reader in a selectable
// byte order, tracking the number of bytes consumed so callers can compute
// absolute file offsets without maintaining a separate counter.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r      io.Reader
	engine EndianEngine
	pos    int64
}

// NewReader wraps r with engine as the byte order for all multi-byte reads.
// pos is the reader's initial logical position, used so callers that begin
// reading mid-stream (e.g. after a Seek) still get correct absolute offsets
// from Pos.
func NewReader(r io.Reader, engine EndianEngine, pos int64) *Reader {
	return &Reader{r: r, engine: engine, pos: pos}
}

// Pos returns the number of bytes consumed since the Reader was created (plus
// its initial offset).
func (r *Reader) Pos() int64 {
	return r.pos
}

// Read implements io.Reader, delegating to the underlying stream and
// advancing Pos by however many bytes it returns, partial reads included.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.pos += int64(n)

	return n, err
}

// Seek repositions the reader if the underlying io.Reader implements
// io.Seeker, updating Pos to match. It returns errs.ErrNotSeekable otherwise.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	seeker, ok := r.r.(io.Seeker)
	if !ok {
		return 0, errs.ErrNotSeekable
	}

	newPos, err := seeker.Seek(offset, whence)
	if err != nil {
		return 0, err
	}

	r.pos = newPos

	return newPos, nil
}

// ReadBytes reads exactly n bytes, returning errs.Truncated on a short read.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	r.pos += int64(read)
	if err != nil {
		return nil, &errs.Truncated{Want: n, Got: read}
	}

	return buf, nil
}

// ReadInto reads exactly len(buf) bytes into buf, returning errs.Truncated on
// a short read. It is the allocation-free counterpart to ReadBytes, used for
// large reads (e.g. a storage block's compressed payload) where the caller
// supplies a reusable buffer.
func (r *Reader) ReadInto(buf []byte) error {
	read, err := io.ReadFull(r.r, buf)
	r.pos += int64(read)
	if err != nil {
		return &errs.Truncated{Want: len(buf), Got: read}
	}

	return nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadCString reads a null-terminated UTF-8 string, failing with
// errs.InvalidUtf8 if no terminator is found within maxLen bytes (including
// the terminator) or if the bytes preceding the terminator are not valid
// UTF-8. A maxLen of 0 uses DefaultMaxStringLen.
func (r *Reader) ReadCString(maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLen
	}

	buf := make([]byte, 0, 32)
	for {
		if len(buf) >= maxLen {
			return "", &errs.InvalidUtf8{MaxLen: maxLen}
		}

		b, err := r.ReadUint8()
		if err != nil {
			return "", err
		}

		if b == 0 {
			break
		}

		buf = append(buf, b)
	}

	if !utf8.Valid(buf) {
		return "", &errs.InvalidUtf8{MaxLen: maxLen}
	}

	return string(buf), nil
}

// SkipToAlignment advances the reader by reading and discarding bytes until
// Pos is a multiple of alignment, returning the number of bytes skipped. When
// verifyZero is true, every skipped byte must equal 0 or SkipToAlignment
// fails with errs.NonZeroPadding; reference UnityFS readers do not perform
// this check, so it is opt-in.
func (r *Reader) SkipToAlignment(alignment int64, verifyZero bool) (int64, error) {
	if alignment <= 0 {
		return 0, nil
	}

	remainder := r.pos % alignment
	if remainder == 0 {
		return 0, nil
	}

	skip := alignment - remainder
	for i := int64(0); i < skip; i++ {
		b, err := r.ReadUint8()
		if err != nil {
			return 0, err
		}

		if verifyZero && b != 0 {
			return 0, &errs.NonZeroPadding{Offset: r.pos - 1, Value: b}
		}
	}

	return skip, nil
}

// AlignedPosition returns the next multiple of alignment at or after pos,
// without performing any I/O.
func AlignedPosition(pos, alignment int64) int64 {
	if alignment <= 0 {
		return pos
	}

	remainder := pos % alignment
	if remainder == 0 {
		return pos
	}

	return pos + (alignment - remainder)
}
