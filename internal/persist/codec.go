package persist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// DefaultSignature marks a record written by this package.
var DefaultSignature = [SignatureSize]byte{'M', 'Z', 'C', 'H', 'A', 'S', 'E', '1'}

// Medium is byte-addressable non-volatile storage.
type Medium interface {
	io.ReaderAt
	io.WriterAt
}

// Codec reads and writes State records at a fixed base offset of a medium.
type Codec struct {
	Schema    Schema
	Signature [SignatureSize]byte
	Base      int64
}

// NewCodec returns a codec for Layout at offset 0.
func NewCodec() *Codec {
	return &Codec{Schema: Layout, Signature: DefaultSignature}
}

// Size returns the record length in bytes.
func (c *Codec) Size() int { return c.Schema.Size() }

// Save writes st field by field at the schema offsets. Power-mode fields are
// written as stored even when power mode is off.
func (c *Codec) Save(w io.WriterAt, st State) error {
	buf := make([]byte, c.Schema.Size())
	for _, f := range c.Schema {
		if f.encode == nil {
			continue
		}
		if err := f.encode(buf[f.Offset:f.Offset+f.Size], &st); err != nil {
			return fmt.Errorf("persist: save: %w", err)
		}
	}

	// Signature goes last so a torn write is never trusted
	for _, f := range c.Schema {
		if f.Name == SignatureField {
			continue
		}
		if err := c.writeAt(w, buf[f.Offset:f.Offset+f.Size], f); err != nil {
			return err
		}
	}
	sig, ok := c.Schema.Field(SignatureField)
	if !ok {
		return fmt.Errorf("persist: save: schema has no %s field", SignatureField)
	}
	return c.writeAt(w, c.Signature[:], sig)
}

func (c *Codec) writeAt(w io.WriterAt, b []byte, f Field) error {
	n, err := w.WriteAt(b, c.Base+int64(f.Offset))
	if err == nil && n != len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("persist: save %s: %w: %w", f.Name, ErrStorageFault, err)
	}
	return nil
}

// SignatureCheck reports whether r holds a record written with this
// codec's signature. Storage too short to hold a signature is not an error.
func (c *Codec) SignatureCheck(r io.ReaderAt) (bool, error) {
	sig, ok := c.Schema.Field(SignatureField)
	if !ok {
		return false, fmt.Errorf("persist: schema has no %s field", SignatureField)
	}
	got := make([]byte, sig.Size)
	n, err := r.ReadAt(got, c.Base+int64(sig.Offset))
	if n < len(got) {
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("persist: signature: %w: %w", ErrStorageFault, err)
		}
		return false, nil
	}
	return bytes.Equal(got, c.Signature[:]), nil
}

// Load reads a record. It fails with ErrInvalidSignature when the medium
// does not hold one, and with ErrCorrupt when field values are out of domain.
// Power-mode fields are only taken from the record when its status byte is 1.
func (c *Codec) Load(r io.ReaderAt) (State, error) {
	var st State
	ok, err := c.SignatureCheck(r)
	if err != nil {
		return st, err
	}
	if !ok {
		return st, ErrInvalidSignature
	}

	buf := make([]byte, c.Schema.Size())
	n, err := r.ReadAt(buf, c.Base)
	if n < len(buf) {
		if err == nil || errors.Is(err, io.EOF) {
			return st, fmt.Errorf("%w: record truncated at %d of %d bytes", ErrCorrupt, n, len(buf))
		}
		return st, fmt.Errorf("persist: load: %w: %w", ErrStorageFault, err)
	}

	for _, f := range c.Schema {
		if f.decode == nil {
			continue
		}
		if err := f.decode(buf[f.Offset:f.Offset+f.Size], &st); err != nil {
			return State{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}
	if !st.PowerActive {
		st.clearPower()
	}
	return st, nil
}

// Erase overwrites the signature so the medium no longer holds a save.
func (c *Codec) Erase(w io.WriterAt) error {
	sig, ok := c.Schema.Field(SignatureField)
	if !ok {
		return fmt.Errorf("persist: schema has no %s field", SignatureField)
	}
	return c.writeAt(w, make([]byte, sig.Size), sig)
}
