// Package holostor is the thin facade spec.md §6 describes: it wires
// together gf16/matrix/encoding/bitslice/coding/session into the
// documented entry points (CreateSession, Encode, Decode, Rebuild,
// WriteDelta, EncodeDelta, SetMethod) and maps internal errors onto the
// C-style status codes the original library's callers expect.
package holostor

import (
	"github.com/pkg/errors"

	"github.com/MyronZimmerman/holostor/bitslice"
	"github.com/MyronZimmerman/holostor/session"
)

// Code is a C-style status code: zero for success, negative for error.
type Code int

const (
	StatusSuccess          Code = 0
	StatusInvalidParameter Code = -1
	StatusBadConfiguration Code = -2
	StatusOutOfMemory      Code = -3
	StatusTooManyBadBlocks Code = -4
	StatusBadSession       Code = -5
	StatusMisalignedBuffer Code = -6
	StatusTooManySessions  Code = -7
)

// ErrBadSession is returned for an unknown or already-closed handle.
var ErrBadSession = errors.New("holostor: bad session handle")

// CodeOf maps an error returned by this package to its C-style status
// code. A nil error maps to StatusSuccess.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, session.ErrInvalidParameter):
		return StatusInvalidParameter
	case errors.Is(err, session.ErrBadConfiguration):
		return StatusBadConfiguration
	case errors.Is(err, session.ErrOutOfMemory):
		return StatusOutOfMemory
	case errors.Is(err, session.ErrTooManyBadBlocks):
		return StatusTooManyBadBlocks
	case errors.Is(err, ErrBadSession):
		return StatusBadSession
	case errors.Is(err, session.ErrMisalignedBuffer):
		return StatusMisalignedBuffer
	case errors.Is(err, session.ErrTooManySessions):
		return StatusTooManySessions
	default:
		return StatusInvalidParameter
	}
}

var registry = session.NewRegistry()

// CreateSession validates cfg, builds its coding table and claims a
// registry slot, returning the resulting handle.
func CreateSession(blockSize, n, k int) (int, error) {
	cfg, err := session.NewConfig(blockSize, n, k)
	if err != nil {
		return -1, err
	}
	s, err := session.New(cfg)
	if err != nil {
		return -1, err
	}
	h, err := registry.Add(s)
	if err != nil {
		return -1, err
	}
	return h, nil
}

// CloseSession releases handle h. Closing an already-closed or unknown
// handle is an error (ErrBadSession), not a no-op — the caller is
// expected to track handle lifetime itself.
func CloseSession(h int) error {
	if registry.Remove(h) == nil {
		return ErrBadSession
	}
	return nil
}

func lookup(h int) (*session.Session, error) {
	s := registry.Lookup(h)
	if s == nil {
		return nil, ErrBadSession
	}
	return s, nil
}

// Encode computes the K ECC blocks from the N data blocks in blocks,
// overwriting every ECC slot. It is Rebuild(h, blocks, eccMask, -1).
func Encode(h int, blocks [][]byte) error {
	s, err := lookup(h)
	if err != nil {
		return err
	}
	return s.Rebuild(s.EccMask(), blocks, -1)
}

// Decode restores every block named by invalidMask. It is
// Rebuild(h, blocks, invalidMask, -1).
func Decode(h int, blocks [][]byte, invalidMask uint32) error {
	s, err := lookup(h)
	if err != nil {
		return err
	}
	return s.Rebuild(invalidMask, blocks, -1)
}

// Rebuild restores either one specified block (which >= 0) or every
// invalid block named by invalidMask (which == -1).
func Rebuild(h int, blocks [][]byte, invalidMask uint32, which int) error {
	s, err := lookup(h)
	if err != nil {
		return err
	}
	return s.Rebuild(invalidMask, blocks, which)
}

// WriteDelta computes deltaOut = oldData XOR newData.
func WriteDelta(h int, oldData, newData, deltaOut []byte) error {
	s, err := lookup(h)
	if err != nil {
		return err
	}
	return s.WriteDelta(oldData, newData, deltaOut)
}

// EncodeDelta incrementally updates one ECC block from a data-block
// delta, without touching the other data blocks.
func EncodeDelta(h int, dataIdx int, delta []byte, eccIdx int, oldEcc, newEccOut []byte) error {
	s, err := lookup(h)
	if err != nil {
		return err
	}
	return s.EncodeDelta(dataIdx, delta, eccIdx, oldEcc, newEccOut)
}

// SetMethod clamps the process-wide XOR-kernel backend to at most m,
// returning the backend now in effect. It never raises the backend —
// only a downgrade is permitted, for benchmarking and testing.
func SetMethod(m bitslice.Backend) bitslice.Backend {
	return bitslice.SetMaxBackend(m)
}
