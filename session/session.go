package session

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/MyronZimmerman/holostor/bitslice"
	"github.com/MyronZimmerman/holostor/coding"
	"github.com/MyronZimmerman/holostor/encoding"
)

// Alignment is the required byte alignment for every block pointer.
const Alignment = 16

var (
	// ErrInvalidParameter covers a bad which index or a mask with bits
	// outside the reliability group.
	ErrInvalidParameter = errors.New("session: invalid parameter")
	// ErrMisalignedBuffer is returned when any block pointer is not
	// 16-byte aligned.
	ErrMisalignedBuffer = errors.New("session: misaligned buffer")
	// ErrTooManyBadBlocks is returned when the fault count exceeds K.
	ErrTooManyBadBlocks = errors.New("session: too many bad blocks")
	// ErrOutOfMemory covers a failed coding-table or matrix allocation.
	ErrOutOfMemory = errors.New("session: out of memory")
)

// Session owns one coding table, its configuration, and the three
// precomputed masks spec.md §3 defines: data, ecc, and all := data|ecc.
type Session struct {
	cfg      Config
	table    *coding.Table
	dataMask uint32
	eccMask  uint32
	allMask  uint32
}

// New builds a Session: precomputes the masks and the full coding table
// (every fault subset of size 1..K) up front, so Rebuild/EncodeDelta are
// O(1) lookups for the life of the session.
func New(cfg Config) (*Session, error) {
	e := encoding.BuildMatrix(cfg.N, cfg.K)
	if e.IsNil() {
		return nil, ErrOutOfMemory
	}
	table, ok := coding.BuildTable(e, cfg.N, cfg.K)
	if !ok {
		return nil, ErrOutOfMemory
	}

	var dataMask uint32
	for i := 0; i < cfg.N; i++ {
		dataMask |= 1 << uint(i)
	}
	var eccMask uint32
	for i := cfg.N; i < cfg.N+cfg.K; i++ {
		eccMask |= 1 << uint(i)
	}

	return &Session{
		cfg:      cfg,
		table:    table,
		dataMask: dataMask,
		eccMask:  eccMask,
		allMask:  dataMask | eccMask,
	}, nil
}

// Config returns the session's configuration.
func (s *Session) Config() Config { return s.cfg }

// DataMask returns the bitmask of data-block positions.
func (s *Session) DataMask() uint32 { return s.dataMask }

// EccMask returns the bitmask of ECC-block positions.
func (s *Session) EccMask() uint32 { return s.eccMask }

// AllMask returns DataMask() | EccMask().
func (s *Session) AllMask() uint32 { return s.allMask }

func checkAligned(blocks ...[]byte) error {
	var mash uintptr
	for _, b := range blocks {
		if len(b) == 0 {
			continue
		}
		mash |= uintptr(unsafe.Pointer(&b[0]))
	}
	if mash&(Alignment-1) != 0 {
		return ErrMisalignedBuffer
	}
	return nil
}

func (s *Session) checkBlockSizes(blocks [][]byte) error {
	for _, b := range blocks {
		if len(b) != s.cfg.BlockSize {
			return ErrInvalidParameter
		}
	}
	return nil
}

// Rebuild restores either one specified block (which >= 0) or every
// invalid block (which == -1), given the fault mask naming which blocks
// of the reliability group are currently bad. blocks must hold N+K
// 16-byte-aligned buffers of Config.BlockSize bytes.
func (s *Session) Rebuild(mask uint32, blocks [][]byte, which int) error {
	total := s.cfg.Total()
	if which < -1 || which >= total || mask&^s.allMask != 0 {
		return ErrInvalidParameter
	}
	if len(blocks) != total {
		return ErrInvalidParameter
	}
	if err := s.checkBlockSizes(blocks); err != nil {
		return err
	}
	if err := checkAligned(blocks...); err != nil {
		return err
	}
	if mask == 0 {
		return nil
	}
	cm := s.table.Lookup(mask)
	if cm == nil {
		return ErrTooManyBadBlocks
	}
	cm.Rebuild(blocks, which)
	return nil
}

// EncodeDelta recomputes one ECC block from a data-block delta without
// touching the other data blocks: newECC = oldECC XOR M*delta, where M is
// the coefficient coupling data block dataIdx to ECC block eccIdx. eccIdx is
// a global reliability-group bit position in [N, N+K), the same convention
// DataMask/EccMask and Rebuild's mask/which arguments use.
func (s *Session) EncodeDelta(dataIdx int, delta []byte, eccIdx int, oldECC, newECC []byte) error {
	if dataIdx < 0 || dataIdx >= s.cfg.N || eccIdx < s.cfg.N || eccIdx >= s.cfg.N+s.cfg.K {
		return ErrInvalidParameter
	}
	if err := s.checkBlockSizes([][]byte{delta, oldECC, newECC}); err != nil {
		return err
	}
	if err := checkAligned(delta, oldECC, newECC); err != nil {
		return err
	}
	cm := s.table.Lookup(1 << uint(eccIdx))
	if cm == nil {
		return ErrInvalidParameter
	}
	cm.EncodeDelta(dataIdx, delta, oldECC, newECC)
	return nil
}

// WriteDelta computes delta = oldData XOR newData.
func (s *Session) WriteDelta(oldData, newData, delta []byte) error {
	if err := s.checkBlockSizes([][]byte{oldData, newData, delta}); err != nil {
		return err
	}
	if err := checkAligned(oldData, newData, delta); err != nil {
		return err
	}
	bitslice.WriteDelta(oldData, newData, delta)
	return nil
}
