// Package session implements the HoloStor Session (§4.10): the
// configuration, coding table and masks an encode/decode/delta call set
// is validated and dispatched against, plus the fixed-capacity session
// registry (§4.11).
package session

import "github.com/pkg/errors"

// ErrBadConfiguration is returned by NewConfig when N, K or BlockSize
// violate spec.md's bounds.
var ErrBadConfiguration = errors.New("session: bad configuration")

// Config is the immutable (BlockSize, N, K) triple a session is built
// from.
type Config struct {
	BlockSize int
	N         int
	K         int
}

// blockSizeGranularity is the element width spec.md §3/§6 requires
// BlockSize to be a multiple of: one bit slice (16 bytes), which also
// doubles as the block-pointer alignment requirement. The bitslice
// kernel folds its four-slice Element down to fit blocks that aren't
// also a multiple of the 64-byte Element stride (see
// bitslice.elementSize), so this is the only bound enforced here.
const blockSizeGranularity = Alignment

// NewConfig validates and returns a Config. Bounds follow spec.md §3/§6:
// 1 <= N <= 16, 1 <= K <= 4, N+K <= 17, BlockSize a positive multiple of
// 16.
func NewConfig(blockSize, n, k int) (Config, error) {
	switch {
	case n < 1 || n > 16:
		return Config{}, errors.Wrapf(ErrBadConfiguration, "N=%d out of [1,16]", n)
	case k < 1 || k > 4:
		return Config{}, errors.Wrapf(ErrBadConfiguration, "K=%d out of [1,4]", k)
	case n+k > 17:
		return Config{}, errors.Wrapf(ErrBadConfiguration, "N+K=%d exceeds 17", n+k)
	case blockSize <= 0 || blockSize%blockSizeGranularity != 0:
		return Config{}, errors.Wrapf(ErrBadConfiguration, "BlockSize=%d not a positive multiple of %d", blockSize, blockSizeGranularity)
	}
	return Config{BlockSize: blockSize, N: n, K: k}, nil
}

// Total returns N+K, the size of the reliability group.
func (c Config) Total() int { return c.N + c.K }
