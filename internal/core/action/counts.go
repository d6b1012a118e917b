package action

// MaxCount is the largest value a counter can hold. Increments past it saturate.
const MaxCount = 65535

// PairCounts holds the unordered totals between two members for the kinds
// shown on a ship.
type PairCounts struct {
	Cuddle   uint16
	Handhold uint16
	Hug      uint16
	Kiss     uint16
}

// PairKinds are the kinds summed into PairCounts, in display order.
var PairKinds = []Kind{KindCuddle, KindHandhold, KindHug, KindKiss}

// Set stores n for kind; kinds outside PairKinds are ignored.
func (c *PairCounts) Set(kind Kind, n uint16) {
	switch kind {
	case KindCuddle:
		c.Cuddle = n
	case KindHandhold:
		c.Handhold = n
	case KindHug:
		c.Hug = n
	case KindKiss:
		c.Kiss = n
	}
}

// Get returns the total for kind, or 0 for kinds outside PairKinds.
func (c PairCounts) Get(kind Kind) uint16 {
	switch kind {
	case KindCuddle:
		return c.Cuddle
	case KindHandhold:
		return c.Handhold
	case KindHug:
		return c.Hug
	case KindKiss:
		return c.Kiss
	}
	return 0
}

// Empty reports whether every total is zero.
func (c PairCounts) Empty() bool {
	return c.Cuddle == 0 && c.Handhold == 0 && c.Hug == 0 && c.Kiss == 0
}

// Saturate clamps a summed total into the counter range.
func Saturate(n int64) uint16 {
	switch {
	case n <= 0:
		return 0
	case n >= MaxCount:
		return MaxCount
	}
	return uint16(n)
}
