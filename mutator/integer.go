package mutator

import "math/rand"

// Integer is the set of Go integer kinds the primitive mutator covers.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// permTable is a fixed, deterministically shuffled permutation of the 256
// byte values. Every primitive integer mutator derives its ordered and
// random generation from it — the "near-uniform permutation derived from a
// shuffled 256-byte table combined by bit-granularity XOR" scheme. Fixed
// at init time with a constant seed so two processes agree on the same
// ordered_arbitrary sequence, which the u8 round-trip property depends on.
var permTable = buildPermTable()

func buildPermTable() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}

	r := rand.New(rand.NewSource(0x5A17C0DE))
	for i := 255; i > 0; i-- {
		j := r.Intn(i + 1)
		t[i], t[j] = t[j], t[i]
	}

	return t
}

// IntCache is empty: a primitive integer's complexity never depends on its
// value, only on its bit width.
type IntCache struct{}

// IntArbStep is the ordered-generation cursor: a step counter bounded by
// maxOrderedSteps so the sequence provably terminates (the spec permits
// integers to use a bounded step rather than enumerate the full domain).
type IntArbStep struct{ next uint64 }

// IntMutStep cycles through a small fixed operation list per value:
// increment, decrement, one bit flip per bit position, and a
// permutation-table replace.
type IntMutStep struct{ opIndex int }

// IntToken stores the raw previous bytes so Unmutate is an exact,
// allocation-free restore (storing a scalar is cheap enough that this
// never runs into the "unmutate is intrinsically a clone" caveat the
// framework warns about for heavier combinators).
type IntToken struct{ previous []byte }

// IntMutator is the primitive mutator for any Integer kind T. byteWidth,
// decode and encode are fixed per concrete width/signedness by the
// constructor functions below, since Go generics give no portable
// sizeof(T) for an arbitrary integer kind.
type IntMutator[T Integer] struct {
	byteWidth       int
	maxOrderedSteps uint64
	decode          func([]byte) T
	encode          func(T) []byte
}

func newIntMutator[T Integer](byteWidth int, decode func([]byte) T, encode func(T) []byte) *IntMutator[T] {
	maxSteps := uint64(1) << uint(8*byteWidth)
	if byteWidth > 1 {
		// Bound wider integers to a fixed, generous-but-finite prefix of
		// the domain rather than enumerating up to 2^64 values.
		const cap = 4096
		if maxSteps > cap || maxSteps == 0 {
			maxSteps = cap
		}
	}

	return &IntMutator[T]{byteWidth: byteWidth, maxOrderedSteps: maxSteps, decode: decode, encode: encode}
}

func NewUint8() *IntMutator[uint8] {
	return newIntMutator[uint8](1,
		func(b []byte) uint8 { return b[0] },
		func(v uint8) []byte { return []byte{v} },
	)
}

func NewInt8() *IntMutator[int8] {
	return newIntMutator[int8](1,
		func(b []byte) int8 { return int8(b[0]) },
		func(v int8) []byte { return []byte{byte(v)} },
	)
}

func NewUint16() *IntMutator[uint16] {
	return newIntMutator[uint16](2,
		func(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 },
		func(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} },
	)
}

func NewInt16() *IntMutator[int16] {
	return newIntMutator[int16](2,
		func(b []byte) int16 { return int16(uint16(b[0]) | uint16(b[1])<<8) },
		func(v int16) []byte { u := uint16(v); return []byte{byte(u), byte(u >> 8)} },
	)
}

func NewUint32() *IntMutator[uint32] {
	return newIntMutator[uint32](4,
		func(b []byte) uint32 {
			return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		},
		func(v uint32) []byte { return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)} },
	)
}

func NewInt32() *IntMutator[int32] {
	return newIntMutator[int32](4,
		func(b []byte) int32 {
			return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
		},
		func(v int32) []byte {
			u := uint32(v)
			return []byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
		},
	)
}

func NewUint64() *IntMutator[uint64] {
	return newIntMutator[uint64](8,
		func(b []byte) uint64 {
			var v uint64
			for i := 7; i >= 0; i-- {
				v = v<<8 | uint64(b[i])
			}

			return v
		},
		func(v uint64) []byte {
			buf := make([]byte, 8)
			for i := 0; i < 8; i++ {
				buf[i] = byte(v >> uint(8*i))
			}

			return buf
		},
	)
}

func NewInt64() *IntMutator[int64] {
	return newIntMutator[int64](8,
		func(b []byte) int64 {
			var v uint64
			for i := 7; i >= 0; i-- {
				v = v<<8 | uint64(b[i])
			}

			return int64(v)
		},
		func(v int64) []byte {
			u := uint64(v)
			buf := make([]byte, 8)

			for i := 0; i < 8; i++ {
				buf[i] = byte(u >> uint(8*i))
			}

			return buf
		},
	)
}

func (m *IntMutator[T]) MaxComplexity() float64 { return float64(8 * m.byteWidth) }
func (m *IntMutator[T]) MinComplexity() float64 { return float64(8 * m.byteWidth) }

func (m *IntMutator[T]) ValidateValue(T) (IntCache, bool) { return IntCache{}, true }

func (m *IntMutator[T]) DefaultMutationStep(T, IntCache) IntMutStep { return IntMutStep{} }
func (m *IntMutator[T]) DefaultArbitraryStep() IntArbStep           { return IntArbStep{} }

func (m *IntMutator[T]) Complexity(T, IntCache) float64 { return float64(8 * m.byteWidth) }

// bytesForStep derives deterministic pseudo-random bytes for ordered step
// i. For byteWidth==1 this is exactly permTable[i] — a permutation of
// 0..255, so 256 calls from i=0 yield 256 distinct byte values and the
// u8 mutator's ordered_arbitrary sequence is exactly that permutation.
func bytesForStep(step uint64, byteWidth int) []byte {
	buf := make([]byte, byteWidth)
	if byteWidth == 1 {
		buf[0] = permTable[step&0xFF]
		return buf
	}

	for k := 0; k < byteWidth; k++ {
		mixed := step ^ (step >> uint(8*((k+1)%8)))
		idx := byte((mixed + uint64(k)*0x9E3779B97F4A7C15) & 0xFF)
		buf[k] = permTable[idx] ^ permTable[(idx+byte(k))&0xFF]
	}

	return buf
}

func (m *IntMutator[T]) OrderedArbitrary(step *IntArbStep, maxCplx float64) (T, float64, bool) {
	var zero T

	if step.next >= m.maxOrderedSteps || float64(8*m.byteWidth) > maxCplx {
		return zero, 0, false
	}

	buf := bytesForStep(step.next, m.byteWidth)
	step.next++

	return m.decode(buf), float64(8 * m.byteWidth), true
}

func (m *IntMutator[T]) RandomArbitrary(rng *rand.Rand, maxCplx float64) (T, float64) {
	rng = rngOrDefault(rng)
	buf := make([]byte, m.byteWidth)

	for i := range buf {
		buf[i] = permTable[rng.Intn(256)]
	}

	return m.decode(buf), float64(8 * m.byteWidth)
}

// totalOps is the fixed operation list ordered_mutate cycles through:
// increment, decrement, one flip per bit, then a table-driven replace.
func (m *IntMutator[T]) totalOps() int { return 2 + 8*m.byteWidth + 1 }

func (m *IntMutator[T]) applyOp(rng *rand.Rand, value T, opIndex int) T {
	switch {
	case opIndex == 0:
		return m.decode(addOne(m.encode(value)))
	case opIndex == 1:
		return m.decode(subOne(m.encode(value)))
	case opIndex < 2+8*m.byteWidth:
		bit := opIndex - 2
		buf := m.encode(value)
		buf[bit/8] ^= 1 << uint(bit%8)

		return m.decode(buf)
	default:
		return m.RandomArbitrary2(rng)
	}
}

func (m *IntMutator[T]) RandomArbitrary2(rng *rand.Rand) T {
	v, _ := m.RandomArbitrary(rng, float64(8*m.byteWidth))
	return v
}

func addOne(buf []byte) []byte {
	out := append([]byte(nil), buf...)
	for i := range out {
		out[i]++
		if out[i] != 0 {
			break
		}
	}

	return out
}

func subOne(buf []byte) []byte {
	out := append([]byte(nil), buf...)
	for i := range out {
		out[i]--
		if out[i] != 0xFF {
			break
		}
	}

	return out
}

func (m *IntMutator[T]) OrderedMutate(value *T, cache *IntCache, step *IntMutStep, maxCplx float64) (IntToken, float64, bool) {
	if step.opIndex >= m.totalOps() || float64(8*m.byteWidth) > maxCplx {
		return IntToken{}, 0, false
	}

	prev := append([]byte(nil), m.encode(*value)...)
	*value = m.applyOp(nil, *value, step.opIndex)
	step.opIndex++

	return IntToken{previous: prev}, float64(8 * m.byteWidth), true
}

func (m *IntMutator[T]) RandomMutate(rng *rand.Rand, value *T, cache *IntCache, maxCplx float64) (IntToken, float64) {
	rng = rngOrDefault(rng)
	prev := append([]byte(nil), m.encode(*value)...)
	op := rng.Intn(m.totalOps())
	*value = m.applyOp(rng, *value, op)

	return IntToken{previous: prev}, float64(8 * m.byteWidth)
}

func (m *IntMutator[T]) Unmutate(value *T, cache *IntCache, token IntToken) {
	*value = m.decode(token.previous)
}
