package synth

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// RandomSource abstracts the source of randomness. *rand.Rand from
// math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
	Int64N(n int64) int64
	Uint64() uint64
	Float32() float32
	Float64() float64
}

// NewRand returns a PCG-backed source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ByteSource uses a byte slice as a source of randomness. Once the data is
// exhausted every draw returns zero, which steers synthesis towards the
// fixed values. It lets fuzz tests drive random synthesis.
type ByteSource struct {
	data []byte
	pos  int
}

// NewByteSource creates a ByteSource reading from data.
func NewByteSource(data []byte) *ByteSource {
	return &ByteSource{data: data}
}

func (s *ByteSource) next(n int) []byte {
	var buf [8]byte
	for i := 0; i < n && s.pos < len(s.data); i++ {
		buf[i] = s.data[s.pos]
		s.pos++
	}
	return buf[:]
}

func (s *ByteSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	if n <= 256 {
		return int(s.next(1)[0]) % n
	}
	return int(s.Uint64() % uint64(n))
}

func (s *ByteSource) Int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return int64(s.Uint64() % uint64(n))
}

func (s *ByteSource) Uint64() uint64 {
	return binary.LittleEndian.Uint64(s.next(8))
}

func (s *ByteSource) Float32() float32 {
	return float32(s.next(1)[0]) / 256.0
}

func (s *ByteSource) Float64() float64 {
	v := binary.LittleEndian.Uint64(s.next(8)) >> 11
	return float64(v) / (1 << 53)
}

// uint64Reader adapts a RandomSource to io.Reader.
type uint64Reader struct {
	src RandomSource
}

func (r uint64Reader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], r.src.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}

// int64In returns a value in [lo, hi].
func int64In(src RandomSource, lo, hi int64) int64 {
	span := uint64(hi - lo)
	if span == math.MaxUint64 {
		return int64(src.Uint64())
	}
	return lo + int64(src.Uint64()%(span+1))
}

func runtimeSeed() uint64 {
	return rand.Uint64()
}
