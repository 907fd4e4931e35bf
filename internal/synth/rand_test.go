package synth

import (
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	ID       uuid.UUID
	Name     string
	Score    float32
	Joined   time.Time
	Zone     *time.Location
	Friends  map[string]level `dummy:",nullable"`
	Level    level
	Shape    *circle `dummy:",nullable"`
	Inbox    <-chan string
	Callback func(int) bool
}

func TestByteSource(t *testing.T) {
	src := NewByteSource([]byte{5, 1, 2, 3, 4, 5, 6, 7, 8, 200})
	assert.Equal(t, 2, src.IntN(3))
	assert.Equal(t, uint64(0x0807060504030201), src.Uint64())
	assert.Equal(t, float32(200)/256, src.Float32())

	// exhausted
	assert.Zero(t, src.IntN(10))
	assert.Zero(t, src.Uint64())
	assert.Zero(t, src.Float64())
	assert.Zero(t, src.Int64N(10))
}

func TestUint64Reader(t *testing.T) {
	buf := make([]byte, 12)
	n, err := io.ReadFull(uint64Reader{NewByteSource([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})}, buf)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 0, 0}, buf)
}

func TestInt64In(t *testing.T) {
	r := NewRand(1)
	for range 100 {
		v := int64In(r, -3, 3)
		assert.True(t, v >= -3 && v <= 3)
	}
	assert.Equal(t, int64(7), int64In(NewByteSource(nil), 7, 7))
}

func FuzzRandomSynthesis(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	f.Add([]byte("the quick brown fox jumps over the lazy dog"))
	f.Fuzz(func(t *testing.T, data []byte) {
		fx := newFixture(t)
		e := New(WithRand(NewByteSource(data)))
		p, err := random[profile](fx, e)
		require.NoError(t, err)
		assert.Less(t, len(p.Name), MaxCollectionSize)
		assert.NotNil(t, p.Zone)
		assert.NotNil(t, p.Callback)
		p.Callback(1)
	})
}
