package engine

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// fixedRand always returns the same value.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestSpeedBoostTable(t *testing.T) {
	cfg := DefaultSpeedConfig()
	tests := []struct {
		rt   time.Duration
		want float64
	}{
		{500 * time.Millisecond, 3.0},
		{1499 * time.Millisecond, 3.0},
		{1500 * time.Millisecond, 2.0},
		{2999 * time.Millisecond, 2.0},
		{3 * time.Second, 1.0},
		{4900 * time.Millisecond, 1.0},
		{5 * time.Second, 0.3},
		{time.Minute, 0.3},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, cfg.BoostFor(tt.rt), 1e-9, "rt=%v", tt.rt)
	}
}

func TestSpeedAnswerAndClamp(t *testing.T) {
	s := NewSpeed(DefaultSpeedConfig())
	assert.Equal(t, 2.0, s.Value())

	s.Answer(true, time.Second)
	assert.InDelta(t, 5.0, s.Value(), 1e-9)

	for range 5 {
		s.Answer(true, time.Second)
	}
	assert.Equal(t, 10.0, s.Value(), "speed clamps at max")

	s.Answer(false, 0)
	assert.InDelta(t, 7.5, s.Value(), 1e-9)

	for range 5 {
		s.Answer(false, 0)
	}
	assert.Equal(t, 1.0, s.Value(), "speed clamps at min")
}

func TestSpeedDecay(t *testing.T) {
	s := NewSpeed(DefaultSpeedConfig())
	s.Answer(true, time.Second) // 5
	s.Decay(1500 * time.Millisecond)
	assert.InDelta(t, 4.0, s.Value(), 1e-9)

	s.Decay(time.Hour)
	assert.Equal(t, 1.0, s.Value())

	s.Decay(-time.Second)
	assert.Equal(t, 1.0, s.Value())
}

func TestSpeedStaysInBounds(t *testing.T) {
	r := seeded()
	s := NewSpeed(DefaultSpeedConfig())
	for range 10000 {
		switch Intn(r, 3) {
		case 0:
			s.Decay(time.Duration(r.Float64() * float64(200*time.Millisecond)))
		case 1:
			s.Answer(true, time.Duration(r.Float64()*float64(8*time.Second)))
		default:
			s.Answer(false, 0)
		}
		require.GreaterOrEqual(t, s.Value(), 1.0)
		require.LessOrEqual(t, s.Value(), 10.0)
	}
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandSlow, BandFor(1))
	assert.Equal(t, BandSlow, BandFor(2))
	assert.Equal(t, BandCruising, BandFor(3.5))
	assert.Equal(t, BandFast, BandFor(6))
	assert.Equal(t, BandTurbo, BandFor(7.9))
	assert.Equal(t, BandMax, BandFor(10))
}

func TestTrackCapsUntilFinish(t *testing.T) {
	tr := NewTrack(DefaultTrackConfig())
	tr.Advance(true)
	assert.InDelta(t, 100.0/12, tr.Percent(), 1e-9)
	tr.Advance(false)
	assert.InDelta(t, 100.0/12*1.25, tr.Percent(), 1e-9)

	for range 20 {
		tr.Advance(true)
	}
	assert.Equal(t, 95.0, tr.Percent())

	tr.Finish()
	assert.Equal(t, 100.0, tr.Percent())
	tr.Advance(true)
	assert.Equal(t, 100.0, tr.Percent())
}

func TestChampionAdvancesAtBaseRate(t *testing.T) {
	c := NewChampion(100*time.Second, DefaultChampionConfig(), fixedRand(0))
	for range 100 {
		c.Tick(100 * time.Millisecond)
	}
	assert.InDelta(t, 10.0, c.Progress(), 1e-6)
	assert.False(t, c.Finished())
}

func TestChampionFinishLatches(t *testing.T) {
	c := NewChampion(time.Second, DefaultChampionConfig(), fixedRand(0))
	for range 20 {
		c.Tick(100 * time.Millisecond)
	}
	assert.True(t, c.Finished())
	assert.Equal(t, 100.0, c.Progress())
	c.Tick(time.Second)
	assert.True(t, c.Finished())
	assert.Equal(t, 100.0, c.Progress())
}

func TestChampionZeroFinishTime(t *testing.T) {
	c := NewChampion(0, DefaultChampionConfig(), fixedRand(0))
	c.Tick(time.Millisecond)
	assert.True(t, c.Finished())
}

func TestChampionBurst(t *testing.T) {
	// fixedRand(0) picks the lowest multiplier and the shortest gap.
	c := NewChampion(100*time.Second, DefaultChampionConfig(), fixedRand(0))
	require.Equal(t, 1, c.NextBurstAt())

	assert.False(t, c.OnQuestion(0))
	assert.True(t, c.OnQuestion(1))
	assert.True(t, c.Bursting())
	assert.InDelta(t, 1.15, c.Multiplier(), 1e-9)
	assert.Equal(t, 2, c.NextBurstAt())

	c.Tick(time.Second)
	assert.InDelta(t, 1.15, c.Progress(), 1e-9)

	c.Tick(time.Second)
	assert.False(t, c.Bursting())
	assert.Equal(t, 1.0, c.Multiplier())
	assert.Equal(t, 1, c.Bursts())
}

func TestChampionBurstBounds(t *testing.T) {
	cfg := DefaultChampionConfig()
	c := NewChampion(time.Hour, cfg, seeded())
	for i := 0; i < 200; i++ {
		prev := c.NextBurstAt()
		if c.OnQuestion(i) {
			assert.GreaterOrEqual(t, c.Multiplier(), cfg.BurstMin)
			assert.LessOrEqual(t, c.Multiplier(), cfg.BurstMax)
			gap := c.NextBurstAt() - prev
			assert.GreaterOrEqual(t, gap, cfg.GapMin)
			assert.LessOrEqual(t, gap, cfg.GapMax)
		}
	}
	assert.Greater(t, c.Bursts(), 50)
}

func TestClampFrame(t *testing.T) {
	assert.Equal(t, 16*time.Millisecond, ClampFrame(16*time.Millisecond, MaxFrameDelta))
	assert.Equal(t, MaxFrameDelta, ClampFrame(5*time.Second, MaxFrameDelta))
	assert.Equal(t, time.Duration(0), ClampFrame(-time.Second, MaxFrameDelta))
}

func TestShuffleIsPermutation(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	Shuffle(seeded(), s)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, s)
}
