package confetti

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestDefaultBurst(t *testing.T) {
	shots := DefaultBurst()
	require.Len(t, shots, 5)

	counts := []int{}
	for _, s := range shots {
		counts = append(counts, s.Count())
	}
	assert.Equal(t, []int{50, 40, 70, 20, 20}, counts)

	third := shots[2].withDefaults()
	assert.Equal(t, 100.0, third.Spread)
	assert.Equal(t, 45.0, third.StartVelocity)
	assert.Equal(t, 0.91, third.Decay)
	assert.Equal(t, 0.8, third.Scalar)

	second := shots[1].withDefaults()
	assert.Equal(t, DefaultDecay, second.Decay)
	assert.Equal(t, float64(DefaultScalar), second.Scalar)
}

func TestBurst_SpawnsAllShots(t *testing.T) {
	f := NewField(80, 24, seeded())
	Burst(f, DefaultBurst())
	assert.Equal(t, 200, f.Alive())
}

func TestField_ParticlesEventuallyDie(t *testing.T) {
	f := NewField(40, 10, seeded())
	Burst(f, DefaultBurst())
	for i := 0; i < DefaultTicks; i++ {
		f.Step()
	}
	assert.Zero(t, f.Alive())
}

func TestField_FirstTickRisesFromOrigin(t *testing.T) {
	f := NewField(80, 24, seeded())
	f.Fire(Shot{Ratio: 0.05, Spread: 1, StartVelocity: 40})
	oy := canvasH * OriginY
	f.Step()
	for _, p := range f.particles {
		assert.Less(t, p.y, oy, "a narrow upward shot moves up first")
	}
}

func TestField_RenderShape(t *testing.T) {
	f := NewField(30, 6, seeded())
	out := f.Render()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	for _, l := range lines {
		assert.Equal(t, strings.Repeat(" ", 30), l)
	}

	Burst(f, DefaultBurst())
	f.Step()
	assert.NotEqual(t, out, f.Render())
}

func TestField_ClearAndResize(t *testing.T) {
	f := NewField(0, 0, seeded())
	w, h := f.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	f.Resize(20, 5)
	Burst(f, DefaultBurst())
	f.Clear()
	assert.Zero(t, f.Alive())
}

func TestPrinter_Celebrate(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Rand = seeded()
	p.Celebrate()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, p.Height)
	assert.NotEmpty(t, strings.TrimSpace(buf.String()))
}
