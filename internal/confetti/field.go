package confetti

import (
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// The simulation space is a fixed browser-sized canvas in pixels; cells are
// a projection of it.
const (
	canvasW = 1280
	canvasH = 800
)

var palette = []lipgloss.Color{
	"#26ccff", "#a25afd", "#ff5e7e", "#88ff5a", "#fcff42", "#ffa62d", "#ff36ff",
}

type particle struct {
	x, y     float64
	angle    float64
	velocity float64
	decay    float64
	scalar   float64
	ticks    int
	color    int
}

// Field is a width×height cell grid holding live particles. It is safe for
// use from several goroutines.
type Field struct {
	mu        sync.Mutex
	w, h      int
	rng       *rand.Rand
	particles []particle
}

// NewField returns an empty field. A nil rng gets a randomly seeded one.
func NewField(width, height int, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{rng: rng}
	f.Resize(width, height)
	return f
}

// Resize changes the grid. Live particles keep their canvas positions.
func (f *Field) Resize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.w, f.h = max(width, 1), max(height, 1)
}

// Size returns the grid in cells.
func (f *Field) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w, f.h
}

// Fire spawns the shot's particles at the origin.
func (f *Field) Fire(s Shot) {
	s = s.withDefaults()

	f.mu.Lock()
	defer f.mu.Unlock()

	ox := canvasW * OriginX
	oy := canvasH * OriginY
	up := math.Pi / 2
	spread := s.Spread * math.Pi / 180

	for i := 0; i < s.Count(); i++ {
		f.particles = append(f.particles, particle{
			x:        ox,
			y:        oy,
			angle:    -up + (0.5*spread - f.rng.Float64()*spread),
			velocity: s.StartVelocity*0.5 + f.rng.Float64()*s.StartVelocity,
			decay:    s.Decay,
			scalar:   s.Scalar,
			ticks:    DefaultTicks,
			color:    f.rng.IntN(len(palette)),
		})
	}
}

// Step advances one tick and drops particles that expired or left the grid.
func (f *Field) Step() {
	f.mu.Lock()
	defer f.mu.Unlock()

	live := f.particles[:0]
	for _, p := range f.particles {
		p.x += math.Cos(p.angle) * p.velocity
		p.y += math.Sin(p.angle)*p.velocity + gravity
		p.velocity *= p.decay
		p.ticks--
		if p.ticks <= 0 || p.y >= canvasH || p.x < 0 || p.x >= canvasW {
			continue
		}
		live = append(live, p)
	}
	f.particles = live
}

// Alive returns the number of live particles.
func (f *Field) Alive() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.particles)
}

// Clear drops every particle.
func (f *Field) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.particles = nil
}

func glyph(scalar float64) string {
	switch {
	case scalar < 1:
		return "·"
	case scalar > 1:
		return "✦"
	default:
		return "•"
	}
}

// Render draws the grid, one line per row. Particles above the top edge are
// not drawn.
func (f *Field) Render() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	grid := make([][]string, f.h)
	for r := range grid {
		grid[r] = make([]string, f.w)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	for _, p := range f.particles {
		c := int(p.x / canvasW * float64(f.w))
		r := int(p.y / canvasH * float64(f.h))
		if p.y < 0 {
			continue
		}
		if r < 0 || r >= f.h || c < 0 || c >= f.w {
			continue
		}
		grid[r][c] = lipgloss.NewStyle().Foreground(palette[p.color]).Render(glyph(p.scalar))
	}

	var b strings.Builder
	for r, row := range grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, ""))
	}
	return b.String()
}
