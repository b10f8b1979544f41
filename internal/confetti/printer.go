package confetti

import (
	"fmt"
	"io"
	"math/rand/v2"
)

// Printer celebrates on a plain writer: it runs the burst for a few ticks and
// prints that single frame. It satisfies store.Celebrator.
type Printer struct {
	W             io.Writer
	Width, Height int
	Ticks         int
	Shots         []Shot
	Rand          *rand.Rand
}

// NewPrinter returns a Printer with the default burst on a 60×12 grid.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{W: w, Width: 60, Height: 12, Ticks: 8, Shots: DefaultBurst()}
}

func (p *Printer) Celebrate() {
	f := NewField(p.Width, p.Height, p.Rand)
	Burst(f, p.Shots)
	for i := 0; i < p.Ticks; i++ {
		f.Step()
	}
	fmt.Fprintln(p.W, f.Render())
}
