// Package timing measures the phases of a command.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one recorded step of a Timer
type Phase struct {
	Name     string
	Duration time.Duration // Time spent since the previous phase ended
}

// Timer records consecutive phases
type Timer struct {
	start  time.Time
	last   time.Time
	phases []Phase
	now    func() time.Time
}

// NewTimer creates a timer started now
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	start := now()
	return &Timer{start: start, last: start, now: now}
}

// Mark closes the current phase under name and returns its duration
func (t *Timer) Mark(name string) time.Duration {
	at := t.now()
	d := at.Sub(t.last)
	t.last = at
	t.phases = append(t.phases, Phase{Name: name, Duration: d})
	return d
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Phases returns the recorded phases in order
func (t *Timer) Phases() []Phase {
	return append([]Phase{}, t.phases...)
}

// Summary formats the total and every phase in milliseconds
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "total=%s", ms(t.Elapsed()))
	for _, p := range t.phases {
		fmt.Fprintf(&b, " %s=%s", p.Name, ms(p.Duration))
	}
	return b.String()
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
