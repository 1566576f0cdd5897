package update

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// Progress tracks bytes transferred during a single fetch. It is safe for one
// goroutine to advance it while another reads it.
type Progress struct {
	mu          sync.Mutex
	name        string
	transferred int64
	total       int64
}

// NewProgress returns a Progress for name. A total of 0 means unknown.
func NewProgress(name string, total int64) *Progress {
	if total < 0 {
		total = 0
	}
	return &Progress{name: name, total: total}
}

// Name returns the label the progress was created with.
func (p *Progress) Name() string {
	return p.name
}

// Add advances the transferred byte count by n.
func (p *Progress) Add(n int64) {
	if n <= 0 {
		return
	}
	p.mu.Lock()
	p.transferred += n
	p.mu.Unlock()
}

// Snapshot returns the transferred and total byte counts.
func (p *Progress) Snapshot() (transferred, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transferred, p.total
}

// Percent returns completion in 0..100, or -1 when the total is unknown.
func (p *Progress) Percent() float64 {
	transferred, total := p.Snapshot()
	if total <= 0 {
		return -1
	}
	pct := float64(transferred) * 100 / float64(total)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// ProgressReporter observes a fetch. Start is called once the body stream is
// open, Update after every chunk written to disk, and Finish exactly once
// after Start with the fetch's outcome.
type ProgressReporter interface {
	Start(p *Progress)
	Update(p *Progress)
	Finish(p *Progress, err error)
}

// NopReporter discards all progress events.
type NopReporter struct{}

func (NopReporter) Start(*Progress)         {}
func (NopReporter) Update(*Progress)        {}
func (NopReporter) Finish(*Progress, error) {}

// TerminalReporter draws a single-line progress bar. Nothing is drawn when
// the writer is not a terminal.
type TerminalReporter struct {
	w        io.Writer
	enabled  bool
	width    int
	interval time.Duration

	mu       sync.Mutex
	lastDraw time.Time
}

// NewTerminalReporter creates a reporter writing to w.
func NewTerminalReporter(w io.Writer) *TerminalReporter {
	return &TerminalReporter{
		w:        w,
		enabled:  isTerminal(w),
		width:    40,
		interval: 100 * time.Millisecond,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Start prints the destination being downloaded.
func (r *TerminalReporter) Start(p *Progress) {
	if !r.enabled {
		return
	}
	fmt.Fprintf(r.w, "⬇️ Download to %s\n", p.Name())
	r.draw(p, true)
}

// Update redraws the bar, at most once per interval.
func (r *TerminalReporter) Update(p *Progress) {
	if !r.enabled {
		return
	}
	r.draw(p, false)
}

// Finish draws the final state and ends the line.
func (r *TerminalReporter) Finish(p *Progress, err error) {
	if !r.enabled {
		return
	}
	r.draw(p, true)
	if err != nil {
		fmt.Fprintln(r.w, " failed")
		return
	}
	fmt.Fprintln(r.w, " done")
}

func (r *TerminalReporter) draw(p *Progress, force bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if !force && now.Sub(r.lastDraw) < r.interval {
		return
	}
	r.lastDraw = now
	fmt.Fprintf(r.w, "\r%s", r.Render(p))
}

// Render formats p as "[#####>----] 1.2 MB/4.0 MB celestial.jar".
func (r *TerminalReporter) Render(p *Progress) string {
	transferred, total := p.Snapshot()
	name := filepath.Base(p.Name())

	if total <= 0 {
		return fmt.Sprintf("%s %s", humanize.Bytes(uint64(transferred)), name)
	}

	filled := int(float64(r.width) * p.Percent() / 100)
	var bar strings.Builder
	bar.WriteByte('[')
	for i := 0; i < r.width; i++ {
		switch {
		case i < filled:
			bar.WriteByte('#')
		case i == filled:
			bar.WriteByte('>')
		default:
			bar.WriteByte('-')
		}
	}
	bar.WriteByte(']')

	return fmt.Sprintf("%s %s/%s %s", bar.String(),
		humanize.Bytes(uint64(transferred)), humanize.Bytes(uint64(total)), name)
}
