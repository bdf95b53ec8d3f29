// Package stats collects execution statistics from trace records.
package stats

import (
	"fmt"
	"image"
	"io"
	"sort"
	"sync"

	"github.com/thelolagemann/gbcore/pkg/trace"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Entry is the execution count of a single opcode.
type Entry struct {
	// Key is the opcode, 0xCBxx for extended opcodes.
	Key   uint16
	Name  string
	Count uint64
}

func (e Entry) String() string {
	return fmt.Sprintf("0x%02X %s: %d", e.Key, e.Name, e.Count)
}

// Histogram counts how often each opcode is executed. It
// implements trace.Tracer.
type Histogram struct {
	mu     sync.Mutex
	counts map[uint16]*Entry
	total  uint64
}

var _ trace.Tracer = (*Histogram)(nil)

// NewHistogram returns an empty Histogram.
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[uint16]*Entry)}
}

func (h *Histogram) Trace(r trace.Record) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := r.Key()
	e, ok := h.counts[key]
	if !ok {
		e = &Entry{Key: key, Name: r.Name}
		h.counts[key] = e
	}
	e.Count++
	h.total++
}

// Total returns the number of records seen.
func (h *Histogram) Total() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total
}

// Top returns the n most executed opcodes, most executed first.
// Ties are ordered by opcode. If n <= 0 every opcode is returned.
func (h *Histogram) Top(n int) []Entry {
	h.mu.Lock()
	entries := make([]Entry, 0, len(h.counts))
	for _, e := range h.counts {
		entries = append(entries, *e)
	}
	h.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Render draws a bar chart of the n most executed opcodes and
// writes it to w as a PNG image of the given size in pixels.
func (h *Histogram) Render(w io.Writer, n, width, height int) error {
	entries := h.Top(n)
	if len(entries) == 0 {
		return fmt.Errorf("stats: no instructions recorded")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Opcode frequency (%d steps)", h.Total())
	p.Y.Label.Text = "Executions"

	values := make(plotter.Values, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.Count)
		names[i] = e.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("stats: writing chart: %w", err)
	}
	return nil
}
