// Package write reports per-iteration progress of an optimization run.
package write

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// Settings lists where progress is written. A nil or empty Writers slice
// disables all output.
type Settings struct {
	Writers []Writer
}

// DefaultSettings writes nothing.
func DefaultSettings() *Settings {
	return &Settings{}
}

type Type int

const (
	// Logger writes every iteration as a csv record, for postprocessing.
	Logger Type = iota

	// Displayer is intended for human monitoring. Values are written at most
	// every valueInterval and columns are aligned. Headings are repeated
	// after headingInterval rows.
	Displayer
)

type Writer struct {
	io.Writer
	T Type
}

type Value struct {
	Heading string
	Value   interface{}
}

// DataAdder contributes columns to the display.
type DataAdder interface {
	AppendWriteData([]*Value) []*Value
}

const headingInterval = 30
const valueInterval time.Duration = 500 * time.Millisecond

// Display collects values from its DataAdders and writes them to the
// configured writers. Headings are read once, at Init, and must not change
// afterwards.
type Display struct {
	displayValues []*Value

	headings   []string
	values     []string
	maxLengths []int

	lastHeadingDisplay int
	lastValueDisplay   time.Time

	existsDisplayer bool
	existsLogger    bool

	writers []Writer
	csv     map[int]*csv.Writer

	dataAdders []DataAdder
}

func NewDisplay() *Display {
	return &Display{}
}

// AddDataAdder should only be called before Init.
func (d *Display) AddDataAdder(dataAdders ...DataAdder) {
	d.dataAdders = append(d.dataAdders, dataAdders...)
}

func (d *Display) accumulateValues() {
	d.displayValues = d.displayValues[:0]
	for _, add := range d.dataAdders {
		d.displayValues = add.AppendWriteData(d.displayValues)
	}
}

// Init resets the display and writes the csv header and the initial values
// to every Logger.
func (d *Display) Init(s *Settings) error {
	d.writers = nil
	d.existsDisplayer = false
	d.existsLogger = false
	d.lastHeadingDisplay = headingInterval + 1
	d.lastValueDisplay = time.Now().Add(-valueInterval)
	if s == nil || len(s.Writers) == 0 {
		return nil
	}
	d.writers = s.Writers

	d.accumulateValues()
	d.headings = d.headings[:0]
	d.values = d.values[:0]
	for _, v := range d.displayValues {
		d.headings = append(d.headings, v.Heading)
		d.values = append(d.values, valueToString(v.Value))
	}

	d.csv = make(map[int]*csv.Writer)
	for i, w := range d.writers {
		switch w.T {
		default:
			return fmt.Errorf("write: unknown writer type %d", w.T)
		case Logger:
			d.existsLogger = true
			cw := csv.NewWriter(w)
			if err := cw.Write(d.headings); err != nil {
				return err
			}
			if err := cw.Write(d.values); err != nil {
				return err
			}
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			d.csv[i] = cw
		case Displayer:
			d.existsDisplayer = true
		}
	}
	return nil
}

// Iterate writes the current values as configured.
func (d *Display) Iterate() error {
	return d.write(false)
}

// Flush writes the current values to every writer regardless of throttling.
// It is called once at the end of a run so the final state is always shown.
func (d *Display) Flush() error {
	return d.write(true)
}

func (d *Display) write(force bool) error {
	if len(d.writers) == 0 {
		return nil
	}
	var displayValues, displayHeadings bool
	if d.existsDisplayer {
		displayValues = force || time.Since(d.lastValueDisplay) > valueInterval
		if displayValues {
			d.lastValueDisplay = time.Now()
			d.lastHeadingDisplay++
		}
		displayHeadings = displayValues && d.lastHeadingDisplay > headingInterval
		if displayHeadings {
			d.lastHeadingDisplay = 0
		}
	}

	if !d.existsLogger && !displayValues {
		return nil
	}
	d.accumulateValues()
	d.values = d.values[:0]
	for _, v := range d.displayValues {
		d.values = append(d.values, valueToString(v.Value))
	}

	if displayValues {
		d.maxLengths = d.maxLengths[:0]
		for i, v := range d.values {
			l := len(v)
			if i < len(d.headings) && len(d.headings[i]) > l {
				l = len(d.headings[i])
			}
			d.maxLengths = append(d.maxLengths, l)
		}
	}

	for i, w := range d.writers {
		switch w.T {
		case Logger:
			if force {
				// The final record duplicates the last iteration.
				continue
			}
			cw := d.csv[i]
			if err := cw.Write(d.values); err != nil {
				return err
			}
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
		case Displayer:
			if displayHeadings {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
				if err := writeAligned(w, d.headings, d.maxLengths); err != nil {
					return err
				}
			}
			if displayValues {
				if err := writeAligned(w, d.values, d.maxLengths); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func writeAligned(w io.Writer, strs []string, maxLengths []int) error {
	var sb strings.Builder
	for i, str := range strs {
		sb.WriteString(str)
		if i < len(maxLengths) {
			sb.WriteString(strings.Repeat(" ", maxLengths[i]-len(str)))
		}
		sb.WriteByte('\t')
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func valueToString(v interface{}) string {
	switch v := v.(type) {
	case int:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%e", v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
