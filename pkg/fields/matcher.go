package fields

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfill/internal/logger"
	"github.com/goliatone/go-formfill/pkg/document"
)

// DefaultFont is the typeface applied to written runs.
const DefaultFont = "Times New Roman"

// Report counts the cells each rule filled.
type Report struct {
	Hits  map[string]int
	Cells int
}

// Count returns the hits for key.
func (r Report) Count(key string) int {
	return r.Hits[key]
}

// Filled returns the total number of filled cells.
func (r Report) Filled() int {
	total := 0
	for _, n := range r.Hits {
		total += n
	}
	return total
}

// Option customises a Matcher.
type Option func(*Matcher)

// WithFont overrides the typeface of written runs. Empty leaves fonts alone.
func WithFont(name string) Option {
	return func(m *Matcher) {
		m.writer.Font = name
	}
}

// WithRules replaces the mode's rule table.
func WithRules(rules []Rule) Option {
	return func(m *Matcher) {
		m.rules = append([]Rule(nil), rules...)
	}
}

// WithLogger sets the logger used for substitution messages.
func WithLogger(l logger.Logger) Option {
	return func(m *Matcher) {
		if l != nil {
			m.log = l
		}
	}
}

// Matcher applies a rule table to the tables of a document.
type Matcher struct {
	mode   Mode
	rules  []Rule
	writer Writer
	log    logger.Logger
}

// NewMatcher builds a Matcher for mode.
func NewMatcher(mode Mode, options ...Option) (*Matcher, error) {
	rules, err := Table(mode)
	if err != nil {
		return nil, err
	}
	m := &Matcher{mode: mode, rules: rules, writer: Writer{Font: DefaultFont}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	if m.log == nil {
		m.log = logger.GetDefault()
	}
	for i, r := range m.rules {
		if r.Key == "" || r.Match == nil || r.Apply == nil {
			return nil, fmt.Errorf("fields: rule %d is incomplete", i)
		}
	}
	return m, nil
}

// Rules returns a copy of the rule table in evaluation order.
func (m *Matcher) Rules() []Rule {
	return append([]Rule(nil), m.rules...)
}

// Apply walks tables, rows and cells in order and fills every cell matched
// by a rule. The first failing action aborts the walk.
func (m *Matcher) Apply(ctx context.Context, doc document.Document, values Values) (Report, error) {
	report := Report{Hits: make(map[string]int)}
	if ctx == nil {
		return report, errors.New("fields: context is required")
	}
	if doc == nil {
		return report, errors.New("fields: document is nil")
	}

	for ti, table := range doc.Tables() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		for ri, row := range table.Rows() {
			for ci, cell := range row.Cells() {
				report.Cells++
				text := strings.TrimSpace(cell.Text())
				r, ok := m.match(text)
				if !ok {
					continue
				}
				if err := r.Apply(&m.writer, cell, values); err != nil {
					m.log.Error("field substitution failed",
						"mode", m.mode, "label", r.Key, "table", ti, "row", ri, "cell", ci, "err", err)
					return report, fmt.Errorf("fields: %s at table %d row %d cell %d: %w", r.Key, ti, ri, ci, err)
				}
				report.Hits[r.Key]++
				m.log.Debug("filled field",
					"label", r.Key, "table", ti, "row", ri, "cell", ci, "text", cell.Text())
			}
		}
	}
	return report, nil
}

func (m *Matcher) match(text string) (Rule, bool) {
	if text == "" {
		return Rule{}, false
	}
	for _, r := range m.rules {
		if r.Match(text) {
			return r, true
		}
	}
	return Rule{}, false
}
