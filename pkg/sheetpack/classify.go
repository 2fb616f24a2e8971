package sheetpack

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// CategoryEmpty is the category of absent or blank-after-trim values.
// Blank cells are filtered out before bucketing and never appear in
// output. Callers deciding whether to drop a cell must test the value
// for blankness rather than compare against this constant: a cell
// whose literal text is "Empty" classifies to the same string but is
// a real category.
const CategoryEmpty = "Empty"

type namedPattern struct {
	name string
	src  string
}

// defaultPatterns are tried in this order. More specific numeric forms
// come before looser ones so "50%" is [PERCENTAGE] rather than being
// half-claimed by a broader pattern, and integer comes before float and
// scientific to keep their overlap unambiguous.
var defaultPatterns = []namedPattern{
	{"url", `^(https?:\/\/|www\.|ftp:\/\/|file:\/\/)[a-zA-Z0-9\-\.]+\.[a-zA-Z]{2,}(:[0-9]+)?(\/\S*)?$`},
	{"year", `^(1|2)\d{3}$`},
	{"integer", `^-?\d+$`},
	{"percentage", `^-?\d+\.?\d*%$`},
	{"scientific", `^-?\d+\.?\d*[eE][+-]?\d+$`},
	{"float", `^-?\d*\.\d+$`},
	{"currency", `^[$€£¥]\s*-?\d+\.?\d*$|^-?\d+\.?\d*\s*[$€£¥]$`},
	{"email", `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`},
}

// defaultDateLayouts cover the date renderings commonly found in
// spreadsheet exports. First successful parse wins.
var defaultDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01-02-2006",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"02.01.2006",
	"2006.01.02",
	"Jan 02, 2006",
	"January 02, 2006",
	"02 Jan 2006",
	"02 January 2006",
}

var defaultTimeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04:05 PM",
}

type compiledPattern struct {
	tag string // "[NAME]"
	re  *regexp.Regexp
}

// Classifier assigns a category tag to raw cell values. It is immutable
// and safe for concurrent use once constructed.
type Classifier struct {
	patterns    []compiledPattern
	dateLayouts []string
	timeLayouts []string
}

// NewClassifier compiles the pattern set described by opts. It fails
// only when a custom pattern source does not compile.
func NewClassifier(opts Options) (*Classifier, error) {
	merged := make([]namedPattern, len(defaultPatterns))
	copy(merged, defaultPatterns)

	var extra []string
	for name, src := range opts.CustomPatterns {
		replaced := false
		for i := range merged {
			if merged[i].name == name {
				merged[i].src = src
				replaced = true
				break
			}
		}
		if !replaced {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		merged = append(merged, namedPattern{name: name, src: opts.CustomPatterns[name]})
	}

	patterns := make([]compiledPattern, 0, len(merged))
	for _, p := range merged {
		re, err := regexp.Compile(p.src)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p.name, err)
		}
		patterns = append(patterns, compiledPattern{
			tag: "[" + strings.ToUpper(p.name) + "]",
			re:  re,
		})
	}

	c := &Classifier{
		patterns:    patterns,
		dateLayouts: defaultDateLayouts,
		timeLayouts: defaultTimeLayouts,
	}
	if opts.DateLayouts != nil {
		c.dateLayouts = opts.DateLayouts
	}
	if opts.TimeLayouts != nil {
		c.timeLayouts = opts.TimeLayouts
	}
	return c, nil
}

// Classify maps a raw cell value to its category tag: the first
// matching pattern's bracketed name, [DATE] or [TIME] when a configured
// layout parses the whole value, or the literal trimmed value itself
// when nothing matches, so equal literals group together downstream.
// Classification never fails.
func (c *Classifier) Classify(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return CategoryEmpty
	}

	for _, p := range c.patterns {
		if p.re.MatchString(v) {
			return p.tag
		}
	}

	for _, layout := range c.dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return "[DATE]"
		}
	}
	for _, layout := range c.timeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return "[TIME]"
		}
	}

	return v
}
