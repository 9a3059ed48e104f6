// Package numfmt provides the numeric formatting used by the built-in converters.
//
// The invariant provider formats and parses like strconv. Culture providers
// take their decimal, grouping and minus symbols from CLDR data in
// golang.org/x/text: formatted output uses the culture's decimal separator
// without grouping, and parsing accepts grouped input. A group separator is
// only accepted between digit groups of the integer part, so "1,5" is not a
// valid en-US integer.
package numfmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrSyntax indicates the input is not a number in the provider's format.
var ErrSyntax = errors.New("numfmt: invalid number syntax")

// Provider formats and parses numbers.
type Provider interface {
	// Name returns the culture tag, or "invariant".
	Name() string
	FormatInt(v int64) string
	FormatFloat(v float64) string
	ParseInt(s string) (int64, error)
	ParseFloat(s string) (float64, error)
}

// Invariant returns the culture-independent provider.
func Invariant() Provider {
	return invariant{}
}

type invariant struct{}

func (invariant) Name() string { return "invariant" }

func (invariant) FormatInt(v int64) string { return strconv.FormatInt(v, 10) }

func (invariant) FormatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func (invariant) ParseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func (invariant) ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ForCulture returns the provider for a BCP 47 tag such as "de-DE".
// An empty tag returns Invariant().
func ForCulture(tag string) (Provider, error) {
	if tag == "" {
		return Invariant(), nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("parse culture %q: %w", tag, err)
	}

	p := message.NewPrinter(t)
	c := &culture{name: t.String(), decimal: ".", minus: "-"}

	// "1234567.5" rendered by the culture, e.g. "1.234.567,5" for de.
	sample := p.Sprintf("%v", number.Decimal(1234567.5))
	var seps []string
	for _, r := range sample {
		if !unicode.IsDigit(r) {
			seps = append(seps, string(r))
		}
	}
	if len(seps) > 0 {
		c.decimal = seps[len(seps)-1]
	}
	if len(seps) > 1 {
		c.group = seps[0]
	}

	neg := p.Sprintf("%v", number.Decimal(-1))
	if i := strings.IndexFunc(neg, unicode.IsDigit); i > 0 {
		c.minus = neg[:i]
	}
	return c, nil
}

// MustCulture is like ForCulture but panics on error.
func MustCulture(tag string) Provider {
	p, err := ForCulture(tag)
	if err != nil {
		panic(err)
	}
	return p
}

type culture struct {
	name    string
	decimal string
	group   string
	minus   string
}

func (c *culture) Name() string { return c.name }

func (c *culture) FormatInt(v int64) string {
	return c.localize(strconv.FormatInt(v, 10))
}

func (c *culture) FormatFloat(v float64) string {
	return c.localize(strconv.FormatFloat(v, 'f', -1, 64))
}

func (c *culture) ParseInt(s string) (int64, error) {
	n, err := c.normalize(s)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(n, 10, 64)
}

func (c *culture) ParseFloat(s string) (float64, error) {
	n, err := c.normalize(s)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(n, 64)
}

// localize turns strconv output into the culture's symbols.
func (c *culture) localize(s string) string {
	if strings.HasPrefix(s, "-") {
		s = c.minus + s[1:]
	}
	return strings.Replace(s, ".", c.decimal, 1)
}

// normalize turns culture input into strconv syntax.
func (c *culture) normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrSyntax
	}
	neg := false
	switch {
	case strings.HasPrefix(s, c.minus):
		neg, s = true, s[len(c.minus):]
	case strings.HasPrefix(s, "-"):
		neg, s = true, s[1:]
	}
	if strings.Count(s, c.decimal) > 1 {
		return "", fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	whole, frac, hasFrac := strings.Cut(s, c.decimal)
	if c.group != "" {
		if strings.Contains(frac, c.group) {
			return "", fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		if strings.Contains(whole, c.group) {
			if !grouped(strings.Split(whole, c.group)) {
				return "", fmt.Errorf("%w: %q", ErrSyntax, s)
			}
			whole = strings.ReplaceAll(whole, c.group, "")
		}
	}
	s = whole
	if hasFrac {
		s += "." + frac
	}
	if r, _ := utf8.DecodeRuneInString(s); !unicode.IsDigit(r) && r != '.' {
		return "", fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	if neg {
		s = "-" + s
	}
	return s, nil
}

// grouped reports whether the separated parts of an integer sit at grouping
// positions: a leading group of one to three digits, a final group of three
// and middle groups of two or three (the latter for cultures such as hi-IN).
func grouped(parts []string) bool {
	last := len(parts) - 1
	for i, p := range parts {
		n := utf8.RuneCountInString(p)
		switch {
		case i == 0:
			if n < 1 || n > 3 {
				return false
			}
		case i == last:
			if n != 3 {
				return false
			}
		case n < 2 || n > 3:
			return false
		}
	}
	return true
}
