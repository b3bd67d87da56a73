package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/itchyny/gojq"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", Text:
		return Text, nil
	case JSON:
		return JSON, nil
	case YAML, "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Textual values render themselves in text format.
type Textual interface {
	Text(p Palette) string
}

// Palette highlights facet tokens and routes in text output.
type Palette struct {
	inclusive *color.Color
	exclusive *color.Color
	route     *color.Color
	value     *color.Color
}

func NewPalette(enabled bool) Palette {
	p := Palette{
		inclusive: color.New(color.FgGreen),
		exclusive: color.New(color.FgRed),
		route:     color.New(color.FgCyan, color.Bold),
		value:     color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.inclusive, p.exclusive, p.route, p.value} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Token colors a facet orientation by its polarity.
func (p Palette) Token(t string) string {
	if strings.HasPrefix(t, "~") {
		return p.exclusive.Sprint(t)
	}
	return p.inclusive.Sprint(t)
}

func (p Palette) Tokens(ts []string) string {
	colored := make([]string, len(ts))
	for i, t := range ts {
		colored[i] = p.Token(t)
	}
	return strings.Join(colored, " ")
}

func (p Palette) Route(r string) string {
	return p.route.Sprint(r)
}

func (p Palette) Value(v interface{}) string {
	return p.value.Sprint(v)
}

// Printer writes values in one format, optionally filtered by a jq
// query in the structured formats.
type Printer struct {
	w       io.Writer
	format  Format
	query   *gojq.Query
	palette Palette
}

type Option func(*Printer) error

// WithQuery filters structured output through a jq expression.
func WithQuery(expr string) Option {
	return func(p *Printer) error {
		if expr == "" {
			return nil
		}
		q, err := gojq.Parse(expr)
		if err != nil {
			return errors.Wrapf(err, "parsing jq expression %q", expr)
		}
		p.query = q
		return nil
	}
}

func WithColor(enabled bool) Option {
	return func(p *Printer) error {
		p.palette = NewPalette(enabled)
		return nil
	}
}

func NewPrinter(w io.Writer, format Format, options ...Option) (*Printer, error) {
	p := &Printer{w: w, format: format, palette: NewPalette(false)}
	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	if p.query != nil && p.format == Text {
		return nil, errors.New("jq filtering needs json or yaml output")
	}
	return p, nil
}

func (p *Printer) Print(v interface{}) error {
	if p.format == Text {
		return p.text(v)
	}

	generic, err := toGeneric(v)
	if err != nil {
		return err
	}
	values := []interface{}{generic}
	if p.query != nil {
		if values, err = p.filter(generic); err != nil {
			return err
		}
	}
	for i, value := range values {
		if i > 0 && p.format == YAML {
			if _, err := io.WriteString(p.w, "---\n"); err != nil {
				return err
			}
		}
		if err := p.encode(value); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) text(v interface{}) error {
	var s string
	switch t := v.(type) {
	case Textual:
		s = t.Text(p.palette)
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(v)
	}
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(p.w, s)
	return err
}

func (p *Printer) filter(v interface{}) ([]interface{}, error) {
	var out []interface{}
	iter := p.query.Run(v)
	for {
		r, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := r.(error); ok {
			return nil, errors.Wrap(err, "running jq expression")
		}
		out = append(out, r)
	}
	return out, nil
}

func (p *Printer) encode(v interface{}) error {
	switch p.format {
	case JSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = p.w.Write(b)
		return err
	}
	return fmt.Errorf("unknown output format %q", p.format)
}

// toGeneric turns v into the maps, slices and scalars jq operates on,
// honoring json field tags.
func toGeneric(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
