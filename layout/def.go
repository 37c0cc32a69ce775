// Package layout reads the placement subset of DEF (Design Exchange Format)
// files: units, die area, rows and placed components. It produces the
// position lists and bounding boxes that regcluster consumes.
package layout

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/TrevorS/regcluster"
)

// ErrMalformed is returned when the input cannot be parsed as DEF.
var ErrMalformed = errors.New("malformed DEF")

// Component is a placed instance of a cell.
type Component struct {
	Name        string
	Macro       string
	Orientation string
	Position    regcluster.Point // lower-left corner, database units
	Fixed       bool
	Placed      bool
}

// Row is a placement row.
type Row struct {
	Name   string
	Site   string
	Origin regcluster.Point
	Step   regcluster.Point
	Num    regcluster.Point // sites in x (DO) and y (BY)
}

// Design is the placement data of one DEF file.
type Design struct {
	Name       string
	Units      int // database units per micron; 0 when not declared
	Die        regcluster.Bounds
	Rows       []Row
	Components []Component
}

// Filter selects components.
type Filter func(Component) bool

// MacroPrefix returns a Filter accepting components whose macro starts with
// any of prefixes, e.g. "DFF" for flip-flops.
func MacroPrefix(prefixes ...string) Filter {
	return func(c Component) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(c.Macro, p) {
				return true
			}
		}
		return false
	}
}

// Positions returns the positions of the placed components accepted by
// filter, in file order. A nil filter accepts every placed component.
func (d *Design) Positions(filter Filter) []regcluster.Point {
	var out []regcluster.Point
	for _, c := range d.Components {
		if !c.Placed {
			continue
		}
		if filter != nil && !filter(c) {
			continue
		}
		out = append(out, c.Position)
	}
	return out
}

// Bounds returns the die area.
func (d *Design) Bounds() regcluster.Bounds { return d.Die }

// ReadFile parses the DEF file at path.
func ReadFile(path string) (*Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("layout: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// sections whose bodies are skipped up to their END line.
var skippedSections = map[string]bool{
	"PINS": true, "NETS": true, "SPECIALNETS": true, "VIAS": true,
	"BLOCKAGES": true, "REGIONS": true, "GROUPS": true, "FILLS": true,
	"NONDEFAULTRULES": true, "SCANCHAINS": true, "STYLES": true,
	"PROPERTYDEFINITIONS": true, "PINPROPERTIES": true, "SLOTS": true,
}

// Parse reads DEF from r.
func Parse(r io.Reader) (*Design, error) {
	toks, err := tokenize(r)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	d := &Design{}

	for !p.done() {
		t := p.next()
		switch t.text {
		case "DESIGN":
			d.Name = p.next().text
			if err := p.skipStatement(); err != nil {
				return nil, err
			}
		case "UNITS":
			if err := p.parseUnits(d); err != nil {
				return nil, err
			}
		case "DIEAREA":
			if err := p.parseDieArea(d); err != nil {
				return nil, err
			}
		case "ROW":
			if err := p.parseRow(d); err != nil {
				return nil, err
			}
		case "COMPONENTS":
			if err := p.parseComponents(d); err != nil {
				return nil, err
			}
		case "END":
			if p.peek().text == "DESIGN" {
				return d, nil
			}
			return nil, p.errorf(t, "unexpected END %s", p.peek().text)
		default:
			if skippedSections[t.text] {
				if err := p.skipSection(t.text); err != nil {
					return nil, err
				}
				continue
			}
			if err := p.skipStatement(); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

type token struct {
	text string
	line int
}

// tokenize splits r into whitespace-separated tokens, dropping # comments.
func tokenize(r io.Reader) ([]token, error) {
	var toks []token
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, f := range strings.Fields(text) {
			toks = append(toks, token{text: f, line: line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("layout: read: %w", err)
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }

func (p *parser) next() token {
	if p.done() {
		return token{line: p.lastLine()}
	}
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *parser) peek() token {
	if p.done() {
		return token{line: p.lastLine()}
	}
	return p.toks[p.pos]
}

func (p *parser) lastLine() int {
	if len(p.toks) == 0 {
		return 0
	}
	return p.toks[len(p.toks)-1].line
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return fmt.Errorf("layout: line %d: %s: %w", t.line, fmt.Sprintf(format, args...), ErrMalformed)
}

func (p *parser) expect(text string) error {
	t := p.next()
	if t.text != text {
		return p.errorf(t, "expected %q, got %q", text, t.text)
	}
	return nil
}

func (p *parser) number() (float64, error) {
	t := p.next()
	v, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return 0, p.errorf(t, "expected number, got %q", t.text)
	}
	return v, nil
}

// point parses "( x y )".
func (p *parser) point() (regcluster.Point, error) {
	if err := p.expect("("); err != nil {
		return regcluster.Point{}, err
	}
	x, err := p.number()
	if err != nil {
		return regcluster.Point{}, err
	}
	y, err := p.number()
	if err != nil {
		return regcluster.Point{}, err
	}
	if err := p.expect(")"); err != nil {
		return regcluster.Point{}, err
	}
	return regcluster.Point{X: x, Y: y}, nil
}

func (p *parser) skipStatement() error {
	for !p.done() {
		if p.next().text == ";" {
			return nil
		}
	}
	return p.errorf(token{line: p.lastLine()}, "unterminated statement")
}

func (p *parser) skipSection(name string) error {
	for !p.done() {
		if p.next().text == "END" && p.peek().text == name {
			p.next()
			return nil
		}
	}
	return p.errorf(token{line: p.lastLine()}, "missing END %s", name)
}

// parseUnits handles "UNITS DISTANCE MICRONS n ;".
func (p *parser) parseUnits(d *Design) error {
	if err := p.expect("DISTANCE"); err != nil {
		return err
	}
	if err := p.expect("MICRONS"); err != nil {
		return err
	}
	v, err := p.number()
	if err != nil {
		return err
	}
	d.Units = int(v)
	return p.expect(";")
}

// parseDieArea handles "DIEAREA ( x y ) ( x y ) ... ;". Polygonal die areas
// collapse to their bounding box.
func (p *parser) parseDieArea(d *Design) error {
	lo := regcluster.Point{X: math.Inf(1), Y: math.Inf(1)}
	hi := regcluster.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	n := 0
	for p.peek().text == "(" {
		pt, err := p.point()
		if err != nil {
			return err
		}
		lo.X, lo.Y = math.Min(lo.X, pt.X), math.Min(lo.Y, pt.Y)
		hi.X, hi.Y = math.Max(hi.X, pt.X), math.Max(hi.Y, pt.Y)
		n++
	}
	if n < 2 {
		return p.errorf(p.peek(), "DIEAREA needs at least two points, got %d", n)
	}
	d.Die = regcluster.Bounds{Lower: lo, Upper: hi}
	return p.expect(";")
}

// parseRow handles "ROW name site x y orient [DO n BY m [STEP sx sy]] ;".
func (p *parser) parseRow(d *Design) error {
	row := Row{Name: p.next().text, Site: p.next().text, Num: regcluster.Point{X: 1, Y: 1}}
	x, err := p.number()
	if err != nil {
		return err
	}
	y, err := p.number()
	if err != nil {
		return err
	}
	row.Origin = regcluster.Point{X: x, Y: y}
	p.next() // orientation

	for !p.done() && p.peek().text != ";" {
		t := p.next()
		switch t.text {
		case "DO":
			if row.Num.X, err = p.number(); err != nil {
				return err
			}
			if err := p.expect("BY"); err != nil {
				return err
			}
			if row.Num.Y, err = p.number(); err != nil {
				return err
			}
		case "STEP":
			if row.Step.X, err = p.number(); err != nil {
				return err
			}
			if row.Step.Y, err = p.number(); err != nil {
				return err
			}
		}
	}
	d.Rows = append(d.Rows, row)
	return p.expect(";")
}

// parseComponents handles the COMPONENTS section:
//
//	COMPONENTS n ;
//	- name macro [+ PLACED|FIXED|COVER ( x y ) orient] [+ ...] ;
//	END COMPONENTS
func (p *parser) parseComponents(d *Design) error {
	count, err := p.number()
	if err != nil {
		return err
	}
	if err := p.expect(";"); err != nil {
		return err
	}

	for {
		t := p.next()
		switch t.text {
		case "-":
		case "END":
			if err := p.expect("COMPONENTS"); err != nil {
				return err
			}
			if got := len(d.Components); float64(got) != count {
				return p.errorf(t, "COMPONENTS declares %d entries, found %d", int(count), got)
			}
			return nil
		case "":
			return p.errorf(t, "missing END COMPONENTS")
		default:
			return p.errorf(t, "expected '-' or END, got %q", t.text)
		}

		c := Component{Name: p.next().text, Macro: p.next().text}
		for !p.done() && p.peek().text != ";" {
			if p.next().text != "+" {
				continue
			}
			switch kw := p.next().text; kw {
			case "PLACED", "FIXED", "COVER":
				pos, err := p.point()
				if err != nil {
					return err
				}
				c.Position, c.Placed, c.Fixed = pos, true, kw != "PLACED"
				c.Orientation = p.next().text
			}
		}
		if err := p.expect(";"); err != nil {
			return err
		}
		d.Components = append(d.Components, c)
	}
}
