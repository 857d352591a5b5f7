package chemexpr

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Element is a chemical element. Elements are owned by a PeriodicTable, and
// values refer to them by pointer.
type Element struct {
	// Number is the atomic number.
	Number int
	// Symbol is the element's symbol, e.g. Na.
	Symbol string
	// Name is the element's name, e.g. Sodium.
	Name string
}

// Equal reports whether e and o are the same element.
func (e *Element) Equal(o *Element) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.Number == o.Number && e.Symbol == o.Symbol
}

func (e *Element) String() string {
	return e.Symbol
}

// PeriodicTable is a set of elements indexed by symbol. It is safe to read a
// PeriodicTable concurrently, but not while adding to it.
type PeriodicTable struct {
	elems []*Element
	syms  map[string]*Element
}

// Lookup finds the element with the given symbol.
func (t *PeriodicTable) Lookup(symbol string) (*Element, bool) {
	e, ok := t.syms[symbol]
	return e, ok
}

// Len returns the number of elements in the table.
func (t *PeriodicTable) Len() int {
	return len(t.elems)
}

// Elements returns the elements in the order they were added.
func (t *PeriodicTable) Elements() []*Element {
	return append(([]*Element)(nil), t.elems...)
}

// Add adds an element to the table and returns the table's copy of it. It is
// an error to add a symbol or atomic number that is already present.
func (t *PeriodicTable) Add(e Element) (*Element, error) {
	if e.Symbol == "" {
		return nil, errors.Errorf("element %d has no symbol", e.Number)
	}
	if t.syms == nil {
		t.syms = make(map[string]*Element)
	}
	if _, ok := t.syms[e.Symbol]; ok {
		return nil, errors.Errorf("duplicate element symbol %q", e.Symbol)
	}
	for _, o := range t.elems {
		if o.Number == e.Number {
			return nil, errors.Errorf("duplicate atomic number %d (%s and %s)", e.Number, o.Symbol, e.Symbol)
		}
	}
	p := &e
	t.elems = append(t.elems, p)
	t.syms[e.Symbol] = p
	return p, nil
}

// ReadPeriodicTable reads a periodic table from text with one element per line
// in the form "number symbol name". Blank lines and lines starting with # are
// ignored. Every malformed line is reported in the returned error.
func ReadPeriodicTable(r io.Reader) (*PeriodicTable, error) {
	var t PeriodicTable
	var result error
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		f := strings.Fields(s)
		if len(f) != 3 {
			result = multierror.Append(result, errors.Errorf("line %d: want 3 fields, got %d", line, len(f)))
			continue
		}
		n, err := strconv.Atoi(f[0])
		if err != nil || n <= 0 {
			result = multierror.Append(result, errors.Errorf("line %d: bad atomic number %q", line, f[0]))
			continue
		}
		if !isBareName(f[1]) {
			result = multierror.Append(result, errors.Errorf("line %d: symbol %q is not an identifier", line, f[1]))
			continue
		}
		if _, err := t.Add(Element{Number: n, Symbol: f[1], Name: f[2]}); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "line %d", line))
		}
	}
	if err := sc.Err(); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "reading periodic table"))
	}
	if result != nil {
		return nil, result
	}
	return &t, nil
}

// LoadPeriodicTable reads a periodic table from a file.
func LoadPeriodicTable(path string) (*PeriodicTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening periodic table")
	}
	defer f.Close()
	t, err := ReadPeriodicTable(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading periodic table from %s", path)
	}
	return t, nil
}

//go:embed ptable.txt
var ptable string

// StandardTable creates a new table of the 118 named elements. Each call
// returns a distinct table.
func StandardTable() *PeriodicTable {
	t, err := ReadPeriodicTable(strings.NewReader(ptable))
	if err != nil {
		panic("chemexpr: bad embedded periodic table: " + err.Error())
	}
	return t
}
