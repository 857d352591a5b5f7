package chemexpr

import (
	"strconv"
	"sync"
)

// Dictionary maps names to values for evaluating expressions. It is safe to
// use a Dictionary concurrently; lookups may proceed in parallel, and changes
// wait for exclusive access.
type Dictionary struct {
	mu    sync.RWMutex
	names map[string]Value
	prec  uint
}

// DictOption is an option used when creating a dictionary.
type DictOption interface {
	dictOption()
}

type (
	varopt struct {
		name string
		val  Value
	}
	varsopt  map[string]Value
	precopt  uint
	tableopt struct {
		t *PeriodicTable
	}
)

func (varopt) dictOption()   {}
func (varsopt) dictOption()  {}
func (precopt) dictOption()  {}
func (tableopt) dictOption() {}

// SetVar sets the value of a name in the dictionary.
func SetVar(name string, val Value) DictOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of names in the dictionary.
func SetVars(vars map[string]Value) DictOption {
	return varsopt(vars)
}

// Prec sets the precision of real literals.
func Prec(prec uint) DictOption {
	return precopt(prec)
}

// Elements defines the symbol of every element in t.
func Elements(t *PeriodicTable) DictOption {
	return tableopt{t}
}

// NewDictionary creates a new dictionary. If no precision is given, the
// default is 64.
func NewDictionary(opts ...DictOption) *Dictionary {
	d := Dictionary{prec: 64}
	return d.Clone(opts...)
}

// Get returns a copy of the value of a name. If the name is not defined, the
// error is an *UndefinedIdentifierError.
func (d *Dictionary) Get(name string) (Value, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.names[name]
	if !ok {
		return Value{}, &UndefinedIdentifierError{Name: name}
	}
	return v.Clone(), nil
}

// Set sets the value of a name. Returns d for chaining.
func (d *Dictionary) Set(name string, val Value) *Dictionary {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.set(name, val)
	return d
}

func (d *Dictionary) set(name string, val Value) {
	if d.names == nil {
		d.names = make(map[string]Value)
	}
	d.names[name] = val.Clone()
}

// Remove removes a name from the dictionary. Returns d for chaining.
func (d *Dictionary) Remove(name string) *Dictionary {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.names, name)
	return d
}

// Names returns the defined names in sorted order.
func (d *Dictionary) Names() []string {
	d.mu.RLock()
	r := make([]string, 0, len(d.names))
	for k := range d.names {
		r = append(r, k)
	}
	d.mu.RUnlock()
	sortstrs(r)
	return r
}

// LoadElements defines the symbol of every element in t, replacing any
// existing definitions of those names. Returns d for chaining.
func (d *Dictionary) LoadElements(t *PeriodicTable) *Dictionary {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range t.elems {
		d.set(e.Symbol, ElementValue(e))
	}
	return d
}

// Prec returns the precision to which real literals are evaluated.
func (d *Dictionary) Prec() uint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.prec
}

// Clone creates a copy of a dictionary and applies options to it. Options are
// applied in order, so a later option overrides an earlier one.
func (d *Dictionary) Clone(opts ...DictOption) *Dictionary {
	d.mu.RLock()
	n := Dictionary{
		names: make(map[string]Value, len(d.names)),
		prec:  d.prec,
	}
	for k, v := range d.names {
		n.names[k] = v.Clone()
	}
	d.mu.RUnlock()
	for _, opt := range opts {
		switch opt := opt.(type) {
		case varopt:
			n.set(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.set(k, v)
			}
		case precopt:
			n.prec = uint(opt)
		case tableopt:
			for _, e := range opt.t.elems {
				n.set(e.Symbol, ElementValue(e))
			}
		default:
			panic("chemexpr: unknown dictionary option")
		}
	}
	return &n
}

// UndefinedIdentifierError is an error from a lookup of a name that is not in
// the dictionary.
type UndefinedIdentifierError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UndefinedIdentifierError) Error() string {
	return "undefined identifier: " + strconv.Quote(err.Name)
}
