package chemexpr_test

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/chemexpr"
)

// testDict creates a dictionary with the standard elements and a few other
// names.
func testDict(t testing.TB) (*chemexpr.Dictionary, *chemexpr.PeriodicTable) {
	t.Helper()
	pt := chemexpr.StandardTable()
	d := chemexpr.NewDictionary(
		chemexpr.Elements(pt),
		chemexpr.SetVar("n", chemexpr.IntValue(3)),
		chemexpr.SetVar("name", chemexpr.StringValue("water")),
	)
	return d, pt
}

// atoms gives the subscripts of a formula as a string like H:2 O:1 in order.
func atoms(m chemexpr.MolecularFormula) string {
	var b strings.Builder
	for i, p := range m.Atoms() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%d", p.Key.Symbol, p.Coeff)
	}
	return b.String()
}

func TestEvalLiterals(t *testing.T) {
	d, pt := testDict(t)
	cases := []struct {
		name string
		src  string
		want chemexpr.Value
	}{
		{"string", `"NaCl"`, chemexpr.StringValue("NaCl")},
		{"int", "42", chemexpr.IntValue(42)},
		{"ident-int", "n", chemexpr.IntValue(3)},
		{"ident-string", "name", chemexpr.StringValue("water")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := chemexpr.EvalString(c.src, d)
			require.NoError(t, err)
			assert.Equal(t, c.want, v)
		})
	}
	na, _ := pt.Lookup("Na")
	v, err := chemexpr.EvalString("Na", d)
	require.NoError(t, err)
	e, err := v.Element()
	require.NoError(t, err)
	assert.Same(t, na, e, "element lookup should refer to the table's element")
	assert.Equal(t, 11, e.Number)
}

func TestEvalReals(t *testing.T) {
	d := chemexpr.NewDictionary(chemexpr.Prec(128))
	cases := []struct {
		src  string
		want string
	}{
		{"1.5", "1.5"},
		{"#6", "6"},
		{"1.5e3", "1500"},
		{"2.5e-2", "0.025"},
		{"#6.02e23", "6.02e+23"},
		{"0.0e5", "0"},
	}
	for _, c := range cases {
		v, err := chemexpr.EvalString(c.src, d)
		if !assert.NoError(t, err, "evaluating %q", c.src) {
			continue
		}
		r, err := v.Real()
		require.NoError(t, err)
		assert.Equal(t, uint(128), r.Prec(), "precision of %q", c.src)
		assert.Equal(t, c.want, r.Text('g', 10), "value of %q", c.src)
	}
}

func TestEvalRealsRoundOnce(t *testing.T) {
	// Reals must equal what the standard parser gives at the same precision.
	cases := []string{
		"6.02214076e23",
		"2.5e-2",
		"3.3e33",
		"1.0e-300",
		"#1.0e100000",
		"0.1",
		"#6",
	}
	for _, prec := range []uint{24, 64, 200} {
		d := chemexpr.NewDictionary(chemexpr.Prec(prec))
		for _, src := range cases {
			v, err := chemexpr.EvalString(src, d)
			if !assert.NoError(t, err, "evaluating %q", src) {
				continue
			}
			got, err := v.Real()
			require.NoError(t, err)
			want, _, err := big.ParseFloat(strings.TrimPrefix(src, "#"), 10, prec, big.ToNearestEven)
			require.NoError(t, err)
			assert.Zero(t, want.Cmp(got), "%q at %d bits: want %s, got %s", src, prec, want.Text('g', -1), got.Text('g', -1))
			assert.Equal(t, want.Text('p', 0), got.Text('p', 0), "%q at %d bits", src, prec)
		}
	}
}

func TestEvalFormulas(t *testing.T) {
	d, _ := testDict(t)
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"bare", "$H", "H:1"},
		{"subscript", "$H2", "H:2"},
		{"water", "$H2O", "H:2 O:1"},
		{"repeat", "$HH2", "H:3"},
		{"repeat-apart", "$CH3COOH", "C:2 H:4 O:2"},
		{"zero", "$H0O", "O:1"},
		{"empty", "$", ""},
		{"ident-subscript", "$H'n", "H:3"},
		{"quoted", "$'Na'Cl", "Na:1 Cl:1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := chemexpr.EvalString(c.src, d)
			require.NoError(t, err)
			m, err := v.Formula()
			require.NoError(t, err)
			assert.Equal(t, c.want, atoms(m))
		})
	}
}

func TestEvalErrors(t *testing.T) {
	d, _ := testDict(t)
	syntaxes := chemexpr.ParsingPreset(
		chemexpr.WithSyntax("f", chemexpr.SyntaxExpr),
		chemexpr.WithSyntax("ion", chemexpr.SyntaxFormula),
	)
	cases := []struct {
		name  string
		src   string
		check func(t *testing.T, err error)
	}{
		{"undefined", "x", undefined("x")},
		{"undefined-quoted", "'Water", undefined("Water")},
		{"undefined-in-formula", "$HXy", undefined("Xy")},
		{"formula-string", `$H"O"`, badType(chemexpr.TypeElement, chemexpr.TypeString)},
		{"formula-leading-int", "$2H", badType(chemexpr.TypeElement, chemexpr.TypeInt)},
		{"formula-nested", "$H$O", badType(chemexpr.TypeElement, chemexpr.TypeFormula)},
		{"formula-ident-string", "$name", badType(chemexpr.TypeElement, chemexpr.TypeString)},
		{"charged", "$SO4-2", unsupported},
		{"infix", "$H2 + $O2", unsupported},
		{"tuple", "(H, O)", unsupported},
		{"empty-tuple", "()", unsupported},
		{"syntax", "f!{H}", unsupported},
		{"syntax-formula", "ion!{Na+1}", unsupported},
		{"huge-subscript", "$H4294967296", func(t *testing.T, err error) {
			var serr *chemexpr.SubscriptError
			if assert.True(t, errors.As(err, &serr), "wrong error %#v", err) {
				assert.Equal(t, uint64(4294967296), serr.N)
				assert.Equal(t, "H", serr.Element.Symbol)
			}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := chemexpr.ParseString(c.src, syntaxes)
			require.NoError(t, err)
			v, err := d.Eval(e)
			require.Error(t, err, "evaluating %q gave %v", c.src, v)
			assert.Equal(t, chemexpr.Value{}, v)
			c.check(t, err)
		})
	}
}

func undefined(name string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		var u *chemexpr.UndefinedIdentifierError
		if assert.True(t, errors.As(err, &u), "wrong error %#v", err) {
			assert.Equal(t, name, u.Name)
			assert.Contains(t, err.Error(), name)
		}
	}
}

func badType(want, found chemexpr.Type) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		var b *chemexpr.BadTypeError
		if assert.True(t, errors.As(err, &b), "wrong error %#v", err) {
			assert.Equal(t, want, b.Expected)
			assert.Equal(t, found, b.Found.Type())
		}
	}
}

func unsupported(t *testing.T, err error) {
	var u *chemexpr.UnsupportedError
	assert.True(t, errors.As(err, &u), "wrong error %#v", err)
}

func TestEvalParseError(t *testing.T) {
	d, _ := testDict(t)
	_, err := chemexpr.EvalString("(H", d)
	var want *chemexpr.ExpectedTokensError
	assert.True(t, errors.As(err, &want), "wrong error %#v", err)
}

func TestEvalRepeatable(t *testing.T) {
	// Evaluation does not change the expression or the dictionary.
	d, _ := testDict(t)
	e, err := chemexpr.ParseString("$H2O")
	require.NoError(t, err)
	a, err := d.Eval(e)
	require.NoError(t, err)
	m, _ := a.Formula()
	m.Scale(5)
	b, err := d.Eval(e)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, "$H2O", b.String())
}

func TestEvalConcurrent(t *testing.T) {
	d, _ := testDict(t)
	e, err := chemexpr.ParseString("$C6H12O6")
	require.NoError(t, err)
	errs := make(chan error, 8)
	for i := 0; i < cap(errs); i++ {
		go func() {
			_, err := d.Eval(e)
			errs <- err
		}()
	}
	for i := 0; i < cap(errs); i++ {
		assert.NoError(t, <-errs)
	}
}

func FuzzEval(f *testing.F) {
	f.Add("$H2O")
	f.Add("n")
	f.Add("$CH3COOH")
	f.Add("#1.5e3")
	f.Fuzz(func(t *testing.T, s string) {
		d := chemexpr.NewDictionary(
			chemexpr.Elements(chemexpr.StandardTable()),
			chemexpr.SetVar("n", chemexpr.IntValue(2)),
		)
		chemexpr.EvalString(s, d)
	})
}

func BenchmarkEval(b *testing.B) {
	d := chemexpr.NewDictionary(chemexpr.Elements(chemexpr.StandardTable()))
	e, err := chemexpr.ParseString("$C6H12O6")
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.Eval(e)
	}
}

func Example() {
	d := chemexpr.NewDictionary(chemexpr.Elements(chemexpr.StandardTable()))
	for _, src := range []string{"$H2O", "$CH3COOH", "$NaCl", "$Xe"} {
		v, err := chemexpr.EvalString(src, d)
		if err != nil {
			fmt.Println(err)
			continue
		}
		m, _ := v.Formula()
		fmt.Printf("%-9s %d elements\n", v, m.Len())
	}

	// Output:
	// $H2O      2 elements
	// $C2H4O2   3 elements
	// $NaCl     2 elements
	// $Xe       1 elements
}

func ExampleParse() {
	e, err := chemexpr.Parse(strings.NewReader("ion!{SO4-2} + $Na+1"), chemexpr.WithSyntax("ion", chemexpr.SyntaxFormula))
	if err != nil {
		panic(err)
	}
	fmt.Println(e)
	fmt.Println(e.Idents())

	// Output:
	// ion!{SO4-2} + $Na+1
	// [Na O S]
}

func ExampleDictionary_Eval() {
	d := chemexpr.NewDictionary(chemexpr.Elements(chemexpr.StandardTable()))
	e, _ := chemexpr.ParseString("water")
	_, err := d.Eval(e)
	fmt.Println(err)

	d.Set("water", chemexpr.FormulaValue(formulaOf(d, "$H2O")))
	v, _ := d.Eval(e)
	fmt.Println(v)

	// Output:
	// undefined identifier: "water"
	// $H2O
}

func formulaOf(d *chemexpr.Dictionary, src string) chemexpr.MolecularFormula {
	v, err := chemexpr.EvalString(src, d)
	if err != nil {
		panic(err)
	}
	m, err := v.Formula()
	if err != nil {
		panic(err)
	}
	return m
}
