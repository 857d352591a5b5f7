package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zephyrtronium/chemexpr"
)

// env holds the flags of the command.
type env struct {
	in      string
	cfg     string
	ptable  string
	given   []string
	prec    uint
	lines   bool
	echo    bool
	dump    bool
	failed  bool
	session *chemexpr.Session
}

func main() {
	e := &env{}
	cmd := &cobra.Command{
		Use:   "chemexpr [flags] [expr...]",
		Short: "Evaluate chemical expressions",
		Long: `
Evaluate chemical expressions such as $H2O against the periodic table.

Each argument is evaluated as one expression. With no arguments and no --in,
expressions are read from standard input, or interactively if standard input
is a terminal. A line of the form "name = expr" defines name.`,
		SilenceUsage: true,
		RunE:         e.run,
	}
	e.addFlags(cmd.Flags())
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	if err := cmd.Execute(); err != nil {
		glog.Flush()
		os.Exit(2)
	}
	glog.Flush()
	if e.failed {
		os.Exit(1)
	}
}

func (e *env) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&e.in, "in", "", "input file (default stdin if no args given)")
	fs.StringVar(&e.cfg, "config", "", "YAML config file")
	fs.StringVar(&e.ptable, "ptable", "", "periodic table file (default built-in)")
	fs.StringArrayVar(&e.given, "given", nil, "name=expr definition (any number of times)")
	fs.UintVarP(&e.prec, "prec", "p", 0, "precision of real literals in bits (default 64)")
	fs.BoolVarP(&e.lines, "lines", "n", false, "evaluate separate input lines as separate expressions")
	fs.BoolVar(&e.echo, "echo", false, "print parse trees")
	fs.BoolVar(&e.dump, "dump", false, "dump results in detail")
}

func (e *env) run(cmd *cobra.Command, args []string) error {
	// glog reads its settings from the standard flag set.
	flag.CommandLine.Parse(nil)
	c := &config{}
	if e.cfg != "" {
		var err error
		if c, err = readConfig(e.cfg); err != nil {
			return err
		}
	}
	if e.prec != 0 {
		c.Precision = e.prec
	}
	if c.Precision == 0 {
		c.Precision = 64
	}
	if e.ptable != "" {
		c.PTable = e.ptable
	}
	for _, s := range e.given {
		g, err := parseGiven(s)
		if err != nil {
			return err
		}
		c.Given = append(c.Given, g)
	}
	if err := e.setup(c); err != nil {
		return err
	}

	switch {
	case len(args) > 0:
		for _, arg := range args {
			e.exec(arg)
		}
		if e.in == "" {
			return nil
		}
	case e.in == "" && isTerminal(os.Stdin):
		return e.repl()
	}
	f := os.Stdin
	if e.in != "" && e.in != "-" {
		var err error
		f, err = os.Open(e.in)
		if err != nil {
			return errors.Wrap(err, "opening input")
		}
		defer f.Close()
	}
	return e.read(f)
}

// setup creates the session from the resolved configuration.
func (e *env) setup(c *config) error {
	t := chemexpr.StandardTable()
	if c.PTable != "" {
		var err error
		if t, err = chemexpr.LoadPeriodicTable(c.PTable); err != nil {
			return err
		}
	}
	glog.V(1).Infof("loaded %d elements", t.Len())
	opts, err := c.parseOptions()
	if err != nil {
		return err
	}
	d := chemexpr.NewDictionary(chemexpr.Prec(c.Precision), chemexpr.Elements(t))
	e.session = chemexpr.NewSession(d, opts...)
	for _, g := range c.Given {
		if err := e.session.Assign(g.Name, g.Expr); err != nil {
			return errors.Wrapf(err, "setting %s", g.Name)
		}
	}
	return nil
}

// read evaluates the contents of r, either as a whole or line by line.
func (e *env) read(r io.Reader) error {
	if !e.lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		e.exec(string(b))
		return nil
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		e.exec(sc.Text())
	}
	return errors.Wrap(sc.Err(), "reading input")
}

// exec runs one input unit and prints its result.
func (e *env) exec(src string) {
	if e.echo {
		if x, err := e.session.Parse(src); err == nil {
			fmt.Printf("%v : ", x)
		}
	}
	name, v, err := e.session.Exec(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		e.failed = true
		return
	}
	if name != "" {
		fmt.Printf("%s = ", name)
	}
	if e.dump {
		fmt.Print(spew.Sdump(v))
		return
	}
	fmt.Println(v)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
