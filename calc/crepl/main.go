package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/lrcalc/calc"
	"github.com/npillmayer/lrcalc/lr"
	"github.com/npillmayer/lrcalc/runtime"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// main() starts an interactive CLI ("C.REPL"), where users may enter
// expressions of the calculator language. C.REPL will evaluate each
// expression and print out the result.
func main() {
	initDisplay()
	confpath := flag.String("config", "", "YAML configuration file")
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	flag.Parse()
	conf, err := loadConfig(*confpath)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	if *tlevel != "" {
		conf.setTraceLevel(*tlevel)
	}
	gconf.Initialize(conf)
	if err := initTracing(conf); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	reg, err := initSymbols(conf)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	intp := &Intp{reg: reg, out: os.Stdout}
	calc.Grammar().Dump() // only visible in debug mode
	//
	if input := strings.TrimSpace(strings.Join(flag.Args(), " ")); input != "" {
		tracer().Infof("Input argument is %q", input)
		if _, err := intp.Eval(input); err != nil {
			os.Exit(2)
		}
		return
	}
	intp.repl, err = readline.NewEx(&readline.Config{
		Prompt:          gconf.GetString("prompt"),
		HistoryFile:     gconf.GetString("history"),
		AutoComplete:    completer(reg),
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer intp.repl.Close()
	pterm.Info.Println("Welcome to C.REPL") // colored welcome message
	tracer().Infof("Quit with <ctrl>D")     // inform user how to stop the CLI
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  =",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// initTracing installs tracers as configured with keys 'tracing.adapter'
// and 'trace.<tracer key>'.
func initTracing(conf *yamlConfig) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// initSymbols creates the registry for a session: builtins, then a scope
// for user constants from the configuration, then a scope for 'ans'.
func initSymbols(conf *yamlConfig) (*runtime.Registry, error) {
	reg := runtime.Standard()
	reg.PushScope("user")
	names, consts, err := conf.constants()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		reg.DefineConstant(name, lrcalc.Number(consts[name]), "user constant")
	}
	reg.PushScope("session")
	return reg, nil
}

var commands = []string{":tree", ":table", ":dot", ":html", ":grammar", ":names", ":help", ":quit"}

func completer(reg *runtime.Registry) *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands)+1)
	for _, cmd := range commands {
		items = append(items, readline.PcItem(cmd))
	}
	items = append(items, readline.PcItemDynamic(func(line string) []string {
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
		})
		if len(fields) == 0 {
			return reg.Names()
		}
		return reg.Search(fields[len(fields)-1])
	}))
	return readline.NewPrefixCompleter(items...)
}

// Intp is our interpreter object.
type Intp struct {
	reg  *runtime.Registry
	repl *readline.Instance
	out  io.Writer
	tree *lr.Node // parse tree of the last successful input
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, _ := intp.Eval(line)
		if quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval evaluates an expression or executes a command, given on a line by
// itself. Failures are printed and returned.
func (intp *Intp) Eval(line string) (bool, error) {
	if strings.HasPrefix(line, ":") {
		return intp.Execute(strings.Fields(line))
	}
	root, err := intp.parse(line)
	if err != nil {
		return false, err
	}
	intp.reg.DefineConstant("ans", root.Value, "result of the last evaluation")
	pterm.Info.Println(root.Value.String())
	return false, nil
}

func (intp *Intp) parse(line string) (*lr.Node, error) {
	root, err := calc.Parse(line, calc.WithRegistry(intp.reg))
	if err != nil {
		printError(line, err)
		return nil, err
	}
	intp.tree = root
	return root, nil
}

// printError prints a failure, marking its position in the input line.
func printError(line string, err error) {
	pterm.Error.Println(err.Error())
	var e *lrcalc.Error
	if !errors.As(err, &e) || e.Span.IsNull() || int(e.Span.From()) > len(line) {
		return
	}
	n := int(e.Span.Len())
	if n == 0 {
		n = 1
	}
	pterm.Println("  " + line)
	pterm.Println("  " + strings.Repeat(" ", int(e.Span.From())) + strings.Repeat("^", n))
}

// Execute executes a REPL command. It returns true if the REPL should quit.
func (intp *Intp) Execute(args []string) (bool, error) {
	tracer().Debugf("command %v", args)
	var err error
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":tree":
		err = intp.showTree(strings.Join(args[1:], " "))
	case ":table":
		showTable(calc.Table())
	case ":dot":
		err = intp.export(args, func(w io.Writer) error {
			return lr.TableAsGraphViz(calc.Table().CFSM(), w)
		})
	case ":html":
		if len(args) < 2 {
			err = fmt.Errorf(":html requires a file name")
			break
		}
		err = intp.export(args, func(w io.Writer) error {
			return lr.TableAsHTML(calc.Table(), w)
		})
	case ":grammar":
		g := calc.Grammar()
		for i := 0; i < g.Size(); i++ {
			fmt.Fprintf(intp.out, "%3d: %s\n", i, g.Rule(i))
		}
	case ":names":
		if len(args) > 1 {
			fmt.Fprintln(intp.out, strings.Join(intp.reg.Search(args[1]), " "))
		} else {
			fmt.Fprintln(intp.out, strings.Join(intp.reg.Names(), " "))
		}
	case ":help":
		if len(args) == 1 {
			fmt.Fprintln(intp.out, "commands: "+strings.Join(commands, " "))
			break
		}
		if h, ok := intp.reg.Help(args[1]); ok {
			fmt.Fprintln(intp.out, h)
		} else {
			err = fmt.Errorf("no help for %q", args[1])
		}
	default:
		err = fmt.Errorf("unknown command %s", args[0])
	}
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	return false, err
}

func (intp *Intp) export(args []string, write func(io.Writer) error) error {
	if len(args) < 2 {
		return write(intp.out)
	}
	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err == nil {
		pterm.Info.Println("written to " + args[1])
	}
	return err
}

// showTree displays a parse tree on the terminal.
func (intp *Intp) showTree(input string) error {
	if input != "" {
		if _, err := intp.parse(input); err != nil {
			return err
		}
	}
	if intp.tree == nil {
		return fmt.Errorf("no input to display")
	}
	root := pterm.NewTreeFromLeveledList(leveledTree(intp.tree))
	pterm.DefaultTree.WithRoot(root).Render()
	return nil
}

func leveledTree(root *lr.Node) pterm.LeveledList {
	var ll pterm.LeveledList
	root.Walk(func(node *lr.Node, depth int) {
		text := node.String()
		if !node.IsLeaf() {
			text += "  " + node.Span.String()
		}
		ll = append(ll, pterm.LeveledListItem{Level: depth, Text: text})
	})
	tracer().Debugf("|ll| = %d", len(ll))
	return ll
}

// showTable lists the actions and gotos of every parser state.
func showTable(t *lr.Table) {
	g := t.Grammar()
	data := pterm.TableData{{"state", "actions", "goto"}}
	for state := 0; state < t.StateCount(); state++ {
		var actions, gotos []string
		g.EachSymbol(func(A *lr.Symbol) interface{} {
			if A.IsTerminal() {
				for _, a := range t.Actions(state, A) {
					actions = append(actions, A.Name+":"+a.String())
				}
			} else if to, ok := t.Goto(state, A); ok {
				gotos = append(gotos, A.Name+":"+strconv.Itoa(to))
			}
			return nil
		})
		data = append(data, []string{strconv.Itoa(state), strings.Join(actions, " "), strings.Join(gotos, " ")})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if t.Conflicts() > 0 {
		pterm.Warning.Println(fmt.Sprintf("table has %d conflicts", t.Conflicts()))
	}
}
