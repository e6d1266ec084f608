package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

//
// Tricky: init is called under the hood by the GO runtime when
// we fire up, so there are no visible calls to it!
//

func init() {

	initMaps()
}

func main() {

	os.Exit(basicMain(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

//
// Everything main does, minus the exit.  Returns the process exit
// status.  Any liner instance is closed by the deferred cleanup before
// we return, so the terminal is back in cooked mode when main exits
//

func basicMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {

	var listProgram, dumpProgram, traceExec, printStats bool

	name := "basic-lite"
	if len(args) > 0 {
		name = args[0]
	}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&listProgram, "list", false, "print the token stream and labels before running")
	flags.BoolVar(&dumpProgram, "dump", false, "dump the token stream and labels")
	flags.BoolVar(&traceExec, "trace", false, "trace execution of each line")
	flags.BoolVar(&printStats, "stats", false, "print execution statistics when the program stops")
	flags.Usage = func() {
		printUsage(stderr, name, flags)
	}

	if len(args) > 0 {
		args = args[1:]
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	switch flags.NArg() {
	default:
		fmt.Fprintln(stdout, "too many arguments")
		return 1

	case 0:
		printUsage(stdout, name, flags)
		return 0

	case 1:
		// handled below
	}

	filename := flags.Arg(0)

	text, err := readProgramFile(filename)
	if err != nil {
		fmt.Fprintf(stdout, "failed to open %s\n", filename)
		return 1
	}

	in, cleanup := setupInput(stdin, stdout)
	defer cleanup()

	p := newProgram(in, stdout)
	p.traceExec = traceExec

	p.load(string(text))

	if listProgram {
		printProgram(p)
	}

	if dumpProgram {
		dumpTokens(p)
	}

	initClock(&p.stats)

	err = p.run()

	if printStats {
		printStatistics(p)
	}

	if err != nil {
		printError(p, err)
		return 1
	}

	return 0
}

func initMaps() {

	//
	// Set up a map to map a string to a keyword token.  The classifier
	// upper-cases a symbol before looking it up here
	//

	keywordMap = make(map[string]keyword)

	for kw, name := range keywordNames {
		keywordMap[name] = keyword(kw)
	}
}

//
// Wrapper routine for a function.  The interpreter reports errors by
// calling panic, and this is the one place they are caught and turned
// into an error for our caller.  An EXIT statement is not an error at
// all, just a quick way out.  Anything else is a real GO panic, and
// is passed along
//

func call(f func()) (err error) {

	defer func() {
		e := recover()
		if e == nil {
			return
		}

		switch e := e.(type) {
		default:
			panic(e)

		case *exitException:
			err = nil

		case *runtimeErrorInfo:
			err = e

		case *basicErrorInfo:
			err = e
		}
	}()

	f()

	return nil
}

//
// A couple of handy 'assert' functions
//

func basicAssert(chk bool, msg string) {

	if !chk {
		fatalError(msg)
	}
}

func (p *program) runtimeCheck(chk bool, msg string, args ...any) {

	if !chk {
		p.runtimeError(msg, args...)
	}
}

func (p *program) syntaxCheck(chk bool) {

	if !chk {
		p.syntaxError()
	}
}

//
// Every runtime error is fatal, so all we need to record is the
// message and the line being executed
//

func (p *program) runtimeError(msg string, args ...any) {

	if len(args) != 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	panic(&runtimeErrorInfo{msg: strings.TrimSuffix(msg, "\n"), line: p.line})
}

//
// A plain syntax error, no diagnostic beyond the line number
//

func (p *program) syntaxError() {

	panic(&runtimeErrorInfo{line: p.line})
}

//
// Errors raised by the interpreter itself.  Almost always due to a
// basicAssert failure.  We find filename and line number of our
// caller, and stuff those into the basicErrorInfo structure before
// calling panic
//

func fatalError(msg string) {

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		crash("Unable to find caller frame!\n")
	}

	msg = strings.TrimRight(msg, "\n")

	panic(&basicErrorInfo{msg, file, line})
}

func unexpectedTypeError(item any) {

	fatalError(fmt.Sprintf("Unexpected type %T", item))
}
