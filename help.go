package main

import (
	"flag"
	"fmt"
	"io"
)

func printUsage(w io.Writer, name string, flags *flag.FlagSet) {

	fmt.Fprintf(w, "BASIC Interpreter - basic-lite %s\n", VERSION)
	fmt.Fprintf(w, "usage: %s [flags] <file>\n", name)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")

	flags.SetOutput(w)
	flags.PrintDefaults()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "statements:")

	for _, kw := range []keyword{DIM, EXIT, FOR, GOSUB, GOTO, IF, INPUT,
		NEXT, PRINT, REM, RETURN} {
		fmt.Fprintf(w, "  %-8s %s\n", keywordNames[kw], statementHelp(kw))
	}
}

func statementHelp(kw keyword) string {

	switch kw {
	case DIM:
		return "Create an integer array, indexed from 1: DIM A(10)"

	case EXIT:
		return "Stop the program"

	case FOR:
		return "Start a counted loop: FOR I = 1 TO 10"

	case GOSUB:
		return "Call the subroutine at a label"

	case GOTO:
		return "Continue execution after a label"

	case IF:
		return "Conditional statement: IF X = 1 THEN PRINT \"ONE\"," +
			" optionally followed by an ELSE line"

	case INPUT:
		return "Read a line: INPUT [prompt] or A$ = INPUT [prompt]"

	case NEXT:
		return "End of the innermost FOR loop"

	case PRINT:
		return "Print values, separated by commas"

	case REM:
		return "Comment, the rest of the line is ignored"

	case RETURN:
		return "Return from a subroutine"
	}

	return ""
}
