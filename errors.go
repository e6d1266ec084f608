package main

import (
	"fmt"
)

//
// Manifest constants for the interpreter's diagnostics.  Every one of
// these is followed by the 'SYNTAX ERROR AT LINE n' line, since there
// is no way for a program to catch or continue from an error
//

const (
	ESYNTAX          = "SYNTAX ERROR AT LINE %d"
	ECLOSINGBRACE    = "EXPECTED CLOSING BRACE"
	EUNBALANCED      = "UNBALANCED BRACKETS"
	ETHEN            = "EXPECT THEN AFTER IF"
	ETO              = "EXPECT TO AFTER FOR"
	EARRAYSIZE       = "ARRAY SIZE MUST BE > 0"
	EARRAYTOOBIG     = "ARRAY SIZE TOO BIG"
	EARRAYINDEX      = "INVALID ARRAY INDEX %d"
	ENOARRAY         = "COULD NOT FIND %s"
	ENOLABEL         = "COULD NOT FIND LABEL %s"
	EUNKNOWNOPERATOR = "UNKNOWN OPERATOR"
	EDIVISIONBYZERO  = "DIVISION BY ZERO"
	EUNEXPECTEDELSE  = "UNEXPECTED ELSE"
	ENEXTWITHOUTFOR  = "NEXT WITHOUT FOR"
	ERETURNNOGOSUB   = "RETURN WITHOUT GOSUB"
	EMULTIPLEINPUT   = "ONLY ONE INPUT PER STATEMENT"
	ETYPEMISMATCH    = "TYPE MISMATCH"
	EENDOFINPUT      = "END OF INPUT"
	EINTERRUPTED     = "INTERRUPTED"
)

//
// The error value handed back to the driver.  The message (if any) is
// printed on its own line ahead of the line number report
//

func (e *runtimeErrorInfo) Error() string {

	if e.msg == "" {
		return fmt.Sprintf(ESYNTAX, e.line)
	}

	return fmt.Sprintf("%s (line %d)", e.msg, e.line)
}

func (e *basicErrorInfo) Error() string {

	return fmt.Sprintf("%s at %s line %d", e.msg, e.file, e.line)
}

//
// Write the user visible report for an error returned by call()
//

func printError(p *program, err error) {

	switch e := err.(type) {
	default:
		fmt.Fprintln(p.out, err)

	case *runtimeErrorInfo:
		if e.msg != "" {
			fmt.Fprintln(p.out, e.msg)
		}

		fmt.Fprintf(p.out, ESYNTAX+"\n", e.line)
	}
}
