package main

import (
	"errors"
	"fmt"
	"github.com/danswartzendruber/liner"
	"io"
)

//
// Run a loaded program to completion.  Returns nil on a normal end or
// an EXIT statement, and the runtime error otherwise
//

func (p *program) run() error {

	return call(p.runProgram)
}

//
// The execution loop.  Lines are run in order.  A statement which
// transfers control (GOTO, GOSUB, RETURN or a NEXT which loops) sets
// p.line to the target line, and execution picks up on the line
// following it, since the target line itself is the label, the GOSUB
// or the FOR.  Falling off the end of the program is a normal end
//

func (p *program) runProgram() {

	p.line = 0

	for i := 0; i < len(p.tokens); {
		p.line++

		l := lineLength(p.tokens, i)
		line := p.tokens[i : i+l]

		//
		// A bare ELSE after a true IF guards the line which follows it
		//

		if p.skipLine {
			p.skipLine = false
			i += l + 1
			continue
		}

		//
		// The pending ELSE state only survives onto a line which
		// starts with IF or ELSE
		//

		if t := p.tokens[i]; t != IF && t != ELSE {
			p.doElse = elseUndefined
		}

		if p.traceExec {
			traceLine(p, line)
		}

		p.stats.numLines++

		if !p.runLine(line) {
			i += l + 1
			continue
		}

		if p.line >= len(p.lineStarts) {
			return
		}

		i = p.lineStarts[p.line]
	}
}

//
// Execute one line, which may be a chain of statements separated by
// colons.  Returns true if control was transferred, in which case the
// rest of the chain is abandoned
//

func (p *program) runLine(tokens tokenList) bool {

	for len(tokens) > 0 {
		switch tokens[0] {
		case ELSE:
			switch p.doElse {
			case elseUndefined:
				p.runtimeError(EUNEXPECTEDELSE)

			case elseTaken:
				p.skipLine = len(tokens) == 1
				return false
			}

			tokens = tokens[1:]
			if len(tokens) == 0 {
				return false
			}

		case REM:
			return false
		}

		stmt, rest := splitStatement(tokens)

		jump, cont := p.executeStmt(stmt)
		if jump {
			return true
		}

		if !cont {
			return false
		}

		tokens = rest
	}

	return false
}

//
// Split off the statement in front of the first colon.  rest is
// whatever follows the colon, and is nil if there is none
//

func splitStatement(tokens tokenList) (stmt, rest tokenList) {

	for i, t := range tokens {
		if _, ok := t.(colonToken); ok {
			return tokens[:i], tokens[i+1:]
		}
	}

	return tokens, nil
}

//
// Execute a single statement.  jump is true if the statement set
// p.line to a new line.  cont is false if the rest of the line must
// not be run (a false IF or a REM)
//

func (p *program) executeStmt(stmt tokenList) (jump, cont bool) {

	p.syntaxCheck(len(stmt) > 0)

	p.checkInputCount(stmt)

	switch t := stmt[0].(type) {
	default:
		p.syntaxError()

	case identToken:
		p.executeAssignment(string(t), stmt)

	//
	// A label declaration has to be on its own
	//

	case labelToken:
		p.syntaxCheck(len(stmt) == 1)

	case keyword:
		switch t {
		default:
			p.syntaxError()

		case IF:
			body, ok := p.executeIf(stmt)
			if !ok {
				return false, false
			}

			return p.executeStmt(body)

		case PRINT:
			p.executePrint(stmt[1:])

		case INPUT:
			p.executeInput(stmt[1:])

		case FOR:
			p.executeFor(stmt)

		case NEXT:
			if p.executeNext(stmt) {
				return true, false
			}

		case GOTO:
			p.executeGoto(stmt)
			return true, false

		case GOSUB:
			p.executeGosub(stmt)
			return true, false

		case RETURN:
			p.executeReturn(stmt)
			return true, false

		case DIM:
			p.executeDim(stmt)

		case EXIT:
			panic(&exitException{})

		case REM:
			return false, false
		}
	}

	return false, true
}

//
// A statement may read at most one line of input
//

func (p *program) checkInputCount(stmt tokenList) {

	var count int

	for _, t := range stmt {
		if t == INPUT {
			count++
		}
	}

	p.runtimeCheck(count <= 1, EMULTIPLEINPUT)
}

//
// Three flavors:
//
//   name ( index ) = expr
//   name = expr
//   name = INPUT [prompt]
//

func (p *program) executeAssignment(name string, stmt tokenList) {

	var value token

	p.syntaxCheck(len(stmt) >= 3)

	if stmt[1] == LPAR {
		rpar := findClosing(stmt, 1)
		p.runtimeCheck(rpar >= 0, ECLOSINGBRACE)
		p.syntaxCheck(rpar+1 < len(stmt) && stmt[rpar+1] == EQ)

		idx := p.evalInteger(stmt[2:rpar])
		v := p.evalInteger(stmt[rpar+2:])

		p.setIntegerArrayVal(name, idx, v)
		return
	}

	p.syntaxCheck(stmt[1] == EQ)

	if stmt[2] == INPUT {
		if len(stmt) > 3 {
			p.printLine(p.evalExpression(stmt[3:]))
		}

		value = stringToken(p.readInput())
	} else {
		value = p.evalExpression(stmt[2:])
	}

	switch v := value.(type) {
	default:
		unexpectedTypeError(v)

	case stringToken:
		p.runtimeCheck(isStringName(name), ETYPEMISMATCH)
		p.setStringVariable(name, string(v))

	case integerToken:
		p.runtimeCheck(!isStringName(name), ETYPEMISMATCH)
		p.setIntegerVariable(name, int(v))
	}
}

//
// IF cond THEN stmt.  Returns the statement following THEN if the
// condition is true.  A false condition ends the line, colon chain
// and all
//

func (p *program) executeIf(stmt tokenList) (tokenList, bool) {

	then := findKeyword(stmt, THEN, 1)
	p.runtimeCheck(then >= 0, ETHEN)

	if p.evalInteger(stmt[1:then]) == 0 {
		p.doElse = elseNotTaken
		return nil, false
	}

	p.doElse = elseTaken

	body := stmt[then+1:]
	p.syntaxCheck(len(body) > 0)

	return body, true
}

//
// Values are printed back to back, with a single newline at the end.
// A trailing comma is harmless
//

func (p *program) executePrint(args tokenList) {

	for len(args) > 0 {
		c := findComma(args)
		if c < 0 {
			printToken(p.out, p.evalExpression(args))
			break
		}

		printToken(p.out, p.evalExpression(args[:c]))
		args = args[c+1:]
	}

	fmt.Fprintln(p.out)
}

//
// The bare INPUT statement prints its prompt (if any), then reads a
// line and throws it away
//

func (p *program) executeInput(args tokenList) {

	if len(args) > 0 {
		p.printLine(p.evalExpression(args))
	}

	_ = p.readInput()
}

//
// FOR var = start TO end
//

func (p *program) executeFor(stmt tokenList) {

	p.syntaxCheck(len(stmt) >= 6)

	to := findKeyword(stmt, TO, 1)
	p.runtimeCheck(to >= 0, ETO)

	name, ok := stmt[1].(identToken)
	p.syntaxCheck(ok && !isStringName(string(name)))
	p.syntaxCheck(stmt[2] == EQ && to > 3)

	start := p.evalInteger(stmt[3:to])
	end := p.evalInteger(stmt[to+1:])

	p.pushForLoop(forStackNode{start: start, end: end,
		loopVar: string(name), line: p.line})

	p.setIntegerVariable(string(name), start)
}

//
// Step the innermost loop variable toward its end value.  If the
// loop is not done, the frame goes back on the stack and control
// returns to the FOR line.  Note that when start and end are equal
// the variable never moves, and the loop never ends on its own
//

func (p *program) executeNext(stmt tokenList) bool {

	var done bool

	p.syntaxCheck(len(stmt) == 1)

	f := p.popForLoop()

	i := p.getIntegerVariable(f.loopVar)

	if f.start < f.end {
		i++
		done = i > f.end
	} else if f.start > f.end {
		i--
		done = i < f.end
	}

	p.setIntegerVariable(f.loopVar, i)

	if done {
		return false
	}

	p.pushForLoop(f)
	p.line = f.line

	return true
}

func (p *program) executeGoto(stmt tokenList) {

	p.line = p.getLabelLine(p.labelOperand(stmt))
}

func (p *program) executeGosub(stmt tokenList) {

	name := p.labelOperand(stmt)

	p.pushReturnLine(p.line)
	p.line = p.getLabelLine(name)
}

func (p *program) executeReturn(stmt tokenList) {

	p.syntaxCheck(len(stmt) == 1)

	p.line = p.popReturnLine()
}

//
// GOTO and GOSUB take exactly one operand, a label name
//

func (p *program) labelOperand(stmt tokenList) string {

	p.syntaxCheck(len(stmt) == 2)

	name, ok := stmt[1].(identToken)
	p.syntaxCheck(ok)

	return string(name)
}

//
// DIM name ( size ).  Re-dimensioning an existing array starts it
// over from scratch
//

func (p *program) executeDim(stmt tokenList) {

	n := len(stmt)

	p.syntaxCheck(n >= 5)

	name, ok := stmt[1].(identToken)
	p.syntaxCheck(ok)
	p.syntaxCheck(stmt[2] == LPAR && stmt[n-1] == RPAR)

	sz := p.evalInteger(stmt[3 : n-1])
	p.runtimeCheck(sz > 0, EARRAYSIZE)
	p.runtimeCheck(sz <= maxArraySize, EARRAYTOOBIG)

	p.dimIntegerArray(string(name), sz)
}

//
// Read one line from the input collaborator.  Running out of input
// is fatal, as is a ^C at the prompt
//

func (p *program) readInput() string {

	s, err := p.in.readLine(executePrompt)
	if err != nil {
		switch {
		case errors.Is(err, io.EOF):
			p.runtimeError(EENDOFINPUT)

		case errors.Is(err, liner.ErrPromptAborted):
			p.runtimeError(EINTERRUPTED)

		default:
			p.runtimeError(err.Error())
		}
	}

	return s
}

func (p *program) printLine(t token) {

	printToken(p.out, t)
	fmt.Fprintln(p.out)
}

func printToken(w io.Writer, t token) {

	switch t := t.(type) {
	default:
		unexpectedTypeError(t)

	case integerToken:
		fmt.Fprint(w, int(t))

	case stringToken:
		fmt.Fprint(w, string(t))
	}
}

//
// Index of the first comma outside of any brackets, or -1
//

func findComma(tokens tokenList) int {

	depth := 0

	for i, t := range tokens {
		switch t.(type) {
		case keyword:
			switch t {
			case LPAR:
				depth++

			case RPAR:
				depth--
			}

		case commaToken:
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
