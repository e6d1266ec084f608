package main

import (
	"io"
	"strings"
)

//
// Integer variables, string variables and integer arrays live in
// three separate tables, so 'A', 'A$' and the array 'A' never collide.
// Whether a scalar is a string is decided purely by a trailing '$'
//

func newProgram(in lineReader, out io.Writer) *program {

	p := &program{in: in, out: out}

	p.initSymbolTable()

	return p
}

//
// Classify the source text and index it.  The program is ready to
// run afterwards
//

func (p *program) load(text string) {

	p.tokens = classify(text)

	p.collectLabels()
}

//
// Initialize the symbol table and the run state to pristine state
//

func (p *program) initSymbolTable() {

	p.integers = make(map[string]int)
	p.strings = make(map[string]string)
	p.arrays = make(map[string][]int)
	p.forStack = nil
	p.gosubStack = nil
	p.doElse = elseUndefined
	p.skipLine = false
	p.line = 0
}

func isStringName(name string) bool {

	return strings.HasSuffix(name, "$")
}

func (p *program) setStringVariable(name, s string) {

	p.strings[name] = s
}

//
// An undefined string variable is the empty string
//

func (p *program) getStringVariable(name string) string {

	return p.strings[name]
}

func (p *program) setIntegerVariable(name string, n int) {

	p.integers[name] = n
}

//
// An undefined integer variable is 0
//

func (p *program) getIntegerVariable(name string) int {

	return p.integers[name]
}

//
// (Re)create an array.  Whatever was there before is gone, and every
// element starts out as 0
//

func (p *program) dimIntegerArray(name string, sz int) {

	basicAssert(sz > 0 && sz <= maxArraySize, "array size botch")

	p.arrays[name] = make([]int, sz)
}

//
// Arrays are indexed from 1.  Referencing an array which was never
// DIMmed, or an element outside it, is fatal
//

func (p *program) pIntegerArrayVal(name string, d int) *int {

	a, ok := p.arrays[name]
	if !ok {
		p.runtimeError(ENOARRAY, name)
	}

	p.runtimeCheck(d >= 1 && d <= len(a), EARRAYINDEX, d)

	return &a[d-1]
}

func (p *program) setIntegerArrayVal(name string, d, v int) {

	*p.pIntegerArrayVal(name, d) = v
}

func (p *program) getIntegerArrayVal(name string, d int) int {

	return *p.pIntegerArrayVal(name, d)
}

//
// Loop and subroutine stacks.  Popping an empty one is fatal
//

func (p *program) pushForLoop(f forStackNode) {

	p.forStack = append(p.forStack, f)
}

func (p *program) popForLoop() forStackNode {

	p.runtimeCheck(len(p.forStack) > 0, ENEXTWITHOUTFOR)

	f := p.forStack[len(p.forStack)-1]
	p.forStack = p.forStack[:len(p.forStack)-1]

	return f
}

func (p *program) pushReturnLine(line int) {

	p.gosubStack = append(p.gosubStack, line)
}

func (p *program) popReturnLine() int {

	p.runtimeCheck(len(p.gosubStack) > 0, ERETURNNOGOSUB)

	line := p.gosubStack[len(p.gosubStack)-1]
	p.gosubStack = p.gosubStack[:len(p.gosubStack)-1]

	return line
}
