package main

import (
	"github.com/danswartzendruber/avl"
	"io"
	"time"
)

//
// Constants
//

const VERSION = "1.0.0"

const executePrompt = "?"

const basFileSuffix = ".bas"

//
// Largest array DIM will allocate, in elements
//

const maxArraySize = 1 << 24

//
// Characters which terminate a symbol and are themselves a one
// character symbol.  Note that ':' is not one of them, since a label
// declaration is 'name:'
//

const delimiterChars = "+-/*(),="

//
// Keywords.  The order here is the order of keywordNames below
//

type keyword int

const (
	IF keyword = iota
	THEN
	ELSE
	FOR
	NEXT
	EQ
	SLASH
	LPAR
	RPAR
	STAR
	PLUS
	MINUS
	GOSUB
	GOTO
	RETURN
	PRINT
	INPUT
	TO
	REM
	AND
	OR
	DIM
	EXIT
)

var keywordNames = []string{
	IF:     "IF",
	THEN:   "THEN",
	ELSE:   "ELSE",
	FOR:    "FOR",
	NEXT:   "NEXT",
	EQ:     "=",
	SLASH:  "/",
	LPAR:   "(",
	RPAR:   ")",
	STAR:   "*",
	PLUS:   "+",
	MINUS:  "-",
	GOSUB:  "GOSUB",
	GOTO:   "GOTO",
	RETURN: "RETURN",
	PRINT:  "PRINT",
	INPUT:  "INPUT",
	TO:     "TO",
	REM:    "REM",
	AND:    "AND",
	OR:     "OR",
	DIM:    "DIM",
	EXIT:   "EXIT",
}

//
// Binary operators, in the order the expression evaluator extracts
// them.  The first class extracted binds the tightest
//

var operatorPrecedence = []keyword{SLASH, STAR, PLUS, MINUS, EQ, AND, OR}

//
// Pending ELSE state.  Set by IF, consumed by ELSE, and reset by
// any line which does not begin with IF or ELSE
//

type elseState int

const (
	elseUndefined elseState = iota
	elseTaken
	elseNotTaken
)

//
// Token types.  A tokenList holds any of these, and consumers use a
// type switch to tell them apart.  symbolToken only exists while
// classifying, the stored program never contains one
//

type token any

type tokenList []token

type stringToken string

type symbolToken string

type identToken string

type labelToken string

type integerToken int

type newlineToken struct{}

type colonToken struct{}

type commaToken struct{}

type labelNode struct {
	avl  avl.AvlNode
	name string
	line int
}

type forStackNode struct {
	start   int
	end     int
	loopVar string
	line    int
}

//
// Source of INPUT lines.  The prompt is written before the read
//

type lineReader interface {
	readLine(prompt string) (string, error)
}

type exitException struct{}

type runtimeErrorInfo struct {
	msg  string
	line int
}

type basicErrorInfo struct {
	msg  string
	file string
	line int
}

//
// This structure contains the complete state of a loaded program
//

type program struct {
	tokens     tokenList
	lineStarts []int
	labels     *avl.AvlNode
	integers   map[string]int
	strings    map[string]string
	arrays     map[string][]int
	forStack   []forStackNode
	gosubStack []int
	doElse     elseState
	skipLine   bool
	line       int
	in         lineReader
	out        io.Writer
	traceExec  bool
	stats      stats
}

//
// Runtime statistics for executing program
//

type stats struct {
	elapsed  time.Time
	utime    int64
	stime    int64
	numLines int64
}
