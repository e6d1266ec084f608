package main

import (
	"io"
	"testing"

	"github.com/danswartzendruber/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrograms(t *testing.T) {

	tests := []struct {
		name     string
		text     string
		input    string
		expected string
	}{
		{
			"if true skips bare else line",
			"X=1\nIF X=1 THEN PRINT \"YES\"\nELSE\nPRINT \"NO\"\n",
			"",
			"YES\n",
		},
		{
			"if false runs line after bare else",
			"X=0\nIF X=1 THEN PRINT \"YES\"\nELSE\nPRINT \"NO\"\n",
			"",
			"NO\n",
		},
		{
			"else with a body",
			"X=0\nIF X THEN PRINT 1\nELSE PRINT 2\nX=1\nIF X THEN PRINT 1\nELSE PRINT 2\n",
			"",
			"2\n1\n",
		},
		{
			"several else lines share one if",
			"IF 0 THEN PRINT 1\nELSE PRINT 2\nELSE PRINT 3\n",
			"",
			"2\n3\n",
		},
		{
			"false if skips its colon chain",
			"IF 0 THEN PRINT 1 : PRINT 2\nPRINT 3\n",
			"",
			"3\n",
		},
		{
			"true if runs its colon chain",
			"IF 1 THEN PRINT 1 : PRINT 2\n",
			"",
			"1\n2\n",
		},
		{
			"true if with an assignment",
			"IF 2 = 2 THEN X = 5\nPRINT X\n",
			"",
			"5\n",
		},
		{
			"nested if",
			"IF 1 THEN IF 0 THEN PRINT 1\nELSE PRINT 2\n",
			"",
			"2\n",
		},
		{
			"goto backward",
			"I=0\nloop:\nI=I+1\nPRINT I\nIF I=3 THEN GOTO done\nGOTO loop\ndone:\nPRINT \"END\"\n",
			"",
			"1\n2\n3\nEND\n",
		},
		{
			"goto to the last line ends the program",
			"GOTO finish\nPRINT 1\nfinish:\n",
			"",
			"",
		},
		{
			"gosub and return",
			"GOSUB sub\nPRINT \"BACK\"\nEXIT\nsub:\nPRINT \"IN\"\nRETURN\n",
			"",
			"IN\nBACK\n",
		},
		{
			"nested gosub",
			"GOSUB a\nPRINT 3\nEXIT\na:\nGOSUB b\nPRINT 2\nRETURN\nb:\nPRINT 1\nRETURN\n",
			"",
			"1\n2\n3\n",
		},
		{
			"for counting up",
			"FOR I = 1 TO 3\nPRINT I\nNEXT\nPRINT \"DONE\", I\n",
			"",
			"1\n2\n3\nDONE4\n",
		},
		{
			"for counting down",
			"FOR I = 3 TO 1\nPRINT I\nNEXT\n",
			"",
			"3\n2\n1\n",
		},
		{
			"for with expressions",
			"N = 2\nFOR I = N - 1 TO N * 2\nPRINT I\nNEXT\n",
			"",
			"1\n2\n3\n4\n",
		},
		{
			"nested for",
			"FOR I = 1 TO 2\nFOR J = 1 TO 2\nPRINT I, J\nNEXT\nNEXT\n",
			"",
			"11\n12\n21\n22\n",
		},
		{
			"for with equal bounds keeps going",
			"N=0\nFOR I = 5 TO 5\nN=N+1\nIF N=3 THEN GOTO out\nNEXT\nout:\nPRINT N, \" \", I\n",
			"",
			"3 5\n",
		},
		{
			"dim store and load",
			"DIM A(3)\nA(2)=7\nPRINT A(1), A(2), A(3)\n",
			"",
			"070\n",
		},
		{
			"dim again resets",
			"DIM A(3)\nA(2)=7\nDIM A(3)\nPRINT A(2)\n",
			"",
			"0\n",
		},
		{
			"dim size from an expression",
			"N = 2\nDIM A(N + 1)\nA(N + 1) = N * 10\nPRINT A(3)\n",
			"",
			"20\n",
		},
		{
			"colon chain after dim",
			"DIM A(2) : A(1)=5 : PRINT A(1)\n",
			"",
			"5\n",
		},
		{
			"strings",
			"A$ = \"HELLO\"\nB$ = A$\nPRINT B$, \" \", A$ = B$\n",
			"",
			"HELLO 1\n",
		},
		{
			"print forms",
			"PRINT\nPRINT 1, 2,\nPRINT \"A\", (1 + 2) * 3\n",
			"",
			"\n12\nA9\n",
		},
		{
			"trailing colon",
			"PRINT 1 :\n",
			"",
			"1\n",
		},
		{
			"rem ignores the rest of the line",
			"REM PRINT 1 : PRINT 2\nPRINT 3 : REM x : PRINT 4\nrem lower case\n",
			"",
			"3\n",
		},
		{
			"print passes string bytes through",
			"PRINT \"\xff\xfe\"\n",
			"",
			"\xff\xfe\n",
		},
		{
			"labels are no-ops",
			"start:\nPRINT 1\n",
			"",
			"1\n",
		},
		{
			"exit stops at once",
			"PRINT 1 : EXIT : PRINT 2\nPRINT 3\n",
			"",
			"1\n",
		},
		{
			"input assignment",
			"NAME$ = INPUT \"WHO\"\nPRINT \"HI \", NAME$\n",
			"BOB\n",
			"WHO\n?HI BOB\n",
		},
		{
			"input without prompt",
			"A$ = INPUT\nPRINT A$\n",
			"line one\r\n",
			"?line one\n",
		},
		{
			"bare input discards a line",
			"INPUT\nINPUT \"PRESS\"\nA$ = INPUT\nPRINT A$\n",
			"x\ny\nz",
			"?PRESS\n??z\n",
		},
		{
			"empty input line",
			"A$ = INPUT\nPRINT \"[\", A$, \"]\"\n",
			"\n",
			"?[]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runText(t, tt.text, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRunErrors(t *testing.T) {

	tests := []struct {
		name     string
		text     string
		input    string
		msg      string
		line     int
		expected string
	}{
		{"else without if", "ELSE PRINT 1\n", "", EUNEXPECTEDELSE, 1, ""},
		{"else after another line", "IF 1 THEN PRINT 1\nPRINT 2\nELSE PRINT 3\n", "",
			EUNEXPECTEDELSE, 3, "1\n2\n"},
		{"if without then", "IF 1 PRINT 1\n", "", ETHEN, 1, ""},
		{"if with a string condition", "IF \"A\" THEN PRINT 1\n", "", "", 1, ""},
		{"if with nothing after then", "IF 1 THEN\n", "", "", 1, ""},
		{"for without to", "FOR I = 1 3 4 5\n", "", ETO, 1, ""},
		{"for with a string variable", "FOR A$ = 1 TO 2\n", "", "", 1, ""},
		{"next without for", "PRINT 1\nNEXT\n", "", ENEXTWITHOUTFOR, 2, "1\n"},
		{"next with operands", "FOR I = 1 TO 2\nNEXT I\n", "", "", 2, ""},
		{"return without gosub", "RETURN\n", "", ERETURNNOGOSUB, 1, ""},
		{"goto unknown label", "GOTO nowhere\n", "", "COULD NOT FIND LABEL NOWHERE", 1, ""},
		{"gosub unknown label", "GOSUB nowhere\n", "", "COULD NOT FIND LABEL NOWHERE", 1, ""},
		{"goto without label", "GOTO\n", "", "", 1, ""},
		{"dim zero", "DIM A(0)\n", "", EARRAYSIZE, 1, ""},
		{"dim too big", "DIM A(999999999999999999)\nPRINT 1\n", "", EARRAYTOOBIG, 1, ""},
		{"dim malformed", "DIM A 3\n", "", "", 1, ""},
		{"index too big", "DIM A(3)\nA(4)=1\n", "", "INVALID ARRAY INDEX 4", 2, ""},
		{"index zero", "DIM A(3)\nPRINT A(0)\n", "", "INVALID ARRAY INDEX 0", 2, ""},
		{"undimensioned array", "B(1)=1\n", "", "COULD NOT FIND B", 1, ""},
		{"array assignment missing brace", "A(1 = 2\n", "", ECLOSINGBRACE, 1, ""},
		{"array assignment missing equals", "DIM A(2)\nA(1) 2 3\n", "", "", 2, ""},
		{"string into integer", "A = \"X\"\n", "", ETYPEMISMATCH, 1, ""},
		{"integer into string", "A$ = 1\n", "", ETYPEMISMATCH, 1, ""},
		{"input into integer", "N = INPUT\n", "5\n", ETYPEMISMATCH, 1, "?"},
		{"two inputs", "A$ = INPUT INPUT\n", "", EMULTIPLEINPUT, 1, ""},
		{"end of input", "PRINT 1\nA$ = INPUT\n", "", EENDOFINPUT, 2, "1\n?"},
		{"division by zero", "PRINT 1\nPRINT 1 / 0\n", "", EDIVISIONBYZERO, 2, "1\n"},
		{"label with trailing tokens", "here: PRINT 1\n", "", "", 1, ""},
		{"empty statement", "PRINT 1 : : PRINT 2\n", "", "", 1, "1\n"},
		{"statement starting with a number", "10 PRINT 1\n", "", "", 1, ""},
		{"assignment without equals", "A 1\n", "", "", 1, ""},
		{"stray keyword", "THEN\n", "", "", 1, ""},
		{"line count includes blank lines", "\n\nREM\n\nX = (1\n", "", EUNBALANCED, 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runText(t, tt.text, tt.input)
			assert.Equal(t, tt.msg, errorMessage(t, err))
			assert.Equal(t, tt.line, errorLine(t, err))
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRunKeepsStateAfterError(t *testing.T) {

	p, _ := newTestProgram("A = 1\nB = 2 / 0\nA = 3\n", "")

	require.Error(t, p.run())

	assert.Equal(t, 1, p.getIntegerVariable("A"))
	assert.Equal(t, 2, p.line)
}

func TestRunCountsLines(t *testing.T) {

	p, _ := newTestProgram("FOR I = 1 TO 3\nNEXT\nPRINT I\n", "")

	require.NoError(t, p.run())

	//
	// The FOR line runs once, NEXT three times, then PRINT
	//

	assert.Equal(t, int64(5), p.stats.numLines)
}

func TestTrace(t *testing.T) {

	p, out := newTestProgram("X = 2\nPRINT \"X\", X\n", "")
	p.traceExec = true

	require.NoError(t, p.run())

	assert.Equal(t, "[1] X [=] 2 \n[2] [PRINT] \"X\" , X \nX2\n", out.String())
}

func TestSplitStatement(t *testing.T) {

	tokens := classify("A = 1 : B = 2 : C = 3")
	tokens = tokens[:len(tokens)-1]

	stmt, rest := splitStatement(tokens)
	assert.Equal(t, tokens[:3], stmt)
	assert.Equal(t, tokens[4:], rest)

	stmt, rest = splitStatement(tokens[8:])
	assert.Equal(t, tokens[8:], stmt)
	assert.Nil(t, rest)
}

//
// Stands in for the terminal reader, which hands back liner's error
// when the user hits ^C at the prompt
//

type abortedReader struct{}

func (abortedReader) readLine(prompt string) (string, error) {

	return "", liner.ErrPromptAborted
}

func TestInputInterrupted(t *testing.T) {

	p := newProgram(abortedReader{}, io.Discard)
	p.load("PRINT 1\nA$ = INPUT\nPRINT 2\n")

	err := p.run()
	assert.Equal(t, EINTERRUPTED, errorMessage(t, err))
	assert.Equal(t, 2, errorLine(t, err))
}
