package main

import (
	"bufio"
	"fmt"
	"github.com/danswartzendruber/liner"
	"github.com/goforj/godump"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

//
// INPUT from a terminal goes through liner, so the user gets line
// editing.  Anything else (a pipe, a file, a test) is read with a
// plain buffered reader.  The returned function restores the terminal
// and must be called before exiting
//

func setupInput(stdin io.Reader, out io.Writer) (lineReader, func()) {

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		lr := &linerReader{state: setupLiner()}
		return lr, func() { cleanupLiner(&lr.state) }
	}

	return newStreamReader(stdin, out), func() {}
}

func setupLiner() *liner.State {

	l := liner.NewLiner()

	//
	// ^C at the prompt needs to come back to us as an error.  Long
	// prompts wrap rather than scroll sideways
	//

	l.SetCtrlCAborts(true)
	l.SetMultiLineMode(true)

	return l
}

//
// Restore terminal state.  NB: we cannot call (or cause to be called)
// crash(), as that would recurse
//

func cleanupLiner(linerState **liner.State) {

	if *linerState != nil {
		(*linerState).Close()
		*linerState = nil
	}
}

type linerReader struct {
	state *liner.State
}

//
// A non-nil error here is io.EOF if the user typed ^D at the start of
// the line, or liner.ErrPromptAborted for ^C.  readInput sorts those
// out
//

func (lr *linerReader) readLine(prompt string) (string, error) {

	return lr.state.Prompt(prompt)
}

type streamReader struct {
	r   *bufio.Reader
	out io.Writer
}

func newStreamReader(in io.Reader, out io.Writer) *streamReader {

	return &streamReader{r: bufio.NewReader(in), out: out}
}

//
// The last line of the stream does not need a newline.  io.EOF is
// only returned once there is nothing at all left
//

func (sr *streamReader) readLine(prompt string) (string, error) {

	fmt.Fprint(sr.out, prompt)

	s, err := sr.r.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}

	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")

	return s, nil
}

//
// Read the program text.  A name with no suffix which can't be found
// gets a second try with the default suffix
//

func readProgramFile(filename string) ([]byte, error) {

	text, err := os.ReadFile(filename)
	if err != nil && filepath.Ext(filename) == "" {
		if alt, altErr := os.ReadFile(filename + basFileSuffix); altErr == nil {
			return alt, nil
		}
	}

	return text, err
}

//
// Print the token stream, one program line per output line, followed
// by the label table in name order
//

func printProgram(p *program) {

	w := p.out

	for _, t := range p.tokens {
		printDebug(w, t)
	}

	fmt.Fprintln(w)

	labels := p.labelList()
	if len(labels) == 0 {
		return
	}

	fmt.Fprintf(w, "%d %s\n", len(labels), pluralize("label", len(labels)))

	for _, label := range labels {
		fmt.Fprintf(w, "  %s: line %d\n", label.name, label.line)
	}
}

func printDebug(w io.Writer, t token) {

	switch t := t.(type) {
	default:
		unexpectedTypeError(t)

	case newlineToken:
		fmt.Fprintln(w)

	case stringToken:
		fmt.Fprintf(w, "%q ", string(t))

	case identToken:
		fmt.Fprintf(w, "%s ", string(t))

	case keyword:
		fmt.Fprintf(w, "[%s] ", keywordNames[t])

	case integerToken:
		fmt.Fprintf(w, "%d ", int(t))

	case colonToken:
		fmt.Fprint(w, ": ")

	case labelToken:
		fmt.Fprintf(w, "%s: ", string(t))

	case commaToken:
		fmt.Fprint(w, ", ")
	}
}

//
// Dump the raw token list and the label table.  The AVL nodes are
// left out, as they are mostly pointers back into the tree
//

func dumpTokens(p *program) {

	type labelEntry struct {
		Name string
		Line int
	}

	var labels []labelEntry

	for _, label := range p.labelList() {
		labels = append(labels, labelEntry{label.name, label.line})
	}

	godump.Fdump(p.out, p.tokens)
	godump.Fdump(p.out, labels)
}

//
// Print the line about to be executed, prefixed with its line number
//

func traceLine(p *program, line tokenList) {

	fmt.Fprintf(p.out, "[%d] ", p.line)

	for _, t := range line {
		printDebug(p.out, t)
	}

	fmt.Fprintln(p.out)
}

func initClock(s *stats) {

	s.elapsed = time.Now()
	s.utime, s.stime = getCPUInfo(1)
	s.numLines = 0
}

func printStatistics(p *program) {

	var mem runtime.MemStats

	w := p.out

	fmt.Fprintln(w)
	printCpuUsage(w, &p.stats)
	runtime.GC()
	runtime.ReadMemStats(&mem)
	fmt.Fprintf(w, "%dMB memory used\n", convertToMB(mem.HeapAlloc))
	fmt.Fprintf(w, "%d %s executed\n", p.stats.numLines,
		pluralize("line", p.stats.numLines))
}

func printCpuUsage(w io.Writer, s *stats) {

	elapsed := time.Since(s.elapsed)
	utime, stime := getCPUInfo(1)

	fmt.Fprintf(w, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-s.utime), formatCPUTime(stime-s.stime))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

//
// User and system CPU seconds used so far.  Where /proc is not
// available (or sysconf fails) this quietly reports zero, since it is
// only ever used for the statistics printout
//

func getCPUInfo(divisor int64) (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck/divisor <= 0 {
		return 0, 0
	}

	clktck /= divisor

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}

	//
	// The command name (field 2) is in parentheses and may contain
	// spaces, so count fields from the closing parenthesis
	//

	stat := string(contents)
	if i := strings.LastIndexByte(stat, ')'); i >= 0 {
		stat = stat[i+1:]
	}

	fields := strings.Fields(stat)
	if len(fields) < 13 {
		return 0, 0
	}

	utime, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return 0, 0
	}

	stime, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return 0, 0
	}

	return utime / clktck, stime / clktck
}

func convertToMB(num uint64) uint64 {

	const MB = 1024 * 1024

	return (num + MB - 1) / MB
}

func pluralize(str string, anum any) string {

	var num int
	retString := str

	switch anum := anum.(type) {
	default:
		unexpectedTypeError(anum)

	case int:
		num = anum

	case int64:
		num = int(anum)
	}

	//
	// Oddity: 0 is considered plural
	//

	if num != 1 {
		retString += "s"
	}

	return retString
}

//
// Something has gone badly wrong inside the interpreter itself
//

func crash(msg string) {

	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	os.Exit(1)
}
