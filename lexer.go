package main

import (
	"strings"
)

var keywordMap map[string]keyword

//
// Convert the source text into a token list.  This is a single pass
// over the raw characters, collecting symbols and quoted strings.
// Every newline produces a newlineToken, even for blank lines, since
// line numbers are simply a count of those
//

func classify(text string) tokenList {

	var tokens tokenList
	var buf strings.Builder
	var quoting bool

	//
	// Hand whatever we have accumulated so far to saveToken
	//

	flush := func() {
		if buf.Len() == 0 {
			return
		}

		if quoting {
			tokens = saveToken(tokens, stringToken(buf.String()))
		} else {
			tokens = saveToken(tokens, symbolToken(buf.String()))
		}

		buf.Reset()
	}

	//
	// Scan bytes, not runes, so string literals come back exactly as
	// written even if they are not valid UTF-8
	//

	for i := 0; i < len(text); i++ {
		ch := text[i]

		//
		// A newline terminates everything, including an unterminated
		// string
		//

		if ch == '\n' {
			flush()
			quoting = false
			tokens = saveToken(tokens, newlineToken{})
			continue
		}

		if quoting {
			if ch == '"' {

				//
				// Note that an empty string "" is still a token
				//

				tokens = saveToken(tokens, stringToken(buf.String()))
				buf.Reset()
				quoting = false
			} else {
				buf.WriteByte(ch)
			}
			continue
		}

		switch {
		case ch == '"':
			flush()
			quoting = true

		case strings.IndexByte(delimiterChars, ch) >= 0:
			flush()
			tokens = saveToken(tokens, symbolToken(text[i : i+1]))

		case ch == ' ' || ch == '\t' || ch == '\r':
			flush()

		default:
			buf.WriteByte(ch)
		}
	}

	flush()

	//
	// Every line must be newline terminated, so that a line length
	// can always be computed by scanning for the newline
	//

	if len(tokens) > 0 {
		if _, ok := tokens[len(tokens)-1].(newlineToken); !ok {
			tokens = saveToken(tokens, newlineToken{})
		}
	}

	return tokens
}

//
// Append a token to the list, classifying it first if it is a raw
// symbol
//

func saveToken(tokens tokenList, t token) tokenList {

	if s, ok := t.(symbolToken); ok {
		t = classifySymbol(string(s))
	}

	return append(tokens, t)
}

//
// Order matters here.  A keyword wins over everything else, and
// anything made of digits is an integer, even if it happens to end
// up looking like something else
//

func classifySymbol(s string) token {

	s = strings.ToUpper(s)

	if kw, ok := keywordMap[s]; ok {
		return kw
	}

	if n, ok := parseDigits(s); ok {
		return integerToken(n)
	}

	switch {
	case s == ":":
		return colonToken{}

	case s == ",":
		return commaToken{}

	case strings.HasSuffix(s, ":"):
		return labelToken(strings.TrimSuffix(s, ":"))
	}

	return identToken(s)
}

//
// Convert a string of decimal digits.  There is no sign and no range
// check: the accumulation simply wraps if the literal is too large
//

func parseDigits(s string) (int, bool) {

	var n int

	if s == "" {
		return 0, false
	}

	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, false
		}

		n = n*10 + int(ch-'0')
	}

	return n, true
}

//
// Return the number of tokens from index d up to (but not including)
// the next newline
//

func lineLength(tokens tokenList, d int) int {

	for i := d; i < len(tokens); i++ {
		if _, ok := tokens[i].(newlineToken); ok {
			return i - d
		}
	}

	return len(tokens) - d
}

//
// Build the line index and the label table.  This is one pass over
// the lines of the program, so it is done exactly once, before
// anything runs.  Only a label at the start of a line declares it
//

func (p *program) collectLabels() {

	p.lineStarts = nil
	p.labels = nil

	line := 0
	for i := 0; i < len(p.tokens); i++ {
		line++
		p.lineStarts = append(p.lineStarts, i)

		if name, ok := p.tokens[i].(labelToken); ok {
			p.addLabel(string(name), line)
		}

		i += lineLength(p.tokens, i)
	}
}
