package main

//
// The expression evaluator does not build a tree.  Bracketed groups
// are reduced innermost first, in the order their closing brackets
// appear, each group collapsing to the single value it computes.
// Within a group (and finally at the top level) the span is scanned
// once per operator class, most tightly binding class first, and each
// operator found is applied to its two neighbours on the spot, left
// to right
//

//
// Evaluate a span of tokens down to a single integerToken or
// stringToken.  The span itself is never modified
//

func (p *program) evalExpression(span tokenList) token {

	tokens := p.getVariables(span)

	p.syntaxCheck(len(tokens) > 0)

	for {
		lpar, rpar := innermostGroup(tokens)
		if rpar < 0 {
			p.runtimeCheck(lpar < 0, EUNBALANCED)
			break
		}

		p.runtimeCheck(lpar >= 0, EUNBALANCED)

		v := p.reduce(tokens[lpar+1 : rpar])
		tokens = splice(tokens, lpar, rpar+1, v)
	}

	return p.reduce(tokens)
}

//
// Find the first ')' and the last '(' ahead of it.  rpar is -1 if
// there is no ')', and lpar is -1 if there is no '(' to match it
//

func innermostGroup(tokens tokenList) (lpar, rpar int) {

	lpar = -1

	for i, t := range tokens {
		switch t {
		case LPAR:
			lpar = i

		case RPAR:
			return lpar, i
		}
	}

	return lpar, -1
}

//
// Reduce a span with no brackets left in it.  An operator needs a
// value on both sides, so one at either edge is an error, as is
// anything left over once every operator has been applied
//

func (p *program) reduce(span tokenList) token {

	p.syntaxCheck(len(span) > 0)

	tokens := append(tokenList(nil), span...)

	for _, op := range operatorPrecedence {
		for i := 0; i < len(tokens); {
			if tokens[i] != op {
				i++
				continue
			}

			p.syntaxCheck(i > 0 && i+1 < len(tokens))

			v := p.doOp(tokens[i-1], tokens[i+1], op)
			tokens = splice(tokens, i-1, i+2, v)
		}
	}

	p.syntaxCheck(len(tokens) == 1 && isValue(tokens[0]))

	return tokens[0]
}

//
// Replace tokens[from:to] with the single token v
//

func splice(tokens tokenList, from, to int, v token) tokenList {

	tokens[from] = v

	return append(tokens[:from+1], tokens[to:]...)
}

//
// Replace every identifier in the span with its value.  An identifier
// followed by '(' is an array reference, and the whole 'name ( index )'
// run is replaced by the element.  Returns a fresh token list
//

func (p *program) getVariables(span tokenList) tokenList {

	ntokens := make(tokenList, 0, len(span))

	for i := 0; i < len(span); i++ {
		t := span[i]

		if name, ok := t.(identToken); ok {
			if i+1 < len(span) && span[i+1] == LPAR {
				found := findClosing(span, i+1)
				p.runtimeCheck(found >= 0, ECLOSINGBRACE)
				p.syntaxCheck(found-i-2 > 0)

				d := p.evalExpression(span[i+2 : found])
				idx, ok := d.(integerToken)
				p.syntaxCheck(ok)

				t = integerToken(p.getIntegerArrayVal(string(name), int(idx)))
				i = found
			} else if isStringName(string(name)) {
				t = stringToken(p.getStringVariable(string(name)))
			} else {
				t = integerToken(p.getIntegerVariable(string(name)))
			}
		}

		ntokens = append(ntokens, t)
	}

	return ntokens
}

//
// Apply a binary operator.  Strings take part in arithmetic as their
// length.  '=' compares two strings as strings, anything else as
// integers
//

func (p *program) doOp(t1, t2 token, op keyword) token {

	p.syntaxCheck(isValue(t1) && isValue(t2))

	if op == EQ {
		s1, ok1 := t1.(stringToken)
		s2, ok2 := t2.(stringToken)
		if ok1 && ok2 {
			return boolToInteger(s1 == s2)
		}

		return boolToInteger(toInteger(t1) == toInteger(t2))
	}

	i1 := toInteger(t1)
	i2 := toInteger(t2)

	switch op {
	default:
		p.runtimeError(EUNKNOWNOPERATOR)

	case PLUS:
		return integerToken(i1 + i2)

	case MINUS:
		return integerToken(i1 - i2)

	case STAR:
		return integerToken(i1 * i2)

	case SLASH:
		p.runtimeCheck(i2 != 0, EDIVISIONBYZERO)
		return integerToken(i1 / i2)

	case AND:
		return integerToken(i1 & i2)

	case OR:
		return integerToken(i1 | i2)
	}

	panic(nil) // avoid compiler complaint
}

//
// Evaluate a span which must produce an integer
//

func (p *program) evalInteger(span tokenList) int {

	n, ok := p.evalExpression(span).(integerToken)
	p.syntaxCheck(ok)

	return int(n)
}

func isValue(t token) bool {

	switch t.(type) {
	case integerToken, stringToken:
		return true
	}

	return false
}

//
// A string is worth its length
//

func toInteger(t token) int {

	switch t := t.(type) {
	default:
		unexpectedTypeError(t)

	case integerToken:
		return int(t)

	case stringToken:
		return len(t)
	}

	panic(nil) // avoid compiler complaint
}

func boolToInteger(b bool) integerToken {

	if b {
		return 1
	} else {
		return 0
	}
}

//
// Given the index of a '(' return the index of the matching ')', or
// -1 if there isn't one
//

func findClosing(tokens tokenList, open int) int {

	depth := 0

	for i := open; i < len(tokens); i++ {
		switch tokens[i] {
		case LPAR:
			depth++

		case RPAR:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

//
// Return the index of the first occurrence of the keyword outside of
// any brackets, starting at index 'from', or -1
//

func findKeyword(tokens tokenList, kw keyword, from int) int {

	depth := 0

	for i := from; i < len(tokens); i++ {
		switch tokens[i] {
		case LPAR:
			depth++

		case RPAR:
			depth--

		case kw:
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
