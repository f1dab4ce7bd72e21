package evaluator

import (
	"fmt"
	"strconv"
)

// parser - рекурсивный спуск по нормализованному выражению, побайтово.
// Приоритеты от слабого к сильному: +- | */% | унарный минус | ^ |
// первичное выражение. '^' правоассоциативен и связывает сильнее
// унарного минуса слева ("-2^2" это -(2^2)), но допускает знак в
// показателе ("2^-3").
type parser struct {
	input string
	pos   int
}

func parse(input string) (node, error) {
	p := &parser{input: input}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if !p.eof() {
		return nil, fmt.Errorf("неожиданный символ %q на позиции %d", p.peek(), p.pos)
	}
	return root, nil
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) accept(b byte) bool {
	if p.peek() == b {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpaces() {
	for !p.eof() {
		switch p.input[p.pos] {
		case ' ', '\t', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseExpr() (node, error) {
	n, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			n = &binaryNode{op: "+", left: n, right: rhs}
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			n = &binaryNode{op: "-", left: n, right: rhs}
		default:
			return n, nil
		}
	}
}

func (p *parser) parseTerm() (node, error) {
	n, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*', '/', '%':
			op := string(p.peek())
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			n = &binaryNode{op: op, left: n, right: rhs}
		default:
			return n, nil
		}
	}
}

func (p *parser) parseUnary() (node, error) {
	p.skipSpaces()
	switch p.peek() {
	case '-':
		p.pos++
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &negateNode{child: child}, nil
	case '+':
		// Унарный плюс просто исчезает
		p.pos++
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.accept('^') {
		// Показатель разбирается с уровня унарного минуса: так '^'
		// остаётся правоассоциативным и принимает знаковый операнд
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &binaryNode{op: "^", left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (node, error) {
	p.skipSpaces()
	if p.eof() {
		return nil, fmt.Errorf("неожиданный конец выражения")
	}
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpaces()
		if !p.accept(')') {
			return nil, fmt.Errorf("несогласованные скобки")
		}
		return n, nil
	case isDigit(c) || c == '.':
		return p.parseNumber()
	case isLetter(c):
		return p.parseIdent()
	}
	return nil, fmt.Errorf("неожиданный символ %q на позиции %d", c, p.pos)
}

func (p *parser) parseNumber() (node, error) {
	start := p.pos
	for !p.eof() && (isDigit(p.peek()) || p.peek() == '.') {
		p.pos++
	}
	// Необязательная экспонента, чтобы "1e5" и "2E+3" читались как один
	// литерал. Одиночная 'e' в конце откатывается и уходит идентификатору.
	if !p.eof() && (p.peek() == 'e' || p.peek() == 'E') {
		mark := p.pos
		p.pos++
		if !p.eof() && (p.peek() == '+' || p.peek() == '-') {
			p.pos++
		}
		if !p.eof() && isDigit(p.peek()) {
			for !p.eof() && isDigit(p.peek()) {
				p.pos++
			}
		} else {
			p.pos = mark
		}
	}
	text := p.input[start:p.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("некорректное число %q", text)
	}
	return &numberNode{value: v}, nil
}

func (p *parser) parseIdent() (node, error) {
	start := p.pos
	for !p.eof() && isIdentChar(p.peek()) {
		p.pos++
	}
	name := p.input[start:p.pos]
	p.skipSpaces()
	if p.accept('(') {
		var args []node
		p.skipSpaces()
		if p.accept(')') {
			return &callNode{name: name, args: args}, nil
		}
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skipSpaces()
			if p.accept(',') {
				continue
			}
			if p.accept(')') {
				return &callNode{name: name, args: args}, nil
			}
			return nil, fmt.Errorf("несогласованные скобки в вызове %s", name)
		}
	}
	return &identNode{name: name}, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentChar(b byte) bool { return isLetter(b) || isDigit(b) }
