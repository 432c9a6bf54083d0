package reflexer

import (
	"fmt"

	"github.com/willabides/tomlkey/internal/lexevent"
)

// parser walks the pre-scanned token stream and emits the lexevent.Event
// sequence the driver expects, following the same shape as the
// teacher's yaml_parser_state_machine: one big dispatch over document
// structure, recursing into nested collections.
type parser struct {
	toks   []token
	pos    int
	events []lexevent.Event
}

func parseDocument(toks []token) ([]lexevent.Event, error) {
	p := &parser{toks: toks}
	p.emit(lexevent.EnterToml, Position{}, Position{})
	for {
		p.consumeCommentsAndBlanks()
		tok := p.peek()
		switch tok.kind {
		case tokEOF:
			at := posOf(tok)
			p.emit(lexevent.ExitToml, at, at)
			return p.events, nil
		case tokDLBracket:
			if err := p.parseTableArrayHeader(); err != nil {
				return nil, err
			}
		case tokLBracket:
			if err := p.parseSimpleTableHeader(); err != nil {
				return nil, err
			}
		case tokWord, tokString:
			if err := p.parseKeyValueLine(); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("reflexer: unexpected token %q at line %d", tok.text, tok.line)
		}
	}
}

type Position = lexevent.Position

func posOf(t token) Position {
	return Position{Index: t.startPos, Line: t.line, Column: t.col}
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) emit(t lexevent.EventType, start, end Position) {
	p.events = append(p.events, lexevent.Event{Type: t, Start: start, End: end})
}

func (p *parser) emitScalar(t lexevent.EventType, kind lexevent.ScalarKind, value string, line int, start, end Position) {
	p.events = append(p.events, lexevent.Event{Type: t, Start: start, End: end, ScalarKind: kind, Value: value, Line: line})
}

// consumeCommentsAndBlanks drains any run of comment and blank-newline
// tokens at the current position, emitting ExitComment for each comment
// and ExitNewline only for genuinely empty lines — the newline that
// terminates a comment line is absorbed silently, matching how the
// driver's exitCommentText/exitNewline split blank-line bookkeeping from
// comment attachment.
func (p *parser) consumeCommentsAndBlanks() {
	for {
		switch p.peek().kind {
		case tokComment:
			tok := p.advance()
			p.emitScalar(lexevent.ExitComment, 0, tok.text, tok.line, posOf(tok), posOf(tok))
			if p.peek().kind == tokNewline {
				p.advance()
			}
		case tokNewline:
			tok := p.advance()
			p.emit(lexevent.ExitNewline, posOf(tok), posOf(tok))
		default:
			return
		}
	}
}

// consumeLineTrailer handles the optional same-line trailing comment
// after a key-value pair or a table header, then the line terminator.
func (p *parser) consumeLineTrailer(exitKind lexevent.EventType) error {
	if p.peek().kind == tokComment {
		tok := p.advance()
		p.emitScalar(lexevent.ExitComment, 0, tok.text, tok.line, posOf(tok), posOf(tok))
	}
	at := posOf(p.peek())
	p.emit(exitKind, at, at)
	if p.peek().kind == tokNewline {
		p.advance()
	}
	return nil
}

func (p *parser) parseDottedKey() error {
	for {
		tok := p.peek()
		switch tok.kind {
		case tokWord:
			p.advance()
			p.emitScalar(lexevent.ExitSimpleKey, tok.scalarKind, tok.text, tok.line, posOf(tok), posOf(tok))
		case tokString:
			p.advance()
			p.emitScalar(lexevent.ExitSimpleKey, tok.scalarKind, tok.text, tok.line, posOf(tok), posOf(tok))
		default:
			return fmt.Errorf("reflexer: expected key segment at line %d, got %q", tok.line, tok.text)
		}
		if p.peek().kind == tokDot {
			p.advance()
			continue
		}
		return nil
	}
}

func literalText(t token) string {
	switch t.kind {
	case tokDot:
		return "."
	case tokColon:
		return ":"
	case tokPlus:
		return "+"
	default:
		return t.text
	}
}

// collectValueLiteral reassembles an unquoted value token that the
// scanner split on '.', ':' or a leading '+' (none of which belong to
// the bare-key charset) back into one literal, provided the pieces are
// contiguous in the source (no intervening whitespace).
func (p *parser) collectValueLiteral() (text string, line int, start, end Position) {
	first := p.advance()
	text = literalText(first)
	line = first.line
	start = posOf(first)
	endPos := first.endPos
	end = start
	for {
		nxt := p.peek()
		if nxt.startPos != endPos {
			break
		}
		switch nxt.kind {
		case tokWord, tokDot, tokColon, tokPlus:
			p.advance()
			text += literalText(nxt)
			endPos = nxt.endPos
			end = posOf(nxt)
		default:
			return text, line, start, end
		}
	}
	return text, line, start, end
}

func (p *parser) parseValueProduction() error {
	tok := p.peek()
	switch tok.kind {
	case tokString:
		p.advance()
		p.emitScalar(lexevent.ExitValue, tok.scalarKind, tok.text, tok.line, posOf(tok), posOf(tok))
		return nil
	case tokWord, tokPlus:
		text, line, start, end := p.collectValueLiteral()
		p.emitScalar(lexevent.ExitValue, classifyValue(text), text, line, start, end)
		return nil
	case tokLBracket:
		return p.parseArray()
	case tokLBrace:
		return p.parseInlineTable()
	default:
		return fmt.Errorf("reflexer: unexpected value token %q at line %d", tok.text, tok.line)
	}
}

func (p *parser) parseArray() error {
	open := p.advance() // '['
	if p.peek().kind == tokRBracket {
		p.advance()
		p.emit(lexevent.EmptyArray, posOf(open), posOf(open))
		return nil
	}
	p.emit(lexevent.EnterArray, posOf(open), posOf(open))
	for {
		p.consumeCommentsAndBlanks()
		if p.peek().kind == tokRBracket {
			break
		}
		elemTok := p.peek()
		p.emit(lexevent.EnterArrayElement, posOf(elemTok), posOf(elemTok))
		if err := p.parseValueProduction(); err != nil {
			return err
		}
		p.emit(lexevent.ExitArrayElement, posOf(elemTok), posOf(elemTok))
		p.consumeCommentsAndBlanks()
		if p.peek().kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	p.consumeCommentsAndBlanks()
	if p.peek().kind != tokRBracket {
		return fmt.Errorf("reflexer: unterminated array at line %d", open.line)
	}
	closeTok := p.advance()
	p.emit(lexevent.ExitArray, posOf(closeTok), posOf(closeTok))
	return nil
}

func (p *parser) parseInlineTable() error {
	open := p.advance() // '{'
	if p.peek().kind == tokRBrace {
		p.advance()
		p.emit(lexevent.EmptyInlineTable, posOf(open), posOf(open))
		return nil
	}
	p.emit(lexevent.EnterInlineTable, posOf(open), posOf(open))
	for {
		p.emit(lexevent.EnterKey, posOf(p.peek()), posOf(p.peek()))
		if err := p.parseDottedKey(); err != nil {
			return err
		}
		at := posOf(p.peek())
		p.emit(lexevent.ExitKey, at, at)
		if p.peek().kind != tokEquals {
			return fmt.Errorf("reflexer: expected '=' in inline table at line %d", p.peek().line)
		}
		p.advance()
		if err := p.parseValueProduction(); err != nil {
			return err
		}
		p.emit(lexevent.ExitKeyValue, at, at)
		if p.peek().kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if p.peek().kind != tokRBrace {
		return fmt.Errorf("reflexer: unterminated inline table at line %d", open.line)
	}
	closeTok := p.advance()
	p.emit(lexevent.ExitInlineTable, posOf(closeTok), posOf(closeTok))
	return nil
}

func (p *parser) parseKeyValueLine() error {
	start := posOf(p.peek())
	p.emit(lexevent.EnterKey, start, start)
	if err := p.parseDottedKey(); err != nil {
		return err
	}
	at := posOf(p.peek())
	p.emit(lexevent.ExitKey, at, at)
	if p.peek().kind != tokEquals {
		return fmt.Errorf("reflexer: expected '=' at line %d", p.peek().line)
	}
	p.advance()
	if err := p.parseValueProduction(); err != nil {
		return err
	}
	p.emit(lexevent.ExitKeyValue, at, at)
	return p.consumeLineTrailer(lexevent.ExitOptCommentKeyPair)
}

func (p *parser) parseSimpleTableHeader() error {
	open := p.advance() // '['
	p.emit(lexevent.EnterSimpleTable, posOf(open), posOf(open))
	p.emit(lexevent.EnterKey, posOf(open), posOf(open))
	if err := p.parseDottedKey(); err != nil {
		return err
	}
	at := posOf(p.peek())
	p.emit(lexevent.ExitKey, at, at)
	if p.peek().kind != tokRBracket {
		return fmt.Errorf("reflexer: expected ']' closing table header at line %d", p.peek().line)
	}
	p.advance()
	p.emit(lexevent.ExitSimpleTable, at, at)
	return p.consumeLineTrailer(lexevent.ExitOptCommentTable)
}

// parseTableArrayHeader does not emit a generic EnterKey: the driver's
// enterTableArray handler seeds its own key builder rooted at the
// document root (not the current parent), so a subsequent EnterKey
// would stomp it with one rooted at the wrong parent for nested
// array-of-tables headers.
func (p *parser) parseTableArrayHeader() error {
	open := p.advance() // '[['
	p.emit(lexevent.EnterTableArray, posOf(open), posOf(open))
	if err := p.parseDottedKey(); err != nil {
		return err
	}
	at := posOf(p.peek())
	p.emit(lexevent.ExitKey, at, at)
	if p.peek().kind != tokDRBracket {
		return fmt.Errorf("reflexer: expected ']]' closing table-array header at line %d", p.peek().line)
	}
	p.advance()
	p.emit(lexevent.ExitTableArray, at, at)
	return p.consumeLineTrailer(lexevent.ExitOptCommentTable)
}
