// Package parse turns Flowscript surface syntax into an ast.Defs table.
//
//	program         := stmt*
//	stmt            := variable_def | connection_def
//	variable_def    := IDENT attributes? ';'?
//	connection_def  := IDENT '->' IDENT attributes? ';'?
//	attributes      := '[' (attribute (',' attribute)*)? ']'
//	attribute       := IDENT '=' (IDENT | STRING | NUMBER)
package parse

import (
	"github.com/coreyclarkphd/flowscript/internal/ast"
	"github.com/coreyclarkphd/flowscript/internal/flowerr"
	"github.com/coreyclarkphd/flowscript/internal/lexer"
)

// Parser consumes a token stream and builds an ast.Defs.
type Parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	defs *ast.Defs
}

// Parse parses src into a Defs, applying the task-synthesis and
// input-synthesis closure described in spec.md §4.2.
func Parse(src string) (*ast.Defs, *flowerr.Error) {
	p := &Parser{lex: lexer.New(src), defs: ast.NewDefs()}
	if err := p.advance(); err != nil {
		return nil, err
	}

	for p.cur.Kind != lexer.EOF {
		if err := p.stmt(); err != nil {
			return nil, err
		}
	}

	p.backfill()
	return p.defs, nil
}

func (p *Parser) advance() *flowerr.Error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, *flowerr.Error) {
	if p.cur.Kind != kind {
		return lexer.Token{}, flowerr.Parse(p.cur.Line, p.cur.Column, "expected %s, got %s", kind, p.cur.Kind)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func (p *Parser) stmt() *flowerr.Error {
	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return err
	}

	if p.cur.Kind == lexer.Arrow {
		if err := p.advance(); err != nil {
			return err
		}
		return p.connectionDef(nameTok)
	}
	return p.variableDef(nameTok)
}

func (p *Parser) attrs() (map[string]string, *flowerr.Error) {
	if p.cur.Kind != lexer.LBracket {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	attrs := make(map[string]string)
	for p.cur.Kind != lexer.RBracket {
		keyTok, err := p.expect(lexer.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Equals); err != nil {
			return nil, err
		}
		var valText string
		switch p.cur.Kind {
		case lexer.Ident, lexer.String, lexer.Number:
			valText = p.cur.Text
			if err := p.advance(); err != nil {
				return nil, err
			}
		default:
			return nil, flowerr.Parse(p.cur.Line, p.cur.Column, "expected attribute value, got %s", p.cur.Kind)
		}
		attrs[keyTok.Text] = valText

		if p.cur.Kind == lexer.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	return attrs, nil
}

func (p *Parser) maybeSemi() *flowerr.Error {
	if p.cur.Kind == lexer.Semicolon {
		return p.advance()
	}
	return nil
}

func (p *Parser) variableDef(nameTok lexer.Token) *flowerr.Error {
	attrs, err := p.attrs()
	if err != nil {
		return err
	}
	if err := p.maybeSemi(); err != nil {
		return err
	}

	name := nameTok.Text
	if name == "input" {
		p.defs.Variables[name] = ast.NodeDef{Kind: ast.KindInput}
		return nil
	}

	if attrs == nil {
		p.defs.Variables[name] = ast.NodeDef{Kind: ast.KindTask, Command: name}
		return nil
	}

	shape, ok := attrs["shape"]
	if !ok {
		return flowerr.Parse(nameTok.Line, nameTok.Column, "Non-task node requires a shape definition")
	}

	switch shape {
	case "rectangle":
		label, ok := attrs["label"]
		if !ok {
			return flowerr.Parse(nameTok.Line, nameTok.Column, "If statement requires a condition")
		}
		p.defs.Variables[name] = ast.NodeDef{Kind: ast.KindIf, Condition: label}
	case "component":
		p.defs.Variables[name] = ast.NodeDef{Kind: ast.KindCount}
	case "diamond":
		label, ok := attrs["label"]
		if !ok {
			return flowerr.Parse(nameTok.Line, nameTok.Column, "Switch statement requires a field to switch on")
		}
		p.defs.Variables[name] = ast.NodeDef{Kind: ast.KindSwitch, Field: label}
	case "Mdiamond":
		label, ok := attrs["label"]
		if !ok {
			return flowerr.Parse(nameTok.Line, nameTok.Column, "Match statement requires a field to match with")
		}
		p.defs.Variables[name] = ast.NodeDef{Kind: ast.KindMatch, Field: label}
	case "point":
		p.defs.Variables[name] = ast.NodeDef{Kind: ast.KindMulti}
	case "cds":
		label, ok := attrs["label"]
		if !ok {
			return flowerr.Parse(nameTok.Line, nameTok.Column, "Setter requires a field to set")
		}
		p.defs.Variables[name] = ast.NodeDef{Kind: ast.KindSetter, Label: label}
	default:
		return flowerr.Parse(nameTok.Line, nameTok.Column, "Unknown node type %q", shape)
	}
	return nil
}

func (p *Parser) connectionDef(fromTok lexer.Token) *flowerr.Error {
	toTok, err := p.expect(lexer.Ident)
	if err != nil {
		return err
	}
	attrs, err := p.attrs()
	if err != nil {
		return err
	}
	if err := p.maybeSemi(); err != nil {
		return err
	}

	conn := ast.ConnectionDef{From: fromTok.Text, To: toTok.Text}

	label, hasLabel := attrs["label"]
	style := attrs["style"]

	switch {
	case hasLabel && label == "true":
		conn.Type = ast.IfTrue
	case hasLabel && label == "false":
		conn.Type = ast.IfFalse
	case hasLabel && style == "dashed":
		conn.Type = ast.MatchBranch
		conn.Label = label
	case hasLabel:
		conn.Type = ast.SwitchBranch
		conn.Label = label
	case style == "dashed":
		conn.Type = ast.MultiOut
	default:
		conn.Type = ast.Default
	}

	p.defs.Connections = append(p.defs.Connections, conn)
	return nil
}

// backfill synthesizes Task nodes for any connection endpoint that was
// never declared, and ensures "input" exists (spec.md §3 invariants).
func (p *Parser) backfill() {
	for _, conn := range p.defs.Connections {
		p.defs.EnsureTask(conn.From)
		p.defs.EnsureTask(conn.To)
	}
	if _, ok := p.defs.Variables["input"]; !ok {
		p.defs.Variables["input"] = ast.NodeDef{Kind: ast.KindInput}
	}
}
