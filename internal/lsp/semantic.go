package lsp

import (
	"funge/internal/code"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// semantic token type indices (must match TokenTypes order)
const (
	ttKeyword  = 0
	ttString   = 1
	ttNumber   = 2
	ttOperator = 3
	ttFunction = 4
	ttMacro    = 5
)

const (
	modReadonly = 1 << 0
	modModify   = 1 << 1
)

var TokenTypes = []string{
	string(protocol.SemanticTokenTypeKeyword),
	string(protocol.SemanticTokenTypeString),
	string(protocol.SemanticTokenTypeNumber),
	string(protocol.SemanticTokenTypeOperator),
	string(protocol.SemanticTokenTypeFunction),
	string(protocol.SemanticTokenTypeMacro),
}

var TokenModifiers = []string{
	string(protocol.SemanticTokenModifierReadonly),
	string(protocol.SemanticTokenModifierModification),
}

func Legend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{TokenTypes: TokenTypes, TokenModifiers: TokenModifiers}
}

// SemTok positions are 1-based; Col and Length are in UTF-16 code units.
type SemTok struct {
	Line   int
	Col    int
	Length int
	Type   int
	Mods   int
}

func Classify(c byte) (int, int, bool) {
	op := code.Decode(c)
	def, ok := code.Lookup(op)
	if !ok {
		return 0, 0, false
	}
	switch def.Class {
	case code.ClassLiteral:
		return ttNumber, 0, true
	case code.ClassArithmetic, code.ClassLogic, code.ClassStack:
		return ttOperator, 0, true
	case code.ClassDirection, code.ClassBranch, code.ClassFlow:
		return ttKeyword, 0, true
	case code.ClassIO:
		return ttFunction, 0, true
	case code.ClassGrid:
		if op == code.OpPut {
			return ttMacro, modModify, true
		}
		return ttMacro, modReadonly, true
	case code.ClassString:
		return ttString, 0, true
	}
	return 0, 0, false
}

// SemanticTokensForText colours every instruction cell. A quoted run is a
// single string token from its opening quote to its closing quote, or to the
// end of the row when the quote is left open.
func SemanticTokensForText(text string) []SemTok {
	var toks []SemTok
	for y, line := range Lines(text) {
		x := 0
		for x < len(line) {
			c := line[x]
			if c == '"' {
				end := x + 1
				for end < len(line) && line[end] != '"' {
					end++
				}
				if end < len(line) {
					end++
				}
				toks = append(toks, rowToken(line, y, x, end, ttString, 0))
				x = end
				continue
			}
			tt, mods, ok := Classify(c)
			if !ok {
				x++
				continue
			}
			end := x + 1
			for end < len(line) && line[end] != '"' {
				nt, nm, nok := Classify(line[end])
				if !nok || nt != tt || nm != mods {
					break
				}
				end++
			}
			toks = append(toks, rowToken(line, y, x, end, tt, mods))
			x = end
		}
	}
	return toks
}

func rowToken(line string, y, start, end, tt, mods int) SemTok {
	s := byteToUTF16(line, start)
	e := byteToUTF16(line, end)
	return SemTok{Line: y + 1, Col: int(s) + 1, Length: int(e - s), Type: tt, Mods: mods}
}
