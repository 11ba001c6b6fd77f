package lsp

import (
	"fmt"
	"strings"

	"funge/internal/code"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// HoverAt describes the cell under pos. Cells inside a quoted run are
// described as the byte they push.
func HoverAt(text string, pos protocol.Position) *protocol.Hover {
	x, y, ok := CellAt(text, pos)
	if !ok {
		return nil
	}
	line := Lines(text)[y]
	c := line[x]

	var lines []string
	if c != '"' && insideQuotes(line, x) {
		lines = append(lines,
			fmt.Sprintf("**string byte** `0x%02X`", c),
			"",
			"Pushed as a value while string mode is on.")
	} else {
		def := code.Describe(c)
		if def.Name == "Nop" && c != ' ' {
			lines = append(lines, fmt.Sprintf("**Nop** `0x%02X`", c))
		} else {
			lines = append(lines, fmt.Sprintf("**%s** `%s` (%s)", def.Name, printable(c), def.Class))
		}
		if def.Pops > 0 || def.Pushes > 0 {
			lines = append(lines, fmt.Sprintf("pops %d, pushes %d", def.Pops, def.Pushes))
		}
		lines = append(lines, "", def.Doc)
	}

	r := cellRange(Lines(text), x, y, 1)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: strings.Join(lines, "\n")},
		Range:    &r,
	}
}

func insideQuotes(line string, x int) bool {
	return strings.Count(line[:x], "\"")%2 == 1
}

func printable(c byte) string {
	if c >= 0x20 && c < 0x7F {
		return string(c)
	}
	return fmt.Sprintf("0x%02X", c)
}
