package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Lines splits text the same way the grid loader does, so line i is grid row i.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

func runeUnits(r rune) int {
	n := utf16.RuneLen(r)
	if n < 0 {
		return 1
	}
	return n
}

// byteToUTF16 converts a 0-based byte offset within lineText to UTF-16 code units.
func byteToUTF16(lineText string, byteOff int) uint32 {
	if byteOff <= 0 {
		return 0
	}
	if byteOff > len(lineText) {
		byteOff = len(lineText)
	}
	var count uint32
	for _, r := range lineText[:byteOff] {
		count += uint32(runeUnits(r))
	}
	return count
}

// utf16ToByte converts a 0-based UTF-16 offset within lineText to a byte offset.
func utf16ToByte(lineText string, units int) int {
	if units <= 0 {
		return 0
	}
	count := 0
	for idx, r := range lineText {
		n := runeUnits(r)
		if count+n > units {
			return idx
		}
		count += n
	}
	return len(lineText)
}

// CellAt maps an LSP position to the grid cell under it. ok is false past
// the end of the document or past the end of the line.
func CellAt(text string, pos protocol.Position) (x, y int, ok bool) {
	lines := Lines(text)
	y = int(pos.Line)
	if y >= len(lines) {
		return 0, 0, false
	}
	line := lines[y]
	x = utf16ToByte(line, int(pos.Character))
	if x >= len(line) {
		return 0, 0, false
	}
	return x, y, true
}

// cellRange returns the LSP range covering length bytes starting at (x, y).
func cellRange(lines []string, x, y, length int) protocol.Range {
	if y < 0 || y >= len(lines) {
		return protocol.Range{}
	}
	line := lines[y]
	if length < 1 {
		length = 1
	}
	start := byteToUTF16(line, x)
	end := byteToUTF16(line, x+length)
	if end <= start {
		end = start + 1
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(y), Character: start},
		End:   protocol.Position{Line: uint32(y), Character: end},
	}
}
