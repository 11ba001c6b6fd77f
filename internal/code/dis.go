package code

import (
	"bytes"
	"fmt"
)

// Cells is the read-only view of a program grid needed for a listing.
type Cells interface {
	Width() int
	Height() int
	Get(x, y int) byte
}

// Listing prints one line per non-space cell in row-major order.
func Listing(g Cells) string {
	var out bytes.Buffer

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.Get(x, y)
			if c == ' ' {
				continue
			}
			op := Decode(c)
			def := definitions[op]
			if op == OpNop {
				fmt.Fprintf(&out, "(%d,%d) %s Nop\n", x, y, printable(c))
				continue
			}
			fmt.Fprintf(&out, "(%d,%d) %s %s %d->%d\n", x, y, printable(c), def.Name, def.Pops, def.Pushes)
		}
	}

	return out.String()
}

func printable(c byte) string {
	if c >= 0x20 && c <= 0x7e {
		return string(rune(c))
	}
	return fmt.Sprintf("\\x%02x", c)
}
