package runtimeio

import (
	"bytes"
	"strconv"
	"strings"
)

// EOF is pushed by the read operations once input is exhausted.
const EOF int64 = -1

// Channel is a forward-only input cursor plus an append-only output buffer.
type Channel struct {
	input  []byte
	pos    int
	output bytes.Buffer
	faults int
}

func NewChannel() *Channel {
	return &Channel{}
}

// SetInput replaces the input content and rewinds the cursor.
func (c *Channel) SetInput(data []byte) {
	c.input = append([]byte(nil), data...)
	c.pos = 0
}

// ReadChar consumes one byte, or returns EOF.
func (c *Channel) ReadChar() int64 {
	if c.pos >= len(c.input) {
		return EOF
	}
	b := c.input[c.pos]
	c.pos++
	return int64(b)
}

// ReadNumber consumes one line and parses it as a signed decimal. It returns
// EOF when no input is left; a line that does not parse also yields EOF and
// is counted as a fault.
func (c *Channel) ReadNumber() int64 {
	if c.pos >= len(c.input) {
		return EOF
	}
	rest := c.input[c.pos:]
	line := rest
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		line = rest[:i]
		c.pos += i + 1
	} else {
		c.pos = len(c.input)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(line)), 10, 64)
	if err != nil {
		c.faults++
		return EOF
	}
	return n
}

// Exhausted reports whether every input byte has been consumed.
func (c *Channel) Exhausted() bool {
	return c.pos >= len(c.input)
}

func (c *Channel) WriteChar(v int64) {
	c.output.WriteByte(byte(v))
}

func (c *Channel) WriteNumber(v int64) {
	c.output.WriteString(strconv.FormatInt(v, 10))
	c.output.WriteByte(' ')
}

// Output returns a copy of everything written so far.
func (c *Channel) Output() []byte {
	return append([]byte{}, c.output.Bytes()...)
}

// Faults is the number of malformed number lines consumed.
func (c *Channel) Faults() int {
	return c.faults
}
