package code

// Opcode is the decoded meaning of a single grid cell.
type Opcode byte

const (
	OpNop Opcode = iota // space and every byte without a meaning

	OpDigit // 0-9: push the digit value

	OpAdd // +
	OpSub // -
	OpMul // *
	OpDiv // /
	OpMod // %

	OpNot     // !
	OpGreater // `

	OpRight  // >
	OpLeft   // <
	OpUp     // ^
	OpDown   // v
	OpRandom // ?

	OpBranchH // _
	OpBranchV // |

	OpString // "

	OpDup     // :
	OpSwap    // \
	OpDiscard // $

	OpOutNumber // .
	OpOutChar   // ,
	OpInNumber  // &
	OpInChar    // ~

	OpBridge // #
	OpGet    // g
	OpPut    // p

	OpHalt // @
)

// Class groups opcodes for presentation (hover text, token colouring, the visualizer).
type Class int

const (
	ClassNone Class = iota
	ClassLiteral
	ClassArithmetic
	ClassLogic
	ClassDirection
	ClassBranch
	ClassStack
	ClassIO
	ClassGrid
	ClassFlow
	ClassString
)

func (c Class) String() string {
	switch c {
	case ClassLiteral:
		return "literal"
	case ClassArithmetic:
		return "arithmetic"
	case ClassLogic:
		return "logic"
	case ClassDirection:
		return "direction"
	case ClassBranch:
		return "branch"
	case ClassStack:
		return "stack"
	case ClassIO:
		return "io"
	case ClassGrid:
		return "grid"
	case ClassFlow:
		return "flow"
	case ClassString:
		return "string"
	default:
		return "none"
	}
}

type Definition struct {
	Name   string
	Class  Class
	Pops   int
	Pushes int
	Doc    string
}

var definitions = map[Opcode]*Definition{
	OpNop:       {"Nop", ClassNone, 0, 0, "No operation."},
	OpDigit:     {"Digit", ClassLiteral, 0, 1, "Push this digit's value."},
	OpAdd:       {"Add", ClassArithmetic, 2, 1, "Pop a and b, then push b+a."},
	OpSub:       {"Sub", ClassArithmetic, 2, 1, "Pop a and b, then push b-a."},
	OpMul:       {"Mul", ClassArithmetic, 2, 1, "Pop a and b, then push b*a."},
	OpDiv:       {"Div", ClassArithmetic, 2, 1, "Pop a and b, then push b/a rounded towards zero; 0 when a is 0."},
	OpMod:       {"Mod", ClassArithmetic, 2, 1, "Pop a and b, then push the remainder of b/a; 0 when a is 0."},
	OpNot:       {"Not", ClassLogic, 1, 1, "Pop a value; push 1 if it is zero, otherwise 0."},
	OpGreater:   {"Greater", ClassLogic, 2, 1, "Pop a and b, then push 1 if b>a, otherwise 0."},
	OpRight:     {"Right", ClassDirection, 0, 0, "Start moving right."},
	OpLeft:      {"Left", ClassDirection, 0, 0, "Start moving left."},
	OpUp:        {"Up", ClassDirection, 0, 0, "Start moving up."},
	OpDown:      {"Down", ClassDirection, 0, 0, "Start moving down."},
	OpRandom:    {"Random", ClassDirection, 0, 0, "Start moving in a random cardinal direction."},
	OpBranchH:   {"BranchH", ClassBranch, 1, 0, "Pop a value; move right if it is zero, left otherwise."},
	OpBranchV:   {"BranchV", ClassBranch, 1, 0, "Pop a value; move down if it is zero, up otherwise."},
	OpString:    {"String", ClassString, 0, 0, "Toggle string mode: push each cell's byte up to the next quote."},
	OpDup:       {"Dup", ClassStack, 1, 2, "Duplicate the value on top of the stack."},
	OpSwap:      {"Swap", ClassStack, 2, 2, "Swap the two values on top of the stack."},
	OpDiscard:   {"Discard", ClassStack, 1, 0, "Pop a value and discard it."},
	OpOutNumber: {"OutNumber", ClassIO, 1, 0, "Pop a value and output it as an integer followed by a space."},
	OpOutChar:   {"OutChar", ClassIO, 1, 0, "Pop a value and output it as a byte."},
	OpInNumber:  {"InNumber", ClassIO, 0, 1, "Read a line of input and push it as a number; -1 at end of input."},
	OpInChar:    {"InChar", ClassIO, 0, 1, "Read one byte of input and push it; -1 at end of input."},
	OpBridge:    {"Bridge", ClassFlow, 0, 0, "Skip the next cell."},
	OpGet:       {"Get", ClassGrid, 2, 1, "Pop y and x, then push the byte stored at (x, y)."},
	OpPut:       {"Put", ClassGrid, 3, 0, "Pop y, x and v, then store the byte v at (x, y)."},
	OpHalt:      {"Halt", ClassFlow, 0, 0, "End the program."},
}

var table [256]Opcode

func init() {
	for c := '0'; c <= '9'; c++ {
		table[c] = OpDigit
	}
	for c, op := range map[byte]Opcode{
		'+': OpAdd, '-': OpSub, '*': OpMul, '/': OpDiv, '%': OpMod,
		'!': OpNot, '`': OpGreater,
		'>': OpRight, '<': OpLeft, '^': OpUp, 'v': OpDown, '?': OpRandom,
		'_': OpBranchH, '|': OpBranchV,
		'"': OpString,
		':': OpDup, '\\': OpSwap, '$': OpDiscard,
		'.': OpOutNumber, ',': OpOutChar, '&': OpInNumber, '~': OpInChar,
		'#': OpBridge, 'g': OpGet, 'p': OpPut,
		'@': OpHalt,
	} {
		table[c] = op
	}
}

// Decode maps a cell to its opcode. The mapping is total: unknown bytes are OpNop.
func Decode(c byte) Opcode {
	return table[c]
}

func Lookup(op Opcode) (*Definition, bool) {
	def, ok := definitions[op]
	return def, ok
}

func (op Opcode) String() string {
	if def, ok := definitions[op]; ok {
		return def.Name
	}
	return "Unknown"
}

// Describe returns the definition for the opcode a cell decodes to.
func Describe(c byte) *Definition {
	return definitions[Decode(c)]
}
