package ir

import "strconv"

// OpPrec is the precedence level of an expression, higher binds tighter.
type OpPrec int

// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Operators/Operator_Precedence
const (
	OpLowest OpPrec = iota
	OpComma
	OpAssign
	OpCond
	OpOr
	OpAnd
	OpBitOr
	OpBitXor
	OpBitAnd
	OpEquals
	OpCompare
	OpShift
	OpAdd
	OpMul
	OpPrefix
	OpPostfix
	OpNew
	OpCall
	OpMember
	OpPrimary
)

// Op is a unary or binary operator.
type Op uint16

// Op values.
const (
	ErrorOp Op = iota

	// binary operators
	AssignOp       // =
	AddAssignOp    // +=
	SubAssignOp    // -=
	MulAssignOp    // *=
	DivAssignOp    // /=
	ModAssignOp    // %=
	ShlAssignOp    // <<=
	ShrAssignOp    // >>=
	UShrAssignOp   // >>>=
	BitAndAssignOp // &=
	BitOrAssignOp  // |=
	BitXorAssignOp // ^=
	OrOp           // ||
	AndOp          // &&
	BitOrOp        // |
	BitXorOp       // ^
	BitAndOp       // &
	EqOp           // ==
	NotEqOp        // !=
	StrictEqOp     // ===
	StrictNotEqOp  // !==
	LtOp           // <
	LtEqOp         // <=
	GtOp           // >
	GtEqOp         // >=
	InOp           // in
	InstanceofOp   // instanceof
	ShlOp          // <<
	ShrOp          // >>
	UShrOp         // >>>
	AddOp          // +
	SubOp          // -
	MulOp          // *
	DivOp          // /
	ModOp          // %

	// unary operators
	NegOp      // -x
	PosOp      // +x
	NotOp      // !x
	BitNotOp   // ~x
	TypeofOp   // typeof x
	VoidOp     // void x
	DeleteOp   // delete x
	PreIncrOp  // ++x
	PreDecrOp  // --x
	PostIncrOp // x++
	PostDecrOp // x--
)

type opInfo struct {
	Text    string
	Prec    OpPrec
	Keyword bool
}

var opTable = [...]opInfo{
	ErrorOp: {"", OpLowest, false},

	AssignOp:       {"=", OpAssign, false},
	AddAssignOp:    {"+=", OpAssign, false},
	SubAssignOp:    {"-=", OpAssign, false},
	MulAssignOp:    {"*=", OpAssign, false},
	DivAssignOp:    {"/=", OpAssign, false},
	ModAssignOp:    {"%=", OpAssign, false},
	ShlAssignOp:    {"<<=", OpAssign, false},
	ShrAssignOp:    {">>=", OpAssign, false},
	UShrAssignOp:   {">>>=", OpAssign, false},
	BitAndAssignOp: {"&=", OpAssign, false},
	BitOrAssignOp:  {"|=", OpAssign, false},
	BitXorAssignOp: {"^=", OpAssign, false},
	OrOp:           {"||", OpOr, false},
	AndOp:          {"&&", OpAnd, false},
	BitOrOp:        {"|", OpBitOr, false},
	BitXorOp:       {"^", OpBitXor, false},
	BitAndOp:       {"&", OpBitAnd, false},
	EqOp:           {"==", OpEquals, false},
	NotEqOp:        {"!=", OpEquals, false},
	StrictEqOp:     {"===", OpEquals, false},
	StrictNotEqOp:  {"!==", OpEquals, false},
	LtOp:           {"<", OpCompare, false},
	LtEqOp:         {"<=", OpCompare, false},
	GtOp:           {">", OpCompare, false},
	GtEqOp:         {">=", OpCompare, false},
	InOp:           {"in", OpCompare, true},
	InstanceofOp:   {"instanceof", OpCompare, true},
	ShlOp:          {"<<", OpShift, false},
	ShrOp:          {">>", OpShift, false},
	UShrOp:         {">>>", OpShift, false},
	AddOp:          {"+", OpAdd, false},
	SubOp:          {"-", OpAdd, false},
	MulOp:          {"*", OpMul, false},
	DivOp:          {"/", OpMul, false},
	ModOp:          {"%", OpMul, false},

	NegOp:      {"-", OpPrefix, false},
	PosOp:      {"+", OpPrefix, false},
	NotOp:      {"!", OpPrefix, false},
	BitNotOp:   {"~", OpPrefix, false},
	TypeofOp:   {"typeof", OpPrefix, true},
	VoidOp:     {"void", OpPrefix, true},
	DeleteOp:   {"delete", OpPrefix, true},
	PreIncrOp:  {"++", OpPrefix, false},
	PreDecrOp:  {"--", OpPrefix, false},
	PostIncrOp: {"++", OpPostfix, false},
	PostDecrOp: {"--", OpPostfix, false},
}

func (op Op) valid() bool {
	return ErrorOp < op && int(op) < len(opTable)
}

// String returns the source text of the operator.
func (op Op) String() string {
	if !op.valid() {
		return "Invalid(" + strconv.Itoa(int(op)) + ")"
	}
	return opTable[op].Text
}

// Prec returns the precedence level of the operator.
func (op Op) Prec() OpPrec {
	if !op.valid() {
		return OpLowest
	}
	return opTable[op].Prec
}

// IsKeyword returns true for operators spelled as a word, such as typeof or instanceof.
func (op Op) IsKeyword() bool {
	return op.valid() && opTable[op].Keyword
}

// IsBinary returns true for binary operators, including the assignment family.
func (op Op) IsBinary() bool {
	return AssignOp <= op && op <= ModOp
}

// IsUnary returns true for prefix and postfix operators.
func (op Op) IsUnary() bool {
	return NegOp <= op && op <= PostDecrOp
}

// IsAssign returns true for the right-associative assignment family.
func (op Op) IsAssign() bool {
	return AssignOp <= op && op <= BitXorAssignOp
}

// IsPostfix returns true for x++ and x--.
func (op Op) IsPostfix() bool {
	return op == PostIncrOp || op == PostDecrOp
}

// Keywords are the reserved words that cannot be used as identifiers.
var Keywords = map[string]bool{
	"break":      true,
	"case":       true,
	"catch":      true,
	"class":      true,
	"const":      true,
	"continue":   true,
	"debugger":   true,
	"default":    true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"enum":       true,
	"export":     true,
	"extends":    true,
	"false":      true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"if":         true,
	"implements": true,
	"import":     true,
	"in":         true,
	"instanceof": true,
	"interface":  true,
	"let":        true,
	"new":        true,
	"null":       true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"return":     true,
	"static":     true,
	"super":      true,
	"switch":     true,
	"this":       true,
	"throw":      true,
	"true":       true,
	"try":        true,
	"typeof":     true,
	"var":        true,
	"void":       true,
	"while":      true,
	"with":       true,
	"yield":      true,
}
