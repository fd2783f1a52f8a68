// Package token defines the lexical tokens of the Mython language.
package token

import "fmt"

type Kind int

const (
	EOF Kind = iota

	// Valued tokens.
	NUMBER
	ID
	CHAR
	STRING

	// Keywords.
	CLASS
	RETURN
	IF
	ELSE
	DEF
	PRINT
	AND
	OR
	NOT
	NONE
	TRUE
	FALSE

	// Two-character operators.
	EQ          // ==
	NOTEQ       // !=
	LESSOREQ    // <=
	GREATEROREQ // >=

	// Structural markers.
	NEWLINE
	INDENT
	DEDENT
)

var kindNames = map[Kind]string{
	EOF:         "Eof",
	NUMBER:      "Number",
	ID:          "Id",
	CHAR:        "Char",
	STRING:      "String",
	CLASS:       "Class",
	RETURN:      "Return",
	IF:          "If",
	ELSE:        "Else",
	DEF:         "Def",
	PRINT:       "Print",
	AND:         "And",
	OR:          "Or",
	NOT:         "Not",
	NONE:        "None",
	TRUE:        "True",
	FALSE:       "False",
	EQ:          "Eq",
	NOTEQ:       "NotEq",
	LESSOREQ:    "LessOrEq",
	GREATEROREQ: "GreaterOrEq",
	NEWLINE:     "Newline",
	INDENT:      "Indent",
	DEDENT:      "Dedent",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one lexical unit. At most one payload field is set, depending on
// Kind; the constructors below keep the others zeroed, so two tokens are
// equal exactly when == reports them equal.
type Token struct {
	Kind Kind
	Text string // payload of ID and STRING
	Num  int    // payload of NUMBER
	Ch   byte   // payload of CHAR
}

func Of(kind Kind) Token {
	return Token{Kind: kind}
}

func Number(value int) Token {
	return Token{Kind: NUMBER, Num: value}
}

func Id(name string) Token {
	return Token{Kind: ID, Text: name}
}

func Str(value string) Token {
	return Token{Kind: STRING, Text: value}
}

func Char(ch byte) Token {
	return Token{Kind: CHAR, Ch: ch}
}

func (t Token) String() string {
	switch t.Kind {
	case NUMBER:
		return fmt.Sprintf("Number{%d}", t.Num)
	case ID:
		return fmt.Sprintf("Id{%s}", t.Text)
	case STRING:
		return fmt.Sprintf("String{%s}", t.Text)
	case CHAR:
		return fmt.Sprintf("Char{%c}", t.Ch)
	default:
		return t.Kind.String()
	}
}
