package token

// Kind classifies a physical input line.
type Kind int

const (
	Blank   Kind = iota // empty or whitespace only
	Comment             // # a full-line comment
	Pair                // key: value, value may be absent
	Bare                // a value without key: a sequence entry or stray text
)

var kindNames = map[Kind]string{
	Blank:   "BLANK",
	Comment: "COMMENT",
	Pair:    "PAIR",
	Bare:    "BARE",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Line is the token produced for one physical input line. It lives only
// until the tree builder has consumed it.
type Line struct {
	Kind   Kind
	Raw    string
	Num    int // 1-based
	Len    int // in characters
	Indent int // leading spaces
	Key    string
	// Value is the trimmed value with any inline comment removed. An empty
	// Value on a Pair line means the value is absent and a nested block
	// follows.
	Value string
}

// IsDash reports whether the line is a sequence entry ("-" or "- value").
func (l Line) IsDash() bool {
	return l.Kind == Bare && (l.Value == "-" || (len(l.Value) > 1 && l.Value[0] == '-' && (l.Value[1] == ' ' || l.Value[1] == '\t')))
}
