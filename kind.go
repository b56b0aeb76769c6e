package confmt

// Kind identifies the semantic kind of a [Value]. The kind set is closed:
// every kind has exactly one rendering rule in the dispatcher, and a Value
// can only be built through the constructor of its kind. A new kind needs
// its own constructor and dispatch arm before it can exist; the dispatcher
// panics on anything outside the set.
type Kind int

const (
	KindNone      Kind = iota // absent marker; the zero Value
	KindBool                  // boolean
	KindInt                   // signed integer
	KindFloat                 // floating point
	KindEnum                  // symbolic tag from a fixed set
	KindString                // raw text
	KindFlags                 // fixed ordered set of named booleans
	KindOptional              // present-or-absent wrapper around another kind
	KindComposite             // value that formats itself via Formattable
	KindVariant               // unsupported variant; deliberately unrendered
)

var kinds = []Kind{
	KindNone, KindBool, KindInt, KindFloat, KindEnum,
	KindString, KindFlags, KindOptional, KindComposite, KindVariant,
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	case KindString:
		return "string"
	case KindFlags:
		return "flags"
	case KindOptional:
		return "optional"
	case KindComposite:
		return "composite"
	case KindVariant:
		return "variant"
	default:
		return "unknown"
	}
}

// Kinds returns all declared kinds.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}
