package confmt

// Flag is a single named boolean of a flag record.
type Flag struct {
	Name    string
	Enabled bool
}

// --- Capability Interfaces ---

// EntrySink renders entries through the standard dispatch rules. It is the
// re-entry point handed to [Formattable] values: an entry written through it
// is formatted exactly as a top-level field of the same kind would be.
type EntrySink interface {
	WriteEntry(name string, v Value) error
}

// Formattable supplies custom rendering for composite values. FormatEntries
// receives the field's name and an EntrySink and calls sink.WriteEntry zero
// or more times to emit sub-entries under names of its own choosing. Errors
// returned by the sink must be propagated unmodified; they are sink write
// failures surfacing through the callback chain.
type Formattable interface {
	FormatEntries(name string, sink EntrySink) error
}

// --- Value ---

// Value is one configuration value paired with its kind. Values are built
// with the constructors below and are immutable; the zero Value is the
// absent marker.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string // String text or Enum tag
	flags []Flag
	inner *Value // Optional payload; nil means absent
	comp  Formattable
	vari  any // Variant payload; carried but never rendered
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Bool returns a boolean Value, rendered as "true" or "false".
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value, rendered as a decimal literal.
func Int(n int64) Value { return Value{kind: KindInt, i: n} }

// Float returns a floating-point Value. It renders in the shortest decimal
// form that parses back to the same float64 (strconv 'g' with precision -1),
// so formatting is deterministic and round-trippable.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Enum returns an enumerated Value, rendered as its symbolic tag name.
// Membership of the tag in its set is the schema author's concern.
func Enum(tag string) Value { return Value{kind: KindEnum, s: tag} }

// String returns a text Value. Text is rendered raw, without escaping.
func String(s string) Value { return Value{kind: KindString, s: s} }

// None returns the absent marker, rendered as a bare "name = " line.
func None() Value { return Value{kind: KindNone} }

// Some returns a present optional wrapping inner. Rendering unwraps the
// inner value and applies its own kind's rule, so Some(v) and v format
// identically under the same name.
func Some(inner Value) Value { return Value{kind: KindOptional, inner: &inner} }

// Absent returns an absent optional, rendered as a bare "name = " line.
func Absent() Value { return Value{kind: KindOptional} }

// FlagSet returns a flag-record Value: a fixed, ordered set of named boolean
// flags rendered as a single comma-joined line, each token carrying a "no-"
// prefix when its flag is disabled.
func FlagSet(flags ...Flag) Value {
	fl := make([]Flag, len(flags))
	copy(fl, flags)
	return Value{kind: KindFlags, flags: fl}
}

// Composite returns a Value that renders itself through f. A nil f emits
// nothing.
func Composite(f Formattable) Value { return Value{kind: KindComposite, comp: f} }

// Variant returns a value of an unsupported variant kind. Rendering one
// emits no lines and no error: variants are a deliberate, documented
// omission from output, not a failure. The payload is carried so schemas
// can still hold it.
func Variant(payload any) Value { return Value{kind: KindVariant, vari: payload} }
