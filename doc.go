// Package confmt renders a typed configuration record as canonical
// line-oriented text, one "name = value" entry per field.
//
// The central entry points are [Write] and [Marshal], which walk a [Record]
// in field declaration order and dispatch on each value's closed [Kind] set.
// [WriteFields] and [WriteChan] apply the same rules to a field sequence.
// Formatting is a pure function of the record: the same record always yields
// the same bytes, and nothing is retained between calls.
//
// # Building Records
//
// A [Record] is an ordered set of [Field]s whose kinds are fixed at
// declaration. Values are built with constructors:
//
//	rec := confmt.NewRecord(
//		confmt.Field{Name: "debug", Value: confmt.Bool(true)},
//		confmt.Field{Name: "workers", Value: confmt.Int(4)},
//		confmt.Field{Name: "level", Value: confmt.Enum("info")},
//		confmt.Field{Name: "timeout", Value: confmt.Absent()},
//		confmt.Field{Name: "flags", Value: confmt.FlagSet(
//			confmt.Flag{Name: "a", Enabled: true},
//			confmt.Flag{Name: "b", Enabled: false},
//		)},
//	)
//	confmt.Write(os.Stdout, rec)
//
// which prints:
//
//	debug = true
//	workers = 4
//	level = info
//	timeout =
//	flags = a,no-b
//
// Fields with Hidden set, or with names carrying the internal "_" prefix,
// are never emitted.
//
// # Output Format
//
// One line per emitted entry, "name = value" terminated by a newline, UTF-8,
// no escaping of names or string values, no comments. Flag records collapse
// to a single comma-joined line with "no-" marking disabled flags. Absent
// values render as a bare "name = " line. Present optionals render exactly
// as their inner value would. Floats use the shortest decimal form that
// round-trips. The format is write-only: this package never parses it back.
//
// # Composite Values
//
// A value needing its own rendering implements [Formattable] and is wrapped
// with [Composite]. Its FormatEntries method receives the field name and an
// [EntrySink]; each sink.WriteEntry call re-enters the dispatcher, so
// sub-entries follow the same rules as top-level fields, to any nesting
// depth:
//
//	type tls struct{ cert, key string }
//
//	func (t tls) FormatEntries(name string, sink confmt.EntrySink) error {
//		if err := sink.WriteEntry(name+".cert", confmt.String(t.cert)); err != nil {
//			return err
//		}
//		return sink.WriteEntry(name+".key", confmt.String(t.key))
//	}
//
// Values of unsupported variant kinds ([Variant]) emit nothing; see the
// constructor for the contract.
//
// # Overlays
//
// The populate side is covered by overlays that replace field values from
// foreign representations, never from the canonical text:
//
//   - [LoadFile] loads YAML (.yaml/.yml, via yaml.v3) and TOML (.toml, via
//     BurntSushi/toml) files
//   - [Apply] overlays raw decoded key/value maps
//   - [LoadEnv] reads PREFIX_NAME environment variables
//   - [BindFlags] and [LoadArgs] bind command-line arguments on a stdlib
//     FlagSet
//
// Applications conventionally layer them as defaults < file < environment
// < arguments. A failed [LoadFile], [Apply], or [LoadEnv] leaves the record
// unchanged; the argument overlay applies arguments in order as fs parses
// them, so values before a failing argument remain applied.
//
// # Errors
//
// Sink write failures abort the walk and propagate verbatim. The overlays
// return sentinel errors for programmatic handling:
//
//   - [ErrUnknownField]: a key or argument names no visible field
//   - [ErrInvalidValue]: a value cannot be coerced to its field's kind
//   - [ErrUnsupportedFile]: a file extension no loader handles
package confmt
