package confmt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sentinel errors for programmatic error handling. Sink write failures are
// never wrapped in these; they propagate verbatim.
var (
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidValue    = errors.New("invalid value")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// internalPrefix marks field names that are never part of the public
// surface, regardless of the Hidden flag.
const internalPrefix = "_"

// Write renders rec to w in the canonical line format: one
// "name = value\n" entry per visible field, in declaration order. Hidden
// fields and fields whose names carry the internal "_" prefix are skipped.
// The first sink error aborts the walk and is returned verbatim; bytes
// already written stay in the sink, so callers needing atomicity should
// write through a buffer (see [Marshal]).
func Write(w io.Writer, rec *Record) error {
	if rec == nil {
		return nil
	}
	for _, f := range rec.fields {
		if !f.visible() {
			continue
		}
		if err := writeEntry(w, f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// Marshal renders rec and returns the bytes.
func Marshal(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeEntry renders one entry according to the value's kind. It recurses
// for present optionals and, through entrySink, for composite sub-entries.
// The kind set is closed; a Kind outside it is an authoring bug, not a
// runtime condition, and panics.
func writeEntry(w io.Writer, name string, v Value) error {
	switch v.kind {
	case KindNone:
		return writeLine(w, name, "")
	case KindBool:
		return writeLine(w, name, strconv.FormatBool(v.b))
	case KindInt:
		return writeLine(w, name, strconv.FormatInt(v.i, 10))
	case KindFloat:
		return writeLine(w, name, strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindEnum, KindString:
		return writeLine(w, name, v.s)
	case KindFlags:
		return writeLine(w, name, joinFlags(v.flags))
	case KindOptional:
		if v.inner == nil {
			return writeLine(w, name, "")
		}
		return writeEntry(w, name, *v.inner)
	case KindComposite:
		if v.comp == nil {
			return nil
		}
		return v.comp.FormatEntries(name, entrySink{w: w})
	case KindVariant:
		// Deliberately unrendered; see Variant.
		return nil
	default:
		panic(fmt.Sprintf("confmt: no rendering rule for kind %d", int(v.kind)))
	}
}

func writeLine(w io.Writer, name, value string) error {
	_, err := fmt.Fprintf(w, "%s = %s\n", name, value)
	return err
}

// joinFlags renders one token per flag in declaration order, "no-"-prefixed
// when disabled, comma-joined with no trailing separator.
func joinFlags(flags []Flag) string {
	tokens := make([]string, len(flags))
	for i, fl := range flags {
		if fl.Enabled {
			tokens[i] = fl.Name
		} else {
			tokens[i] = "no-" + fl.Name
		}
	}
	return strings.Join(tokens, ",")
}

// entrySink re-enters the dispatcher on behalf of a Formattable value, so
// composite sub-entries follow the same rules as top-level fields.
type entrySink struct {
	w io.Writer
}

func (s entrySink) WriteEntry(name string, v Value) error {
	return writeEntry(s.w, name, v)
}
