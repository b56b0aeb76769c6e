package confmt

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadEnv overlays rec with environment variables. Each visible scalar
// field reads PREFIX_NAME, where NAME is the field name in
// SCREAMING_SNAKE_CASE ("-" and "." become "_"); flag records read one
// variable per flag, PREFIX_NAME_FLAGNAME. Unset variables leave fields
// untouched; set variables must parse to the field's kind or LoadEnv fails
// with [ErrInvalidValue], leaving the record unchanged. An empty variable
// clears an optional field to absent. Composite and variant fields have no
// environment form.
func LoadEnv(rec *Record, prefix string) error {
	if rec == nil {
		return nil
	}
	var pending []staged
	for i := range rec.fields {
		f := rec.fields[i]
		if !f.visible() {
			continue
		}
		switch f.Value.kind {
		case KindNone, KindComposite, KindVariant:
			continue
		case KindFlags:
			v, changed, err := envFlags(f.Value.flags, prefix, f.Name)
			if err != nil {
				return err
			}
			if changed {
				pending = append(pending, staged{i, v})
			}
		default:
			name := envName(prefix, f.Name)
			raw, ok := os.LookupEnv(name)
			if !ok {
				continue
			}
			v, err := parseScalar(f.Value, raw)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			pending = append(pending, staged{i, v})
		}
	}
	for _, s := range pending {
		rec.fields[s.idx].Value = s.val
	}
	return nil
}

func envFlags(declared []Flag, prefix, field string) (Value, bool, error) {
	flags := make([]Flag, len(declared))
	copy(flags, declared)
	changed := false
	for i, fl := range flags {
		name := envName(prefix, field+"_"+fl.Name)
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, false, fmt.Errorf("%s: %w: %q is not a boolean", name, ErrInvalidValue, raw)
		}
		flags[i].Enabled = b
		changed = true
	}
	if !changed {
		return Value{}, false, nil
	}
	return FlagSet(flags...), true, nil
}

// parseScalar parses one textual value to cur's kind. Shared by the
// environment and command-line overlays.
func parseScalar(cur Value, raw string) (Value, error) {
	switch cur.kind {
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, raw)
		}
		return Bool(b), nil
	case KindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, raw)
		}
		return Int(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a float", ErrInvalidValue, raw)
		}
		return Float(f), nil
	case KindEnum:
		return Enum(strings.TrimSpace(raw)), nil
	case KindString:
		// Raw text: no trimming, no escaping.
		return String(raw), nil
	case KindOptional:
		if raw == "" {
			return Absent(), nil
		}
		if cur.inner != nil {
			iv, err := parseScalar(*cur.inner, raw)
			if err != nil {
				return Value{}, err
			}
			return Some(iv), nil
		}
		return Some(inferScalar(raw)), nil
	}
	return Value{}, fmt.Errorf("%w: %s fields have no textual form", ErrInvalidValue, cur.kind)
}

// inferScalar picks the natural kind for a textual value overlaying an
// absent optional: integer, then float, then boolean, then raw text.
// Numeric forms win over booleans, so "1" stays an integer.
func inferScalar(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(n)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Float(f)
	}
	if b, err := strconv.ParseBool(trimmed); err == nil {
		return Bool(b)
	}
	return String(raw)
}

func envName(prefix, name string) string {
	n := strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
	if prefix == "" {
		return n
	}
	return prefix + "_" + n
}
