package confmt

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFile overlays rec with values decoded from the file at path.
// ".yaml" and ".yml" files are decoded with yaml.v3, ".toml" with
// BurntSushi/toml; any other extension fails with [ErrUnsupportedFile].
// Decoded keys must name visible fields and carry kind-compatible values;
// see [Apply] for the coercion rules. The canonical line format this
// package writes is never read back.
func LoadFile(rec *Record, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	raw := map[string]any{}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
	return Apply(rec, raw)
}

// Apply overlays rec with raw decoded values keyed by field name, coercing
// each to its field's declared kind:
//
//   - bool, int, float, enum, string: the matching Go scalar (ints widen to
//     floats, never the reverse)
//   - optional: nil clears the field to absent; any other value becomes a
//     present optional of the inner kind. An optional that is currently
//     absent adopts the raw value's natural kind, which renders identically
//   - flag record: a mapping of declared flag names to booleans; flags not
//     mentioned keep their current state
//
// Keys that name no visible field fail with [ErrUnknownField]; values a
// kind cannot absorb fail with [ErrInvalidValue]. Composite and variant
// fields cannot be overlaid, and hidden fields are unreachable here (use
// [Record.Set]). A failed Apply leaves the record unchanged: every value
// is coerced and every key checked before any field is written.
func Apply(rec *Record, values map[string]any) error {
	if rec == nil || len(values) == 0 {
		return nil
	}
	consumed := make(map[string]bool, len(values))
	var pending []staged
	for i := range rec.fields {
		f := rec.fields[i]
		if !f.visible() {
			continue
		}
		raw, ok := values[f.Name]
		if !ok {
			continue
		}
		consumed[f.Name] = true
		v, err := coerce(f.Value, raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		pending = append(pending, staged{i, v})
	}
	var unknown []string
	for k := range values {
		if !consumed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(unknown, ", "))
	}
	for _, s := range pending {
		rec.fields[s.idx].Value = s.val
	}
	return nil
}

// staged is one coerced-but-uncommitted field update. The overlays collect
// these and write them back only once the whole overlay has validated.
type staged struct {
	idx int
	val Value
}

// coerce converts a raw decoded value to cur's kind. Cases that cannot
// absorb raw fall through to the trailing kind-mismatch error.
func coerce(cur Value, raw any) (Value, error) {
	switch cur.kind {
	case KindBool:
		if b, ok := raw.(bool); ok {
			return Bool(b), nil
		}
	case KindInt:
		if n, ok := toInt64(raw); ok {
			return Int(n), nil
		}
	case KindFloat:
		if f, ok := toFloat64(raw); ok {
			return Float(f), nil
		}
	case KindEnum:
		if s, ok := raw.(string); ok {
			return Enum(s), nil
		}
	case KindString:
		if s, ok := raw.(string); ok {
			return String(s), nil
		}
	case KindNone:
		if raw == nil {
			return None(), nil
		}
	case KindOptional:
		if raw == nil {
			return Absent(), nil
		}
		if cur.inner != nil {
			iv, err := coerce(*cur.inner, raw)
			if err != nil {
				return Value{}, err
			}
			return Some(iv), nil
		}
		iv, err := scalarValue(raw)
		if err != nil {
			return Value{}, err
		}
		return Some(iv), nil
	case KindFlags:
		m, ok := raw.(map[string]any)
		if !ok {
			return Value{}, fmt.Errorf("%w: want a mapping of flag names to booleans, have %T", ErrInvalidValue, raw)
		}
		return coerceFlags(cur.flags, m)
	case KindComposite, KindVariant:
		return Value{}, fmt.Errorf("%w: %s fields cannot be overlaid", ErrInvalidValue, cur.kind)
	}
	return Value{}, fmt.Errorf("%w: want %s, have %T", ErrInvalidValue, cur.kind, raw)
}

func coerceFlags(declared []Flag, m map[string]any) (Value, error) {
	flags := make([]Flag, len(declared))
	copy(flags, declared)
	byName := make(map[string]int, len(flags))
	for i, fl := range flags {
		byName[fl.Name] = i
	}
	// Sorted for deterministic first-error reporting.
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		i, ok := byName[name]
		if !ok {
			return Value{}, fmt.Errorf("%w: flag %q", ErrUnknownField, name)
		}
		b, ok := m[name].(bool)
		if !ok {
			return Value{}, fmt.Errorf("%w: flag %q wants a boolean, have %T", ErrInvalidValue, name, m[name])
		}
		flags[i].Enabled = b
	}
	return FlagSet(flags...), nil
}

// scalarValue maps a raw decoded scalar to its natural Value kind.
func scalarValue(raw any) (Value, error) {
	switch x := raw.(type) {
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	}
	if n, ok := toInt64(raw); ok {
		return Int(n), nil
	}
	if f, ok := toFloat64(raw); ok {
		return Float(f), nil
	}
	return Value{}, fmt.Errorf("%w: no scalar kind for %T", ErrInvalidValue, raw)
}

// toInt64 accepts the integer representations the YAML and TOML decoders
// produce for untyped destinations.
func toInt64(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n), true
		}
	}
	return 0, false
}

func toFloat64(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
