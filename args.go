package confmt

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// BindFlags registers one command-line flag per visible field of rec on fs,
// named after the field, with the field's Usage as help text. Flag records
// bind one boolean flag per member, named "field.flag". Parsing fs then
// overlays rec argument by argument: each supplied argument must parse to
// its field's kind ([ErrInvalidValue] otherwise, surfaced through fs.Parse),
// and arguments before a failing one stay applied. Bound flags resolve
// their field when they parse, so rec may grow between BindFlags and
// fs.Parse. Composite and variant fields are not bound.
func BindFlags(rec *Record, fs *flag.FlagSet) {
	if rec == nil {
		return
	}
	for i := range rec.fields {
		f := rec.fields[i]
		if !f.visible() {
			continue
		}
		switch f.Value.kind {
		case KindNone, KindComposite, KindVariant:
			continue
		case KindFlags:
			bindFlagRecord(rec, i, fs)
		default:
			fs.Func(f.Name, f.Usage, func(raw string) error {
				// The fields slice may have reallocated since binding.
				cur := &rec.fields[i]
				v, err := parseScalar(cur.Value, raw)
				if err != nil {
					return err
				}
				cur.Value = v
				return nil
			})
		}
	}
}

func bindFlagRecord(rec *Record, i int, fs *flag.FlagSet) {
	field := rec.fields[i]
	for _, fl := range field.Value.flags {
		member := fl.Name
		usage := field.Usage
		if usage != "" {
			usage = fmt.Sprintf("%s (%s)", usage, member)
		}
		fs.Func(field.Name+"."+member, usage, func(raw string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, raw)
			}
			return setFlagMember(&rec.fields[i], member, b)
		})
	}
}

// setFlagMember replaces f's value with a copy of its flag set whose named
// member is toggled to enabled.
func setFlagMember(f *Field, member string, enabled bool) error {
	flags := make([]Flag, len(f.Value.flags))
	copy(flags, f.Value.flags)
	for j := range flags {
		if flags[j].Name == member {
			flags[j].Enabled = enabled
			f.Value = FlagSet(flags...)
			return nil
		}
	}
	return fmt.Errorf("%w: flag %q", ErrUnknownField, member)
}

// LoadArgs overlays rec from command-line style arguments
// (--name=value, --flags.member=false, ...). It is a convenience wrapper
// around [BindFlags] with a silent ContinueOnError FlagSet; callers needing
// their own usage output should call BindFlags on their own FlagSet.
func LoadArgs(rec *Record, args []string) error {
	fs := flag.NewFlagSet("confmt", flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	BindFlags(rec, fs)
	return fs.Parse(args)
}
