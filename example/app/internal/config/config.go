// Package config declares the demo application's schema and loads it from
// layered sources: built-in defaults, an optional TOML file, DEMO_-prefixed
// environment variables, and command-line flags. Later sources win.
package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/cfgtools/confmt"
	ktoml "github.com/knadh/koanf/parsers/toml/v2"
	kenv "github.com/knadh/koanf/providers/env"
	kfile "github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces environment overrides: DEMO_WORKERS=8,
// DEMO_FEATURES__TRACING=true ("__" separates a flag record from its
// member).
const EnvPrefix = "DEMO"

// TLS is the certificate block, rendered as tls.cert and tls.key.
type TLS struct {
	Cert string
	Key  string
}

func (t TLS) FormatEntries(name string, sink confmt.EntrySink) error {
	if err := sink.WriteEntry(name+".cert", confmt.String(t.Cert)); err != nil {
		return err
	}
	return sink.WriteEntry(name+".key", confmt.String(t.Key))
}

// Schema returns the demo configuration record with its defaults.
func Schema() *confmt.Record {
	return confmt.NewRecord(
		confmt.Field{Name: "name", Value: confmt.String("confmt-demo"), Usage: "service name"},
		confmt.Field{Name: "debug", Value: confmt.Bool(false), Usage: "enable debug mode"},
		confmt.Field{Name: "workers", Value: confmt.Int(4), Usage: "worker goroutines"},
		confmt.Field{Name: "rate", Value: confmt.Float(0.5), Usage: "sampling rate"},
		confmt.Field{Name: "level", Value: confmt.Enum("info"), Usage: "log level"},
		confmt.Field{Name: "timeout", Value: confmt.Absent(), Usage: "request timeout in seconds"},
		confmt.Field{Name: "features", Value: confmt.FlagSet(
			confmt.Flag{Name: "metrics", Enabled: true},
			confmt.Flag{Name: "tracing"},
			confmt.Flag{Name: "pprof"},
		), Usage: "feature toggles"},
		confmt.Field{Name: "tls", Value: confmt.Composite(TLS{
			Cert: "/etc/demo/cert.pem",
			Key:  "/etc/demo/key.pem",
		})},
		confmt.Field{Name: "token", Value: confmt.String(""), Usage: "upstream API token", Hidden: true},
	)
}

// Options configures Load.
type Options struct {
	File string   // optional TOML config path
	Args []string // command-line arguments, program name excluded
}

// Load builds the schema record and overlays it in precedence order.
// Flag parsing uses a ContinueOnError FlagSet, so --help in Args surfaces
// as flag.ErrHelp after the flag defaults are printed.
func Load(opts Options) (*confmt.Record, error) {
	rec := Schema()

	k := koanf.New(".")
	if opts.File != "" {
		if err := k.Load(kfile.Provider(opts.File), ktoml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", opts.File, err)
		}
	}
	if err := k.Load(envProvider(rec), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	if err := confmt.Apply(rec, k.Raw()); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("app", flag.ContinueOnError)
	confmt.BindFlags(rec, fs)
	if err := fs.Parse(opts.Args); err != nil {
		return nil, err
	}
	return rec, nil
}

// envProvider maps DEMO_SOME__KEY to "some.key" and converts each value to
// the type its field's kind coerces from, so environment text and TOML
// values flow through the same Apply rules.
func envProvider(rec *confmt.Record) *kenv.Env {
	prefix := EnvPrefix + "_"
	return kenv.ProviderWithValue(prefix, ".", func(key, value string) (string, any) {
		name := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, prefix)), "__", ".")
		return name, envLiteral(rec, name, value)
	})
}

func envLiteral(rec *confmt.Record, name, value string) any {
	base := name
	if i := strings.IndexByte(name, '.'); i >= 0 {
		base = name[:i]
	}
	v, ok := rec.Lookup(base)
	if !ok {
		return value // unknown names surface through Apply
	}
	trimmed := strings.TrimSpace(value)
	switch v.Kind() {
	case confmt.KindBool, confmt.KindFlags:
		if b, err := strconv.ParseBool(trimmed); err == nil {
			return b
		}
	case confmt.KindInt:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
	case confmt.KindFloat:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	case confmt.KindOptional:
		if value == "" {
			return nil
		}
		return inferLiteral(value)
	}
	return value
}

// inferLiteral picks the natural type for text overlaying an absent
// optional: integer, then float, then boolean, then raw text.
func inferLiteral(value string) any {
	trimmed := strings.TrimSpace(value)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(trimmed); err == nil {
		return b
	}
	return value
}
