// Command app prints its effective configuration in the canonical
// "name = value" line format after layering defaults, an optional TOML
// file, DEMO_-prefixed environment variables, and command-line flags:
//
//	go run . --config configs/app.toml --workers=2 --features.pprof=true
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/cfgtools/confmt"
	"github.com/cfgtools/confmt/example/app/internal/config"
)

func main() {
	path, args := splitConfigFlag(os.Args[1:])
	rec, err := config.Load(config.Options{File: path, Args: args})
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("load config: %v", err)
	}
	if err := confmt.Write(os.Stdout, rec); err != nil {
		log.Fatalf("write config: %v", err)
	}
}

// splitConfigFlag extracts --config from argv before the field flags are
// parsed, so the file overlay runs first and arguments still win.
func splitConfigFlag(argv []string) (string, []string) {
	var path string
	rest := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		switch a := argv[i]; {
		case a == "--config" || a == "-config":
			if i+1 < len(argv) {
				i++
				path = argv[i]
			}
		case strings.HasPrefix(a, "--config="):
			path = strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-config="):
			path = strings.TrimPrefix(a, "-config=")
		default:
			rest = append(rest, a)
		}
	}
	return path, rest
}
