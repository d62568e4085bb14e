package main

import (
	"os"
	"strings"

	"taskdeck/internal/cli"
	"taskdeck/internal/store"
)

// showCommand maps a bare item ID to the command that shows it.
func showCommand(s string) []string {
	switch store.IDKind(s) {
	case "deadline":
		return []string{"deadlines", "show"}
	case "routine":
		return []string{"routines", "show"}
	}
	return nil
}

func insertAt(argv []string, i int, cmd []string) []string {
	out := make([]string, 0, len(argv)+len(cmd))
	out = append(out, argv[:i]...)
	out = append(out, cmd...)
	return append(out, argv[i:]...)
}

// rewriteDirectLookupArgs makes `taskdeck <id>` work like `taskdeck deadlines show <id>`
// (or `routines show`). Cobra treats the first non-flag token as a subcommand, so
// argv is rewritten before parsing. Persistent flags may come first, so we look for
// the first positional token, not just argv[1].
func rewriteDirectLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so we never swallow the ID.
	valueFlags := map[string]bool{
		"--dir":     true,
		"--format":  true,
		"--backend": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				if cmd := showCommand(argv[i+1]); cmd != nil {
					return insertAt(argv, i+1, cmd)
				}
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if cmd := showCommand(a); cmd != nil {
			return insertAt(argv, i, cmd)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
