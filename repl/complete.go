// Copyright © 2026 The rexpr authors

package repl

import (
	"sort"
	"strings"
	"unicode"

	"github.com/luthersystems/rexpr/eval"
)

// symbolCompleter implements readline.AutoCompleter by enumerating the
// names visible in a session environment.
type symbolCompleter struct {
	env *eval.Env
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isNameRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		result = append(result, []rune(sym[len(prefix):]))
	}
	return result, len([]rune(prefix))
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	seen := make(map[string]bool)
	var result []string
	for env := c.env; env != nil; env = env.Parent() {
		for _, name := range env.Names() {
			if strings.HasPrefix(name, prefix) && name != prefix && !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}
	sort.Strings(result)
	return result
}

func isNameRune(r rune) bool {
	return r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
