// Copyright © 2026 The rexpr authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luthersystems/rexpr/analysis"
)

// expandArgs expands arguments, resolving patterns ending with "/..." and
// directories to all source files found recursively under them.  Other
// arguments pass through unchanged.  Paths matching any of excludes are
// dropped.
func expandArgs(args []string, excludes []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		dir, recursive := strings.CutSuffix(arg, "/...")
		if !recursive {
			info, err := os.Stat(arg)
			recursive = err == nil && info.IsDir()
			dir = arg
		}
		if !recursive {
			out = append(out, arg)
			continue
		}
		if dir == "" {
			dir = "."
		}
		files, err := findSourceFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", arg, err)
		}
		out = append(out, files...)
	}
	return filterExcludes(out, excludes), nil
}

func findSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if analysis.IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// filterExcludes drops the paths matching any of patterns.
func filterExcludes(paths []string, patterns []string) []string {
	if len(patterns) == 0 {
		return paths
	}
	var out []string
	for _, p := range paths {
		if !matchesAny(p, patterns) {
			out = append(out, p)
		}
	}
	return out
}

// matchesAny reports whether a pattern matches the full path, its base name
// or any of its directory components.
func matchesAny(path string, patterns []string) bool {
	components := splitPath(path)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		for _, c := range components {
			if ok, _ := filepath.Match(pattern, c); ok {
				return true
			}
		}
	}
	return false
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if p != "" && p != "." {
			parts = append(parts, p)
		}
	}
	return parts
}
