// Copyright © 2026 The rexpr authors

package repl_test

import (
	"testing"

	"github.com/luthersystems/rexpr/repl"
	"github.com/luthersystems/rexpr/rexprtest"
)

func TestExpandExamples(t *testing.T) {
	runner := &rexprtest.Runner{Mode: repl.ModeExpand}
	runner.RunTestFile(t, "testdata/expand.R")
}

func TestEvalExamples(t *testing.T) {
	runner := &rexprtest.Runner{Mode: repl.ModeEval}
	runner.RunTestFile(t, "testdata/eval.R")
}

func BenchmarkParseExamples(b *testing.B) {
	b.Run("expand", rexprtest.BenchmarkParse("testdata/expand.R"))
	b.Run("eval", rexprtest.BenchmarkParse("testdata/eval.R"))
}
