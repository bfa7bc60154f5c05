// Copyright © 2026 The rexpr authors

package repl

import (
	"testing"

	"github.com/luthersystems/rexpr/eval"
	"github.com/stretchr/testify/assert"
)

func TestSymbolCompleter(t *testing.T) {
	env := eval.NewGlobalEnv()
	env.Put("my_var", eval.Doubles(1))
	env.Put("my.other", eval.Doubles(2))
	c := &symbolCompleter{env: env}

	candidates, offset := c.Do([]rune("x <- pas"), 8)
	assert.Equal(t, 3, offset)
	assert.Equal(t, [][]rune{[]rune("te"), []rune("te0")}, candidates)

	candidates, offset = c.Do([]rune("f(my"), 4)
	assert.Equal(t, 2, offset)
	assert.Equal(t, [][]rune{[]rune(".other"), []rune("_var")}, candidates)

	candidates, offset = c.Do([]rune("as.na"), 5)
	assert.Equal(t, 5, offset)
	assert.Equal(t, [][]rune{[]rune("me")}, candidates)

	candidates, _ = c.Do([]rune("zzz_nonexistent"), 15)
	assert.Empty(t, candidates)

	candidates, offset = c.Do([]rune("f("), 2)
	assert.Empty(t, candidates)
	assert.Equal(t, 0, offset)
}
