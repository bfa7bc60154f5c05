// Copyright © 2026 The rexpr authors

package rexprtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCases(t *testing.T) {
	src := "# header\na <- 1\nf(.(a))\n#> f(1)\n{ b }\n#> {\n#>   b\n#> }\n"
	cases, err := LoadCases("x.R", []byte(src))
	require.NoError(t, err)
	require.Len(t, cases, 3)
	assert.Equal(t, 2, cases[0].Line)
	assert.Nil(t, cases[0].Expected)
	assert.Equal(t, []string{"f(1)"}, cases[1].Expected)
	assert.Equal(t, []string{"{", "  b", "}"}, cases[2].Expected)
}

func TestLoadCases_OutputBeforeExpression(t *testing.T) {
	_, err := LoadCases("x.R", []byte("#> 1\n1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x.R:1")
}

func TestLoadCases_ParseError(t *testing.T) {
	_, err := LoadCases("x.R", []byte("f("))
	require.Error(t, err)
}

type recorder struct {
	testing.TB
	lines []string
}

func (r *recorder) Log(args ...interface{}) {
	r.lines = append(r.lines, args[0].(string))
}

func TestLogger(t *testing.T) {
	rec := &recorder{TB: t}
	log := NewLogger(rec)
	n, err := log.Write([]byte("one\ntwo\nthr"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, []string{"one", "two"}, rec.lines)
	_, _ = log.Write([]byte("ee\n"))
	log.Write([]byte("tail")) //nolint:errcheck // test
	log.Flush()
	assert.Equal(t, []string{"one", "two", "three", "tail"}, rec.lines)
}
