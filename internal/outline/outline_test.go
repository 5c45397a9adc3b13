package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `package com.example.util;

import java.util.List;
import java.util.Map;

public class Registry<T> {
    private final Map<String, T> items;

    public Registry(Map<String, T> items) {
        this.items = items;
    }

    public T lookup(String key) {
        return items.get(key);
    }

    static class Entry {
        int size() { return 0; }
    }

    enum Mode {
        FAST, SAFE;

        boolean strict() {
            return this == SAFE;
        }
    }
}

interface Named {
    String name();
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	out, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "com.example.util", out.Package)
	assert.Equal(t, 2, out.ImportsCount)
	assert.False(t, out.HasErrors)

	assert.Equal(t, []Type{
		{Name: "Registry", Kind: "class", StartLine: 6, EndLine: 28},
		{Name: "Registry.Entry", Kind: "class", StartLine: 17, EndLine: 19},
		{Name: "Registry.Mode", Kind: "enum", StartLine: 21, EndLine: 27},
		{Name: "Named", Kind: "interface", StartLine: 30, EndLine: 32},
	}, out.Types)

	assert.Equal(t, []Method{
		{Name: "Registry", Owner: "Registry", Kind: "constructor", StartLine: 9, EndLine: 11,
			Signature: "public Registry(Map<String, T> items)"},
		{Name: "lookup", Owner: "Registry", Kind: "method", StartLine: 13, EndLine: 15,
			Signature: "public T lookup(String key)"},
		{Name: "size", Owner: "Registry.Entry", Kind: "method", StartLine: 18, EndLine: 18,
			Signature: "int size()"},
		{Name: "strict", Owner: "Registry.Mode", Kind: "method", StartLine: 24, EndLine: 26,
			Signature: "boolean strict()"},
		{Name: "name", Owner: "Named", Kind: "method", StartLine: 31, EndLine: 31,
			Signature: "String name()"},
	}, out.Methods)
}

func TestParse_MultiLineSignature(t *testing.T) {
	t.Parallel()

	src := `class A {
    public void configure(
            String name,
            int size) throws Exception {
    }
}
`
	out, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, out.Methods, 1)
	assert.Equal(t, "public void configure( String name, int size) throws Exception", out.Methods[0].Signature)
	assert.Equal(t, 2, out.Methods[0].StartLine)
	assert.Equal(t, 5, out.Methods[0].EndLine)
}

func TestParse_Record(t *testing.T) {
	t.Parallel()

	out, err := Parse([]byte("record Point(int x, int y) {}\n"))
	require.NoError(t, err)
	require.Len(t, out.Types, 1)
	assert.Equal(t, "record", out.Types[0].Kind)
	assert.Equal(t, "Point", out.Types[0].Name)
	assert.Empty(t, out.Package)
}

func TestParse_SyntaxErrors(t *testing.T) {
	t.Parallel()

	out, err := Parse([]byte("public class Broken {\n  void f( {\n}\n"))
	require.NoError(t, err)
	assert.True(t, out.HasErrors)
	assert.NotNil(t, out.Types)
	assert.NotNil(t, out.Methods)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	out, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, out.Types)
	assert.Empty(t, out.Methods)
	assert.Equal(t, 0, out.ImportsCount)
}
