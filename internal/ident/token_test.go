package ident

import (
	"testing"

	"github.com/renamify/renamify/internal/acronym"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasic(t *testing.T) {
	set := acronym.Default()

	cases := []struct {
		in   string
		want []string
	}{
		{"user_name", []string{"user", "name"}},
		{"user-name", []string{"user", "name"}},
		{"userName", []string{"user", "name"}},
		{"UserName", []string{"user", "name"}},
		{"USER_NAME", []string{"user", "name"}},
		{"XMLParser", []string{"xml", "parser"}},
		{"b2b", []string{"b2b"}},
		{"getUserName", []string{"get", "user", "name"}},
	}
	for _, c := range cases {
		tm := Tokenize(c.in, set)
		got := tm.TokenTexts()
		assert.Equal(t, c.want, got, "tokenizing %q", c.in)
	}
}

func TestTokenizeAcronymFlag(t *testing.T) {
	set := acronym.Default()
	tm := Tokenize("XMLParser", set)
	require.Len(t, tm.Tokens, 2)
	assert.True(t, tm.Tokens[0].IsAcronym)
	assert.Equal(t, "XML", tm.Tokens[0].Text)
	assert.False(t, tm.Tokens[1].IsAcronym)
}

func TestTokenizeNoAcronymSet(t *testing.T) {
	tm := Tokenize("XMLParser", nil)
	// Without acronym knowledge, XML is still split as an upper-run tail,
	// but isn't flagged as an acronym token.
	require.Len(t, tm.Tokens, 2)
	assert.False(t, tm.Tokens[0].IsAcronym)
}
