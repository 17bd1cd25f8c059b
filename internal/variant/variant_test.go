package variant

import (
	"testing"

	"github.com/renamify/renamify/internal/acronym"
	"github.com/renamify/renamify/internal/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBasic(t *testing.T) {
	set := acronym.Default()
	styles := []ident.Style{ident.Snake, ident.Camel, ident.Pascal, ident.ScreamingSnake, ident.Kebab}
	m := Generate("user_name", "customer_name", styles, set, Options{})

	want := map[string]string{
		"user_name":     "customer_name",
		"userName":      "customerName",
		"UserName":      "CustomerName",
		"USER_NAME":     "CUSTOMER_NAME",
		"user-name":     "customer-name",
	}
	for k, v := range want {
		e, ok := m.Lookup(k)
		require.True(t, ok, "missing variant %q", k)
		assert.Equal(t, v, e.Replacement)
	}
}

func TestGenerateDeterministicOrder(t *testing.T) {
	set := acronym.Default()
	styles := ident.AllStyles
	m1 := Generate("foo_bar", "baz_qux", styles, set, Options{})
	m2 := Generate("foo_bar", "baz_qux", styles, set, Options{})
	assert.Equal(t, m1.Keys(), m2.Keys())

	for i := 1; i < len(m1.Entries); i++ {
		prev, cur := m1.Entries[i-1], m1.Entries[i]
		if len(prev.Key) == len(cur.Key) {
			assert.LessOrEqual(t, prev.Key, cur.Key)
		} else {
			assert.Greater(t, len(prev.Key), len(cur.Key))
		}
	}
}

func TestGenerateAtomic(t *testing.T) {
	set := acronym.Default()
	styles := []ident.Style{ident.Snake, ident.Camel}
	m := Generate("FooBar", "Baz", styles, set, Options{AtomicSearch: true, AtomicReplace: true})
	e, ok := m.Lookup("foobar")
	require.True(t, ok)
	assert.Equal(t, "baz", e.Replacement)
}
