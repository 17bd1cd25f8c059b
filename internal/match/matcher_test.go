package match

import (
	"testing"

	"github.com/renamify/renamify/internal/acronym"
	"github.com/renamify/renamify/internal/ident"
	"github.com/renamify/renamify/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMatcher(t *testing.T, search, replace string, styles []ident.Style) *Matcher {
	t.Helper()
	set := acronym.Default()
	vm := variant.Generate(search, replace, styles, set, variant.Options{})
	return New(vm)
}

func TestFindAllBasic(t *testing.T) {
	m := buildMatcher(t, "user_name", "customer_name", []ident.Style{ident.Snake, ident.Camel, ident.Pascal, ident.ScreamingSnake})
	buf := []byte(`let user_name = User::default();
fn getUserName() -> UserName {}
const USER_NAME: &str = "x";`)

	matches := m.FindAll(buf)
	require.GreaterOrEqual(t, len(matches), 3)
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i-1].End, matches[i].Start, "matches must not overlap")
	}
}

func TestBoundaryRejectsPartialWord(t *testing.T) {
	m := buildMatcher(t, "user", "customer", []ident.Style{ident.Snake})
	buf := []byte("superuser")
	matches := m.FindAll(buf)
	assert.Empty(t, matches, "user inside superuser must not match: not at a word boundary")
}

func TestBoundaryAllowsCamelHumpEnd(t *testing.T) {
	m := buildMatcher(t, "DeployRequest", "SendRequest", []ident.Style{ident.Pascal})
	buf := []byte("DeployRequestList")
	matches := m.FindAll(buf)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Start)
	assert.Equal(t, len("DeployRequest"), matches[0].End)
}
