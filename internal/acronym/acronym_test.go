package acronym

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultContains(t *testing.T) {
	set := Default()
	assert.True(t, set.Contains("api"))
	assert.True(t, set.Contains("API"))
	assert.False(t, set.Contains("NOTANACRONYM"))
}

func TestIncludeExcludeOnly(t *testing.T) {
	set := Default()

	withFoo := set.Include([]string{"FOO"})
	assert.True(t, withFoo.Contains("FOO"))
	assert.False(t, set.Contains("FOO"), "Include must not mutate the receiver")

	withoutAPI := set.Exclude([]string{"API"})
	assert.False(t, withoutAPI.Contains("API"))
	assert.True(t, set.Contains("API"), "Exclude must not mutate the receiver")

	onlyFoo := set.Only([]string{"FOO", "BAR"})
	assert.True(t, onlyFoo.Contains("FOO"))
	assert.False(t, onlyFoo.Contains("API"))
}

func TestDisable(t *testing.T) {
	set := Default().Disable()
	assert.False(t, set.Contains("API"))
	assert.Equal(t, 0, set.LongestMatch("APIThing"))
}

func TestLongestMatch(t *testing.T) {
	set := New([]string{"API", "ID"})
	assert.Equal(t, 3, set.LongestMatch("APIClient"))
	assert.Equal(t, 0, set.LongestMatch("Client"))
	assert.Equal(t, 2, set.LongestMatch("IDToken"))
}
