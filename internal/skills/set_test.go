package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedup_CaseInsensitiveFirstSeenCasing(t *testing.T) {
	got := Dedup([]string{"Python", "python", "PYTHON"})
	assert.Equal(t, []string{"Python"}, got)
}

func TestDedup_DropsBlanksAndTrims(t *testing.T) {
	got := Dedup([]string{"  Go ", "", "   ", "go", "Docker"})
	assert.Equal(t, []string{"Go", "Docker"}, got)
}

func TestSet_AddContainsRemove(t *testing.T) {
	s := NewSet("AWS", "Kubernetes")

	assert.True(t, s.Contains("aws"))
	assert.True(t, s.Contains(" KUBERNETES "))
	assert.False(t, s.Contains("gcp"))

	assert.False(t, s.Add("aws"), "duplicate ignoring case must not be added")
	assert.True(t, s.Add("GCP"))
	assert.Equal(t, 3, s.Len())

	assert.True(t, s.Remove("kubernetes"))
	assert.False(t, s.Remove("kubernetes"))
	assert.Equal(t, []string{"AWS", "GCP"}, s.Labels())

	// Index must stay consistent after removal shifts positions.
	assert.True(t, s.Remove("gcp"))
	assert.Equal(t, []string{"AWS"}, s.Labels())
}

func TestSet_ZeroValue(t *testing.T) {
	var s Set
	assert.False(t, s.Contains("go"))
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Add("go"))
	assert.True(t, s.Contains("Go"))

	var nilSet *Set
	assert.False(t, nilSet.Contains("go"))
	assert.Empty(t, nilSet.Labels())
}

func TestSet_Sorted(t *testing.T) {
	s := NewSet("docker", "AWS", "Python", "aws", "c++")
	assert.Equal(t, []string{"AWS", "c++", "docker", "Python"}, s.Sorted())
	// Sorted must not reorder the underlying set.
	assert.Equal(t, []string{"docker", "AWS", "Python", "c++"}, s.Labels())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "node.js", Key("  Node.JS "))
}
