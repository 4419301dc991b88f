package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind SkillListKind
		want     []string
	}{
		{
			name:     "string array",
			input:    `["Go", "Docker", "go"]`,
			wantKind: SkillListStrings,
			want:     []string{"Go", "Docker"},
		},
		{
			name:     "record array",
			input:    `[{"name": "Python", "confirmed": false}, {"name": "SQL"}]`,
			wantKind: SkillListRecords,
			want:     []string{"Python", "SQL"},
		},
		{
			name:     "mixed strings and records",
			input:    `["AWS", {"name": "aws"}, {"name": "Kubernetes"}]`,
			wantKind: SkillListRecords,
			want:     []string{"AWS", "Kubernetes"},
		},
		{
			name:     "encoded string array",
			input:    `"[\"React\", \"TypeScript\"]"`,
			wantKind: SkillListEncoded,
			want:     []string{"React", "TypeScript"},
		},
		{
			name:     "encoded record array",
			input:    `"[{\"name\": \"Rust\"}]"`,
			wantKind: SkillListEncoded,
			want:     []string{"Rust"},
		},
		{
			name:     "encoded garbage",
			input:    `"not json at all"`,
			wantKind: SkillListEncoded,
			want:     []string{},
		},
		{
			name:     "doubly encoded is not unwrapped twice",
			input:    `"\"[\\\"Go\\\"]\""`,
			wantKind: SkillListEncoded,
			want:     []string{},
		},
		{
			name:     "null",
			input:    `null`,
			wantKind: SkillListEmpty,
			want:     []string{},
		},
		{
			name:     "number",
			input:    `42`,
			wantKind: SkillListEmpty,
			want:     []string{},
		},
		{
			name:     "object",
			input:    `{"name": "Go"}`,
			wantKind: SkillListEmpty,
			want:     []string{},
		},
		{
			name:     "blank entries dropped",
			input:    `["  ", "Java ", {"name": ""}, 7]`,
			wantKind: SkillListRecords,
			want:     []string{"Java"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SkillList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.want, got.Labels())
		})
	}
}

func TestSkillList_DoesNotFailSurroundingDecode(t *testing.T) {
	var job Job
	err := json.Unmarshal([]byte(`{"title": "Backend Engineer", "skills": "{broken", "match_score": 71.5}`), &job)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, 0, job.Skills.Len())
	assert.InDelta(t, 71.5, job.MatchScore, 0.0001)
}

func TestSkillList_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(SkillList{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	data, err = json.Marshal(NewSkillList("Go", "GO", "SQL"))
	require.NoError(t, err)
	assert.JSONEq(t, `["Go", "SQL"]`, string(data))
}

func TestSkillList_LabelsIsACopy(t *testing.T) {
	list := NewSkillList("Go", "SQL")
	labels := list.Labels()
	labels[0] = "mutated"
	assert.Equal(t, []string{"Go", "SQL"}, list.Labels())
}

func TestSkillList_Set(t *testing.T) {
	list := NewSkillList("Python", "Docker")
	set := list.Set()
	assert.True(t, set.Contains("python"))
	assert.True(t, set.Contains("DOCKER"))
	assert.False(t, set.Contains("Go"))
}

func TestSkillListKind_String(t *testing.T) {
	assert.Equal(t, "empty", SkillListEmpty.String())
	assert.Equal(t, "strings", SkillListStrings.String())
	assert.Equal(t, "encoded", SkillListEncoded.String())
	assert.Equal(t, "records", SkillListRecords.String())
}
