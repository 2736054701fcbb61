package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_TotalPages(t *testing.T) {
	tests := []struct {
		name string
		m    Metadata
		want int
	}{
		{"empty", Metadata{}, 0},
		{"exact", Metadata{PageSize: 10, TotalRecords: 30}, 3},
		{"remainder", Metadata{PageSize: 10, TotalRecords: 31}, 4},
		{"single", Metadata{PageSize: 10, TotalRecords: 1}, 1},
		{"zero size", Metadata{PageSize: 0, TotalRecords: 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.TotalPages())
		})
	}
}

func TestMetadata_PrevNext(t *testing.T) {
	m := Metadata{CurrentPage: 1, PageSize: 10, TotalRecords: 15}
	assert.False(t, m.HasPrev())
	assert.True(t, m.HasNext())

	m.CurrentPage = 2
	assert.True(t, m.HasPrev())
	assert.False(t, m.HasNext())
}

func TestParsePostType(t *testing.T) {
	for in, want := range map[string]PostType{
		"":            PostTypeAny,
		"any":         PostTypeAny,
		"teamFinding": PostTypeTeamFinding,
		"teamfinding": PostTypeTeamFinding,
		"USERFINDING": PostTypeUserFinding,
	} {
		got, err := ParsePostType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePostType("freelance")
	assert.ErrorIs(t, err, ErrUnknownPostType)
}

func TestPostPage_DecodeBackendResponse(t *testing.T) {
	raw := `{
	  "posts": [{"id": 7, "createdAt": "2024-05-01T10:00:00Z", "name": "Go team",
	             "description": "need backend", "authorId": 3, "type": "teamFinding",
	             "skills": ["golang"], "author": {"id": 3}}],
	  "metadata": {"current_page": 1, "page_size": 10, "first_page": 1, "last_page": 1, "total_records": 1}
	}`

	var page PostPage
	require.NoError(t, json.Unmarshal([]byte(raw), &page))
	require.Len(t, page.Posts, 1)
	assert.Equal(t, int64(3), page.Posts[0].AuthorID)
	assert.Equal(t, PostTypeTeamFinding, page.Posts[0].Type)
	assert.Equal(t, 1, page.Metadata.TotalPages())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Ann Lee", User{Name: "Ann", Surname: "Lee", Username: "al"}.DisplayName())
	assert.Equal(t, "Ann", User{Name: "Ann", Username: "al"}.DisplayName())
	assert.Equal(t, "al", User{Username: "al"}.DisplayName())
}
