package models

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// PostType tells whether a post looks for a team or for team members.
type PostType string

const (
	// PostTypeAny is the empty filter value.
	PostTypeAny         PostType = ""
	PostTypeTeamFinding PostType = "teamFinding"
	PostTypeUserFinding PostType = "userFinding"
)

var ErrUnknownPostType = errors.New("unknown post type")

// PostTypes lists the selectable post types.
var PostTypes = []PostType{PostTypeTeamFinding, PostTypeUserFinding}

// ParsePostType accepts a post type in any letter case. "any" and "" map to
// PostTypeAny.
func ParsePostType(s string) (PostType, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "any") {
		return PostTypeAny, nil
	}
	for _, t := range PostTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", ErrUnknownPostType
}

func (t PostType) Label() string {
	switch t {
	case PostTypeTeamFinding:
		return "Looking for a team"
	case PostTypeUserFinding:
		return "Looking for teammates"
	default:
		return "Any"
	}
}

// Skills is the fixed set of selectable skill tags.
var Skills = []string{"javascript", "golang", "python"}

// IsSkill reports whether s is one of Skills.
func IsSkill(s string) bool {
	return slices.Contains(Skills, s)
}

// Post is a listing advertising a team-finding or user-finding opportunity.
type Post struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AuthorID    int64     `json:"authorId"`
	Type        PostType  `json:"type"`
	Skills      []string  `json:"skills"`
}

// PostInput is the create/update form of a post.
type PostInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        PostType `json:"type"`
	Skills      []string `json:"skills"`
}

// PostFilter is the state of a post list view.
type PostFilter struct {
	// AuthorID restricts the list to one author when positive.
	AuthorID int64
	Type     PostType
	Skills   []string
	Sort     string
	Page     int
	PageSize int
}

// PostPage is one page of a post list.
type PostPage struct {
	Posts    []Post   `json:"posts"`
	Metadata Metadata `json:"metadata"`
}
