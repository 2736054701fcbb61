// Package query builds the post-list query string shared by every list
// view, so that all of them filter, sort and paginate the same way.
package query

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/teamfinder/internal/client/models"
)

// SortFields are the sort keys the backend accepts. A leading "-" sorts
// descending.
var SortFields = []string{"name", "created_at", "-name", "-created_at"}

// ValidSort reports whether s is an accepted sort key.
func ValidSort(s string) bool {
	return slices.Contains(SortFields, s)
}

// NormalizeSkills trims, lowercases, deduplicates and sorts skills.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Build returns the canonical query for f. Empty and default values are
// omitted: the author when unset, the type when any, skills when none, an invalid or empty sort,
// page 1 and a non-positive page size. Equal filters always produce equal
// queries regardless of skill order or duplicates.
func Build(f models.PostFilter) url.Values {
	q := url.Values{}
	if f.AuthorID > 0 {
		q.Set("author", strconv.FormatInt(f.AuthorID, 10))
	}
	if f.Type != models.PostTypeAny {
		q.Set("type", string(f.Type))
	}
	if skills := NormalizeSkills(f.Skills); len(skills) > 0 {
		q.Set("skills", strings.Join(skills, ","))
	}
	if ValidSort(f.Sort) {
		q.Set("sort", f.Sort)
	}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	return q
}

// Encode is Build rendered as a query string; keys are sorted.
func Encode(f models.PostFilter) string {
	return Build(f).Encode()
}
