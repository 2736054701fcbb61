package query

import (
	"slices"

	"github.com/dmitrijs2005/teamfinder/internal/client/models"
)

// State is the filter and pagination state of one list view. Every filter
// change resets the page to 1.
type State struct {
	filter   models.PostFilter
	metadata models.Metadata
}

// NewState starts at page 1 with the given page size (0 for the backend
// default).
func NewState(pageSize int) *State {
	return &State{filter: models.PostFilter{Page: 1, PageSize: pageSize}}
}

// Filter returns a copy of the current filter.
func (s *State) Filter() models.PostFilter {
	f := s.filter
	f.Skills = slices.Clone(f.Skills)
	return f
}

func (s *State) SetType(t models.PostType) {
	s.filter.Type = t
	s.filter.Page = 1
}

// ToggleSkill adds skill to the filter, or removes it if already present.
// skill is normalized first; a blank skill is ignored.
func (s *State) ToggleSkill(skill string) {
	one := NormalizeSkills([]string{skill})
	if len(one) == 0 {
		return
	}
	skill = one[0]

	skills := NormalizeSkills(s.filter.Skills)
	if i := slices.Index(skills, skill); i >= 0 {
		skills = slices.Delete(skills, i, i+1)
	} else {
		skills = NormalizeSkills(append(skills, skill))
	}
	s.filter.Skills = skills
	s.filter.Page = 1
}

func (s *State) SetSkills(skills []string) {
	s.filter.Skills = NormalizeSkills(skills)
	s.filter.Page = 1
}

func (s *State) SetSort(sort string) {
	s.filter.Sort = sort
	s.filter.Page = 1
}

// SetPage moves to page p, clamped to [1, last known page].
func (s *State) SetPage(p int) {
	if last := s.metadata.TotalPages(); last > 0 && p > last {
		p = last
	}
	if p < 1 {
		p = 1
	}
	s.filter.Page = p
}

func (s *State) Next() { s.SetPage(s.filter.Page + 1) }
func (s *State) Prev() { s.SetPage(s.filter.Page - 1) }

// SetMetadata records the pagination metadata of the latest response.
func (s *State) SetMetadata(m models.Metadata) {
	s.metadata = m
}

func (s *State) Metadata() models.Metadata {
	return s.metadata
}
