package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/teamfinder/internal/client/client"
	"github.com/dmitrijs2005/teamfinder/internal/client/models"
	"github.com/dmitrijs2005/teamfinder/internal/client/query"
	"github.com/dmitrijs2005/teamfinder/internal/client/validation"
)

// Overview is a profile together with the first page of its author's posts.
type Overview struct {
	User  *models.User
	Posts *models.PostPage
}

// ProfileService reads and edits user profiles.
type ProfileService interface {
	My(ctx context.Context) (*models.User, error)
	ByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, p models.ProfileUpdate) error
	// Overview loads a profile and its posts concurrently. id 0 means the
	// logged-in user.
	Overview(ctx context.Context, id int64) (*Overview, error)
}

type profileService struct {
	client client.Client
}

func NewProfileService(c client.Client) ProfileService {
	return &profileService{client: c}
}

func (s *profileService) My(ctx context.Context) (*models.User, error) {
	return s.client.Me(ctx)
}

func (s *profileService) ByID(ctx context.Context, id int64) (*models.User, error) {
	return s.client.User(ctx, id)
}

func (s *profileService) Update(ctx context.Context, p models.ProfileUpdate) error {
	p.Skills = query.NormalizeSkills(p.Skills)
	if err := validation.Profile(p); err != nil {
		return err
	}
	return s.client.UpdateProfile(ctx, p)
}

func (s *profileService) Overview(ctx context.Context, id int64) (*Overview, error) {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if id == 0 {
			ov.User, err = s.client.Me(gctx)
		} else {
			ov.User, err = s.client.User(gctx, id)
		}
		return err
	})
	g.Go(func() error {
		var err error
		if id == 0 {
			ov.Posts, err = s.client.MyPosts(gctx, query.Build(models.PostFilter{}))
		} else {
			ov.Posts, err = s.client.ListPosts(gctx, query.Build(models.PostFilter{AuthorID: id}))
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}
