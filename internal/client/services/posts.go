package services

import (
	"context"

	"github.com/dmitrijs2005/teamfinder/internal/client/client"
	"github.com/dmitrijs2005/teamfinder/internal/client/models"
	"github.com/dmitrijs2005/teamfinder/internal/client/query"
	"github.com/dmitrijs2005/teamfinder/internal/client/validation"
)

// PostService reads and manages posts. Lists are always requested through
// query.Build.
type PostService interface {
	List(ctx context.Context, f models.PostFilter) (*models.PostPage, error)
	My(ctx context.Context, f models.PostFilter) (*models.PostPage, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, p models.PostInput) error
	Update(ctx context.Context, id int64, p models.PostInput) error
	Delete(ctx context.Context, id int64) error
}

type postService struct {
	client client.Client
}

func NewPostService(c client.Client) PostService {
	return &postService{client: c}
}

func (s *postService) List(ctx context.Context, f models.PostFilter) (*models.PostPage, error) {
	return s.client.ListPosts(ctx, query.Build(f))
}

// My lists the posts of the logged-in user. The author is implied by the
// session, so f.AuthorID is ignored.
func (s *postService) My(ctx context.Context, f models.PostFilter) (*models.PostPage, error) {
	f.AuthorID = 0
	return s.client.MyPosts(ctx, query.Build(f))
}

func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	return s.client.Post(ctx, id)
}

func (s *postService) Create(ctx context.Context, p models.PostInput) error {
	p.Skills = query.NormalizeSkills(p.Skills)
	if err := validation.Post(p); err != nil {
		return err
	}
	return s.client.CreatePost(ctx, p)
}

func (s *postService) Update(ctx context.Context, id int64, p models.PostInput) error {
	p.Skills = query.NormalizeSkills(p.Skills)
	if err := validation.Post(p); err != nil {
		return err
	}
	return s.client.UpdatePost(ctx, id, p)
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	return s.client.DeletePost(ctx, id)
}
