package blog

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Comments is the comment repository
type Comments interface {
	repository.Repository[*Comment]

	ListForBlog(ctx context.Context, blogID uuid.UUID) ([]*Comment, error)
	DeleteOne(ctx context.Context, id uuid.UUID) error
	DeleteForBlog(ctx context.Context, blogID uuid.UUID) error
	DeleteForBlogTx(ctx context.Context, tx bun.IDB, blogID uuid.UUID) error
}

type comments struct {
	repository.Repository[*Comment]
	db *bun.DB
}

var (
	_ Comments                        = (*comments)(nil)
	_ repository.Repository[*Comment] = (*comments)(nil)
)

func NewCommentsRepository(db *bun.DB) Comments {
	repo := repository.NewRepository[*Comment](db, repository.ModelHandlers[*Comment]{
		NewRecord: func() *Comment { return &Comment{} },
		GetID: func(c *Comment) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Comment, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
	})

	return &comments{
		Repository: repo,
		db:         db,
	}
}

// ListForBlog returns the comments for a blog, newest first.
func (a *comments) ListForBlog(ctx context.Context, blogID uuid.UUID) ([]*Comment, error) {
	var records []*Comment
	err := a.db.NewSelect().
		Model(&records).
		Relation("Author").
		Where("?TableAlias.blog_id = ?", blogID).
		OrderExpr("?TableAlias.created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	return records, nil
}

func (a *comments) DeleteOne(ctx context.Context, id uuid.UUID) error {
	if _, err := a.db.NewDelete().
		Model((*Comment)(nil)).
		Where("id = ?", id).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	return nil
}

func (a *comments) DeleteForBlog(ctx context.Context, blogID uuid.UUID) error {
	return a.DeleteForBlogTx(ctx, a.db, blogID)
}

func (a *comments) DeleteForBlogTx(ctx context.Context, tx bun.IDB, blogID uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*Comment)(nil)).
		Where("blog_id = ?", blogID).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	return nil
}
