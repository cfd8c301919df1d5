package blog

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Blogs is the post repository
type Blogs interface {
	repository.Repository[*Blog]

	GetWithAuthor(ctx context.Context, id uuid.UUID) (*Blog, error)
	ListRecent(ctx context.Context) ([]*Blog, error)
	SearchByTitle(ctx context.Context, query string) ([]*Blog, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	DeleteCascadeTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type blogs struct {
	repository.Repository[*Blog]
	db *bun.DB
}

var (
	_ Blogs                        = (*blogs)(nil)
	_ repository.Repository[*Blog] = (*blogs)(nil)
)

func NewBlogsRepository(db *bun.DB) Blogs {
	repo := repository.NewRepository[*Blog](db, repository.ModelHandlers[*Blog]{
		NewRecord: func() *Blog { return &Blog{} },
		GetID: func(b *Blog) uuid.UUID {
			if b == nil {
				return uuid.Nil
			}
			return b.ID
		},
		SetID: func(b *Blog, id uuid.UUID) {
			if b != nil {
				b.ID = id
			}
		},
	})

	return &blogs{
		Repository: repo,
		db:         db,
	}
}

func (a *blogs) GetWithAuthor(ctx context.Context, id uuid.UUID) (*Blog, error) {
	record := &Blog{}
	err := a.db.NewSelect().
		Model(record).
		Relation("Author").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().WithMetadata(map[string]any{
				"id": id.String(),
			})
		}
		return nil, goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	return record, nil
}

func (a *blogs) ListRecent(ctx context.Context) ([]*Blog, error) {
	var records []*Blog
	err := a.db.NewSelect().
		Model(&records).
		Relation("Author").
		OrderExpr("?TableAlias.created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	return records, nil
}

// SearchByTitle is a case-insensitive substring match on the title, the
// equivalent of the original's regex title search.
func (a *blogs) SearchByTitle(ctx context.Context, query string) ([]*Blog, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*Blog{}, nil
	}

	var records []*Blog
	err := a.db.NewSelect().
		Model(&records).
		Relation("Author").
		Where("LOWER(?TableAlias.title) LIKE ?", "%"+strings.ToLower(query)+"%").
		OrderExpr("?TableAlias.created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	return records, nil
}

func (a *blogs) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return a.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return a.DeleteCascadeTx(ctx, tx, id)
	})
}

// DeleteCascadeTx removes the blog and every comment referencing it in the
// same transaction, so no comment can outlive its blog.
func (a *blogs) DeleteCascadeTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*Comment)(nil)).
		Where("blog_id = ?", id).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	if _, err := tx.NewDelete().
		Model((*Blog)(nil)).
		Where("id = ?", id).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	return nil
}
