package publishing

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Comments interface {
	repository.Repository[*Comment]

	// RecentForArticle returns one page of an article's comments ordered
	// most-recent-first plus the total count
	RecentForArticle(ctx context.Context, articleID uuid.UUID, page, size int) ([]*Comment, int, error)
	RecentForArticleTx(ctx context.Context, tx bun.IDB, articleID uuid.UUID, page, size int) ([]*Comment, int, error)

	Create(ctx context.Context, record *Comment, criteria ...repository.InsertCriteria) (*Comment, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Comment, criteria ...repository.InsertCriteria) (*Comment, error)
}

type comments struct {
	repository.Repository[*Comment]
	db *bun.DB
}

var _ Comments = (*comments)(nil)

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

func (a *comments) RecentForArticle(ctx context.Context, articleID uuid.UUID, page, size int) ([]*Comment, int, error) {
	return a.RecentForArticleTx(ctx, a.db, articleID, page, size)
}

func (a *comments) RecentForArticleTx(ctx context.Context, tx bun.IDB, articleID uuid.UUID, page, size int) ([]*Comment, int, error) {
	var records []*Comment

	count, err := tx.NewSelect().Model(&records).
		Where("?TableAlias.article_id = ?", articleID).
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, count, nil
}

func (a *comments) Create(ctx context.Context, record *Comment, criteria ...repository.InsertCriteria) (*Comment, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *comments) CreateTx(ctx context.Context, tx bun.IDB, record *Comment, criteria ...repository.InsertCriteria) (*Comment, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}
