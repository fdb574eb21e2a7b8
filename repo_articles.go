package publishing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Articles interface {
	repository.Repository[*Article]

	// Recent returns one page of articles ordered most-recent-first plus the
	// total count across all pages
	Recent(ctx context.Context, page, size int) ([]*Article, int, error)
	RecentTx(ctx context.Context, tx bun.IDB, page, size int) ([]*Article, int, error)

	GetByOwner(ctx context.Context, id, owner uuid.UUID) (*Article, error)
	GetByOwnerTx(ctx context.Context, tx bun.IDB, id, owner uuid.UUID) (*Article, error)

	Create(ctx context.Context, record *Article, criteria ...repository.InsertCriteria) (*Article, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Article, criteria ...repository.InsertCriteria) (*Article, error)
}

type articles struct {
	repository.Repository[*Article]
	db *bun.DB
}

var _ Articles = (*articles)(nil)

func NewArticlesRepository(db *bun.DB) Articles {
	repo := repository.NewRepository[*Article](db, repository.ModelHandlers[*Article]{
		NewRecord: func() *Article { return &Article{} },
		GetID: func(a *Article) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Article, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "slug"
		},
	})

	return &articles{
		Repository: repo,
		db:         db,
	}
}

func (a *articles) Recent(ctx context.Context, page, size int) ([]*Article, int, error) {
	return a.RecentTx(ctx, a.db, page, size)
}

func (a *articles) RecentTx(ctx context.Context, tx bun.IDB, page, size int) ([]*Article, int, error) {
	var records []*Article

	count, err := tx.NewSelect().Model(&records).
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, count, nil
}

func (a *articles) GetByOwner(ctx context.Context, id, owner uuid.UUID) (*Article, error) {
	return a.GetByOwnerTx(ctx, a.db, id, owner)
}

// GetByOwnerTx scopes the lookup to the owner's articles. An article that
// exists but belongs to someone else is indistinguishable from a missing
// one, which is exactly what the update endpoint wants.
func (a *articles) GetByOwnerTx(ctx context.Context, tx bun.IDB, id, owner uuid.UUID) (*Article, error) {
	record := &Article{}
	err := tx.NewSelect().Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", owner).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *articles) Create(ctx context.Context, record *Article, criteria ...repository.InsertCriteria) (*Article, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *articles) CreateTx(ctx context.Context, tx bun.IDB, record *Article, criteria ...repository.InsertCriteria) (*Article, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}
