package publishing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AccessTokens interface {
	repository.Repository[*AccessToken]

	GetByToken(ctx context.Context, token string) (*AccessToken, error)
	GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (*AccessToken, error)

	DeleteByToken(ctx context.Context, token string) error
	DeleteByTokenTx(ctx context.Context, tx bun.IDB, token string) error

	Create(ctx context.Context, record *AccessToken, criteria ...repository.InsertCriteria) (*AccessToken, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *AccessToken, criteria ...repository.InsertCriteria) (*AccessToken, error)
}

type accessTokens struct {
	repository.Repository[*AccessToken]
	db *bun.DB
}

var _ AccessTokens = (*accessTokens)(nil)

func NewAccessTokensRepository(db *bun.DB) AccessTokens {
	repo := repository.NewRepository[*AccessToken](db, repository.ModelHandlers[*AccessToken]{
		NewRecord: func() *AccessToken { return &AccessToken{} },
		GetID: func(t *AccessToken) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *AccessToken, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
		GetIdentifier: func() string {
			return "token"
		},
	})

	return &accessTokens{
		Repository: repo,
		db:         db,
	}
}

func (a *accessTokens) GetByToken(ctx context.Context, token string) (*AccessToken, error) {
	return a.GetByTokenTx(ctx, a.db, token)
}

func (a *accessTokens) GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (*AccessToken, error) {
	record := &AccessToken{}
	err := tx.NewSelect().Model(record).
		Relation("User").
		Where("?TableAlias.token = ?", token).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound()
		}
		return nil, err
	}

	return record, nil
}

func (a *accessTokens) DeleteByToken(ctx context.Context, token string) error {
	return a.DeleteByTokenTx(ctx, a.db, token)
}

func (a *accessTokens) DeleteByTokenTx(ctx context.Context, tx bun.IDB, token string) error {
	res, err := tx.NewDelete().Model((*AccessToken)(nil)).
		Where("token = ?", token).
		Exec(ctx)
	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.NewRecordNotFound()
	}

	return nil
}

func (a *accessTokens) Create(ctx context.Context, record *AccessToken, criteria ...repository.InsertCriteria) (*AccessToken, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *accessTokens) CreateTx(ctx context.Context, tx bun.IDB, record *AccessToken, criteria ...repository.InsertCriteria) (*AccessToken, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}
