package publishing

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Users interface {
	repository.Repository[*User]

	GetByLogin(ctx context.Context, login string, provider UserProvider) (*User, error)
	GetByLoginTx(ctx context.Context, tx bun.IDB, login string, provider UserProvider) (*User, error)

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)

	GetOrCreateByLogin(ctx context.Context, record *User) (*User, error)
	GetOrCreateByLoginTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)

	Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "login"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetByLogin(ctx context.Context, login string, provider UserProvider) (*User, error) {
	return a.GetByLoginTx(ctx, a.db, login, provider)
}

// GetByLoginTx looks a user up by login. Provider narrows the match when
// non-empty; logins are unique across providers either way.
func (a *users) GetByLoginTx(ctx context.Context, tx bun.IDB, login string, provider UserProvider) (*User, error) {
	record := &User{}
	q := tx.NewSelect().Model(record).
		Where("?TableAlias.login = ?", strings.TrimSpace(login))

	if provider != "" {
		q = q.Where("?TableAlias.provider = ?", provider)
	}

	if err := q.Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"login": login,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	return a.CreateTx(ctx, tx, user)
}

func (a *users) Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	prepareUserDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *users) GetOrCreateByLogin(ctx context.Context, record *User) (*User, error) {
	return a.GetOrCreateByLoginTx(ctx, a.db, record)
}

// GetOrCreateByLoginTx resolves a user by login, creating the record when
// none exists. Two concurrent callers may both miss the read; the unique
// constraint on login picks the winner and the loser re-reads that row
// instead of erroring.
func (a *users) GetOrCreateByLoginTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	user, err := a.GetByLoginTx(ctx, tx, record.Login, "")
	if err == nil {
		return user, nil
	}

	if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	created, err := a.CreateTx(ctx, tx, record)
	if err == nil {
		return created, nil
	}

	if !IsUniqueViolation(err) {
		return nil, err
	}

	return a.GetByLoginTx(ctx, tx, record.Login, "")
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Provider == "" {
		record.Provider = ProviderStandard
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

// IsUniqueViolation reports whether err is a storage level uniqueness
// failure. Both sqlite and postgres spell it out in the driver message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
