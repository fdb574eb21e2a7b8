package publishing_test

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-publishing"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

type testLogger struct{}

func (testLogger) Debug(string, ...any) {}
func (testLogger) Info(string, ...any)  {}
func (testLogger) Error(string, ...any) {}

// MockExchanger implements publishing.CodeExchanger
type MockExchanger struct {
	mock.Mock
}

func (m *MockExchanger) Exchange(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockExchanger) UserInfo(ctx context.Context, accessToken string) (*publishing.ProviderProfile, error) {
	args := m.Called(ctx, accessToken)
	if profile := args.Get(0); profile != nil {
		return profile.(*publishing.ProviderProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUsers implements the subset of publishing.Users the tests exercise.
// The embedded interface covers the remaining repository methods; calling
// one of those unstubbed is a test bug and panics.
type MockUsers struct {
	mock.Mock
	publishing.Users
}

func (m *MockUsers) GetByLogin(ctx context.Context, login string, provider publishing.UserProvider) (*publishing.User, error) {
	args := m.Called(ctx, login, provider)
	if user := args.Get(0); user != nil {
		return user.(*publishing.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetOrCreateByLogin(ctx context.Context, record *publishing.User) (*publishing.User, error) {
	args := m.Called(ctx, record)
	if user := args.Get(0); user != nil {
		return user.(*publishing.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *publishing.User) (*publishing.User, error) {
	args := m.Called(ctx, tx, user)
	if out := args.Get(0); out != nil {
		return out.(*publishing.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockArticles implements the subset of publishing.Articles the tests use
type MockArticles struct {
	mock.Mock
	publishing.Articles
}

func (m *MockArticles) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*publishing.Article, error) {
	args := m.Called(ctx, id, criteria)
	if article := args.Get(0); article != nil {
		return article.(*publishing.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticles) GetByOwnerTx(ctx context.Context, tx bun.IDB, id, owner uuid.UUID) (*publishing.Article, error) {
	args := m.Called(ctx, tx, id, owner)
	if article := args.Get(0); article != nil {
		return article.(*publishing.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticles) CreateTx(ctx context.Context, tx bun.IDB, record *publishing.Article, criteria ...repository.InsertCriteria) (*publishing.Article, error) {
	args := m.Called(ctx, tx, record, criteria)
	if article := args.Get(0); article != nil {
		return article.(*publishing.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticles) UpdateTx(ctx context.Context, tx bun.IDB, record *publishing.Article, criteria ...repository.UpdateCriteria) (*publishing.Article, error) {
	args := m.Called(ctx, tx, record, criteria)
	if article := args.Get(0); article != nil {
		return article.(*publishing.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockComments implements the subset of publishing.Comments the tests use
type MockComments struct {
	mock.Mock
	publishing.Comments
}

func (m *MockComments) CreateTx(ctx context.Context, tx bun.IDB, record *publishing.Comment, criteria ...repository.InsertCriteria) (*publishing.Comment, error) {
	args := m.Called(ctx, tx, record, criteria)
	if comment := args.Get(0); comment != nil {
		return comment.(*publishing.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRepositoryManager implements publishing.RepositoryManager
type MockRepositoryManager struct {
	mock.Mock
}

func (m *MockRepositoryManager) Users() publishing.Users {
	args := m.Called()
	return args.Get(0).(publishing.Users)
}

func (m *MockRepositoryManager) AccessTokens() publishing.AccessTokens {
	args := m.Called()
	return args.Get(0).(publishing.AccessTokens)
}

func (m *MockRepositoryManager) Articles() publishing.Articles {
	args := m.Called()
	return args.Get(0).(publishing.Articles)
}

func (m *MockRepositoryManager) Comments() publishing.Comments {
	args := m.Called()
	return args.Get(0).(publishing.Comments)
}

// RunInTx records the call, then executes the body with a zero tx so the
// handler sees exactly the error the body produced. Stub an error on the
// expectation to simulate a failure opening the transaction itself.
func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	args := m.Called(ctx, opts, f)
	if err := args.Error(0); err != nil {
		return err
	}

	var tx bun.Tx
	return f(ctx, tx)
}

func (m *MockRepositoryManager) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRepositoryManager) MustValidate() {
	m.Called()
}
