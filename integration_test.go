package publishing_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/goliatone/go-publishing"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	require.NoError(t, publishing.CreateSchema(context.Background(), db))

	return db
}

func TestRepositoriesAgainstSqlite(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := publishing.NewRepositoryManager(db)
	require.NoError(t, repo.Validate())

	t.Run("login uniqueness is enforced by the store", func(t *testing.T) {
		_, err := repo.Users().Register(ctx, &publishing.User{
			Login:        "unique-login",
			PasswordHash: "x",
		})
		require.NoError(t, err)

		_, err = repo.Users().Register(ctx, &publishing.User{
			Login:        "unique-login",
			PasswordHash: "x",
		})
		require.Error(t, err)
		assert.True(t, publishing.IsUniqueViolation(err))
	})

	t.Run("get or create returns the existing row on replays", func(t *testing.T) {
		record := &publishing.User{
			Login:    "octocat",
			Provider: publishing.ProviderGithub,
			Name:     "The Octocat",
		}

		first, err := repo.Users().GetOrCreateByLogin(ctx, record)
		require.NoError(t, err)

		again, err := repo.Users().GetOrCreateByLogin(ctx, &publishing.User{
			Login:    "octocat",
			Provider: publishing.ProviderGithub,
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, again.ID)
	})

	t.Run("token lifecycle", func(t *testing.T) {
		user, err := repo.Users().Register(ctx, &publishing.User{
			Login:        "token-owner",
			PasswordHash: "x",
		})
		require.NoError(t, err)

		vault := publishing.NewTokenService(repo.AccessTokens()).WithLogger(testLogger{})

		token, err := vault.Issue(ctx, user)
		require.NoError(t, err)

		resolved, err := vault.Resolve(ctx, token.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
		assert.Equal(t, user.Login, resolved.Login)

		require.NoError(t, vault.Revoke(ctx, token.Token))

		_, err = vault.Resolve(ctx, token.Token)
		assert.Same(t, publishing.ErrInvalidAccessToken, err)
	})

	t.Run("recent articles page and count", func(t *testing.T) {
		author, err := repo.Users().Register(ctx, &publishing.User{
			Login:        "author",
			PasswordHash: "x",
		})
		require.NoError(t, err)

		for _, slug := range []string{"one", "two", "three"} {
			_, err := repo.Articles().Create(ctx, &publishing.Article{
				Title:   slug,
				Content: "content " + slug,
				Slug:    slug,
				UserID:  author.ID,
			})
			require.NoError(t, err)
		}

		page, total, err := repo.Articles().Recent(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, page, 2)

		rest, total, err := repo.Articles().Recent(ctx, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, rest, 1)
	})

	t.Run("owner scoping hides other users' articles", func(t *testing.T) {
		owner, err := repo.Users().Register(ctx, &publishing.User{
			Login:        "owner",
			PasswordHash: "x",
		})
		require.NoError(t, err)

		article, err := repo.Articles().Create(ctx, &publishing.Article{
			Title:   "Scoped",
			Content: "content",
			Slug:    "scoped",
			UserID:  owner.ID,
		})
		require.NoError(t, err)

		found, err := repo.Articles().GetByOwner(ctx, article.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, article.ID, found.ID)

		_, err = repo.Articles().GetByOwner(ctx, article.ID, uuid.New())
		assert.True(t, repository.IsRecordNotFound(err))
	})

	t.Run("comments page per article", func(t *testing.T) {
		author, err := repo.Users().Register(ctx, &publishing.User{
			Login:        "commenter",
			PasswordHash: "x",
		})
		require.NoError(t, err)

		article, err := repo.Articles().Create(ctx, &publishing.Article{
			Title:   "Commented",
			Content: "content",
			Slug:    "commented",
			UserID:  author.ID,
		})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err := repo.Comments().Create(ctx, &publishing.Comment{
				Content:   "a comment",
				ArticleID: article.ID,
				UserID:    author.ID,
			})
			require.NoError(t, err)
		}

		comments, total, err := repo.Comments().RecentForArticle(ctx, article.ID, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, comments, 2)

		none, total, err := repo.Comments().RecentForArticle(ctx, uuid.New(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, none)
	})
}
