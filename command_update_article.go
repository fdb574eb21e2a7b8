package publishing

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type UpdateArticleMessage struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Slug       string    `json:"slug"`
	Actor      *User
	OnResponse func(*Article)
}

func (e UpdateArticleMessage) Type() string { return "article.update" }

// UpdateArticleHandler updates an article scoped to its owner. A lookup
// miss, including someone else's article, surfaces as record-not-found.
type UpdateArticleHandler struct {
	repo   RepositoryManager
	logger Logger
}

func NewUpdateArticleHandler(repo RepositoryManager) *UpdateArticleHandler {
	return &UpdateArticleHandler{
		repo:   repo,
		logger: defLogger{},
	}
}

func (h *UpdateArticleHandler) WithLogger(logger Logger) *UpdateArticleHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *UpdateArticleHandler) Execute(ctx context.Context, event UpdateArticleMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during article update",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *UpdateArticleHandler) execute(ctx context.Context, event UpdateArticleMessage) error {
	if event.Actor == nil {
		return goerrors.New("article update requires an acting user", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	}

	article := &Article{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		article, err = h.repo.Articles().GetByOwnerTx(ctx, tx, event.ID, event.Actor.ID)
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return err
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not load article for update")
		}

		article.Title = event.Title
		article.Content = event.Content
		article.Slug = event.Slug
		now := time.Now()
		article.UpdatedAt = &now

		if article, err = h.repo.Articles().UpdateTx(ctx, tx, article, repository.UpdateByID(article.ID.String())); err != nil {
			if IsUniqueViolation(err) {
				return NewFieldViolation("slug is taken", map[string][]string{
					"slug": {"has already been taken"},
				})
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not update article")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "article update transaction failed")
	}

	if event.OnResponse != nil {
		event.OnResponse(article)
	}

	return nil
}
