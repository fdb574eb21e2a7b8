package publishing

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type CreateArticleMessage struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Slug       string `json:"slug"`
	Actor      *User
	OnResponse func(*Article)
}

func (e CreateArticleMessage) Type() string { return "article.create" }

type CreateArticleHandler struct {
	repo   RepositoryManager
	logger Logger
}

func NewCreateArticleHandler(repo RepositoryManager) *CreateArticleHandler {
	return &CreateArticleHandler{
		repo:   repo,
		logger: defLogger{},
	}
}

func (h *CreateArticleHandler) WithLogger(logger Logger) *CreateArticleHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *CreateArticleHandler) Execute(ctx context.Context, event CreateArticleMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during article creation",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *CreateArticleHandler) execute(ctx context.Context, event CreateArticleMessage) error {
	if event.Actor == nil {
		return goerrors.New("article creation requires an acting user", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	}

	article := &Article{
		Title:   event.Title,
		Content: event.Content,
		Slug:    event.Slug,
		UserID:  event.Actor.ID,
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		if article, err = h.repo.Articles().CreateTx(ctx, tx, article); err != nil {
			if IsUniqueViolation(err) {
				return NewFieldViolation("slug is taken", map[string][]string{
					"slug": {"has already been taken"},
				})
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create article")
		}
		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "article creation transaction failed")
	}

	if event.OnResponse != nil {
		event.OnResponse(article)
	}

	return nil
}
