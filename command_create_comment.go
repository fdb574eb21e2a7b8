package publishing

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type CreateCommentMessage struct {
	ArticleID  uuid.UUID `json:"article_id"`
	Content    string    `json:"content"`
	Actor      *User
	OnResponse func(*Comment)
}

func (e CreateCommentMessage) Type() string { return "comment.create" }

type CreateCommentHandler struct {
	repo   RepositoryManager
	logger Logger
}

func NewCreateCommentHandler(repo RepositoryManager) *CreateCommentHandler {
	return &CreateCommentHandler{
		repo:   repo,
		logger: defLogger{},
	}
}

func (h *CreateCommentHandler) WithLogger(logger Logger) *CreateCommentHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *CreateCommentHandler) Execute(ctx context.Context, event CreateCommentMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during comment creation",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *CreateCommentHandler) execute(ctx context.Context, event CreateCommentMessage) error {
	if event.Actor == nil {
		return goerrors.New("commenting requires an acting user", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	}

	comment := &Comment{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// the comment must hang off an existing article
		article, err := h.repo.Articles().GetByID(ctx, event.ArticleID.String())
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return err
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not load article for comment")
		}

		comment.ArticleID = article.ID
		comment.UserID = event.Actor.ID
		comment.Content = event.Content

		if comment, err = h.repo.Comments().CreateTx(ctx, tx, comment); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create comment")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "comment creation transaction failed")
	}

	if event.OnResponse != nil {
		event.OnResponse(comment)
	}

	return nil
}
