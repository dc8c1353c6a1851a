package services

import (
	"context"
	"testing"

	"review-backend/internal/models"
	"review-backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	svc      CommentService
	titleID  uint
	reviewID uint
	author   *models.User
}

func newCommentFixture(t *testing.T) commentFixture {
	t.Helper()
	ctx := context.Background()

	comments := newFakeCommentRepo()
	reviews := newFakeReviewRepo()
	titles := newFakeTitleRepo()

	titleID := titles.add(models.Title{Name: "Dune", Year: 1965})
	reviewer := roleUser(models.RoleUser)
	review := &models.Review{AuthorID: reviewer.ID, TitleID: titleID, Text: "fine", Score: 7}
	require.NoError(t, reviews.Create(ctx, review))

	return commentFixture{
		svc:      NewCommentService(comments, reviews, titles, testLogger()),
		titleID:  titleID,
		reviewID: review.ID,
		author:   roleUser(models.RoleUser),
	}
}

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a comment", func(t *testing.T) {
		fx := newCommentFixture(t)

		comment, err := fx.svc.Create(ctx, fx.titleID, fx.reviewID, fx.author, "agreed")
		require.NoError(t, err)
		assert.Equal(t, "agreed", comment.Text)
		assert.Equal(t, fx.reviewID, comment.ReviewID)
		assert.Equal(t, fx.author.ID, comment.AuthorID)
	})

	t.Run("unknown title is not found", func(t *testing.T) {
		fx := newCommentFixture(t)

		_, err := fx.svc.Create(ctx, 99, fx.reviewID, fx.author, "text")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("review under the wrong title is not found", func(t *testing.T) {
		fx := newCommentFixture(t)

		_, err := fx.svc.Create(ctx, fx.titleID, 99, fx.author, "text")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestCommentService_List(t *testing.T) {
	ctx := context.Background()
	fx := newCommentFixture(t)

	_, err := fx.svc.Create(ctx, fx.titleID, fx.reviewID, fx.author, "one")
	require.NoError(t, err)
	_, err = fx.svc.Create(ctx, fx.titleID, fx.reviewID, roleUser(models.RoleModerator), "two")
	require.NoError(t, err)

	all, total, err := fx.svc.List(ctx, fx.titleID, fx.reviewID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}

func TestCommentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("author can edit", func(t *testing.T) {
		fx := newCommentFixture(t)
		comment, err := fx.svc.Create(ctx, fx.titleID, fx.reviewID, fx.author, "original")
		require.NoError(t, err)

		updated, err := fx.svc.Update(ctx, fx.titleID, fx.reviewID, comment.ID, fx.author, "revised")
		require.NoError(t, err)
		assert.Equal(t, "revised", updated.Text)
	})

	t.Run("moderator can edit another author's comment", func(t *testing.T) {
		fx := newCommentFixture(t)
		comment, err := fx.svc.Create(ctx, fx.titleID, fx.reviewID, fx.author, "original")
		require.NoError(t, err)

		_, err = fx.svc.Update(ctx, fx.titleID, fx.reviewID, comment.ID, roleUser(models.RoleModerator), "moderated")
		require.NoError(t, err)
	})

	t.Run("plain user cannot edit another author's comment", func(t *testing.T) {
		fx := newCommentFixture(t)
		comment, err := fx.svc.Create(ctx, fx.titleID, fx.reviewID, fx.author, "original")
		require.NoError(t, err)

		_, err = fx.svc.Update(ctx, fx.titleID, fx.reviewID, comment.ID, roleUser(models.RoleUser), "hijack")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("author can delete", func(t *testing.T) {
		fx := newCommentFixture(t)
		comment, err := fx.svc.Create(ctx, fx.titleID, fx.reviewID, fx.author, "text")
		require.NoError(t, err)

		require.NoError(t, fx.svc.Delete(ctx, fx.titleID, fx.reviewID, comment.ID, fx.author))

		_, err = fx.svc.Get(ctx, fx.titleID, fx.reviewID, comment.ID)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("plain user cannot delete another author's comment", func(t *testing.T) {
		fx := newCommentFixture(t)
		comment, err := fx.svc.Create(ctx, fx.titleID, fx.reviewID, fx.author, "text")
		require.NoError(t, err)

		err = fx.svc.Delete(ctx, fx.titleID, fx.reviewID, comment.ID, roleUser(models.RoleUser))
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})
}
