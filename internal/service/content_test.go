package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/session"
)

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")

	id, err := f.content.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	p := f.post(t, id)
	assert.Equal(t, alice.UserID, p.AuthorID)
	assert.Equal(t, "hello", p.Content)
	assert.Equal(t, 1, f.user(t, alice.UserID).TotalPosts)
}

func TestCreatePost_Rejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")

	_, err := f.content.CreatePost(ctx, nil, "hello")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.content.CreatePost(ctx, alice, "  ")
	assert.ErrorIs(t, err, ErrEmptyContent)

	assert.Zero(t, f.count(t, &models.Post{}, ""))
	assert.Zero(t, f.user(t, alice.UserID).TotalPosts)
}

func TestUpdatePost_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")

	id, err := f.content.CreatePost(ctx, alice, "original")
	require.NoError(t, err)

	err = f.content.UpdatePost(ctx, bob, id, "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "original", f.post(t, id).Content)

	err = f.content.DeletePost(ctx, bob, id)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, int64(1), f.count(t, &models.Post{}, "id = ?", id))

	require.NoError(t, f.content.UpdatePost(ctx, alice, id, "edited"))
	assert.Equal(t, "edited", f.post(t, id).Content)

	assert.ErrorIs(t, f.content.UpdatePost(ctx, alice, id+100, "x"), ErrPostNotFound)
	assert.ErrorIs(t, f.content.DeletePost(ctx, alice, id+100), ErrNotFound)
}

func TestDeletePost_CascadesComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")

	id, err := f.content.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)
	other, err := f.content.CreatePost(ctx, alice, "keep me")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.content.AddPostComment(ctx, bob, models.CreatePostCommentRequest{PostID: id, Content: fmt.Sprintf("c%d", i)})
		require.NoError(t, err)
	}
	_, err = f.content.AddPostComment(ctx, bob, models.CreatePostCommentRequest{PostID: other, Content: "stays"})
	require.NoError(t, err)

	require.NoError(t, f.content.DeletePost(ctx, alice, id))

	assert.Zero(t, f.count(t, &models.Post{}, "id = ?", id))
	assert.Zero(t, f.count(t, &models.PostComment{}, "post_id = ?", id))
	assert.Equal(t, int64(1), f.count(t, &models.PostComment{}, "post_id = ?", other))
	assert.Equal(t, 1, f.post(t, other).CommentCount)

	assert.Equal(t, 1, f.user(t, alice.UserID).TotalPosts)
	assert.Equal(t, 4, f.user(t, bob.UserID).TotalComments)
}

func TestDeletePost_TotalPostsNeverNegative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")

	id, err := f.content.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", alice.UserID).Update("total_posts", 0).Error)

	require.NoError(t, f.content.DeletePost(ctx, alice, id))
	assert.Zero(t, f.user(t, alice.UserID).TotalPosts)
}

func TestFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")

	for i := 0; i < FeedLimit+1; i++ {
		_, err := f.content.CreatePost(ctx, alice, fmt.Sprintf("post %d", i))
		require.NoError(t, err)
	}

	feed, err := f.content.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, FeedLimit)

	first := feed[0]
	assert.Equal(t, fmt.Sprintf("post %d", FeedLimit), first.Content)
	assert.Equal(t, "alice", first.User)
	assert.Equal(t, alice.UserID, first.UserID)
	assert.Equal(t, alice.Avatar, first.Avatar)
	assert.Len(t, first.Timestamp, len(TimestampLayout))
	assert.Zero(t, first.CommentCount)
	assert.Zero(t, first.RatingCount)
	assert.Zero(t, first.RatingAvg)

	for i := 1; i < len(feed); i++ {
		assert.Greater(t, feed[i-1].ID, feed[i].ID)
	}
}

func TestFeed_Empty(t *testing.T) {
	f := newFixture(t)

	feed, err := f.content.Feed(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestPostComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")

	postID, err := f.content.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	first, err := f.content.AddPostComment(ctx, bob, models.CreatePostCommentRequest{PostID: postID, Content: "first"})
	require.NoError(t, err)
	_, err = f.content.AddPostComment(ctx, alice, models.CreatePostCommentRequest{PostID: postID, Content: "second"})
	require.NoError(t, err)

	assert.Equal(t, 2, f.post(t, postID).CommentCount)
	assert.Equal(t, 1, f.user(t, bob.UserID).TotalComments)

	comments, err := f.content.PostComments(ctx, postID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "alice", comments[0].Username)
	assert.Equal(t, "first", comments[1].Content)

	assert.ErrorIs(t, f.content.DeletePostComment(ctx, alice, first), ErrForbidden)
	assert.ErrorIs(t, f.content.DeletePostComment(ctx, bob, first+100), ErrCommentNotFound)
	assert.ErrorIs(t, f.content.DeletePostComment(ctx, nil, first), ErrUnauthorized)

	require.NoError(t, f.content.DeletePostComment(ctx, bob, first))
	assert.Equal(t, 1, f.post(t, postID).CommentCount)
	assert.Zero(t, f.user(t, bob.UserID).TotalComments)
	assert.Equal(t, int64(1), f.count(t, &models.PostComment{}, "post_id = ?", postID))
}

func TestAddPostComment_Rejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")

	_, err := f.content.AddPostComment(ctx, alice, models.CreatePostCommentRequest{PostID: 999, Content: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	postID, err := f.content.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	_, err = f.content.AddPostComment(ctx, alice, models.CreatePostCommentRequest{PostID: postID, Content: ""})
	assert.ErrorIs(t, err, ErrEmptyContent)

	// a session whose user row is gone: the counter bump fails and everything rolls back
	ghost := &session.Session{ID: "ghost", UserID: 9999, Username: "ghost"}
	_, err = f.content.AddPostComment(ctx, ghost, models.CreatePostCommentRequest{PostID: postID, Content: "boo"})
	assert.Error(t, err)

	assert.Zero(t, f.post(t, postID).CommentCount)
	assert.Zero(t, f.count(t, &models.PostComment{}, ""))
	assert.Zero(t, f.user(t, alice.UserID).TotalComments)
}

func TestCommentCountClamped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")

	postID, err := f.content.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)
	cid, err := f.content.AddPostComment(ctx, alice, models.CreatePostCommentRequest{PostID: postID, Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.Post{}).Where("id = ?", postID).Update("comment_count", 0).Error)
	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", alice.UserID).Update("total_comments", 0).Error)

	require.NoError(t, f.content.DeletePostComment(ctx, alice, cid))
	assert.Zero(t, f.post(t, postID).CommentCount)
	assert.Zero(t, f.user(t, alice.UserID).TotalComments)
}

func TestAssetComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")

	for i := 0; i < AssetCommentsLimit+2; i++ {
		_, err := f.content.AddAssetComment(ctx, alice, models.CreateAssetCommentRequest{Symbol: "bitcoin", Content: fmt.Sprintf("btc %d", i)})
		require.NoError(t, err)
	}
	goldID, err := f.content.AddAssetComment(ctx, alice, models.CreateAssetCommentRequest{Symbol: "gold_gram", Content: "gold"})
	require.NoError(t, err)

	assert.Equal(t, AssetCommentsLimit+3, f.user(t, alice.UserID).TotalComments)

	btc, err := f.content.AssetComments(ctx, "bitcoin")
	require.NoError(t, err)
	require.Len(t, btc, AssetCommentsLimit)
	assert.Equal(t, fmt.Sprintf("btc %d", AssetCommentsLimit+1), btc[0].Content)

	gold, err := f.content.AssetComments(ctx, "gold_gram")
	require.NoError(t, err)
	require.Len(t, gold, 1)

	none, err := f.content.AssetComments(ctx, "ethereum")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.content.AddAssetComment(ctx, alice, models.CreateAssetCommentRequest{Symbol: " ", Content: "x"})
	assert.ErrorIs(t, err, ErrMissingSymbol)

	assert.ErrorIs(t, f.content.DeleteAssetComment(ctx, bob, goldID), ErrForbidden)
	require.NoError(t, f.content.DeleteAssetComment(ctx, alice, goldID))
	assert.Equal(t, AssetCommentsLimit+2, f.user(t, alice.UserID).TotalComments)
	assert.ErrorIs(t, f.content.DeleteAssetComment(ctx, alice, goldID), ErrCommentNotFound)
}
