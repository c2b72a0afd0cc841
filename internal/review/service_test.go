// AngelaMos | 2026
// service_test.go

package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/reviewboard/internal/core"
	"github.com/carterperez-dev/reviewboard/internal/policy"
	"github.com/carterperez-dev/reviewboard/internal/title"
)

type fakeTitles struct {
	ids map[int64]bool
}

func (f *fakeTitles) GetByID(
	_ context.Context,
	id int64,
) (*title.Title, error) {
	if !f.ids[id] {
		return nil, core.ErrNotFound
	}
	return &title.Title{ID: id}, nil
}

type fakeReviewRepo struct {
	reviews  map[int64]*Review
	comments map[int64]*Comment
	nextID   int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:  make(map[int64]*Review),
		comments: make(map[int64]*Comment),
	}
}

func (f *fakeReviewRepo) CreateReview(_ context.Context, rv *Review) error {
	for _, existing := range f.reviews {
		if existing.TitleID == rv.TitleID && existing.AuthorID == rv.AuthorID {
			return core.ErrDuplicateKey
		}
	}
	f.nextID++
	rv.ID = f.nextID
	cp := *rv
	f.reviews[rv.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) GetReview(
	_ context.Context,
	titleID, reviewID int64,
) (*Review, error) {
	rv, ok := f.reviews[reviewID]
	if !ok || rv.TitleID != titleID {
		return nil, core.ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (f *fakeReviewRepo) UpdateReview(_ context.Context, rv *Review) error {
	if _, ok := f.reviews[rv.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *rv
	f.reviews[rv.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) DeleteReview(
	_ context.Context,
	titleID, reviewID int64,
) error {
	rv, ok := f.reviews[reviewID]
	if !ok || rv.TitleID != titleID {
		return core.ErrNotFound
	}
	delete(f.reviews, reviewID)
	return nil
}

func (f *fakeReviewRepo) ListReviews(
	_ context.Context,
	titleID int64,
	_ ListParams,
) ([]Review, int, error) {
	var out []Review
	for _, rv := range f.reviews {
		if rv.TitleID == titleID {
			out = append(out, *rv)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviewRepo) CreateComment(_ context.Context, c *Comment) error {
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) GetComment(
	_ context.Context,
	reviewID, commentID int64,
) (*Comment, error) {
	c, ok := f.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, core.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeReviewRepo) UpdateComment(_ context.Context, c *Comment) error {
	if _, ok := f.comments[c.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) DeleteComment(
	_ context.Context,
	reviewID, commentID int64,
) error {
	c, ok := f.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return core.ErrNotFound
	}
	delete(f.comments, commentID)
	return nil
}

func (f *fakeReviewRepo) ListComments(
	_ context.Context,
	reviewID int64,
	_ ListParams,
) ([]Comment, int, error) {
	var out []Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func testActor(id string) policy.Actor {
	return policy.Actor{
		ID:            id,
		Username:      "user-" + id,
		Role:          policy.RoleUser,
		Authenticated: true,
	}
}

func newReviewService() (*Service, *fakeReviewRepo) {
	repo := newFakeReviewRepo()
	titles := &fakeTitles{ids: map[int64]bool{1: true}}
	return NewService(repo, titles), repo
}

func TestCreateReviewFillsAuthorFromActor(t *testing.T) {
	svc, repo := newReviewService()

	resp, err := svc.CreateReview(context.Background(), 1,
		testActor("a1"), CreateReviewRequest{Text: "great", Score: 9})
	require.NoError(t, err)

	assert.Equal(t, "user-a1", resp.Author)
	assert.Equal(t, 9, resp.Score)
	assert.Equal(t, "a1", repo.reviews[resp.ID].AuthorID)
}

func TestCreateReviewMissingTitle(t *testing.T) {
	svc, _ := newReviewService()

	_, err := svc.CreateReview(context.Background(), 404,
		testActor("a1"), CreateReviewRequest{Text: "where", Score: 5})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateReviewRejectsSecondReview(t *testing.T) {
	svc, _ := newReviewService()
	actor := testActor("a1")

	_, err := svc.CreateReview(context.Background(), 1, actor,
		CreateReviewRequest{Text: "first", Score: 7})
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), 1, actor,
		CreateReviewRequest{Text: "second", Score: 8})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestUpdateReviewOwnership(t *testing.T) {
	svc, _ := newReviewService()
	author := testActor("a1")

	created, err := svc.CreateReview(context.Background(), 1, author,
		CreateReviewRequest{Text: "original", Score: 5})
	require.NoError(t, err)

	newText := "edited"
	// a different plain user may not touch it
	_, err = svc.UpdateReview(context.Background(), 1, created.ID,
		testActor("a2"), UpdateReviewRequest{Text: &newText})
	assert.ErrorIs(t, err, core.ErrForbidden)

	// a moderator may
	mod := policy.Actor{
		ID:            "m1",
		Username:      "mod",
		Role:          policy.RoleModerator,
		Authenticated: true,
	}
	resp, err := svc.UpdateReview(context.Background(), 1, created.ID,
		mod, UpdateReviewRequest{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, "edited", resp.Text)

	// and so may the author
	score := 6
	resp, err = svc.UpdateReview(context.Background(), 1, created.ID,
		author, UpdateReviewRequest{Score: &score})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Score)
}

func TestDeleteReviewOwnership(t *testing.T) {
	svc, repo := newReviewService()
	author := testActor("a1")

	created, err := svc.CreateReview(context.Background(), 1, author,
		CreateReviewRequest{Text: "gone soon", Score: 3})
	require.NoError(t, err)

	err = svc.DeleteReview(context.Background(), 1, created.ID,
		testActor("a2"))
	assert.ErrorIs(t, err, core.ErrForbidden)

	err = svc.DeleteReview(context.Background(), 1, created.ID, author)
	require.NoError(t, err)
	assert.Empty(t, repo.reviews)
}

func TestCommentsRequireExistingReview(t *testing.T) {
	svc, _ := newReviewService()

	_, err := svc.CreateComment(context.Background(), 1, 999,
		testActor("a1"), CreateCommentRequest{Text: "into the void"})
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, _, err = svc.ListComments(context.Background(), 1, 999, ListParams{})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCommentLifecycle(t *testing.T) {
	svc, _ := newReviewService()
	author := testActor("a1")

	review, err := svc.CreateReview(context.Background(), 1, author,
		CreateReviewRequest{Text: "discuss", Score: 8})
	require.NoError(t, err)

	commenter := testActor("c1")
	comment, err := svc.CreateComment(context.Background(), 1, review.ID,
		commenter, CreateCommentRequest{Text: "agreed"})
	require.NoError(t, err)
	assert.Equal(t, "user-c1", comment.Author)

	newText := "strongly agreed"
	_, err = svc.UpdateComment(context.Background(), 1, review.ID,
		comment.ID, testActor("other"), UpdateCommentRequest{Text: &newText})
	assert.ErrorIs(t, err, core.ErrForbidden)

	updated, err := svc.UpdateComment(context.Background(), 1, review.ID,
		comment.ID, commenter, UpdateCommentRequest{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, "strongly agreed", updated.Text)

	err = svc.DeleteComment(context.Background(), 1, review.ID,
		comment.ID, commenter)
	require.NoError(t, err)
}
