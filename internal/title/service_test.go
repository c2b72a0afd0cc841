// AngelaMos | 2026
// service_test.go

package title

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/reviewboard/internal/core"
	"github.com/carterperez-dev/reviewboard/internal/taxonomy"
)

type fakeTerms struct {
	bySlug map[string]*taxonomy.Term
}

func (f *fakeTerms) Create(context.Context, *taxonomy.Term) error {
	panic("not used")
}

func (f *fakeTerms) DeleteBySlug(context.Context, string) error {
	panic("not used")
}

func (f *fakeTerms) List(
	context.Context,
	taxonomy.ListTermsParams,
) ([]taxonomy.Term, int, error) {
	panic("not used")
}

func (f *fakeTerms) GetBySlug(
	_ context.Context,
	slug string,
) (*taxonomy.Term, error) {
	if term, ok := f.bySlug[slug]; ok {
		return term, nil
	}
	return nil, core.ErrNotFound
}

type fakeTitleRepo struct {
	titles map[int64]*Title
	genres map[int64][]int64
	nextID int64
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{
		titles: make(map[int64]*Title),
		genres: make(map[int64][]int64),
	}
}

func (f *fakeTitleRepo) Create(
	_ context.Context,
	title *Title,
	genreIDs []int64,
) error {
	f.nextID++
	title.ID = f.nextID
	cp := *title
	f.titles[title.ID] = &cp
	f.genres[title.ID] = genreIDs
	return nil
}

func (f *fakeTitleRepo) GetByID(_ context.Context, id int64) (*Title, error) {
	title, ok := f.titles[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *title
	return &cp, nil
}

func (f *fakeTitleRepo) Update(
	_ context.Context,
	title *Title,
	genreIDs []int64,
) error {
	if _, ok := f.titles[title.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *title
	f.titles[title.ID] = &cp
	if genreIDs != nil {
		f.genres[title.ID] = genreIDs
	}
	return nil
}

func (f *fakeTitleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.titles[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.titles, id)
	return nil
}

func (f *fakeTitleRepo) List(
	context.Context,
	ListTitlesParams,
) ([]Title, int, error) {
	panic("not used")
}

func newTestService(repo Repository) *Service {
	categories := &fakeTerms{bySlug: map[string]*taxonomy.Term{
		"movies": {ID: 1, Name: "Movies", Slug: "movies"},
	}}
	genres := &fakeTerms{bySlug: map[string]*taxonomy.Term{
		"sci-fi": {ID: 10, Name: "Sci-Fi", Slug: "sci-fi"},
		"drama":  {ID: 11, Name: "Drama", Slug: "drama"},
	}}
	return NewService(repo, categories, genres)
}

func TestCreateResolvesSlugs(t *testing.T) {
	repo := newFakeTitleRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), CreateTitleRequest{
		Name:     "Blade Runner",
		Year:     1982,
		Genres:   []string{"sci-fi", "drama"},
		Category: "movies",
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{10, 11}, repo.genres[resp.ID])
	stored := repo.titles[resp.ID]
	require.NotNil(t, stored.CategoryID)
	assert.Equal(t, int64(1), *stored.CategoryID)
}

func TestCreateRejectsUnknownSlug(t *testing.T) {
	svc := newTestService(newFakeTitleRepo())

	_, err := svc.Create(context.Background(), CreateTitleRequest{
		Name:   "Nowhere",
		Year:   2000,
		Genres: []string{"jazz"},
	})
	assert.ErrorIs(t, err, ErrBadReference)

	_, err = svc.Create(context.Background(), CreateTitleRequest{
		Name:     "Nowhere",
		Year:     2000,
		Genres:   []string{"sci-fi"},
		Category: "books",
	})
	assert.ErrorIs(t, err, ErrBadReference)
}

func TestCreateRejectsFutureYear(t *testing.T) {
	svc := newTestService(newFakeTitleRepo())

	_, err := svc.Create(context.Background(), CreateTitleRequest{
		Name:   "Premature",
		Year:   time.Now().Year() + 1,
		Genres: []string{"sci-fi"},
	})
	assert.ErrorIs(t, err, ErrFutureYear)
}

func TestUpdatePartialPatch(t *testing.T) {
	repo := newFakeTitleRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), CreateTitleRequest{
		Name:     "Original",
		Year:     1990,
		Genres:   []string{"drama"},
		Category: "movies",
	})
	require.NoError(t, err)

	newName := "Renamed"
	updated, err := svc.Update(context.Background(), created.ID,
		UpdateTitleRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 1990, updated.Year)
	// genre links untouched when the patch omits them
	assert.Equal(t, []int64{11}, repo.genres[created.ID])
}

func TestUpdateMissingTitle(t *testing.T) {
	svc := newTestService(newFakeTitleRepo())

	_, err := svc.Update(context.Background(), 999, UpdateTitleRequest{})
	assert.ErrorIs(t, err, core.ErrNotFound)
}
