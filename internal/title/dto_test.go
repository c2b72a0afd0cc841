// AngelaMos | 2026
// dto_test.go

package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRating(t *testing.T) {
	assert.Nil(t, roundRating(nil))

	cases := []struct {
		avg  float64
		want int
	}{
		{7.0, 7},
		{6.4, 6},
		{6.5, 7},
		{1.0, 1},
		{10.0, 10},
	}
	for _, c := range cases {
		got := roundRating(&c.avg)
		require.NotNil(t, got)
		assert.Equal(t, c.want, *got, "avg %.2f", c.avg)
	}
}

func TestToTitleResponse(t *testing.T) {
	name := "Movies"
	slug := "movies"
	avg := 7.0

	title := &Title{
		ID:           42,
		Name:         "Blade Runner",
		Year:         1982,
		Description:  "replicants",
		CategoryName: &name,
		CategorySlug: &slug,
		Rating:       &avg,
		Genres: []Genre{
			{ID: 1, Name: "Sci-Fi", Slug: "sci-fi"},
		},
	}

	resp := ToTitleResponse(title)

	assert.Equal(t, int64(42), resp.ID)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, 7, *resp.Rating)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "movies", resp.Category.Slug)
	require.Len(t, resp.Genres, 1)
	assert.Equal(t, "sci-fi", resp.Genres[0].Slug)
}

func TestToTitleResponseUnratedUncategorized(t *testing.T) {
	resp := ToTitleResponse(&Title{ID: 1, Name: "Obscure", Year: 2001})

	assert.Nil(t, resp.Rating)
	assert.Nil(t, resp.Category)
	assert.NotNil(t, resp.Genres)
	assert.Empty(t, resp.Genres)
}
