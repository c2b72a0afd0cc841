// AngelaMos | 2026
// validate_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidUsername(t *testing.T) {
	valid := []string{
		"alice",
		"alice.bob",
		"user@example",
		"with_underscore",
		"plus+minus-",
	}
	for _, name := range valid {
		assert.True(t, ValidUsername(name), name)
	}

	// \w is ASCII-only in Go's regexp, so non-latin letters are rejected
	invalid := []string{
		"me",
		"пользователь",
		"",
		"has space",
		"exclaim!",
		"semi;colon",
	}
	for _, name := range invalid {
		assert.False(t, ValidUsername(name), name)
	}
}

func TestUsernameTag(t *testing.T) {
	v := NewValidator()

	type req struct {
		Username string `validate:"required,username"`
	}

	require.NoError(t, v.Struct(req{Username: "alice"}))
	require.Error(t, v.Struct(req{Username: "me"}))
	require.Error(t, v.Struct(req{Username: "bad name"}))
}

func TestSlugTag(t *testing.T) {
	v := NewValidator()

	type req struct {
		Slug string `validate:"required,slug"`
	}

	require.NoError(t, v.Struct(req{Slug: "sci-fi_2"}))
	require.Error(t, v.Struct(req{Slug: "with space"}))
	require.Error(t, v.Struct(req{Slug: "юникод"}))
}

func TestFormatValidationError(t *testing.T) {
	v := NewValidator()

	type req struct {
		Email string `validate:"required,email"`
		Score int    `validate:"gte=1,lte=10"`
	}

	err := v.Struct(req{Email: "not-an-email", Score: 11})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "score must be at most 10")
}
