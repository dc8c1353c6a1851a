package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,max=150,slug"`
}

type scoreForm struct {
	Score int `json:"score" validate:"required,gte=1,lte=10"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		err := ValidateStruct(signupForm{Email: "capote@example.com", Username: "capote"})
		assert.NoError(t, err)
	})

	t.Run("errors are keyed by json field name", func(t *testing.T) {
		err := ValidateStruct(signupForm{Email: "not-an-email", Username: ""})

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Contains(t, appErr.Fields, "email")
		assert.Contains(t, appErr.Fields, "username")
	})

	t.Run("slug tag rejects spaces and symbols", func(t *testing.T) {
		for _, username := range []string{"has space", "semi;colon", "ужас"} {
			err := ValidateStruct(signupForm{Email: "a@b.com", Username: username})
			var appErr *AppError
			require.ErrorAs(t, err, &appErr, "username %q", username)
			assert.Contains(t, appErr.Fields, "username")
		}
	})

	t.Run("slug tag allows hyphens and underscores", func(t *testing.T) {
		err := ValidateStruct(signupForm{Email: "a@b.com", Username: "some-user_42"})
		assert.NoError(t, err)
	})

	t.Run("range tags produce bounds messages", func(t *testing.T) {
		err := ValidateStruct(scoreForm{Score: 11})

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		require.Contains(t, appErr.Fields, "score")
		assert.Contains(t, appErr.Fields["score"][0], "10")
	})
}
