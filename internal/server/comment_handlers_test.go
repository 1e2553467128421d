package server

import (
	"net/http"
	"testing"

	"photostream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	env := setupTestServer(t)
	owner := env.createUser(t, "owner")
	commenter := env.createUser(t, "commenter")
	image := env.createImage(t, owner.ID, "commented")
	auth := env.authHeader(t, commenter)

	t.Run("Success", func(t *testing.T) {
		resp, err := env.app.Test(postJSON(t, "/api/images/"+itoa(image.ID)+"/comments", map[string]string{
			"text": "great shot",
		}, auth))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var view models.CommentView
		decodeJSON(t, resp, &view)
		assert.Equal(t, "great shot", view.Text)
		assert.Equal(t, "commenter", view.CommenterName)

		// The denormalized counter follows.
		var img models.Image
		require.NoError(t, env.db.First(&img, image.ID).Error)
		assert.Equal(t, 1, img.CommentCount)
	})

	t.Run("Blank Text", func(t *testing.T) {
		resp, err := env.app.Test(postJSON(t, "/api/images/"+itoa(image.ID)+"/comments", map[string]string{
			"text": "   ",
		}, auth))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing Image", func(t *testing.T) {
		resp, err := env.app.Test(postJSON(t, "/api/images/9999/comments", map[string]string{
			"text": "hello",
		}, auth))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetComments(t *testing.T) {
	env := setupTestServer(t)
	owner := env.createUser(t, "owner")
	commenter := env.createUser(t, "commenter")
	image := env.createImage(t, owner.ID, "discussed")

	for _, text := range []string{"first", "second"} {
		require.NoError(t, env.db.Create(&models.Comment{
			ImageID: image.ID, UserID: commenter.ID, Text: text,
		}).Error)
	}

	resp, err := env.app.Test(getReq("/api/images/" + itoa(image.ID) + "/comments"))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []models.CommentView
	decodeJSON(t, resp, &views)
	require.Len(t, views, 2)
	assert.Equal(t, "first", views[0].Text)
	assert.Equal(t, "second", views[1].Text)
	assert.Equal(t, "commenter", views[0].CommenterName)
}

func TestGetComments_MissingImageYieldsEmpty(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.app.Test(getReq("/api/images/9999/comments"))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []models.CommentView
	decodeJSON(t, resp, &views)
	assert.Empty(t, views)
}
