package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petsalon/salon-api/internal/config"
	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database/dbtest"
	"github.com/petsalon/salon-api/internal/pkg/storage"
)

func newApp(t *testing.T) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	return &app{db: dbtest.New(t), cfg: &config.Config{StorageDriver: "local"}, out: &out}, &out
}

func TestUsageErrors(t *testing.T) {
	a, _ := newApp(t)

	tests := [][]string{
		nil,
		{"bogus"},
		{"reviews"},
		{"reviews", "delete", "1"},
		{"reviews", "approve", "abc"},
		{"contacts", "respond", "0"},
		{"gallery"},
		{"gallery", "add", "-nope"},
		{"migrate", "-seed=maybe"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			assert.ErrorIs(t, a.run(context.Background(), args), errUsage)
		})
	}
}

func TestMigrateSeed(t *testing.T) {
	a, out := newApp(t)
	ctx := context.Background()

	require.NoError(t, a.run(ctx, []string{"migrate", "-seed"}))
	assert.Contains(t, out.String(), "up to date")

	var n int
	require.NoError(t, a.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM services"))
	assert.Equal(t, 12, n)
}

func TestApproveReview(t *testing.T) {
	a, out := newApp(t)
	ctx := context.Background()

	res, err := a.db.ExecContext(ctx, "INSERT INTO reviews (author_name, rating, review_text) VALUES ('Аня', 5, 'Отлично')")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	require.NoError(t, a.run(ctx, []string{"reviews", "approve", "1"}))
	assert.Contains(t, out.String(), "review 1 approved")

	var approved bool
	require.NoError(t, a.db.GetContext(ctx, &approved, "SELECT approved FROM reviews WHERE id = ?", id))
	assert.True(t, approved)

	assert.ErrorIs(t, a.run(ctx, []string{"reviews", "approve", "99"}), apperror.ErrNotFound)
}

func TestRespondContact(t *testing.T) {
	a, out := newApp(t)
	ctx := context.Background()

	_, err := a.db.ExecContext(ctx, "INSERT INTO contacts (name, email, message) VALUES ('Олег', 'o@example.com', 'Привет')")
	require.NoError(t, err)

	require.NoError(t, a.run(ctx, []string{"contacts", "respond", "1"}))
	assert.Contains(t, out.String(), "contact 1 marked as responded")
}

func TestGalleryAdd(t *testing.T) {
	a, out := newApp(t)
	ctx := context.Background()

	uploads := t.TempDir()
	a.newStorage = func(context.Context, storage.Config) (storage.Storage, error) {
		return storage.NewLocalStorage(uploads, "http://localhost:5000/uploads")
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	imgPath := filepath.Join(t.TempDir(), "corgi.png")
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	require.NoError(t, a.run(ctx, []string{"gallery", "add", "-title", "Корги", "-category", "dogs", "-featured", "-image", imgPath}))
	assert.Contains(t, out.String(), "gallery item 1 added")

	var url string
	require.NoError(t, a.db.GetContext(ctx, &url, "SELECT image_url FROM gallery WHERE id = 1"))
	assert.True(t, strings.HasPrefix(url, "http://localhost:5000/uploads/gallery/"), url)

	files, err := filepath.Glob(filepath.Join(uploads, "gallery", "*"))
	require.NoError(t, err)
	assert.Len(t, files, 1)

	t.Run("without image", func(t *testing.T) {
		require.NoError(t, a.run(ctx, []string{"gallery", "add", "-title", "Кот", "-category", "cats"}))
	})

	t.Run("missing title", func(t *testing.T) {
		assert.ErrorIs(t, a.run(ctx, []string{"gallery", "add", "-category", "cats"}), apperror.ErrValidation)
	})
}
