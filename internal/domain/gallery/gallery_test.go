package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database/dbtest"
	"github.com/petsalon/salon-api/internal/pkg/storage"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newLocalStorage(t *testing.T) (*storage.LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := storage.NewLocalStorage(dir, "http://localhost:5000/uploads")
	require.NoError(t, err)
	return st, dir
}

func TestListSeededGallery(t *testing.T) {
	svc := NewService(NewRepository(dbtest.NewSeeded(t)), nil, nil)
	ctx := context.Background()

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	dogs := "dogs"
	items, err := svc.List(ctx, &dogs)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, "dogs", it.Category)
	}
}

func TestFeaturedFirstAndInactiveHidden(t *testing.T) {
	db := dbtest.NewSeeded(t)
	svc := NewService(NewRepository(db), nil, nil)
	ctx := context.Background()

	id, err := svc.Add(ctx, &AddRequest{Title: "Йорк после стрижки", Category: "dogs", Featured: true}, nil)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "UPDATE gallery SET active = ? WHERE category = ?", false, "spa")
	require.NoError(t, err)

	items, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, id, items[0].ID)
	assert.True(t, items[0].Featured)
	assert.Nil(t, items[0].ImageURL)
	for _, it := range items {
		assert.NotEqual(t, "spa", it.Category)
	}
}

func TestAddWithImageUploadsNormalisedFile(t *testing.T) {
	st, dir := newLocalStorage(t)
	svc := NewService(NewRepository(dbtest.New(t)), st, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, &AddRequest{Title: "Шпиц", Category: "dogs"}, bytes.NewReader(pngBytes(t, 40, 30)))
	require.NoError(t, err)

	items, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].ImageURL)

	url := *items[0].ImageURL
	assert.True(t, strings.HasPrefix(url, "http://localhost:5000/uploads/gallery/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	key := strings.TrimPrefix(url, "http://localhost:5000/uploads/")
	exists, err := st.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.NoError(t, err)
}

func TestAddRejectsBadImages(t *testing.T) {
	st, _ := newLocalStorage(t)
	svc := NewService(NewRepository(dbtest.New(t)), st, nil)
	ctx := context.Background()
	req := &AddRequest{Title: "X", Category: "cats"}

	_, err := svc.Add(ctx, req, strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, ErrImageType)

	_, err = svc.Add(ctx, req, bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrImageEmpty)

	// PNG signature with a truncated body
	_, err = svc.Add(ctx, req, bytes.NewReader([]byte("\x89PNG\r\n\x1a\n\x00\x00")))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	items, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddValidation(t *testing.T) {
	svc := NewService(NewRepository(dbtest.New(t)), nil, nil)

	_, err := svc.Add(context.Background(), &AddRequest{Category: "dogs"}, nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Add(context.Background(), &AddRequest{Title: "X"}, nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAddWithoutStorage(t *testing.T) {
	svc := NewService(NewRepository(dbtest.New(t)), nil, nil)

	_, err := svc.Add(context.Background(), &AddRequest{Title: "X", Category: "dogs"}, bytes.NewReader(pngBytes(t, 2, 2)))
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

type failingRepo struct{}

func (failingRepo) ListActive(context.Context, *string) ([]*Item, error) { return nil, nil }

func (failingRepo) Create(context.Context, *Item) (int64, error) {
	return 0, apperror.Storage("gallery.create", errors.New("disk full"))
}

func TestAddRemovesUploadWhenInsertFails(t *testing.T) {
	st, dir := newLocalStorage(t)
	svc := NewService(failingRepo{}, st, nil)

	_, err := svc.Add(context.Background(), &AddRequest{Title: "X", Category: "dogs"}, bytes.NewReader(pngBytes(t, 4, 4)))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrStorage)

	entries, err := os.ReadDir(filepath.Join(dir, "gallery"))
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestHTTPList(t *testing.T) {
	svc := NewService(NewRepository(dbtest.NewSeeded(t)), nil, nil)
	r := chi.NewRouter()
	r.Mount("/api/gallery", NewHandler(svc).Routes())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gallery?category=cats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    []ItemResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Стрижка кота", body.Data[0].Title)
}
