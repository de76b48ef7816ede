package normalizer_test

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/tagwalk-client/internal/normalizer"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Streetstyle(t *testing.T) {
	t.Parallel()

	n := normalizer.New()

	raw := map[string]any{
		"slug": "street-1",
		"name": "Street 1",
		"city": map[string]any{"slug": "paris", "name": "Paris"},
		"designers": []any{
			map[string]any{"slug": "chanel", "name": "Chanel"},
			map[string]any{"slug": "dior", "name": "Dior"},
		},
		"tags": []any{},
	}

	streetstyle, err := normalizer.Decode[tagwalk.Streetstyle](n, raw, normalizer.KindStreetstyle)
	require.NoError(t, err)

	require.NotNil(t, streetstyle.City)
	assert.Equal(t, "paris", streetstyle.City.Slug)
	assert.Equal(t, "Paris", streetstyle.City.Name)
	assert.Nil(t, streetstyle.Season)

	require.Len(t, streetstyle.Designers, 2)
	assert.Equal(t, "chanel", streetstyle.Designers[0].Slug)
	assert.Equal(t, "dior", streetstyle.Designers[1].Slug)

	assert.NotNil(t, streetstyle.Tags)
	assert.Empty(t, streetstyle.Tags)

	// Absent lists are empty, never nil.
	assert.NotNil(t, streetstyle.Affiliations)
	assert.NotNil(t, streetstyle.Files)
	assert.NotNil(t, streetstyle.Individuals)
}

func TestDecode_ScalarsAndTimestamps(t *testing.T) {
	t.Parallel()

	n := normalizer.New()

	raw := map[string]any{
		"slug":       "chanel-look-1",
		"name":       "Chanel look 1",
		"status":     "enabled",
		"type":       "woman",
		"look":       "12",
		"position":   float64(3),
		"created_at": "2019-03-05T10:00:00+01:00",
		"updated_at": "2019-03-06 08:30:00",
		"unknown":    "ignored",
		"designer":   map[string]any{"slug": "chanel", "talent": "1"},
		"season":     nil,
		"files": []any{
			map[string]any{"filename": "look-1.jpg", "width": float64(800), "height": float64(1200)},
		},
	}

	media, err := normalizer.Decode[tagwalk.Media](n, raw, normalizer.KindMedia)
	require.NoError(t, err)

	assert.Equal(t, "chanel-look-1", media.Slug)
	assert.Equal(t, "enabled", media.Status)
	assert.Equal(t, 12, media.Look)
	assert.Equal(t, 3, media.Position)
	assert.True(t, media.CreatedAt.Equal(time.Date(2019, 3, 5, 9, 0, 0, 0, time.UTC)))
	assert.True(t, media.UpdatedAt.Equal(time.Date(2019, 3, 6, 8, 30, 0, 0, time.UTC)))

	require.NotNil(t, media.Designer)
	assert.True(t, media.Designer.Talent)
	assert.Nil(t, media.Season)

	require.Len(t, media.Files, 1)
	assert.Equal(t, 800, media.Files[0].Width)
	assert.NotNil(t, media.Tags)
}

func TestDecodeBytes_Gallery(t *testing.T) {
	t.Parallel()

	n := normalizer.New()

	payload := []byte(`{
		"slug": "best-of-paris",
		"title": "Best of Paris",
		"medias": [{"slug": "m1", "city": {"slug": "paris"}, "tags": [{"slug": "red"}]}],
		"streetstyles": [{"slug": "s1", "affiliations": [{"slug": "img", "type": "agency"}]}]
	}`)

	gallery, err := normalizer.DecodeBytes[tagwalk.Gallery](n, payload, normalizer.KindGallery)
	require.NoError(t, err)

	assert.Equal(t, "Best of Paris", gallery.Title)
	require.Len(t, gallery.Medias, 1)
	assert.Equal(t, "paris", gallery.Medias[0].City.Slug)
	assert.Equal(t, "red", gallery.Medias[0].Tags[0].Slug)
	require.Len(t, gallery.Streetstyles, 1)
	assert.Equal(t, "agency", gallery.Streetstyles[0].Affiliations[0].Type)
	assert.NotNil(t, gallery.Files)
}

func TestDecodeList(t *testing.T) {
	t.Parallel()

	n := normalizer.New()

	cities, err := normalizer.DecodeList[tagwalk.City](n, []byte(`[{"slug":"paris"},{"slug":"milan"}]`), normalizer.KindCity)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "paris", cities[0].Slug)
	assert.Equal(t, "milan", cities[1].Slug)

	empty, err := normalizer.DecodeList[tagwalk.City](n, []byte(`[]`), normalizer.KindCity)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDecodeList_EmptyContainersOfTheWrongShape(t *testing.T) {
	t.Parallel()

	n := normalizer.New()

	payload := []byte(`[
		{"slug": "a", "city": [], "designers": [{"slug": "d1"}], "tags": {}},
		{"slug": "b"}
	]`)

	streetstyles, err := normalizer.DecodeList[tagwalk.Streetstyle](n, payload, normalizer.KindStreetstyle)
	require.NoError(t, err)
	require.Len(t, streetstyles, 2)

	first := streetstyles[0]
	assert.Equal(t, "a", first.Slug)
	assert.Nil(t, first.City)
	require.Len(t, first.Designers, 1)
	assert.Equal(t, "d1", first.Designers[0].Slug)
	assert.NotNil(t, first.Tags)
	assert.Empty(t, first.Tags)

	assert.Equal(t, "b", streetstyles[1].Slug)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	n := normalizer.New()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "unknown kind",
			run: func() error {
				_, err := n.Denormalize(map[string]any{}, normalizer.Kind("runway"))

				return err
			},
			wantErr: normalizer.ErrUnknownKind,
		},
		{
			name: "single field is not an object",
			run: func() error {
				_, err := normalizer.Decode[tagwalk.Media](n, map[string]any{"city": "paris"}, normalizer.KindMedia)

				return err
			},
			wantErr: normalizer.ErrInvalidPayload,
		},
		{
			name: "list field is not a list",
			run: func() error {
				_, err := normalizer.Decode[tagwalk.Streetstyle](n, map[string]any{"tags": "red"}, normalizer.KindStreetstyle)

				return err
			},
			wantErr: normalizer.ErrInvalidPayload,
		},
		{
			name: "single field is a non-empty list",
			run: func() error {
				_, err := normalizer.Decode[tagwalk.Media](n, map[string]any{"city": []any{"paris"}}, normalizer.KindMedia)

				return err
			},
			wantErr: normalizer.ErrInvalidPayload,
		},
		{
			name: "list field is a non-empty object",
			run: func() error {
				_, err := normalizer.Decode[tagwalk.Streetstyle](n, map[string]any{"tags": map[string]any{"slug": "red"}}, normalizer.KindStreetstyle)

				return err
			},
			wantErr: normalizer.ErrInvalidPayload,
		},
		{
			name: "list element is not an object",
			run: func() error {
				_, err := normalizer.Decode[tagwalk.Streetstyle](n, map[string]any{"tags": []any{"red"}}, normalizer.KindStreetstyle)

				return err
			},
			wantErr: normalizer.ErrInvalidPayload,
		},
		{
			name: "malformed JSON",
			run: func() error {
				_, err := normalizer.DecodeBytes[tagwalk.Media](n, []byte(`{"slug":`), normalizer.KindMedia)

				return err
			},
			wantErr: normalizer.ErrInvalidPayload,
		},
		{
			name: "array where an object is expected",
			run: func() error {
				_, err := normalizer.DecodeBytes[tagwalk.Media](n, []byte(`[]`), normalizer.KindMedia)

				return err
			},
			wantErr: normalizer.ErrInvalidPayload,
		},
		{
			name: "unparseable timestamp",
			run: func() error {
				_, err := normalizer.Decode[tagwalk.City](n, map[string]any{"created_at": "yesterday"}, normalizer.KindCity)

				return err
			},
			wantErr: normalizer.ErrInvalidPayload,
		},
		{
			name: "wrong target type",
			run: func() error {
				_, err := normalizer.Decode[tagwalk.Season](n, map[string]any{}, normalizer.KindCity)

				return err
			},
			wantErr: normalizer.ErrInvalidRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, tt.run(), tt.wantErr)
		})
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	type lookbook struct {
		Cover  *tagwalk.File  `json:"cover"`
		Pages  []tagwalk.File `json:"pages"`
		Author string         `json:"author"`
	}

	n := normalizer.New()

	require.ErrorIs(t, normalizer.Register[lookbook](n, "lookbook", normalizer.One("missing", normalizer.KindFile)), normalizer.ErrUnknownField)
	require.ErrorIs(t, normalizer.Register[lookbook](n, "lookbook", normalizer.Many("author", normalizer.KindFile)), normalizer.ErrInvalidRule)
	require.ErrorIs(t, normalizer.Register[lookbook](n, "lookbook", normalizer.One("pages", normalizer.KindFile)), normalizer.ErrInvalidRule)

	err := normalizer.Register[lookbook](n, "lookbook",
		normalizer.One("cover", normalizer.KindFile),
		normalizer.Many("pages", normalizer.KindFile),
	)
	require.NoError(t, err)

	book, err := normalizer.Decode[lookbook](n, map[string]any{
		"author": "Tagwalk",
		"cover":  map[string]any{"filename": "cover.jpg"},
		"pages":  []any{map[string]any{"filename": "p1.jpg"}},
	}, "lookbook")
	require.NoError(t, err)
	assert.Equal(t, "Tagwalk", book.Author)
	assert.Equal(t, "cover.jpg", book.Cover.Filename)
	require.Len(t, book.Pages, 1)
	assert.Equal(t, "p1.jpg", book.Pages[0].Filename)
}
