package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	models "inventory-billing/model"
	pkgerrors "inventory-billing/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileCatalogLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Record.json")
	writeFile(t, path, `{
    "1001": {"Name": "Test Product 1", "Price": 100, "Quantity": 10},
    "1002": {"Name": "Test Product 2", "Price": 200.5, "Quantity": 5}
}`)

	catalog, err := NewFileCatalog(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "Test Product 1", catalog["1001"].Name)
	assert.Equal(t, "1001", catalog["1001"].ID)
	assert.True(t, catalog["1002"].Price.Equal(decimal.RequireFromString("200.5")))
	assert.Equal(t, 5, catalog["1002"].Quantity)
}

func TestFileCatalogLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "Record.json")

	_, err := NewFileCatalog(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)
	assert.False(t, pkgerrors.IsFatal(err))
}

func TestFileCatalogLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: `{"1001": `},
		{name: "empty file", content: ``},
		{name: "top level array", content: `[{"Name": "Pen"}]`},
		{name: "fractional quantity", content: `{"1001": {"Name": "Pen", "Price": 1, "Quantity": 1.5}}`},
		{name: "negative quantity", content: `{"1001": {"Name": "Pen", "Price": 1, "Quantity": -2}}`},
		{name: "negative price", content: `{"1001": {"Name": "Pen", "Price": -1, "Quantity": 2}}`},
		{name: "null document", content: `null`},
		{name: "null record", content: `{"1001": null}`},
		{name: "only price", content: `{"1001": {"Price": 3}}`},
		{name: "missing quantity", content: `{"1001": {"Name": "Pen", "Price": 1}}`},
		{name: "missing price", content: `{"1001": {"Name": "Pen", "Quantity": 4}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Record.json")
			writeFile(t, path, tt.content)

			_, err := NewFileCatalog(path).Load(context.Background())
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeMalformedData), "got %v", err)
			assert.True(t, pkgerrors.IsFatal(err))
		})
	}
}

func TestFileCatalogLoad_MissingFieldsListed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Record.json")
	writeFile(t, path, `{"1001": {"Price": 3}}`)

	_, err := NewFileCatalog(path).Load(context.Background())
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeMalformedData, coded.Code())
	assert.Equal(t, map[string]string{"Name": "required", "Quantity": "required"}, coded.Details())
}

func TestFileCatalogLoad_EmptyObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Record.json")
	writeFile(t, path, `{}`)

	catalog, err := NewFileCatalog(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalog)
	assert.NotNil(t, catalog)
}

func TestFileCatalogPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "Record.json")
	fc := NewFileCatalog(path)

	seed := models.Catalog{
		"1001": {ID: "1001", Name: "Pen", Price: decimal.NewFromInt(10), Quantity: 2},
		"1002": {ID: "1002", Name: "Notebook", Price: decimal.RequireFromString("42.75"), Quantity: 0},
	}
	require.NoError(t, fc.Persist(context.Background(), seed))

	loaded, err := fc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, len(seed))
	for id, want := range seed {
		got := loaded[id]
		require.NotNil(t, got, id)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.True(t, want.Price.Equal(got.Price), "%s price %s != %s", id, got.Price, want.Price)
		assert.Equal(t, want.Quantity, got.Quantity)
	}
}

func TestFileCatalogPersistOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Record.json")
	fc := NewFileCatalog(path)
	ctx := context.Background()

	require.NoError(t, fc.Persist(ctx, models.Catalog{
		"1": {ID: "1", Name: "a", Price: decimal.NewFromInt(1), Quantity: 1},
		"2": {ID: "2", Name: "b", Price: decimal.NewFromInt(2), Quantity: 2},
	}))
	require.NoError(t, fc.Persist(ctx, models.Catalog{
		"3": {ID: "3", Name: "c", Price: decimal.NewFromInt(3), Quantity: 3},
	}))

	loaded, err := fc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Contains(t, loaded, "3")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Price": 3`)
	assert.Contains(t, string(raw), `"Quantity": 3`)
}
