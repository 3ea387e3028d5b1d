package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"_id":"c1","name":" Soups ","image":{"url":"https://img/soups.png"},"subcategories":[{"_id":"s1","name":"Pepper"}]},
			{"_id":"c2","name":"Rice","image":"https://img/rice.png"},
			{"id":"c3","name":"Drinks","image":null}
		]}`))
	})
	mux.HandleFunc("/menu-items", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"a","name":"Egusi","price":2000,"category":{"name":"Soups"}},
			{"_id":"b","name":"Zobo","price":"450.5","category":{"name":"Drinks","subcategory":"Cold"},"image":"zobo.png"}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPProviderFetchCategories(t *testing.T) {
	srv := newCatalogServer(t)
	provider := NewHTTPProvider(srv.URL+"/", time.Second)

	categories, err := provider.FetchCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 3)

	assert.Equal(t, "c1", categories[0].ID)
	assert.Equal(t, "Soups", categories[0].Name)
	require.NotNil(t, categories[0].Image)
	assert.Equal(t, "https://img/soups.png", categories[0].Image.URL)
	assert.True(t, categories[0].HasSubcategory("Pepper"))

	require.NotNil(t, categories[1].Image)
	assert.Equal(t, "https://img/rice.png", categories[1].Image.URL)

	assert.Equal(t, "c3", categories[2].ID)
	assert.Nil(t, categories[2].Image)
}

func TestHTTPProviderFetchMenuItems(t *testing.T) {
	srv := newCatalogServer(t)
	provider := NewHTTPProvider(srv.URL, time.Second)

	items, err := provider.FetchMenuItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "2000", items[0].Price.String())
	assert.Equal(t, "450.5", items[1].Price.String())
	assert.Equal(t, "Cold", items[1].Category.Subcategory)
	assert.Equal(t, "zobo.png", items[1].Image)
}

func TestHTTPProviderRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPProvider(srv.URL, time.Second).FetchCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
