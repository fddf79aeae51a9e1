package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, "asc", p.SortDir)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	p := FromRequest(req, "id", "product_name")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, "id", p.SortBy)
	assert.Equal(t, "asc", p.SortDir)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_CustomValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?page=3&per_page=50&sort_by=product_name&sort_dir=desc", nil)
	p := FromRequest(req, "id", "product_name")

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PerPage)
	assert.Equal(t, "product_name", p.SortBy)
	assert.Equal(t, "desc", p.SortDir)
	assert.Equal(t, 100, p.Offset)
}

func TestFromRequest_InvalidPage(t *testing.T) {
	for _, raw := range []string{"-1", "0", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/products?page="+raw, nil)
		p := FromRequest(req)
		assert.Equal(t, 1, p.Page, "page=%s should fall back to default", raw)
	}
}

func TestFromRequest_PerPageCap(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?per_page=500", nil)
	p := FromRequest(req)
	assert.Equal(t, 20, p.PerPage)

	req = httptest.NewRequest(http.MethodGet, "/products?per_page=100", nil)
	p = FromRequest(req)
	assert.Equal(t, 100, p.PerPage)
}

func TestFromRequest_SortWhitelist(t *testing.T) {
	// An unknown column falls back to the first whitelisted one.
	req := httptest.NewRequest(http.MethodGet, "/products?sort_by=password_hash", nil)
	p := FromRequest(req, "id", "product_name", "created_on")
	assert.Equal(t, "id", p.SortBy)

	// No whitelist means no sorting at all.
	p = FromRequest(req)
	assert.Empty(t, p.SortBy)
}

func TestFromRequest_SortDirOnlyAcceptsDesc(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?sort_dir=DESC", nil)
	p := FromRequest(req, "id")
	assert.Equal(t, "desc", p.SortDir)

	req = httptest.NewRequest(http.MethodGet, "/products?sort_dir=sideways", nil)
	p = FromRequest(req, "id")
	assert.Equal(t, "asc", p.SortDir)
}

func TestNewResult_Math(t *testing.T) {
	params := Params{Page: 2, PerPage: 10}
	result := NewResult([]string{"a", "b"}, 25, params)

	assert.Equal(t, 25, result.TotalCount)
	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasNext)
	assert.True(t, result.HasPrev)
}

func TestNewResult_LastPage(t *testing.T) {
	params := Params{Page: 3, PerPage: 10}
	result := NewResult([]string{"a"}, 25, params)

	assert.False(t, result.HasNext)
	assert.True(t, result.HasPrev)
}

func TestNewResult_ExactMultiple(t *testing.T) {
	params := Params{Page: 1, PerPage: 10}
	result := NewResult([]string{"a"}, 20, params)

	assert.Equal(t, 2, result.TotalPages)
	assert.True(t, result.HasNext)
	assert.False(t, result.HasPrev)
}

func TestNewResult_NilDataBecomesEmptySlice(t *testing.T) {
	params := Params{Page: 1, PerPage: 10}
	result := NewResult[string](nil, 0, params)

	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	assert.Zero(t, result.TotalPages)
}
