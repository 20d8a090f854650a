package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SiddharthNagaych-aigod/axel-guard-prod/catalog"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/content"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/crm"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/storage"
)

type stubRelay struct {
	lastLead crm.Lead
	result   crm.Result
}

func (s *stubRelay) Submit(_ context.Context, lead crm.Lead) crm.Result {
	s.lastLead = lead
	return s.result
}

func newTestAPI(t *testing.T) (*API, *stubRelay) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := content.New(storage.NewFileStore(t.TempDir()))
	relay := &stubRelay{result: crm.Result{Success: true, Message: "Details submitted successfully!"}}
	a, err := New(repo, relay)
	require.NoError(t, err)
	return a, relay
}

func do(t *testing.T, a *API, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	a, _ := newTestAPI(t)
	w := do(t, a, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "pong"}`, w.Body.String())
}

func TestProductsEndpoint(t *testing.T) {
	t.Run("rejects non-array payloads", func(t *testing.T) {
		a, _ := newTestAPI(t)
		for _, body := range []string{`{}`, `{"products": "nope"}`, `[1,2]`, `not json`} {
			w := do(t, a, http.MethodPost, "/api/products", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		}
	})

	t.Run("reorder persists 1-based positions", func(t *testing.T) {
		a, _ := newTestAPI(t)

		// AXG02 dragged above AXG01; old order values still attached.
		body := `{"reorder": true, "products": [
			{"product_code": "AXG02", "product_name": "Two", "order": 3},
			{"product_code": "AXG01", "product_name": "One", "order": 5}
		]}`
		w := do(t, a, http.MethodPost, "/api/products", body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": true, "message": "Products updated successfully"}`, w.Body.String())

		w = do(t, a, http.MethodGet, "/api/products", "")
		require.Equal(t, http.StatusOK, w.Code)

		var products []catalog.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		require.Len(t, products, 2)
		assert.Equal(t, "AXG02", products[0].ProductCode)
		assert.Equal(t, 1, products[0].Order)
		assert.Equal(t, "AXG01", products[1].ProductCode)
		assert.Equal(t, 2, products[1].Order)
	})

	t.Run("category filter", func(t *testing.T) {
		a, _ := newTestAPI(t)

		w := do(t, a, http.MethodPost, "/api/categories", `[
			{"name": "Camera", "val": "camera-systems", "subcategories": [{"name": "Indoor", "val": "indoor"}]}
		]`)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(t, a, http.MethodPost, "/api/products", `{"products": [
			{"product_code": "M1", "product_name": "MDVR", "product_type": "4CH MDVR"},
			{"product_code": "C1", "product_name": "Cam", "product_type": "Indoor"},
			{"product_code": "C2", "product_name": "Cam2", "product_type": "Indoor Camera"}
		]}`)
		require.Equal(t, http.StatusOK, w.Code)

		t.Run("legacy keyword", func(t *testing.T) {
			w := do(t, a, http.MethodGet, "/api/products?category=mdvr", "")
			var products []catalog.Product
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
			require.Len(t, products, 1)
			assert.Equal(t, "M1", products[0].ProductCode)
		})

		t.Run("dynamic strict", func(t *testing.T) {
			w := do(t, a, http.MethodGet, "/api/products?category=indoor", "")
			var products []catalog.Product
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
			require.Len(t, products, 1)
			assert.Equal(t, "C1", products[0].ProductCode)
		})
	})

	t.Run("delete", func(t *testing.T) {
		a, _ := newTestAPI(t)
		do(t, a, http.MethodPost, "/api/products", `{"products": [{"product_code": "AXG01", "product_name": "One"}]}`)

		assert.Equal(t, http.StatusBadRequest, do(t, a, http.MethodDelete, "/api/products", "").Code)
		assert.Equal(t, http.StatusOK, do(t, a, http.MethodDelete, "/api/products?code=AXG01", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, a, http.MethodDelete, "/api/products?code=AXG01", "").Code)
	})
}

func TestCategoriesEndpoint(t *testing.T) {
	a, _ := newTestAPI(t)

	t.Run("rejects non-array payloads", func(t *testing.T) {
		w := do(t, a, http.MethodPost, "/api/categories", `{"name": "Camera"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("round trip", func(t *testing.T) {
		w := do(t, a, http.MethodPost, "/api/categories", `[
			{"name": "MDVR", "val": "mdvr", "href": "/products?category=mdvr"}
		]`)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(t, a, http.MethodGet, "/api/categories", "")
		require.Equal(t, http.StatusOK, w.Code)

		var cats []catalog.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cats))
		require.Len(t, cats, 1)
		assert.Equal(t, "mdvr", cats[0].Val)
		assert.Equal(t, 1, cats[0].Order)
	})
}

func TestBlogEndpoint(t *testing.T) {
	a, _ := newTestAPI(t)

	t.Run("rejects non-array payloads", func(t *testing.T) {
		w := do(t, a, http.MethodPost, "/api/blog", `{"posts": 3}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("save, list and delete", func(t *testing.T) {
		w := do(t, a, http.MethodPost, "/api/blog", `{"posts": [
			{"slug": "road-safety", "title": "Road Safety", "date": "2024-05-01T00:00:00Z", "author": "Team", "content": "<p>hi</p>"}
		]}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(t, a, http.MethodGet, "/api/blog", "")
		var posts []catalog.BlogPost
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, 1, posts[0].Order)

		assert.Equal(t, http.StatusBadRequest, do(t, a, http.MethodDelete, "/api/blog", "").Code)
		assert.Equal(t, http.StatusOK, do(t, a, http.MethodDelete, "/api/blog?id=road-safety", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, a, http.MethodDelete, "/api/blog?id=road-safety", "").Code)
	})
}

func TestCommentsEndpoint(t *testing.T) {
	a, _ := newTestAPI(t)

	t.Run("missing fields", func(t *testing.T) {
		w := do(t, a, http.MethodPost, "/api/blog/road-safety/comments", `{"name": "Asha"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("add and list", func(t *testing.T) {
		w := do(t, a, http.MethodPost, "/api/blog/road-safety/comments", `{"name": "Asha", "content": "Great read"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = do(t, a, http.MethodGet, "/api/blog/road-safety/comments", "")
		require.Equal(t, http.StatusOK, w.Code)

		var comments []catalog.Comment
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
		require.Len(t, comments, 1)
		assert.Equal(t, "Asha", comments[0].Name)
		assert.NotEmpty(t, comments[0].ID)
		assert.NotEmpty(t, comments[0].Date)
	})
}

func TestLeadsEndpoint(t *testing.T) {
	a, relay := newTestAPI(t)

	t.Run("requires name and mobile", func(t *testing.T) {
		w := do(t, a, http.MethodPost, "/api/leads", `{"email": "x@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("relays to the CRM", func(t *testing.T) {
		w := do(t, a, http.MethodPost, "/api/leads", `{
			"name": "Asha", "mobile": "9999999999", "email": "x@example.com",
			"subject": "Dashcam", "message": "Quote please", "source": "Contact Page"
		}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": true, "message": "Details submitted successfully!"}`, w.Body.String())
		assert.Equal(t, "Asha", relay.lastLead.Name)
		assert.Equal(t, "Dashcam", relay.lastLead.Subject)
	})
}

func TestContentEndpoint(t *testing.T) {
	a, _ := newTestAPI(t)
	do(t, a, http.MethodPost, "/api/products", `{"products": [{"product_code": "AXG01", "product_name": "One"}]}`)

	w := do(t, a, http.MethodGet, "/api/content", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got catalog.Content
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Products, 1)
	assert.NotNil(t, got.Clients)
	assert.NotNil(t, got.Services)
}
