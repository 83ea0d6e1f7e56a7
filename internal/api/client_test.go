package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/session"
)

func TestBearerTransportSkipsAuthPaths(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(LoginResponse{Token: "t1"})
	}))
	defer srv.Close()

	tokens := session.NewHolder()
	tokens.Set("stale-token")
	client := NewClient(srv.URL, tokens)

	_, err := client.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Empty(t, authHeader, "auth endpoints must not carry the bearer header")
}

func TestBearerTransportAttachesToken(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Product{})
	}))
	defer srv.Close()

	tokens := session.NewHolder()
	tokens.Set("abc123")
	client := NewClient(srv.URL, tokens)

	_, err := client.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", authHeader)
}

func TestBearerTransportNoTokenNoHeader(t *testing.T) {
	var authHeader string
	var hadHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode([]model.Product{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, session.NewHolder())

	// The client does not pre-validate: the request goes out bare and the
	// server decides.
	_, err := client.Products(context.Background())
	require.NoError(t, err)
	assert.False(t, hadHeader, "got header %q", authHeader)
}

func TestHTTPErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid username or password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, session.NewHolder())

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	he, ok := apperrors.AsHTTP(err)
	require.True(t, ok, "want HTTPError, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid username or password", he.Body)
}

func TestDecodeErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, session.NewHolder())

	_, err := client.Products(context.Background())
	require.Error(t, err)

	var de *apperrors.DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestNetworkErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, session.NewHolder())

	_, err := client.Products(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err), "want NetworkError, got %T", err)
}

func TestProductsDecodesCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Mouse","price":"20","category":"Accessories"},
			{"id":2,"name":"Keyboard","price":"50","category":"Accessories"}
		]`))
	}))
	defer srv.Close()

	tokens := session.NewHolder()
	tokens.Set("t")
	client := NewClient(srv.URL, tokens)

	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Mouse", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(20)))
}
