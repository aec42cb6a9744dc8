package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frederic5962/bill-app/internal/domain"
	"github.com/frederic5962/bill-app/internal/kv"
)

func TestClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "johndoe@email.com", creds.Email)
		assert.Equal(t, "azerty", creds.Password)

		_ = json.NewEncoder(w).Encode(AuthResponse{JWT: "token-123"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, kv.NewMemory())
	res, err := c.Login(context.Background(), Credentials{Email: "johndoe@email.com", Password: "azerty"})
	require.NoError(t, err)
	assert.Equal(t, "token-123", res.JWT)
}

func TestClientLoginRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, kv.NewMemory())
	_, err := c.Login(context.Background(), Credentials{Email: "johndoe@email.com", Password: "wrong"})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
}

func TestClientListBillsSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bills", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]domain.Bill{
			{ID: "a", Date: "2023-03-15", Status: "pending"},
		})
	}))
	defer srv.Close()

	sessions := kv.NewMemory()
	require.NoError(t, sessions.Set(context.Background(), kv.KeyJWT, "token-123"))

	c := NewClient(srv.URL, sessions)
	out, err := c.ListBills(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestClientCreateBillMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/bills", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		assert.Equal(t, "employee@test.tld", r.FormValue("email"))

		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "receipt.png", fh.Filename)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CreateBillResponse{Key: "bill-1", FileURL: "/files/receipt.png"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, kv.NewMemory())
	res, err := c.CreateBill(context.Background(), FileUpload{
		FileName:    "receipt.png",
		ContentType: "image/png",
		Data:        []byte("img"),
		Email:       "employee@test.tld",
	})
	require.NoError(t, err)
	assert.Equal(t, "bill-1", res.Key)
	assert.Equal(t, "/files/receipt.png", res.FileURL)
}

func TestClientUpdateBill(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/bills/bill-1", r.URL.Path)

		var bill domain.Bill
		require.NoError(t, json.NewDecoder(r.Body).Decode(&bill))
		assert.Equal(t, "pending", bill.Status)

		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, kv.NewMemory())
	err := c.UpdateBill(context.Background(), "bill-1", domain.Bill{Name: "Billet", Status: "pending"})
	require.NoError(t, err)
}
