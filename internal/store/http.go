package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/frederic5962/bill-app/internal/domain"
	"github.com/frederic5962/bill-app/internal/kv"
)

// Client talks to the remote store over HTTP. Authenticated endpoints
// attach the access token previously persisted by the session manager.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Sessions kv.Store
}

func NewClient(baseURL string, sessions kv.Store) *Client {
	return &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		HTTP:     http.DefaultClient,
		Sessions: sessions,
	}
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out AuthResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, user NewUser) error {
	body, err := json.Marshal(user)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/users", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *Client) ListBills(ctx context.Context) ([]domain.Bill, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/bills", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(ctx, req)

	var out []domain.Bill
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBill(ctx context.Context, upload FileUpload) (*CreateBillResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", upload.FileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, err
	}
	if err := w.WriteField("email", upload.Email); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/bills", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(ctx, req)

	var out CreateBillResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBill(ctx context.Context, id string, bill domain.Bill) error {
	body, err := json.Marshal(bill)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.BaseURL+"/bills/"+id, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(ctx, req)

	return c.do(req, nil)
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.Sessions == nil {
		return
	}
	token, err := c.Sessions.Get(ctx, kv.KeyJWT)
	if err != nil || token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func (c *Client) do(req *http.Request, out any) error {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return &HTTPError{Status: res.StatusCode, Body: string(body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// HTTPError is returned for any non-2xx remote store response.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return "remote store request failed: status " + strconv.Itoa(e.Status)
}
