// Package clubclient is a typed client for the clubhub REST API.
package clubclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"clubhub/internal/dto"
	"clubhub/internal/posters"
)

const DefaultBaseURL = "http://localhost:5000"

// APIError is a non-2xx response. Message is the server's "message" field
// when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) RegisterClub(ctx context.Context, r dto.RegisterClubRequest) (string, error) {
	var out dto.MessageResponse
	err := c.postJSON(ctx, "/api/club/register", r, &out)
	return out.Message, err
}

func (c *Client) RegisterStudent(ctx context.Context, r dto.RegisterStudentRequest) (string, error) {
	var out dto.MessageResponse
	err := c.postJSON(ctx, "/api/student/register", r, &out)
	return out.Message, err
}

func (c *Client) LoginClub(ctx context.Context, r dto.ClubLoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.postJSON(ctx, "/api/club/login", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LoginStudent(ctx context.Context, r dto.StudentLoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.postJSON(ctx, "/api/student/login", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListEvents(ctx context.Context) ([]dto.EventView, error) {
	var out dto.ListEventsResponse
	if err := c.do(ctx, http.MethodGet, "/api/events", "", nil, "", &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*dto.ProfileClaims, error) {
	var out dto.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/profile", token, nil, "", &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Poster is an image to attach to a new event.
type Poster struct {
	Filename string
	Body     io.Reader
}

// CreateEvent submits the event as multipart/form-data.
func (c *Client) CreateEvent(ctx context.Context, token string, r dto.CreateEventRequest, poster *Poster) (*dto.CreateEventResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"title", r.Title},
		{"category", r.Category},
		{"description", r.Description},
		{"dateTime", r.DateTime},
		{"location", r.Location},
		{"registrationLink", r.RegistrationLink},
		{"tags", r.Tags},
		{"maxParticipants", r.MaxParticipants},
		{"requirements", r.Requirements},
		{"contactEmail", r.ContactEmail},
		{"contactPhone", r.ContactPhone},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if poster != nil {
		h := make(textproto.MIMEHeader)
		name := filepath.Base(poster.Filename)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="poster"; filename=%q`, name))
		h.Set("Content-Type", posters.ContentType(name))
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, poster.Body); err != nil {
			return nil, fmt.Errorf("read poster: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out dto.CreateEventResponse
	if err := c.do(ctx, http.MethodPost, "/api/events", token, &buf, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "", bytes.NewReader(data), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg dto.MessageResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&msg); err == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
