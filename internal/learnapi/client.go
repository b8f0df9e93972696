// Package learnapi is a client for the learning platform's student and
// teacher endpoints.
package learnapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnauthorized = errors.New("not authorized")
	ErrNotFound     = errors.New("not found")
)

// StatusError is returned for other non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// TokenSource supplies the bearer token.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Client calls the platform API at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource
}

// New returns a client with a timeout-bound HTTP client.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Tokens:  tokens,
	}
}

// Profile returns the signed-in student's own profile.
func (c *Client) Profile(ctx context.Context) (Student, error) {
	var out Student
	err := c.do(ctx, http.MethodGet, "/api/learn/profile", nil, &out)
	return out, err
}

// ListStudents returns every student profile.
func (c *Client) ListStudents(ctx context.Context) ([]Student, error) {
	var out []Student
	err := c.do(ctx, http.MethodGet, "/api/learn/students", nil, &out)
	return out, err
}

// AvailableStudents returns platform users a teacher may enrol.
func (c *Client) AvailableStudents(ctx context.Context) ([]PlatformUser, error) {
	var out []PlatformUser
	err := c.do(ctx, http.MethodGet, "/api/learn/teacher/available-students", nil, &out)
	return out, err
}

// Roster returns student profiles merged with users that have none. A failed
// user listing leaves the profiles as they are.
func (c *Client) Roster(ctx context.Context) ([]Student, error) {
	students, err := c.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	users, err := c.AvailableStudents(ctx)
	if err != nil {
		return students, nil
	}
	return MergeRoster(students, users), nil
}

// LookupStudent finds a student or platform user by username.
func (c *Client) LookupStudent(ctx context.Context, username string) (Student, error) {
	var out Student
	err := c.do(ctx, http.MethodGet, "/api/learn/student/"+url.PathEscape(username), nil, &out)
	return out, err
}

// CreateStudent adds a student profile.
func (c *Client) CreateStudent(ctx context.Context, in StudentInput) error {
	return c.do(ctx, http.MethodPost, "/api/learn/teacher/student", in, nil)
}

// UpdateStudent replaces the profile of username.
func (c *Client) UpdateStudent(ctx context.Context, username string, in StudentInput) error {
	return c.do(ctx, http.MethodPut, "/api/learn/teacher/student/"+url.PathEscape(username), in, nil)
}

// DeleteStudent removes the profile of username.
func (c *Client) DeleteStudent(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodDelete, "/api/learn/teacher/student/"+url.PathEscape(username), nil, nil)
}

// ListSubjects returns the subject catalogue.
func (c *Client) ListSubjects(ctx context.Context) ([]Subject, error) {
	var out []Subject
	err := c.do(ctx, http.MethodGet, "/api/learn/subjects", nil, &out)
	return out, err
}

// SeedSubjects asks the server to create its default subjects.
func (c *Client) SeedSubjects(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/learn/subjects/seed", nil, nil)
}

// RecordMetrics stores a student's CGPA and arrears count.
func (c *Client) RecordMetrics(ctx context.Context, username string, cgpa float64, arrears int) error {
	q := url.Values{}
	q.Set("cgpa", strconv.FormatFloat(cgpa, 'f', -1, 64))
	q.Set("arrears", strconv.Itoa(arrears))
	path := "/api/learn/teacher/metrics/" + url.PathEscape(username) + "?" + q.Encode()
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Tokens != nil {
		if tok, ok := c.Tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
