package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/naturecards/social/internal/models"
	"github.com/naturecards/social/pkg/apperrors"
	"github.com/sirupsen/logrus"
)

// Client talks to the NatureCards backend over its REST surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchUser retrieves a user document by id.
func (c *Client) FetchUser(ctx context.Context, userID string) (*models.UserDocument, error) {
	return c.fetch(ctx, "/db/user/"+url.PathEscape(userID))
}

// FetchUserByUsername resolves a username to its user document.
func (c *Client) FetchUserByUsername(ctx context.Context, username string) (*models.UserDocument, error) {
	return c.fetch(ctx, "/db/findUsername/"+url.PathEscape(username))
}

// WriteUser replaces the stored document with doc.
func (c *Client) WriteUser(ctx context.Context, doc *models.UserDocument) error {
	if err := checkWritable(doc); err != nil {
		return err
	}
	body := doc.Clone()
	body.Normalize()
	return c.do(ctx, http.MethodPut, "/db/user/"+url.PathEscape(doc.ID), body, nil)
}

func (c *Client) fetch(ctx context.Context, path string) (*models.UserDocument, error) {
	var doc models.UserDocument
	if err := c.do(ctx, http.MethodGet, path, nil, &doc); err != nil {
		return nil, err
	}
	if doc.ID == "" {
		return nil, apperrors.NotFound("user not found")
	}
	doc.Normalize()
	return &doc, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewAPIError(apperrors.CodeValidation, "failed to encode user document", http.StatusBadRequest, err.Error())
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Network(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"error":  err,
		}).Warn("Document store request failed")
		return apperrors.Network(err, fmt.Sprintf("%s %s failed", method, path))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		details := strings.TrimSpace(string(snippet))
		switch resp.StatusCode {
		case http.StatusNotFound:
			return apperrors.NewAPIError(apperrors.CodeNotFound, "user not found", http.StatusNotFound, details)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return apperrors.NewAPIError(apperrors.CodeValidation, "document store rejected the document", http.StatusBadRequest, details)
		default:
			return apperrors.NewAPIError(apperrors.CodeNetwork,
				fmt.Sprintf("%s %s returned %d", method, path, resp.StatusCode), http.StatusBadGateway, details)
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Network(err, "invalid response from document store")
	}
	return nil
}
