package smoketest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTP status code constants.
const (
	statusOK                  = 200
	statusConflict            = 409
	statusUnprocessableEntity = 422
)

// outcome classifies one submission response.
type outcome string

const (
	outcomeAccepted outcome = "accepted"
	outcomeAPIError outcome = "api_error"
	outcomeRejected outcome = "rejected"
	outcomeConflict outcome = "conflict"
	outcomeFailed   outcome = "failed"
)

// httpClient wraps http.Client with a timeout. No cookie jar: each request
// starts its own form session.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

func (c *httpClient) postJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// fetchVacancies reads the offered positions from the service.
func (c *httpClient) fetchVacancies(ctx context.Context, baseURL string) ([]string, error) {
	resp, err := c.get(ctx, baseURL+"/api/vacancies")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != statusOK {
		return nil, fmt.Errorf("vacancies: unexpected status %d", resp.StatusCode)
	}
	var body struct {
		Vacancies []string `json:"vacancies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("vacancies: %w", err)
	}
	if len(body.Vacancies) == 0 {
		return nil, fmt.Errorf("vacancies: empty list")
	}
	return body.Vacancies, nil
}

// submitOne posts s and classifies the response.
func (c *httpClient) submitOne(ctx context.Context, url string, s Submission) (outcome, Response) {
	var r Response
	resp, err := c.postJSON(ctx, url, s)
	if err != nil {
		return outcomeFailed, r
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed, r
	}

	switch resp.StatusCode {
	case statusOK:
		if json.Unmarshal(body, &r) != nil || r.Status == nil {
			return outcomeFailed, r
		}
		if *r.Status == "success" {
			return outcomeAccepted, r
		}
		return outcomeAPIError, r
	case statusUnprocessableEntity:
		_ = json.Unmarshal(body, &r)
		return outcomeRejected, r
	case statusConflict:
		return outcomeConflict, r
	default:
		return outcomeFailed, r
	}
}
