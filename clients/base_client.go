package clients

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// BaseClient is a thin HTTP client shared by API client packages. It carries
// a fixed header set (the quiz API authenticates every call with a static
// key header) and reports the response status to the caller instead of
// deciding for it: most quiz endpoints treat non-success as "no data" rather
// than as a failure.
type BaseClient struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

func NewBaseClient(baseURL string) *BaseClient {
	return &BaseClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}
}

func (c *BaseClient) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *BaseClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// BaseURL returns the configured root of the API.
func (c *BaseClient) BaseURL() string {
	return c.baseURL
}

// MakeRequest performs an HTTP request and returns the response body and
// status code. The error is non-nil only for transport-level failures; a
// non-2xx response is returned to the caller undisturbed.
func (c *BaseClient) MakeRequest(method, endpoint string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequest(method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return responseBody, resp.StatusCode, nil
}

func (c *BaseClient) Get(endpoint string) ([]byte, int, error) {
	return c.MakeRequest("GET", endpoint, nil)
}

func (c *BaseClient) Post(endpoint string, body io.Reader) ([]byte, int, error) {
	return c.MakeRequest("POST", endpoint, body)
}
