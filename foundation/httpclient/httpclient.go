// Package httpclient provides basic http functions
package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds requests made through this package when the caller
// does not provide one.
const DefaultTimeout = 10 * time.Second

// GetJSON performs a GET against url and decodes the JSON response body into
// out. Any non-200 status is an error.
func GetJSON(url string, timeout time.Duration, out interface{}) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := http.Client{Timeout: timeout}

	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}
