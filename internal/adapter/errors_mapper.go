package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapAuthResponse turns the final response of an auth check into an error.
func mapAuthResponse(resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusTemporaryRedirect:
		return fmt.Errorf("%w: %s", ErrTooManyRedirects, strings.TrimSpace(string(resp.Body())))
	case http.StatusFound:
		return ErrRedirected
	}

	if strings.Contains(resp.Header().Get("Content-Type"), "json") {
		var body struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Detail != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, body.Detail)
		}
	}

	return fmt.Errorf("%w with code %d: %s", ErrUnauthorized, resp.StatusCode(), http.StatusText(resp.StatusCode()))
}
