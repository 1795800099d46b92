package adapter

import "errors"

var (
	// ErrTooManyRedirects is returned when every HTTP 307 retry was spent.
	ErrTooManyRedirects = errors.New("received too many HTTP 307 Temporary Redirects")
	// ErrRedirected is returned on HTTP 302, which usually means the API URL
	// is missing its trailing /api/.
	ErrRedirected = errors.New("server responded with a 302 Redirect. Did you forget the '/api/' on the end of your API URL?")
	// ErrUnauthorized is returned when the server rejects the request.
	ErrUnauthorized = errors.New("authorization failed")
	// ErrNotAPIURL flags an API URL that does not end in /api/.
	ErrNotAPIURL = errors.New("the API url usually ends in '/api/'")
)
