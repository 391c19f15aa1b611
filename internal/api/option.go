package api

import (
	"net/http"
	"net/http/httputil"
	"regexp"

	"github.com/hilthontt/lobbycli/internal/infrastructure/logging"
)

type Option func(*Client)

// MiddlewareNext continues the request chain.
type MiddlewareNext func(*http.Request) (*http.Response, error)

// Middleware wraps every outgoing request.
type Middleware func(*http.Request, MiddlewareNext) (*http.Response, error)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithMiddleware(mw Middleware) Option {
	return func(c *Client) {
		c.middlewares = append(c.middlewares, mw)
	}
}

var sensitiveHeaderRegex = regexp.MustCompile(`(?i)(Authorization|Cookie|Set-Cookie|X-Api-Key): .+`)

func redactSensitiveHeaders(s string) string {
	return sensitiveHeaderRegex.ReplaceAllString(s, "$1: [REDACTED]")
}

// WithDebugLog dumps every request and response to the logger with
// session cookies redacted.
func WithDebugLog(log logging.Logger) Option {
	return WithMiddleware(func(r *http.Request, next MiddlewareNext) (*http.Response, error) {
		if dump, err := httputil.DumpRequestOut(r, true); err == nil {
			log.Debugf("REQUEST:\n%s", redactSensitiveHeaders(string(dump)))
		}

		res, err := next(r)

		if res != nil {
			if dump, dumpErr := httputil.DumpResponse(res, true); dumpErr == nil {
				log.Debugf("RESPONSE:\n%s", redactSensitiveHeaders(string(dump)))
			}
		}
		if err != nil {
			log.Debugf("REQUEST ERROR: %v", err)
		}

		return res, err
	})
}
