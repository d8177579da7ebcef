// Package httpclient implements ports.Transport on go-resty. It attaches the
// bearer credential, normalizes error responses into *domain.APIError and
// handles authentication failures once, centrally.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Client implements ports.Transport.
type Client struct {
	http    *resty.Client
	creds   ports.CredentialStore
	session ports.LoginBoundary
	logger  ports.Logger
	expiry  singleflight.Group

	mu sync.Mutex
	// expired is the token whose session already ended, if any.
	expired *string
}

// errorBody is the error envelope the backend sends with non-2xx responses.
type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Errors  []domain.FieldError `json:"errors"`
}

// New creates a transport for cfg.BaseURL.
func New(cfg *domain.Config, creds ports.CredentialStore, session ports.LoginBoundary, logger ports.Logger) *Client {
	c := &Client{
		creds:   creds,
		session: session,
		logger:  logger,
	}

	c.http = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(c.authorize)

	return c
}

// authorize attaches the stored token. A missing token is not an error.
func (c *Client) authorize(_ *resty.Client, r *resty.Request) error {
	if token := c.creds.Token(); token != "" {
		r.SetAuthToken(token)
	}
	return nil
}

// Do sends req and returns the raw response on 2xx.
func (c *Client) Do(ctx context.Context, req *ports.Request) (*ports.Response, error) {
	r := c.http.R().
		SetContext(ctx).
		SetError(&errorBody{})

	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}
	if req.Upload != nil {
		r.SetFileReader(req.Upload.Field, req.Upload.FileName, req.Upload.Reader)
	}
	if req.ResponseType == ports.ResponseJSON && req.Result != nil {
		r.SetResult(req.Result)
	}

	start := time.Now()
	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		return nil, c.sendError(ctx, req, resp, err)
	}

	c.logger.Debug(fmt.Sprintf("%s %s %d (%s)", req.Method, req.Path, resp.StatusCode(), time.Since(start).Round(time.Millisecond)))

	if err := c.statusError(req, resp); err != nil {
		return nil, err
	}

	return &ports.Response{
		Status: resp.StatusCode(),
		Header: resp.Header(),
		Body:   resp.Body(),
	}, nil
}

func (c *Client) sendError(ctx context.Context, req *ports.Request, resp *resty.Response, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zerr.With(zerr.Wrap(ctxErr, "request cancelled"), "path", req.Path)
	}
	if resp != nil && resp.RawResponse != nil {
		if err := c.statusError(req, resp); err != nil {
			return err
		}
		return zerr.With(zerr.Wrap(domain.ErrDecodeFailed, err.Error()), "path", req.Path)
	}
	wrapped := zerr.Wrap(domain.ErrTransport, err.Error())
	wrapped = zerr.With(wrapped, "method", req.Method)
	return zerr.With(wrapped, "path", req.Path)
}

// statusError maps a non-2xx response to its error.
func (c *Client) statusError(req *ports.Request, resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		c.expire(resp)
		return zerr.With(zerr.Wrap(domain.ErrUnauthenticated, "backend rejected credentials"), "path", req.Path)
	case resp.StatusCode() >= http.StatusMultipleChoices:
		return apiError(resp)
	}
	return nil
}

// expire clears the credential and sends the user to the login boundary,
// once per session. A session is identified by the token the rejected request
// carried: later 401s for the same token, concurrent or not, are not redirected
// again until a request with another token is rejected.
func (c *Client) expire(resp *resty.Response) {
	reason := domain.ErrUnauthenticated.Error()
	if body, ok := resp.Error().(*errorBody); ok && body.message() != "" {
		reason = body.message()
	}
	token := resp.Request.Token

	_, _, _ = c.expiry.Do("expire:"+token, func() (any, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.expired != nil && *c.expired == token {
			return nil, nil
		}
		c.expired = &token

		if err := c.creds.Clear(); err != nil {
			c.logger.Error(err)
		}
		c.session.RequireLogin(reason)
		return nil, nil
	})
}

func (b *errorBody) message() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

func apiError(resp *resty.Response) error {
	out := &domain.APIError{Status: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		out.Message = body.message()
		out.Code = body.Code
		out.Fields = body.Errors
	}
	return out
}
