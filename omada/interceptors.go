package omada

import "net/http"

// Interceptor can observe and modify outgoing requests and incoming
// responses. Additional interceptors are installed through
// ClientConfig.Interceptors and run in installation order.
type Interceptor interface {
	InterceptRequest(req *http.Request) error
	InterceptResponse(resp *http.Response) error
}

// csrfInterceptor attaches the session token to outgoing requests. The token
// lives in the client's session state, so a logged-out client sends nothing.
type csrfInterceptor struct {
	c *client
}

func (i *csrfInterceptor) InterceptRequest(req *http.Request) error {
	if token, ok := i.c.token(); ok {
		req.Header.Set(CsrfHeader, token)
	}
	return nil
}

func (i *csrfInterceptor) InterceptResponse(_ *http.Response) error {
	return nil
}

// defaultHeadersInterceptor sets headers every request carries unless a
// caller overrides them.
type defaultHeadersInterceptor struct {
	headers map[string]string
}

func (d *defaultHeadersInterceptor) InterceptRequest(req *http.Request) error {
	for key, value := range d.headers {
		req.Header.Set(key, value)
	}
	return nil
}

func (d *defaultHeadersInterceptor) InterceptResponse(_ *http.Response) error {
	return nil
}
