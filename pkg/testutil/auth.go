package testutil

import "net/http"

// HeaderAccessToken is the custom token header accepted alongside Bearer auth.
const HeaderAccessToken = "x-access-token"

// WithBearer attaches an Authorization: Bearer header.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// WithAccessToken attaches the x-access-token header.
func WithAccessToken(req *http.Request, token string) *http.Request {
	req.Header.Set(HeaderAccessToken, token)
	return req
}
