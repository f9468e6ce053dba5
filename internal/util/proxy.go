package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the transport proxy selector for outbound requests.
// With no explicit proxy URLs it defers to the standard environment
// variables, so deployments behind a corporate proxy keep working without
// extra config.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
