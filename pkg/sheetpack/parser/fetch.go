package parser

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
)

// FetchOptions configures Fetch.
type FetchOptions struct {
	// Client overrides the HTTP client. Nil uses a default client,
	// TLS-permissive when InsecureSkipVerify is set.
	Client *http.Client
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// Fetch downloads the document at fileURL and returns its body.
func Fetch(ctx context.Context, fileURL string, opts FetchOptions) ([]byte, error) {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
		if opts.InsecureSkipVerify {
			client = &http.Client{
				Transport: &http.Transport{
					TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
				},
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("downloading %s: unexpected status %s", fileURL, resp.Status)
	}

	return io.ReadAll(resp.Body)
}
