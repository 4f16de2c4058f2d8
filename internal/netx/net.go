// Package netx contains small HTTP helpers for moving blob content around:
// downloading media by its remote download URL.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Download fetches the content behind url, typically a presigned GET URL
// returned by the blob store as a note's media download reference.
func Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	return io.ReadAll(resp.Body)
}
