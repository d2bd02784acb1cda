package gtfs

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// OpenSource opens a static GTFS source as a file system.
// src may be a directory, a local .zip file or an http(s) URL to a zip.
// The returned close func releases any open archive and temp file.
func OpenSource(ctx context.Context, src string) (fs.FS, func() error, error) {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return openRemoteZip(ctx, src)
	case strings.HasSuffix(strings.ToLower(src), ".zip"):
		zr, err := zip.OpenReader(src)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open GTFS zip %s: %w", src, err)
		}
		return zr, zr.Close, nil
	default:
		info, err := os.Stat(src)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open GTFS directory %s: %w", src, err)
		}
		if !info.IsDir() {
			return nil, nil, fmt.Errorf("GTFS source %s is neither a directory nor a zip", src)
		}
		return os.DirFS(src), func() error { return nil }, nil
	}
}

func openRemoteZip(ctx context.Context, url string) (fs.FS, func() error, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmp, err := os.CreateTemp("", "gtfs-*.zip")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { os.Remove(tmp.Name()) }
	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		cleanup()
		return nil, nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return nil, nil, err
	}
	log.Debug().Str("url", url).Int64("bytes", n).Msg("Downloaded GTFS static zip")

	zr, err := zip.OpenReader(tmp.Name())
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to open GTFS zip from %s: %w", url, err)
	}
	return zr, func() error {
		defer cleanup()
		return zr.Close()
	}, nil
}
