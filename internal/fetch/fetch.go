// Package fetch opens corpus inputs: standard input, local files and URLs,
// with transparent decompression and character set decoding.
package fetch

import (
	"compress/bzip2"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/htmlindex"
)

// MaxHTTPSizeBytes limits content fetched over HTTP (may not have Content-Length).
const MaxHTTPSizeBytes = 1024 * 1024 * 1024

// HTTPRequestTimeout bounds a whole HTTP transfer.
const HTTPRequestTimeout = 10 * time.Minute

// specific timeout thresholds for connection setup
var (
	HTTPDialTimeout           = 10 * time.Second
	HTTPTLSTimeout            = 10 * time.Second
	HTTPResponseHeaderTimeout = 30 * time.Second
)

// Options controls how a source is decoded.
type Options struct {
	// Encoding is a WHATWG encoding label such as "latin1" or "windows-1252".
	// Empty or "utf-8" leaves the input as is.
	Encoding string
}

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// readCloser combines a transformed reader with the closers of every layer
// beneath it.
type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var first error
	for i := len(rc.closers) - 1; i >= 0; i-- {
		if err := rc.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// httpClient is a shared HTTP client with appropriate timeouts to prevent indefinite hangs.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: HTTPDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   HTTPTLSTimeout,
		ResponseHeaderTimeout: HTTPResponseHeaderTimeout,
	},
}

// Name returns the display name of a source used in reports: the base name
// of a file or URL path, or "stdin".
func Name(source string) string {
	switch {
	case source == "-":
		return "stdin"
	case isURL(source):
		return path.Base(strings.TrimRight(source, "/"))
	default:
		return filepath.Base(source)
	}
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Open returns a reader over the decoded text of source:
//   - "-" reads from standard input
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
//
// Sources ending in .gz, .zst or .bz2 are decompressed.
func Open(ctx context.Context, source string, opts Options) (io.ReadCloser, error) {
	var raw io.ReadCloser
	var err error
	switch {
	case source == "-":
		raw = io.NopCloser(os.Stdin)
	case isURL(source):
		raw, err = fetchURL(ctx, source)
	default:
		raw, err = openFile(source)
	}
	if err != nil {
		return nil, err
	}

	rc := &readCloser{Reader: raw, closers: []func() error{raw.Close}}

	if err := decompress(rc, source); err != nil {
		rc.Close()
		return nil, err
	}
	if err := decode(rc, opts.Encoding); err != nil {
		rc.Close()
		return nil, err
	}
	return rc, nil
}

// decompress wraps rc according to the source extension.
func decompress(rc *readCloser, source string) error {
	name := strings.ToLower(source)
	switch {
	case strings.HasSuffix(name, ".gz"):
		zr, err := gzip.NewReader(rc.Reader)
		if err != nil {
			return fmt.Errorf("failed to open gzip stream %q: %w", source, err)
		}
		rc.Reader = zr
		rc.closers = append(rc.closers, zr.Close)
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(rc.Reader)
		if err != nil {
			return fmt.Errorf("failed to open zstd stream %q: %w", source, err)
		}
		rc.Reader = zr
		rc.closers = append(rc.closers, func() error { zr.Close(); return nil })
	case strings.HasSuffix(name, ".bz2"):
		rc.Reader = bzip2.NewReader(rc.Reader)
	}
	return nil
}

// decode converts the input from the named encoding to UTF-8.
func decode(rc *readCloser, encoding string) error {
	label := strings.ToLower(strings.TrimSpace(encoding))
	if label == "" || label == "utf-8" || label == "utf8" {
		return nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return fmt.Errorf("unknown encoding %q: %w", encoding, err)
	}
	rc.Reader = enc.NewDecoder().Reader(rc.Reader)
	return nil
}

// fetchURL retrieves content from an HTTP or HTTPS URL using a client with timeout configuration
func fetchURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "docfilter/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d %s", url, resp.StatusCode, resp.Status)
	}

	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)", size, MaxHTTPSizeBytes)
		}
	}

	return &limitedReadCloser{
		ReadCloser: resp.Body,
		N:          MaxHTTPSizeBytes,
		source:     url,
	}, nil
}

// openFile opens a local file for streaming with better error messages
func openFile(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	return file, nil
}
