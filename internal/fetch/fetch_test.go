package fetch_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/chriscorrea/docfilter/internal/fetch"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", p, err)
	}
	return p
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func zstdBytes(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll([]byte(s), nil)
}

func TestOpen(t *testing.T) {
	const content = "Hello world.\n\nSecond document.\n"

	tests := []struct {
		name        string
		setupFunc   func(t *testing.T) string
		opts        fetch.Options
		expectError bool
		expectData  string
	}{
		{
			name: "plain file",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, "corpus.txt", []byte(content))
			},
			expectData: content,
		},
		{
			name: "gzip file",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, "corpus.txt.gz", gzipBytes(t, content))
			},
			expectData: content,
		},
		{
			name: "zstd file",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, "corpus.txt.zst", zstdBytes(t, content))
			},
			expectData: content,
		},
		{
			name: "corrupt gzip file",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, "corpus.txt.gz", []byte("not gzip"))
			},
			expectError: true,
		},
		{
			name: "latin1 file",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, "latin1.txt", []byte{'p', 0xE4, 'i', 'v', 0xE4})
			},
			opts:       fetch.Options{Encoding: "latin1"},
			expectData: "päivä",
		},
		{
			name: "unknown encoding",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, "corpus.txt", []byte(content))
			},
			opts:        fetch.Options{Encoding: "klingon-8"},
			expectError: true,
		},
		{
			name: "non-existent file",
			setupFunc: func(t *testing.T) string {
				return "/path/that/does/not/exist.txt"
			},
			expectError: true,
		},
		{
			name: "http URL success",
			setupFunc: func(t *testing.T) string {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte(content))
				}))
				t.Cleanup(server.Close)
				return server.URL + "/corpus.txt"
			},
			expectData: content,
		},
		{
			name: "http URL with error status",
			setupFunc: func(t *testing.T) string {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				}))
				t.Cleanup(server.Close)
				return server.URL + "/missing.txt"
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := tt.setupFunc(t)

			rc, err := fetch.Open(context.Background(), source, tt.opts)
			if tt.expectError {
				if err == nil {
					rc.Close()
					t.Errorf("Open(%q) expected error, got nil", source)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open(%q) unexpected error: %v", source, err)
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("Failed to read content: %v", err)
			}
			if string(data) != tt.expectData {
				t.Errorf("content = %q, want %q", string(data), tt.expectData)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"-", "stdin"},
		{"/data/fi/part-001.txt", "part-001.txt"},
		{"relative.txt.gz", "relative.txt.gz"},
		{"https://example.com/corpora/fi.txt", "fi.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := fetch.Name(tt.source); got != tt.expected {
				t.Errorf("Name(%q) = %q, want %q", tt.source, got, tt.expected)
			}
		})
	}
}
