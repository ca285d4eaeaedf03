// Package source resolves a source-document location (local path or HTTP(S)
// URL) to raw text. Remote fetches are cached on disk under a process-temp
// directory for a fixed freshness window, so repeated runs against the same
// URL don't hammer the host.
package source

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultFreshness is how long a cache entry is served without refetching.
const DefaultFreshness = time.Hour

// NotFoundError indicates a local source path that does not exist.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source not found: %s", e.Location)
}

// TransportError indicates a remote fetch that failed (network error or a
// failure status code).
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// cacheEntry is one cached remote fetch, stored as a JSON file named by the
// md5 of the normalized URL.
type cacheEntry struct {
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fetcher resolves locations to raw text.
type Fetcher struct {
	http      *resty.Client
	cacheDir  string
	freshness time.Duration
	now       func() time.Time
}

// NewFetcher creates a Fetcher. An empty cacheDir selects the default
// process-temp cache directory; freshness ≤ 0 selects DefaultFreshness.
func NewFetcher(cacheDir string, freshness time.Duration) *Fetcher {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir()
	}
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &Fetcher{
		http:      resty.New().SetTimeout(30 * time.Second),
		cacheDir:  cacheDir,
		freshness: freshness,
		now:       time.Now,
	}
}

// DefaultCacheDir returns the default fetch-cache directory.
func DefaultCacheDir() string {
	return filepath.Join(os.TempDir(), "pereklad-cache")
}

// CacheDir returns the directory this fetcher caches remote content in.
func (f *Fetcher) CacheDir() string { return f.cacheDir }

// Fetch resolves location to raw text. Locations starting with http:// or
// https:// are fetched remotely (through the cache); anything else is read
// as a local file path.
func (f *Fetcher) Fetch(ctx context.Context, location string) (string, error) {
	if IsRemote(location) {
		return f.fetchRemote(ctx, location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Location: location}
		}
		return "", fmt.Errorf("reading %s: %w", location, err)
	}
	return string(data), nil
}

// IsRemote reports whether location is an HTTP(S) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (f *Fetcher) fetchRemote(ctx context.Context, rawURL string) (string, error) {
	target := RewriteBlobURL(rawURL)
	key := cacheKey(target)

	if content, ok := f.readCache(key); ok {
		return content, nil
	}

	resp, err := f.http.R().SetContext(ctx).Get(target)
	if err != nil {
		return "", &TransportError{URL: target, Err: err}
	}
	if resp.IsError() {
		return "", &TransportError{URL: target, Status: resp.StatusCode()}
	}

	content := string(resp.Body())
	f.writeCache(key, target, content)
	return content, nil
}

// readCache returns cached content if the entry exists and is younger than
// the freshness window.
func (f *Fetcher) readCache(key string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(f.cacheDir, key+".json"))
	if err != nil {
		return "", false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false
	}
	if f.now().Sub(entry.FetchedAt) >= f.freshness {
		return "", false
	}
	return entry.Content, true
}

// writeCache unconditionally overwrites the cache entry. Concurrent writers
// race benignly: last write wins and content is idempotent per URL, so
// no cross-process locking is taken.
func (f *Fetcher) writeCache(key, url, content string) {
	entry := cacheEntry{URL: url, Content: content, FetchedAt: f.now()}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := os.MkdirAll(f.cacheDir, 0755); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(f.cacheDir, key+".json"), data, 0644)
}

// RewriteBlobURL rewrites a source-hosting "blob" view URL to its
// raw-content equivalent:
//
//	https://github.com/owner/repo/blob/ref/path
//	→ https://raw.githubusercontent.com/owner/repo/ref/path
//
// Any other URL is returned unchanged.
func RewriteBlobURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.Host != "github.com" {
		return rawURL
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// owner/repo/blob/ref/path...
	if len(parts) < 5 || parts[2] != "blob" {
		return rawURL
	}
	u.Host = "raw.githubusercontent.com"
	u.Path = "/" + strings.Join(append(parts[:2], parts[3:]...), "/")
	return u.String()
}

// cacheKey hashes the normalized URL into a stable cache file name.
func cacheKey(rawURL string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(normalizeURL(rawURL))))
}

// normalizeURL lowercases the scheme and host and drops the fragment so
// that trivially different spellings of the same URL share a cache entry.
func normalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return strings.TrimSpace(rawURL)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	return u.String()
}

// ClearCache removes every cached entry. It returns the number of entries
// removed.
func ClearCache(cacheDir string) (int, error) {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir()
	}
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(cacheDir, e.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

// CacheStats summarises the on-disk fetch cache.
type CacheStats struct {
	Entries    int
	TotalBytes int64
	Oldest     time.Time
}

// Stats reports entry count, total size, and the oldest fetch timestamp.
func Stats(cacheDir string) (*CacheStats, error) {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir()
	}
	stats := &CacheStats{}
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(cacheDir, e.Name()))
		if err != nil {
			continue
		}
		var entry cacheEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += int64(len(data))
		if stats.Oldest.IsZero() || entry.FetchedAt.Before(stats.Oldest) {
			stats.Oldest = entry.FetchedAt
		}
	}
	return stats, nil
}
