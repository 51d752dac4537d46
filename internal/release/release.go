// Package release locates prebuilt distribution packages, downloading and
// caching GitHub release assets when no local copy exists.
package release

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultOwner and DefaultRepo identify the upstream repository that
	// publishes prebuilt packages as release assets.
	DefaultOwner = "t59688"
	DefaultRepo  = "novel-kit"

	// EnvDistDir overrides where FindLocalDist looks for package trees.
	EnvDistDir = "NOVELKIT_DIST_DIR"

	defaultAPIBase  = "https://api.github.com"
	maxListedAssets = 5
)

// Options configures Download. Zero values fall back to the upstream
// repository, the user cache directory, and a 60 second HTTP client.
type Options struct {
	Owner    string
	Repo     string
	Token    string
	CacheDir string
	APIBase  string
	Client   *http.Client
	Progress func(message string)
}

func (o Options) progressf(format string, args ...interface{}) {
	if o.Progress != nil {
		o.Progress(fmt.Sprintf(format, args...))
	}
}

// FindLocalDist probes the usual locations for a prebuilt package tree
// named distName: the source root's dist directory, the working
// directory's dist directory, and the directory named by EnvDistDir.
func FindLocalDist(sourceRoot, distName string) (string, bool) {
	var candidates []string
	if sourceRoot != "" {
		candidates = append(candidates, filepath.Join(sourceRoot, "dist", distName))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, "dist", distName))
	}
	if env := os.Getenv(EnvDistDir); env != "" {
		candidates = append(candidates, filepath.Join(env, distName))
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, true
		}
	}
	return "", false
}

// DefaultCacheDir returns where downloaded packages are cached.
func DefaultCacheDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "novel-kit", "dist")
	}
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "novel-kit", "dist")
	}
	return filepath.Join(os.TempDir(), "novel-kit", "dist")
}

// Download fetches the latest release asset matching ai and platform,
// extracts it into the cache, and returns the extracted directory. A
// previously extracted copy is reused when both it and its archive are
// still present.
func Download(ctx context.Context, ai, platform string, opts Options) (string, error) {
	owner := opts.Owner
	if owner == "" {
		owner = DefaultOwner
	}
	repo := opts.Repo
	if repo == "" {
		repo = DefaultRepo
	}
	apiBase := strings.TrimRight(opts.APIBase, "/")
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	cacheDir := opts.CacheDir
	if cacheDir == "" {
		cacheDir = DefaultCacheDir()
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	token := resolveToken(opts.Token)

	opts.progressf("fetching latest release for %s/%s", owner, repo)
	apiCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	rel, err := latestRelease(apiCtx, client, apiBase, owner, repo, token)
	cancel()
	if err != nil {
		return "", err
	}

	pattern := fmt.Sprintf("novel-kit-%s-%s", ai, platform)
	matched, ok := matchAsset(rel.Assets, pattern)
	if !ok {
		return "", fmt.Errorf("no release asset matching %s*.zip (available: %s)", pattern, assetNames(rel.Assets))
	}
	opts.progressf("found %s (%s, %d bytes)", matched.Name, rel.TagName, matched.Size)

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}
	zipPath := filepath.Join(cacheDir, matched.Name)
	extractDir := filepath.Join(cacheDir, ai+"-"+platform)

	if dirExists(extractDir) && fileExists(zipPath) {
		opts.progressf("using cached package at %s", extractDir)
		return extractDir, nil
	}

	opts.progressf("downloading %s", matched.Name)
	if err := downloadAsset(ctx, client, matched.BrowserDownloadURL, token, zipPath); err != nil {
		os.Remove(zipPath)
		return "", fmt.Errorf("download %s: %w", matched.Name, err)
	}

	opts.progressf("extracting to %s", extractDir)
	if err := extractArchive(zipPath, extractDir); err != nil {
		os.Remove(zipPath)
		return "", fmt.Errorf("extract %s: %w", matched.Name, err)
	}
	return extractDir, nil
}

type releaseInfo struct {
	TagName string  `json:"tag_name"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

func resolveToken(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if t := os.Getenv("GH_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GITHUB_TOKEN")
}

func latestRelease(ctx context.Context, client *http.Client, apiBase, owner, repo, token string) (*releaseInfo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", apiBase, owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("repository %s/%s not found or has no releases", owner, repo)
	case resp.StatusCode == http.StatusForbidden:
		remaining := resp.Header.Get("X-RateLimit-Remaining")
		if remaining == "" {
			remaining = "unknown"
		}
		return nil, fmt.Errorf("GitHub API rate limited (remaining requests: %s), set GH_TOKEN or GITHUB_TOKEN to raise the limit", remaining)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var rel releaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	return &rel, nil
}

func matchAsset(assets []asset, pattern string) (asset, bool) {
	for _, a := range assets {
		if strings.Contains(a.Name, pattern) && strings.HasSuffix(a.Name, ".zip") {
			return a, true
		}
	}
	return asset{}, false
}

func assetNames(assets []asset) string {
	if len(assets) == 0 {
		return "none"
	}
	names := make([]string, 0, len(assets))
	for _, a := range assets {
		names = append(names, a.Name)
	}
	if len(names) > maxListedAssets {
		rest := len(names) - maxListedAssets
		names = append(names[:maxListedAssets], fmt.Sprintf("and %d more", rest))
	}
	return strings.Join(names, ", ")
}

func downloadAsset(ctx context.Context, client *http.Client, url, token, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func extractArchive(zipPath, extractDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	if err := os.RemoveAll(extractDir); err != nil {
		return err
	}
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return err
	}

	for _, f := range r.File {
		target, err := safeJoin(extractDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		mode := f.Mode().Perm()
		if mode == 0 {
			mode = 0o644
		}
		if err := writeZipEntry(f, target, mode); err != nil {
			return err
		}
	}
	return flattenSingleDir(extractDir)
}

func writeZipEntry(f *zip.File, target string, mode os.FileMode) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// safeJoin rejects archive entries that would escape dir.
func safeJoin(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction directory", name)
	}
	return target, nil
}

// flattenSingleDir promotes the contents of a lone top-level directory, so
// archives built with a wrapping folder extract the same as flat ones.
func flattenSingleDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return nil
	}
	nested := filepath.Join(dir, entries[0].Name())
	temp := dir + "_flatten"
	if err := os.RemoveAll(temp); err != nil {
		return err
	}
	if err := os.Rename(nested, temp); err != nil {
		return err
	}
	if err := os.Remove(dir); err != nil {
		return err
	}
	return os.Rename(temp, dir)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
