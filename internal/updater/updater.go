// Package updater checks GitHub Releases for a newer devcrew build and can
// replace the running binary in place. Checks are best-effort: network
// failures never surface as errors during "serve".
package updater

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const githubRepo = "mvilela/devcrew"

// For testing: the endpoint and client are package vars.
var (
	releaseEndpoint = "https://api.github.com/repos/" + githubRepo + "/releases/latest"
	httpClient      = &http.Client{Timeout: 10 * time.Second}
)

// Release holds the relevant fields from a GitHub release.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// CheckResult reports the outcome of a version check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// Check queries GitHub for the latest release and compares it against the
// running version. It never fails: on any error the zero result comes back
// with UpdateAvailable false.
func Check(currentVersion string) CheckResult {
	result := CheckResult{CurrentVersion: strings.TrimPrefix(currentVersion, "v")}

	release, err := fetchLatest(currentVersion)
	if err != nil {
		return result
	}

	result.LatestVersion = strings.TrimPrefix(release.TagName, "v")
	result.ReleaseURL = release.HTMLURL
	result.UpdateAvailable = isNewer(result.CurrentVersion, result.LatestVersion)
	return result
}

// SelfUpdate downloads the release binary for this OS/arch and replaces the
// running executable. The write is atomic: temp file first, then rename.
// The caller restarts the server; nothing here re-execs.
func SelfUpdate(currentVersion string) error {
	release, err := fetchLatest(currentVersion)
	if err != nil {
		return err
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if !isNewer(strings.TrimPrefix(currentVersion, "v"), latest) {
		return fmt.Errorf("already at latest version (%s)", currentVersion)
	}

	if runtime.GOOS == "windows" {
		return fmt.Errorf("self-update is not supported on Windows — download v%s from %s", latest, release.HTMLURL)
	}

	assetName := fmt.Sprintf("devcrew_%s_%s_%s.tar.gz", latest, runtime.GOOS, runtime.GOARCH)
	var downloadURL string
	for _, asset := range release.Assets {
		if asset.Name == assetName {
			downloadURL = asset.BrowserDownloadURL
			break
		}
	}
	if downloadURL == "" {
		return fmt.Errorf("no release asset for %s/%s (wanted %s)", runtime.GOOS, runtime.GOARCH, assetName)
	}

	resp, err := httpClient.Get(downloadURL)
	if err != nil {
		return fmt.Errorf("downloading release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned %d", resp.StatusCode)
	}

	binary, err := extractBinary(resp.Body)
	if err != nil {
		return fmt.Errorf("extracting binary: %w", err)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("finding current executable: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}

	tmpPath := execPath + ".new"
	if err := os.WriteFile(tmpPath, binary, 0o755); err != nil {
		return fmt.Errorf("writing new binary: %w", err)
	}
	if err := os.Rename(tmpPath, execPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing binary: %w", err)
	}
	return nil
}

// fetchLatest reads the latest release from the GitHub API.
func fetchLatest(currentVersion string) (*Release, error) {
	req, err := http.NewRequest(http.MethodGet, releaseEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "devcrew/"+currentVersion)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checking latest release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("parsing release info: %w", err)
	}
	return &release, nil
}

// extractBinary pulls the devcrew binary out of a .tar.gz archive.
func extractBinary(reader io.Reader) ([]byte, error) {
	gz, err := gzip.NewReader(reader)
	if err != nil {
		return nil, fmt.Errorf("opening gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar: %w", err)
		}
		if filepath.Base(header.Name) == "devcrew" {
			return io.ReadAll(tr)
		}
	}
	return nil, fmt.Errorf("devcrew binary not found in archive")
}

// isNewer compares two dotted version strings numerically, part by part.
// "dev" builds never update.
func isNewer(current, latest string) bool {
	if current == "" || latest == "" || current == "dev" {
		return false
	}

	cur := versionParts(current)
	lat := versionParts(latest)
	for i := 0; i < 3; i++ {
		if lat[i] != cur[i] {
			return lat[i] > cur[i]
		}
	}
	return false
}

// versionParts parses up to three numeric components; missing or malformed
// parts count as zero.
func versionParts(v string) [3]int {
	var parts [3]int
	for i, p := range strings.SplitN(v, ".", 3) {
		n, _ := strconv.Atoi(strings.TrimFunc(p, func(r rune) bool {
			return r < '0' || r > '9'
		}))
		parts[i] = n
	}
	return parts
}
