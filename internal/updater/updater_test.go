package updater

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// --- isNewer ---

func TestIsNewer(t *testing.T) {
	cases := []struct {
		current, latest string
		want            bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "1.1.0", true},
		{"1.0.0", "2.0.0", true},
		{"1.2.3", "1.2.3", false},
		{"2.0.0", "1.9.9", false},
		{"1.2", "1.2.1", true},
		{"dev", "9.9.9", false},
		{"", "1.0.0", false},
		{"1.0.0", "", false},
	}
	for _, c := range cases {
		if got := isNewer(c.current, c.latest); got != c.want {
			t.Errorf("isNewer(%q, %q) = %v, want %v", c.current, c.latest, got, c.want)
		}
	}
}

// --- Check ---

func withEndpoint(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	orig := releaseEndpoint
	releaseEndpoint = srv.URL
	t.Cleanup(func() { releaseEndpoint = orig })
}

func TestCheck_UpdateAvailable(t *testing.T) {
	withEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "devcrew/1.0.0" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Write([]byte(`{"tag_name": "v1.2.0", "html_url": "https://example.com/rel"}`))
	})

	result := Check("1.0.0")
	if !result.UpdateAvailable {
		t.Fatal("update should be available")
	}
	if result.LatestVersion != "1.2.0" {
		t.Errorf("LatestVersion = %q, want 1.2.0", result.LatestVersion)
	}
	if result.ReleaseURL != "https://example.com/rel" {
		t.Errorf("ReleaseURL = %q", result.ReleaseURL)
	}
}

func TestCheck_AlreadyLatest(t *testing.T) {
	withEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v1.0.0"}`))
	})

	if Check("1.0.0").UpdateAvailable {
		t.Error("same version should not report an update")
	}
}

func TestCheck_APIFailureIsSilent(t *testing.T) {
	withEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	})

	result := Check("1.0.0")
	if result.UpdateAvailable {
		t.Error("API failure should not report an update")
	}
	if result.CurrentVersion != "1.0.0" {
		t.Errorf("CurrentVersion = %q", result.CurrentVersion)
	}
}

func TestCheck_DevBuildNeverUpdates(t *testing.T) {
	withEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v9.9.9"}`))
	})

	if Check("dev").UpdateAvailable {
		t.Error("dev builds should never report an update")
	}
}

// --- SelfUpdate ---

func TestSelfUpdate_AlreadyLatest(t *testing.T) {
	withEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v1.0.0"}`))
	})

	if err := SelfUpdate("1.0.0"); err == nil {
		t.Error("updating at latest version should fail")
	}
}

func TestSelfUpdate_NoMatchingAsset(t *testing.T) {
	withEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v2.0.0", "assets": [
			{"name": "devcrew_2.0.0_plan9_mips.tar.gz", "browser_download_url": "https://example.com/x"}
		]}`))
	})

	err := SelfUpdate("1.0.0")
	if err == nil {
		t.Fatal("missing asset should fail")
	}
}
