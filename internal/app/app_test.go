package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstronomyAPI/Widgets/internal/config"
	"github.com/AstronomyAPI/Widgets/internal/studio"
)

func writeConfig(t *testing.T, baseURL, extra string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.TokenEnv, "")
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("base_url = %q\nbasic_token = \"0123456789abcdef\"\nlog_file = %q\n%s",
		baseURL, filepath.Join(dir, "astro.log"), extra)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunOnce_RendersBothWidgets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Base(r.URL.Path)
		_, _ = fmt.Fprintf(w, `{"data":{"imageUrl":"https://img.example/%s.png"}}`, name)
	}))
	defer srv.Close()

	cfgPath := writeConfig(t, srv.URL, "[moon_phase.style]\nwidth = \"300px\"\n")
	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: cfgPath,
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		Once:       true,
		Out:        &out,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "moon-phase   success")
	assert.Contains(t, text, "star-chart   success")
	assert.Contains(t, text, "https://img.example/moon-phase.png (Moon phase, width=\"300px\" height=\"\")")
	assert.Contains(t, text, "https://img.example/star-chart.png (Star chart, natural size)")
}

func TestRunOnce_SelectionLimitsRequests(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		_, _ = fmt.Fprint(w, `{"data":{"imageUrl":"https://img.example/x.png"}}`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: writeConfig(t, srv.URL, ""),
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		Widget:     "star",
		Once:       true,
		Out:        &out,
	})
	require.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/api/v2/studio/star-chart"}, paths)
	assert.NotContains(t, out.String(), "#moon-phase")
}

func TestRunOnce_FailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: writeConfig(t, srv.URL, ""),
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		Widget:     "moon",
		Once:       true,
		Out:        &out,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 widgets failed")
	assert.Contains(t, out.String(), "Request failed with status 500.")
}

func TestRun_ShortTokenIsFatal(t *testing.T) {
	cfgPath := writeConfig(t, "http://127.0.0.1:1", "")

	err := Run(context.Background(), Options{
		ConfigPath: cfgPath,
		Token:      "short",
		Once:       true,
		Out:        &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, studio.ErrInvalidToken))
}

func TestRunOnce_WritesJSONLog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"data":{"imageUrl":"https://img.example/x.png"}}`)
	}))
	defer srv.Close()

	cfgPath := writeConfig(t, srv.URL, "[moon_phase.observer]\nlatitude = 95.0\n")
	require.NoError(t, Run(context.Background(), Options{
		ConfigPath: cfgPath,
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		Widget:     "moon",
		Once:       true,
		Out:        &bytes.Buffer{},
	}))

	data, err := os.ReadFile(filepath.Join(filepath.Dir(cfgPath), "astro.log"))
	require.NoError(t, err)
	log := string(data)
	assert.True(t, strings.Contains(log, `"msg":"invalid widget parameter replaced"`), log)
	assert.Contains(t, log, `"field":"observer.latitude"`)
	assert.Contains(t, log, `"msg":"widget rendered"`)
}
