package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-scraper-bot/internal/config"
	"telegram-scraper-bot/internal/infra/logging"
	"telegram-scraper-bot/internal/infra/metrics"
)

func TestServer_Routes(t *testing.T) {
	metrics.MustRegister()
	metrics.SetBuildInfo("test", "abc")

	s := NewServer(&config.AdminConfig{Port: 0}, logging.Nop())
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "OK", string(body))

	res, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "scraper_bot_build_info")

	res, err = http.Post(ts.URL+"/health", "text/plain", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
