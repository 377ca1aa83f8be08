// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func hit(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_PerClient(t *testing.T) {
	h := RateLimit(RateLimitConfig{RequestLimit: 2, WindowSize: time.Minute})(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1001").Code)

	rec := hit(h, "192.0.2.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.2:1000").Code, "other clients keep their own budget")
}

func TestRateLimit_Whitelist(t *testing.T) {
	h := RateLimit(RateLimitConfig{
		RequestLimit: 1,
		WindowSize:   time.Minute,
		Whitelist:    []string{"127.0.0.1", "10.0.0.0/8"},
	})(okHandler)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "10.1.2.3:4000").Code)
	}
	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.9:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "192.0.2.9:2").Code)
}

func TestRateLimit_InvalidWhitelistIgnored(t *testing.T) {
	h := RateLimit(RateLimitConfig{RequestLimit: 1, WindowSize: time.Minute, Whitelist: []string{"bogus"}})(okHandler)
	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "192.0.2.1:2").Code)
}
