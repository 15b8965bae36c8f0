package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"app/internal/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func doLimited(t *testing.T, l *ratelimit.Limiter, method string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	req.Header.Set("x-real-ip", "9.9.9.9")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = RateLimit(l)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	return rec
}

func TestRateLimit(t *testing.T) {
	t.Run("attaches headers on accepted requests", func(t *testing.T) {
		l := ratelimit.New(time.Minute, 2, ratelimit.ClientIP)
		defer l.Stop()

		rec := doLimited(t, l, http.MethodGet)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
		assert.Empty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("rejects over budget with 429 and Retry-After", func(t *testing.T) {
		l := ratelimit.New(time.Minute, 1, ratelimit.ClientIP)
		defer l.Stop()

		assert.Equal(t, http.StatusOK, doLimited(t, l, http.MethodGet).Code)

		rec := doLimited(t, l, http.MethodGet)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

		//秒は切り上げなので最低1
		retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, retryAfter, 1)

		//resetはISO形式
		_, err = time.Parse(time.RFC3339, rec.Header().Get("X-RateLimit-Reset"))
		assert.NoError(t, err)
	})

	t.Run("OPTIONS bypasses rate limiting", func(t *testing.T) {
		l := ratelimit.New(time.Minute, 1, ratelimit.ClientIP)
		defer l.Stop()

		//枠を使い切る
		assert.Equal(t, http.StatusOK, doLimited(t, l, http.MethodGet).Code)
		assert.Equal(t, http.StatusTooManyRequests, doLimited(t, l, http.MethodGet).Code)

		//preflightは素通り
		rec := doLimited(t, l, http.MethodOptions)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	})
}
