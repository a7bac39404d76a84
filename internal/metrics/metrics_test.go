package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	srv := NewServer(0)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	assert.NotPanics(t, func() {
		IncBookingCreated("Deluxe")
		IncBookingCanceled("Deluxe")
		SetRoomsAvailable("Suite", 2)
	})

	body := scrape(t)
	assert.Contains(t, body, `hotel_bookings_created_total{category="Deluxe"}`)
	assert.Contains(t, body, `hotel_bookings_canceled_total{category="Deluxe"}`)
	assert.Contains(t, body, `hotel_rooms_available{category="Suite"} 2`)
}

func TestServerAddr(t *testing.T) {
	srv := NewServer(9191)
	assert.Equal(t, ":9191", srv.Addr)
}
