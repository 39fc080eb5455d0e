package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRefreshAndStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(currentJSON))
	})
	svc := NewService(c, "Jakarta")

	svc.Refresh(context.Background())

	st := svc.Status()
	require.NotNil(t, st.Report)
	assert.Empty(t, st.Error)
	assert.Equal(t, "Jakarta", st.Report.Location)
}

func TestServiceMissingKeyState(t *testing.T) {
	svc := NewService(NewClient(""), "Jakarta")
	svc.Refresh(context.Background())

	st := svc.Status()
	assert.Nil(t, st.Report)
	assert.Equal(t, ErrKindMissingKey, st.ErrorKind)
	assert.Contains(t, st.Error, "WEATHER_API_KEY")
}

func TestServiceProviderErrorKeepsLastReport(t *testing.T) {
	var fail atomic.Bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.Write([]byte(`{"error": {"message": "Lokasi tidak ditemukan"}}`))
			return
		}
		w.Write([]byte(currentJSON))
	})
	svc := NewService(c, "Jakarta")

	svc.Refresh(context.Background())
	require.NotNil(t, svc.Status().Report)

	fail.Store(true)
	svc.SetLocation(context.Background(), "Nowhereville")

	st := svc.Status()
	assert.NotNil(t, st.Report, "last good report survives a failed fetch")
	assert.Equal(t, ErrKindProvider, st.ErrorKind)
	assert.Equal(t, "Lokasi tidak ditemukan", st.Error)
}

func TestServiceCoordinatesResolveToPlaceName(t *testing.T) {
	var queries []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		w.Write([]byte(currentJSON))
	})
	svc := NewService(c, "Bandung")

	svc.SetCoordinates(context.Background(), -6.2088, 106.8456)
	// The provider resolved the coordinates to "Jakarta"; the next refresh
	// queries by that canonical name.
	svc.Refresh(context.Background())

	require.Len(t, queries, 2)
	assert.Equal(t, "-6.2088,106.8456", queries[0])
	assert.Equal(t, "Jakarta", queries[1])
}

func TestServiceNetworkErrorState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections from now on
	c := NewClient("test-key")
	c.baseURL = srv.URL

	svc := NewService(c, "Jakarta")
	svc.Refresh(context.Background())

	st := svc.Status()
	assert.Equal(t, ErrKindNetwork, st.ErrorKind)
	assert.Equal(t, "Gagal memuat data cuaca", st.Error)
}

func TestServiceStartStop(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, currentJSON)
	})
	svc := NewService(c, "Jakarta")

	require.NoError(t, svc.Start(context.Background(), "@every 1h"))
	defer svc.Stop()

	assert.Equal(t, int32(1), calls.Load(), "Start fetches once immediately")
	require.NotNil(t, svc.Status().Report)
}

func TestServiceStartBadSchedule(t *testing.T) {
	svc := NewService(NewClient(""), "Jakarta")
	assert.Error(t, svc.Start(context.Background(), "not a cron spec"))
}
