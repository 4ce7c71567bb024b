package leaderboard_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/plus3/pixelblast/leaderboard"
)

type fakeServer struct {
	status int
	body   string
	delay  time.Duration

	method string
	sent   string
}

func (f *fakeServer) start(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.method = r.Method
		raw, _ := io.ReadAll(r.Body)
		f.sent = string(raw)
		if f.delay > 0 {
			select {
			case <-time.After(f.delay):
			case <-r.Context().Done():
				return
			}
		}
		if f.status != 0 {
			w.WriteHeader(f.status)
		}
		_, _ = io.WriteString(w, f.body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientNewClient(t *testing.T) {
	f := &fakeServer{body: `{"ok":true,"data":{"client":{"id":17,"name":"alice","maxPoints":0}}}`}
	srv := f.start(t)

	c := leaderboard.New(srv.URL)
	s, err := c.NewClient(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, leaderboard.Stats{ID: 17, Name: "alice"}, s)

	assert.Equal(t, http.MethodPost, f.method)
	assert.Equal(t, "alice", gjson.Get(f.sent, "name").String())
	assert.Equal(t, gjson.Number, gjson.Get(f.sent, "maxPoints").Type)
	assert.Zero(t, gjson.Get(f.sent, "maxPoints").Int())
	assert.False(t, gjson.Get(f.sent, "id").Exists())
}

func TestClientUpdateStats(t *testing.T) {
	f := &fakeServer{body: `{"ok":true,"data":{"client":{"id":3,"name":"bob","maxPoints":240}}}`}
	srv := f.start(t)

	c := leaderboard.New(srv.URL)
	s, err := c.UpdateStats(context.Background(), leaderboard.Stats{ID: 3, Name: "bob", MaxPoints: 240})
	require.NoError(t, err)
	assert.Equal(t, 240, s.MaxPoints)

	assert.Equal(t, http.MethodPost, f.method)
	assert.Equal(t, int64(3), gjson.Get(f.sent, "id").Int())
	assert.Equal(t, "bob", gjson.Get(f.sent, "name").String())
	assert.Equal(t, int64(240), gjson.Get(f.sent, "maxPoints").Int())
}

func TestClientReadStats(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		f := &fakeServer{body: `{"ok":true,"data":{"items":[
			{"id":1,"name":"a","maxPoints":10},
			{"id":2,"name":"b","maxPoints":30}
		]}}`}
		srv := f.start(t)

		list, err := leaderboard.New(srv.URL).ReadStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, f.method)
		assert.Equal(t, []leaderboard.Stats{{ID: 1, Name: "a", MaxPoints: 10}, {ID: 2, Name: "b", MaxPoints: 30}}, list)
	})

	t.Run("one malformed record rejects the list", func(t *testing.T) {
		f := &fakeServer{body: `{"ok":true,"data":{"items":[
			{"id":1,"name":"a","maxPoints":10},
			{"id":"2","name":"b","maxPoints":30}
		]}}`}
		srv := f.start(t)

		list, err := leaderboard.New(srv.URL).ReadStats(context.Background())
		assert.Nil(t, list)
		assert.ErrorIs(t, err, leaderboard.ErrServer)
		assert.Equal(t, leaderboard.StatusServerError, leaderboard.StatusOf(err))
	})

	t.Run("missing items is an empty table", func(t *testing.T) {
		f := &fakeServer{body: `{"ok":true,"data":{}}`}
		srv := f.start(t)

		list, err := leaderboard.New(srv.URL).ReadStats(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestClientStatus(t *testing.T) {
	tests := []struct {
		name   string
		server fakeServer
		want   leaderboard.Status
	}{
		{"not found", fakeServer{status: http.StatusNotFound}, leaderboard.StatusNotFound},
		{"internal error", fakeServer{status: http.StatusInternalServerError, body: `{"ok":true}`}, leaderboard.StatusServerError},
		{"ok false", fakeServer{body: `{"ok":false,"data":{"client":{"id":1,"name":"a","maxPoints":0}}}`}, leaderboard.StatusServerError},
		{"ok not a bool", fakeServer{body: `{"ok":"yes","data":{"client":{"id":1,"name":"a","maxPoints":0}}}`}, leaderboard.StatusServerError},
		{"empty client", fakeServer{body: `{"ok":true,"data":{"client":{}}}`}, leaderboard.StatusServerError},
		{"bad name", fakeServer{body: `{"ok":true,"data":{"client":{"id":1,"name":5,"maxPoints":0}}}`}, leaderboard.StatusServerError},
		{"not json", fakeServer{body: `<html>`}, leaderboard.StatusServerError},
		{"slow", fakeServer{delay: time.Second, body: `{}`}, leaderboard.StatusNoNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.server
			srv := f.start(t)

			c := leaderboard.New(srv.URL, leaderboard.WithTimeout(50*time.Millisecond))
			_, err := c.NewClient(context.Background(), "carol")
			require.Error(t, err)
			assert.Equal(t, tt.want, leaderboard.StatusOf(err))
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := leaderboard.New(url).ReadStats(context.Background())
		assert.ErrorIs(t, err, leaderboard.ErrNoNetwork)
		assert.Equal(t, leaderboard.StatusNoNetwork, leaderboard.StatusOf(err))
	})
}

func TestClientSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ok := &fakeServer{body: `{"ok":true,"data":{"items":[]}}`}
	c := leaderboard.New(ok.start(t).URL, leaderboard.WithTracerProvider(tp))
	_, err := c.ReadStats(context.Background())
	require.NoError(t, err)

	missing := &fakeServer{status: http.StatusNotFound}
	c = leaderboard.New(missing.start(t).URL, leaderboard.WithTracerProvider(tp))
	_, err = c.NewClient(context.Background(), "dave")
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "leaderboard.ReadStats", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, "leaderboard.NewClient", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "NotFound", spans[1].Status().Description)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, leaderboard.StatusOK, leaderboard.StatusOf(nil))
	assert.Equal(t, leaderboard.StatusNoNetwork, leaderboard.StatusOf(context.DeadlineExceeded))
	assert.Equal(t, "ServerError", leaderboard.StatusServerError.String())
}
