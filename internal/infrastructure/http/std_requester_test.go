package httpinfra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdHttpRequester_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "AAPL", r.URL.Query().Get("q"))
		assert.Equal(t, "qsbp-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(",\"t\" : \"AAPL\"\n"))
	}))
	defer server.Close()

	requester, err := NewStdHttpRequesterFromOptions(time.Second, "", "qsbp-test")
	require.NoError(t, err)

	status, body, err := requester.Get(context.Background(), server.URL+"/finance/info?q=AAPL")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, ",\"t\" : \"AAPL\"\n", string(body))
}

func TestStdHttpRequester_Get_DecodesCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=iso-8859-1")
		// "Société" in latin-1
		_, _ = w.Write([]byte{'S', 'o', 'c', 'i', 0xe9, 't', 0xe9})
	}))
	defer server.Close()

	_, body, err := NewStdHttpRequester(server.Client()).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Société", string(body))
}

func TestStdHttpRequester_Get_NonOKStatusIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer server.Close()

	status, _, err := NewStdHttpRequester(server.Client()).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStdHttpRequester_Get_SingleAttempt(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, _, err := NewStdHttpRequester(server.Client()).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestStdHttpRequester_Get_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewStdHttpRequester(server.Client()).Get(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewTransport(t *testing.T) {
	tests := []struct {
		name      string
		proxyURL  string
		wantErr   bool
		wantProxy bool
	}{
		{name: "direct", proxyURL: ""},
		{name: "http proxy", proxyURL: "http://127.0.0.1:3128", wantProxy: true},
		{name: "socks5 proxy", proxyURL: "socks5://127.0.0.1:1080"},
		{name: "unsupported scheme", proxyURL: "ftp://127.0.0.1:21", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport, err := NewTransport(tt.proxyURL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantProxy, transport.Proxy != nil)
			assert.NotNil(t, transport.DialContext)
		})
	}
}

func TestRoundTripperWithHeaders_KeepsExplicitHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "explicit", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept"))
	}))
	defer server.Close()

	client := &http.Client{Transport: NewRoundTripperWithHeaders(nil, DefaultHeaders("default"))}
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "explicit")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "explicit", req.Header.Get("User-Agent"))
}

func TestMergeHeaders(t *testing.T) {
	base := map[string]string{"A": "1", "B": "2"}
	merged := MergeHeaders(base, map[string]string{"B": "3"})
	assert.Equal(t, map[string]string{"A": "1", "B": "3"}, merged)
	assert.Equal(t, "2", base["B"])
}
