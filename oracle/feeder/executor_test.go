package feeder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractValue(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		path     string
		expValue string
		expErr   string
	}{
		{"nested object", `{"main":{"temp":21.5}}`, "main.temp", "21.5", ""},
		{"string value", `{"data":{"symbol":"ETH","price":"3120.44"}}`, "data.price", "3120.44", ""},
		{"array index", `{"data":[{"price":1},{"price":2}]}`, "data.1.price", "2", ""},
		{"array document", `[{"score":"3-1"}]`, "score", "3-1", ""},
		{"boolean", `{"ok":true}`, "ok", "true", ""},
		{"missing key", `{"main":{}}`, "main.temp", "", "not found"},
		{"object value", `{"main":{"temp":1}}`, "main", "", "scalar"},
		{"invalid json", `{"main":`, "main", "", "not valid JSON"},
		{"empty path", `{}`, "", "", "empty path"},
		{"empty value", `{"v":""}`, "v", "", "cannot be empty"},
		{"too long", `{"v":"` + strings.Repeat("x", 300) + `"}`, "v", "", "exceeds"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := extractValue([]byte(tc.raw), tc.path)
			if tc.expErr != "" {
				require.ErrorContains(t, err, tc.expErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expValue, value)
		})
	}
}

func TestFetchRawData(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"value":1}`))
	}))
	defer ts.Close()

	body, err := fetchRawData(context.Background(), ts.Client(), ts.URL+"/up")
	require.NoError(t, err)
	require.JSONEq(t, `{"value":1}`, string(body))

	_, err = fetchRawData(context.Background(), ts.Client(), ts.URL+"/down")
	require.ErrorContains(t, err, "unexpected status 503")

	_, err = fetchRawData(context.Background(), ts.Client(), "://bad")
	require.Error(t, err)
}

func TestExecutorClientIsShared(t *testing.T) {
	require.Same(t, executorClient(), executorClient())
}
