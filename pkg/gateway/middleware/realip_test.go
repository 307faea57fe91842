package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func resolveThroughMiddleware(t *testing.T, trustHops int, remoteAddr, xff string) string {
	t.Helper()

	var got string
	handler := RealIPMiddleware(trustHops)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClientKey(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestRealIPResolution(t *testing.T) {
	tests := []struct {
		name       string
		trustHops  int
		remoteAddr string
		xff        string
		want       string
	}{
		{
			name:       "no forwarded header uses peer address",
			trustHops:  1,
			remoteAddr: "203.0.113.7:54321",
			want:       "203.0.113.7",
		},
		{
			name:       "single forwarded entry",
			trustHops:  1,
			remoteAddr: "10.0.0.1:80",
			xff:        "198.51.100.4",
			want:       "198.51.100.4",
		},
		{
			name:       "left-most entry of a chain wins",
			trustHops:  1,
			remoteAddr: "10.0.0.1:80",
			xff:        "198.51.100.4, 10.0.0.2, 10.0.0.3",
			want:       "198.51.100.4",
		},
		{
			name:       "whitespace around entries is tolerated",
			trustHops:  1,
			remoteAddr: "10.0.0.1:80",
			xff:        "  198.51.100.4 , 10.0.0.2",
			want:       "198.51.100.4",
		},
		{
			name:       "malformed forwarded entry falls back to peer",
			trustHops:  1,
			remoteAddr: "203.0.113.7:443",
			xff:        "not-an-ip, 10.0.0.2",
			want:       "203.0.113.7",
		},
		{
			name:       "zero trust ignores forwarded header entirely",
			trustHops:  -1,
			remoteAddr: "203.0.113.7:443",
			xff:        "198.51.100.4",
			want:       "203.0.113.7",
		},
		{
			name:       "ipv6 peer address",
			trustHops:  1,
			remoteAddr: "[2001:db8::1]:5000",
			want:       "2001:db8::1",
		},
		{
			name:       "ipv6 forwarded entry",
			trustHops:  1,
			remoteAddr: "10.0.0.1:80",
			xff:        "2001:db8::2",
			want:       "2001:db8::2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveThroughMiddleware(t, tt.trustHops, tt.remoteAddr, tt.xff)
			if got != tt.want {
				t.Errorf("client key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientKeyWithoutResolver(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetClientKey(req.Context()); got != "" {
		t.Errorf("GetClientKey without resolver = %q, want empty", got)
	}
}
