package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})
	r.GET("/", handlers...)
	return r
}

func TestParseNetworks(t *testing.T) {
	networks, err := ParseNetworks([]string{"18.0.0.0/8", " 10.1.2.3 ", "", "::1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(networks) != 3 {
		t.Fatalf("unexpected networks: %v", networks)
	}
	if networks[1].String() != "10.1.2.3/32" {
		t.Errorf("bare ip should be a single host: %s", networks[1])
	}

	if _, err := ParseNetworks([]string{"not-an-ip"}); err == nil {
		t.Error("error expected")
	}
}

func TestAllowedClients(t *testing.T) {
	tests := []struct {
		name       string
		networks   []string
		keys       []string
		remoteAddr string
		apiKey     string
		expected   int
	}{
		{name: "inside network", networks: []string{"18.0.0.0/8"}, remoteAddr: "18.9.22.1:4000", expected: http.StatusOK},
		{name: "outside network", networks: []string{"18.0.0.0/8"}, remoteAddr: "128.30.2.1:4000", expected: http.StatusForbidden},
		{name: "outside with key", networks: []string{"18.0.0.0/8"}, keys: []string{"k1"}, remoteAddr: "128.30.2.1:4000", apiKey: "k1", expected: http.StatusOK},
		{name: "outside with wrong key", networks: []string{"18.0.0.0/8"}, keys: []string{"k1"}, remoteAddr: "128.30.2.1:4000", apiKey: "k2", expected: http.StatusForbidden},
		{name: "nothing configured", remoteAddr: "128.30.2.1:4000", expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nets, err := ParseNetworks(tt.networks)
			if err != nil {
				t.Fatal(err)
			}
			r := newTestRouter(AllowedClients(nets, tt.keys))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.apiKey != "" {
				req.Header.Set(HeaderAPIKey, tt.apiKey)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.expected {
				t.Errorf("got status %d, want %d", w.Code, tt.expected)
			}
		})
	}
}

func TestAllowedClientsForwardedFor(t *testing.T) {
	nets, err := ParseNetworks([]string{"18.0.0.0/8"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		trustedProxies []string
		remoteAddr     string
		forwardedFor   string
		expected       int
	}{
		{name: "header from untrusted client", remoteAddr: "203.0.113.5:4000", forwardedFor: "18.9.9.9", expected: http.StatusForbidden},
		{name: "allowed client with foreign header", remoteAddr: "18.9.22.1:4000", forwardedFor: "203.0.113.5", expected: http.StatusOK},
		{name: "trusted proxy forwards allowed client", trustedProxies: []string{"10.0.0.0/8"}, remoteAddr: "10.1.1.1:4000", forwardedFor: "18.9.9.9", expected: http.StatusOK},
		{name: "trusted proxy forwards outside client", trustedProxies: []string{"10.0.0.0/8"}, remoteAddr: "10.1.1.1:4000", forwardedFor: "203.0.113.5", expected: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(AllowedClients(nets, nil))
			if err := r.SetTrustedProxies(tt.trustedProxies); err != nil {
				t.Fatal(err)
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set("X-Forwarded-For", tt.forwardedFor)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.expected {
				t.Errorf("got status %d, want %d", w.Code, tt.expected)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(RequestID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	id := w.Header().Get(HeaderRequestID)
	if id == "" || w.Body.String() != id {
		t.Errorf("request id not assigned: header %q body %q", id, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(HeaderRequestID) != "abc" {
		t.Error("incoming request id should be kept")
	}
}
