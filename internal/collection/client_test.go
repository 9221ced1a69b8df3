package collection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/mmcdole/rijks/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const twoArtworks = `{
  "count": 4721,
  "artObjects": [
    {
      "objectNumber": "SK-C-5",
      "title": "The Night Watch",
      "principalOrFirstMaker": "Rembrandt van Rijn",
      "webImage": {"guid": "bbd1fae8", "url": "https://lh3.example.com/night-watch", "width": 2500, "height": 2034}
    },
    {
      "objectNumber": "SK-A-2344",
      "title": "The Milkmaid",
      "principalOrFirstMaker": "Johannes Vermeer"
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/api/en", "test-key", quietLogger()), server
}

func TestFetch_EncodesQueryParameters(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = io.WriteString(w, twoArtworks)
	})

	if _, err := c.Fetch(context.Background(), 3, "rembrandt night"); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if gotPath != "/api/en/collection" {
		t.Fatalf("path = %q, want /api/en/collection", gotPath)
	}
	if gotQuery.Get("key") != "test-key" ||
		gotQuery.Get("ps") != "10" ||
		gotQuery.Get("p") != "3" ||
		gotQuery.Get("q") != "rembrandt night" {
		t.Fatalf("query = %v, want key/ps/p/q encoded", gotQuery)
	}
}

func TestFetch_OmitsEmptySearchTerm(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = io.WriteString(w, twoArtworks)
	})

	if _, err := c.Fetch(context.Background(), 1, ""); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if _, ok := gotQuery["q"]; ok {
		t.Fatalf("query = %v, want no q parameter", gotQuery)
	}
}

func TestFetch_MapsArtworks(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, twoArtworks)
	})

	page, err := c.Fetch(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if page.TotalCount != 4721 {
		t.Fatalf("TotalCount = %d, want 4721", page.TotalCount)
	}
	if len(page.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(page.Items))
	}

	first := page.Items[0]
	if first.ID != "SK-C-5" || first.Title != "The Night Watch" || first.Maker != "Rembrandt van Rijn" {
		t.Fatalf("first = %#v, want Night Watch fields", first)
	}
	if first.Image == nil || first.Image.URL != "https://lh3.example.com/night-watch" ||
		first.Image.Width != 2500 || first.Image.Height != 2034 {
		t.Fatalf("first.Image = %#v, want mapped web image", first.Image)
	}
	if page.Items[1].Image != nil {
		t.Fatalf("second.Image = %#v, want nil for omitted webImage", page.Items[1].Image)
	}
}

func TestFetch_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"empty page", http.StatusOK, `{"count": 0, "artObjects": []}`, domain.ErrNoData},
		{"malformed body", http.StatusOK, `{not-json`, domain.ErrNetwork},
		{"rate limited", http.StatusTooManyRequests, "", domain.ErrTooManyRequests},
		{"internal error", http.StatusInternalServerError, "", domain.ErrServerError},
		{"unavailable", http.StatusServiceUnavailable, "", domain.ErrServerError},
		{"upper 5xx", 599, "", domain.ErrServerError},
		{"not found", http.StatusNotFound, "", domain.ErrNetwork},
		{"unauthorized", http.StatusUnauthorized, "", domain.ErrNetwork},
		{"redirect-ish", http.StatusNotModified, "", domain.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			page, err := c.Fetch(context.Background(), 1, "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("Fetch error = %v, want %v", err, tt.want)
			}
			if page != nil {
				t.Fatalf("page = %#v, want nil on error", page)
			}
		})
	}
}

func TestFetch_InvalidURLFailsBeforeNetwork(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)

	for _, base := range []string{"://missing-scheme", "relative/path", ""} {
		c := NewClient(base, "k", quietLogger())
		if _, err := c.Fetch(context.Background(), 1, ""); !errors.Is(err, domain.ErrInvalidURL) {
			t.Fatalf("Fetch(%q) error = %v, want ErrInvalidURL", base, err)
		}
	}

	c := NewClient(server.URL, "k", quietLogger())
	if _, err := c.Fetch(context.Background(), 0, ""); !errors.Is(err, domain.ErrInvalidURL) {
		t.Fatalf("Fetch(page 0) error = %v, want ErrInvalidURL", err)
	}
	if n := hits.Load(); n != 0 {
		t.Fatalf("server hits = %d, want 0", n)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestFetch_TransportFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"dns", &net.DNSError{Err: "no such host", Name: "www.rijksmuseum.nl", IsNotFound: true}, domain.ErrNoInternet},
		{"unreachable", &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ENETUNREACH)}, domain.ErrNoInternet},
		{"refused", &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, domain.ErrNetwork},
		{"other", errors.New("tls: handshake failure"), domain.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
				return nil, tt.err
			})}
			c := NewClient("https://www.rijksmuseum.nl/api/en", "k", quietLogger(), WithHTTPClient(hc))

			_, err := c.Fetch(context.Background(), 1, "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("Fetch error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetch_CanceledContextKeepsCause(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = io.WriteString(w, twoArtworks)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	t.Cleanup(cancel)

	_, err := c.Fetch(ctx, 1, "")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("Fetch error = %v, want ErrNetwork", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Fetch error = %v, want wrapped DeadlineExceeded", err)
	}
}

func TestMapImage_DropsInvalidImages(t *testing.T) {
	cases := []*webImage{
		nil,
		{URL: "https://example.com/a.jpg", Width: 0, Height: 10},
		{URL: "https://example.com/a.jpg", Width: 10, Height: -1},
		{URL: "/relative.jpg", Width: 10, Height: 10},
	}
	for _, img := range cases {
		if got := mapImage(img); got != nil {
			t.Fatalf("mapImage(%#v) = %#v, want nil", img, got)
		}
	}
}
