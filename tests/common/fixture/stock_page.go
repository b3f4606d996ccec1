//go:build unit || e2e

package fixture

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// StockPageHTML mimics the live stock page: a card grid where each card has a
// header block (title + countdown) and the item list.
const StockPageHTML = `<!DOCTYPE html>
<html lang="en">
<head><title>Grow a Garden Stock</title></head>
<body>
<nav><div><h2>Menu</h2><ul><li>Home</li><li>Values</li></ul></div></nav>
<main>
  <h1>Grow a Garden Stock</h1>
  <div class="grid grid-cols-1 md:grid-cols-3 gap-6 px-6 text-left max-w-screen-lg mx-auto">
    <div class="card">
      <div class="card-header">
        <h2>Seeds Stock</h2>
        <p>UPDATES IN: <span>03m 56s</span></p>
      </div>
      <ul>
        <li><span>Carrot</span> <span>x12</span></li>
        <li>Strawberry x4</li>
        <li>   </li>
        <li>Blueberry</li>
      </ul>
    </div>
    <div class="card">
      <div class="card-header">
        <h2>Gear Stock</h2>
        <p>Updates in: 03m 56s</p>
      </div>
      <ul>
        <li>Watering Can x3</li>
        <li>Trowel X2</li>
      </ul>
    </div>
    <div class="card">
      <div class="card-header">
        <h2>Egg Stock</h2>
        <p>Updates in: 12m 01s</p>
      </div>
      <ul>
        <li>Common Egg x2</li>
        <li>Mythical Egg xabc</li>
      </ul>
    </div>
    <div class="card">
      <div class="card-header">
        <h2>Honey Stock</h2>
        <p>Updates in: 5s</p>
      </div>
      <ul>
        <li>Flower Seed Pack x1</li>
      </ul>
    </div>
    <div class="card">
      <div class="card-header">
        <h2>Cosmetics Stock</h2>
        <p>Updates in: 1h 02m 03s</p>
      </div>
      <ul>
        <li>Sign Crate x1</li>
        <li>Lamp Post x5</li>
      </ul>
    </div>
    <div class="card">
      <div class="card-header"><h2>Weather</h2></div>
      <ul><li>Rain</li></ul>
    </div>
  </div>
</main>
</body>
</html>`

// PartialPageHTML only lists gear, inside a bare <main> without the grid.
const PartialPageHTML = `<html><body><main>
<div><h2>Gear Stock</h2><ul><li>Sprinkler x7</li></ul></div>
</main></body></html>`

// NoContainerHTML has none of the recognized container elements.
const NoContainerHTML = `<html><body><div><h2>Seeds</h2><ul><li>Carrot x1</li></ul></div></body></html>`

// SourceServer is a fake stock page whose response can be swapped mid-test.
type SourceServer struct {
	*httptest.Server

	mu        sync.Mutex
	status    int
	body      string
	delay     time.Duration
	requests  atomic.Int64
	userAgent atomic.Value
}

func NewSourceServer(t *testing.T, body string) *SourceServer {
	t.Helper()

	s := &SourceServer{status: http.StatusOK, body: body}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.userAgent.Store(r.Header.Get("User-Agent"))

		s.mu.Lock()
		status, body, delay := s.status, s.body, s.delay
		s.mu.Unlock()
		if delay > 0 {
			time.Sleep(delay)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *SourceServer) Respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// SetDelay makes every response wait d before being written.
func (s *SourceServer) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *SourceServer) Requests() int64 {
	return s.requests.Load()
}

func (s *SourceServer) LastUserAgent() string {
	ua, _ := s.userAgent.Load().(string)
	return ua
}
