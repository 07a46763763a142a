package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	speciesPathPrefix   = "/api/v2/pokemon-species/"
	translatePathPrefix = "/translate/"
)

type cannedResponse struct {
	status int
	body   string
	delay  time.Duration
}

// FakePokeAPI is an in-process stand-in for the PokeAPI species endpoint.
// Species that were not registered answer 404.
type FakePokeAPI struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]cannedResponse
	calls     map[string]int
}

// NewFakePokeAPI starts a fake PokeAPI that is closed when the test ends
func NewFakePokeAPI(t testing.TB) *FakePokeAPI {
	t.Helper()

	f := &FakePokeAPI{
		responses: make(map[string]cannedResponse),
		calls:     make(map[string]int),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serveHTTP))
	t.Cleanup(f.server.Close)

	return f
}

// URL returns the base URL of the fake
func (f *FakePokeAPI) URL() string {
	return f.server.URL
}

// HasSpecies registers a 200 response carrying payload for name
func (f *FakePokeAPI) HasSpecies(name, payload string) {
	f.RespondsWith(name, http.StatusOK, payload)
}

// RespondsWith registers an arbitrary status and body for name
func (f *FakePokeAPI) RespondsWith(name string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[name] = cannedResponse{status: status, body: body}
}

// IsSlowToRespond registers a payload for name that is only sent after delay
func (f *FakePokeAPI) IsSlowToRespond(name, payload string, delay time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[name] = cannedResponse{status: http.StatusOK, body: payload, delay: delay}
}

// Calls returns how many requests were made for name
func (f *FakePokeAPI) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *FakePokeAPI) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || !strings.HasPrefix(r.URL.Path, speciesPathPrefix) {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, speciesPathPrefix)

	f.mu.Lock()
	f.calls[name]++
	resp, ok := f.responses[name]
	f.mu.Unlock()

	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeCanned(w, r, resp)
}

// FakeTranslationAPI is an in-process stand-in for the FunTranslations API.
// Tones that were not registered answer 404.
type FakeTranslationAPI struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]cannedResponse
	calls     map[string]int
	texts     map[string]string
}

// NewFakeTranslationAPI starts a fake translation API that is closed when the test ends
func NewFakeTranslationAPI(t testing.TB) *FakeTranslationAPI {
	t.Helper()

	f := &FakeTranslationAPI{
		responses: make(map[string]cannedResponse),
		calls:     make(map[string]int),
		texts:     make(map[string]string),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serveHTTP))
	t.Cleanup(f.server.Close)

	return f
}

// URL returns the base URL of the fake
func (f *FakeTranslationAPI) URL() string {
	return f.server.URL
}

// CanTranslate makes the tone endpoint answer with translated
func (f *FakeTranslationAPI) CanTranslate(segment, text, translated string) {
	f.RespondsWith(segment, http.StatusOK, TranslationEnvelope(text, translated, segment))
}

// HasHitRateLimit makes the tone endpoint answer 429
func (f *FakeTranslationAPI) HasHitRateLimit(segment string) {
	f.RespondsWith(segment, http.StatusTooManyRequests, RateLimitedBody)
}

// FailsToTranslate makes the tone endpoint answer 500
func (f *FakeTranslationAPI) FailsToTranslate(segment string) {
	f.RespondsWith(segment, http.StatusInternalServerError, "")
}

// IsSlowToRespond makes the tone endpoint answer only after delay
func (f *FakeTranslationAPI) IsSlowToRespond(segment, translated string, delay time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[segment] = cannedResponse{
		status: http.StatusOK,
		body:   TranslationEnvelope("", translated, segment),
		delay:  delay,
	}
}

// RespondsWith registers an arbitrary status and body for the tone endpoint
func (f *FakeTranslationAPI) RespondsWith(segment string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[segment] = cannedResponse{status: status, body: body}
}

// Calls returns how many requests were made to the tone endpoint
func (f *FakeTranslationAPI) Calls(segment string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[segment]
}

// TotalCalls returns how many requests were made to any endpoint
func (f *FakeTranslationAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// LastText returns the text of the last request made to the tone endpoint
func (f *FakeTranslationAPI) LastText(segment string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.texts[segment]
}

func (f *FakeTranslationAPI) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasPrefix(r.URL.Path, translatePathPrefix) {
		http.NotFound(w, r)
		return
	}
	segment := strings.TrimPrefix(r.URL.Path, translatePathPrefix)

	var req struct {
		Text string `json:"text"`
	}
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &req)

	f.mu.Lock()
	f.calls[segment]++
	f.texts[segment] = req.Text
	resp, ok := f.responses[segment]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	writeCanned(w, r, resp)
}

func writeCanned(w http.ResponseWriter, r *http.Request, resp cannedResponse) {
	if resp.delay > 0 {
		select {
		case <-time.After(resp.delay):
		case <-r.Context().Done():
			return
		}
	}

	if resp.body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}
