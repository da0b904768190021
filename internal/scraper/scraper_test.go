package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}
	return doc
}

func TestParseRoster(t *testing.T) {
	doc := loadFixture(t, "roster.html")

	refs := ParseRoster(doc, "https://www.mlb.com")

	expected := []struct {
		name string
		url  string
	}{
		{"Tyler Anderson", "https://www.mlb.com/player/tyler-anderson-542881"},
		{"José Soriano", "https://www.mlb.com/player/jose-soriano-667755"},
		{"Mike Trout", "https://www.mlb.com/player/mike-trout-545361"},
	}

	if len(refs) != len(expected) {
		t.Fatalf("expected %d refs, got %d: %+v", len(expected), len(refs), refs)
	}
	for i, want := range expected {
		if refs[i].Name != want.name {
			t.Errorf("refs[%d].Name = %q, expected %q", i, refs[i].Name, want.name)
		}
		if refs[i].ProfileURL != want.url {
			t.Errorf("refs[%d].ProfileURL = %q, expected %q", i, refs[i].ProfileURL, want.url)
		}
	}
}

func TestParseRoster_KeepsDuplicatesAndTrimsBase(t *testing.T) {
	doc := docFromString(t, `<div>
		<a href="/player/a-1">A</a>
		<a href="/player/a-1">A</a>
		<a href="/team/x">not a player</a>
	</div>`)

	refs := ParseRoster(doc, "http://127.0.0.1:9999/")

	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].ProfileURL != "http://127.0.0.1:9999/player/a-1" {
		t.Errorf("ProfileURL = %q", refs[0].ProfileURL)
	}
}

func TestParseRoster_Empty(t *testing.T) {
	refs := ParseRoster(docFromString(t, "<html><body>No roster</body></html>"), "https://www.mlb.com")
	if refs == nil || len(refs) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", refs)
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name         string
		html         string
		fixture      string
		wantPosition string
		wantHometown string
	}{
		{
			name:         "full profile fixture",
			fixture:      "profile_full.html",
			wantPosition: "CF",
			wantHometown: "Vineland, NJ",
		},
		{
			name:         "no born item",
			fixture:      "profile_no_born.html",
			wantPosition: "P",
			wantHometown: "",
		},
		{
			name:         "first markers win",
			fixture:      "profile_duplicates.html",
			wantPosition: "SS",
			wantHometown: "Anaheim, CA",
		},
		{
			name:         "born with surrounding whitespace",
			html:         "<ul><li>Born: 1/1/1990 in   Anaheim, CA  </li></ul>",
			wantHometown: "Anaheim, CA",
		},
		{
			name:         "born without birthplace delimiter",
			html:         "<ul><li>1B</li><li>B/T: L/L</li><li>Born: 1/1/1990</li></ul>",
			wantPosition: "1B",
			wantHometown: "",
		},
		{
			name:         "marker in first item has no predecessor",
			html:         "<ul><li>B/T: R/R</li><li>Born: 3/3/1993 in Santo Domingo Centro, D.R.</li></ul>",
			wantPosition: "",
			wantHometown: "Santo Domingo Centro, D.R.",
		},
		{
			name:         "no list items",
			html:         "<p>Born: 1/1/1990 in Anaheim, CA</p>",
			wantPosition: "",
			wantHometown: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc *goquery.Document
			if tt.fixture != "" {
				doc = loadFixture(t, tt.fixture)
			} else {
				doc = docFromString(t, tt.html)
			}

			p := ParseProfile(doc)

			if p.Position != tt.wantPosition {
				t.Errorf("Position = %q, expected %q", p.Position, tt.wantPosition)
			}
			if p.Hometown != tt.wantHometown {
				t.Errorf("Hometown = %q, expected %q", p.Hometown, tt.wantHometown)
			}
		})
	}
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Method = %s, want GET", r.Method)
		}
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q, want test-agent", ua)
		}
		fmt.Fprint(w, `<ul><li>C</li><li>B/T: R/R</li></ul>`)
	}))
	defer server.Close()

	s := New(WithUserAgent("test-agent"))
	doc, err := s.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := ParseProfile(doc).Position; got != "C" {
		t.Errorf("Position = %q, want C", got)
	}
}

func TestFetch_NotFoundIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := New(WithRetries(3))
	_, err := s.Fetch(context.Background(), server.URL)

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T (%v)", err, err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
	if fe.URL != server.URL {
		t.Errorf("URL = %q, want %q", fe.URL, server.URL)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected 1 attempt, got %d", n)
	}
}

func TestFetch_ServerErrorRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `<a href="/player/x-1">X</a>`)
	}))
	defer server.Close()

	s := New(WithRetries(1))
	doc, err := s.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if refs := ParseRoster(doc, "https://www.mlb.com"); len(refs) != 1 {
		t.Errorf("expected 1 ref, got %d", len(refs))
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected 2 attempts, got %d", n)
	}
}

func TestFetch_NoRetriesByDefault(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New().Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected 1 attempt, got %d", n)
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	s := New(WithTimeout(50 * time.Millisecond))
	_, err := s.Fetch(context.Background(), server.URL)

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T (%v)", err, err)
	}
	if fe.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for timeout", fe.StatusCode)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestFetchError_Message(t *testing.T) {
	err := &FetchError{URL: "https://www.mlb.com/angels/roster/", StatusCode: 500, Err: errors.New("unexpected status code: 500")}
	want := "fetching https://www.mlb.com/angels/roster/: unexpected status code: 500"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
