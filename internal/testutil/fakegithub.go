// Package testutil provides in-process fakes of the remote services
// bumpkit talks to.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// FakeGitHub serves the subset of the GitHub REST API and web UI bumpkit
// uses, plus a Maven repository under /maven2. The same server acts as
// API root and web root.
type FakeGitHub struct {
	Server *httptest.Server

	mu        sync.Mutex
	repos     map[string]*FakeRepo
	compares  map[string]bool
	artifacts map[string]bool
	hits      map[string]int
	auth      map[string]string
}

// FakeRepo is the state of one repository.
type FakeRepo struct {
	// License is the SPDX id reported; empty reports "license": null.
	License string

	// Tags are returned by the tags endpoint in this order.
	Tags []string

	// Status, when non-zero, is returned by every endpoint of the repo.
	Status int

	// Unauthorized is the number of 401 answers the repo endpoint gives
	// before it starts answering normally.
	Unauthorized int

	// PageStatus maps a tags page number to the status it answers with.
	PageStatus map[int]int

	// RateLimited makes every endpoint of the repo answer with an
	// exhausted primary rate limit that resets a minute from now.
	RateLimited bool
}

// NewFakeGitHub starts a server that is closed when the test ends.
func NewFakeGitHub(t testing.TB) *FakeGitHub {
	t.Helper()

	f := &FakeGitHub{
		repos:     make(map[string]*FakeRepo),
		compares:  make(map[string]bool),
		artifacts: make(map[string]bool),
		hits:      make(map[string]int),
		auth:      make(map[string]string),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(f.record)
	r.Get("/repos/{owner}/{repo}", f.handleRepo)
	r.Get("/repos/{owner}/{repo}/tags", f.handleTags)
	r.Get("/{owner}/{repo}/compare/{basehead}", f.handleCompare)
	r.Get("/maven2/*", f.handleArtifact)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the server root without a trailing slash.
func (f *FakeGitHub) URL() string {
	return f.Server.URL
}

// AddRepo registers a repository and returns it for further tweaks.
func (f *FakeGitHub) AddRepo(slug, license string, tags ...string) *FakeRepo {
	f.mu.Lock()
	defer f.mu.Unlock()
	repo := &FakeRepo{License: license, Tags: tags}
	f.repos[slug] = repo
	return repo
}

// AddCompare makes the compare page between from and to exist.
func (f *FakeGitHub) AddCompare(slug, from, to string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compares[slug+"/compare/"+from+"..."+to] = true
}

// AddArtifact makes /maven2/<path> answer 200.
func (f *FakeGitHub) AddArtifact(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.artifacts[strings.TrimPrefix(path, "/")] = true
}

// Hits returns how many requests were made for path (without query).
func (f *FakeGitHub) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

// TotalHits returns the number of requests served.
func (f *FakeGitHub) TotalHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.hits {
		n += c
	}
	return n
}

// Authorization returns the last Authorization header seen for path.
func (f *FakeGitHub) Authorization(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auth[path]
}

func (f *FakeGitHub) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		f.auth[r.URL.Path] = r.Header.Get("Authorization")
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeGitHub) lookup(r *http.Request) (*FakeRepo, bool) {
	slug := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo")
	f.mu.Lock()
	defer f.mu.Unlock()
	repo, ok := f.repos[slug]
	return repo, ok
}

func (f *FakeGitHub) handleRepo(w http.ResponseWriter, r *http.Request) {
	repo, ok := f.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}

	f.mu.Lock()
	status, unauthorized := repo.Status, repo.Unauthorized > 0
	if unauthorized {
		repo.Unauthorized--
	}
	license, limited := repo.License, repo.RateLimited
	f.mu.Unlock()

	switch {
	case limited:
		writeRateLimited(w)
		return
	case unauthorized:
		writeError(w, http.StatusUnauthorized, "Bad credentials")
		return
	case status != 0:
		writeError(w, status, http.StatusText(status))
		return
	}

	body := map[string]any{
		"full_name": chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo"),
		"license":   nil,
	}
	if license != "" {
		body["license"] = map[string]string{
			"key":     strings.ToLower(license),
			"name":    license,
			"spdx_id": license,
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (f *FakeGitHub) handleTags(w http.ResponseWriter, r *http.Request) {
	repo, ok := f.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	page := queryInt(r, "page", 1)

	f.mu.Lock()
	status, tags, limited := repo.Status, repo.Tags, repo.RateLimited
	if s, ok := repo.PageStatus[page]; ok {
		status = s
	}
	f.mu.Unlock()
	if limited {
		writeRateLimited(w)
		return
	}
	if status != 0 {
		writeError(w, status, http.StatusText(status))
		return
	}

	perPage := queryInt(r, "per_page", 30)
	start := (page - 1) * perPage

	out := []map[string]string{}
	for i := start; i >= 0 && i < len(tags) && i < start+perPage; i++ {
		out = append(out, map[string]string{"name": tags[i]})
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeGitHub) handleCompare(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo") + "/compare/" + chi.URLParam(r, "basehead")
	f.mu.Lock()
	ok := f.compares[key]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte("<html><body>compare</body></html>"))
}

func (f *FakeGitHub) handleArtifact(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	ok := f.artifacts[chi.URLParam(r, "*")]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write([]byte("PK"))
}

func queryInt(r *http.Request, key string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func writeRateLimited(w http.ResponseWriter) {
	w.Header().Set("X-RateLimit-Limit", "60")
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))
	writeError(w, http.StatusForbidden, "API rate limit exceeded for 127.0.0.1.")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
