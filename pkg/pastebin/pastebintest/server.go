// Package pastebintest provides an in-memory Pastebin service for tests.
//
// [Server] speaks the same form fields and response markers as the real
// service, so a [pastebin.Client] pointed at it with [pastebin.WithBaseURL]
// exercises every code path without network access:
//
//	srv := pastebintest.NewServer(t, "dev-key")
//	srv.AddUser("alice", "secret")
//	client, _ := pastebin.NewClient("dev-key", pastebin.WithBaseURL(srv.URL))
package pastebintest

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/pastebin/pkg/pastebin"
)

const (
	pasteKeyLength = 8
	maxScrapeLimit = 250
)

// Server is a fake Pastebin service backed by an [httptest.Server].
// It is safe for concurrent use.
type Server struct {
	*httptest.Server

	devKey string

	mu          sync.Mutex
	whitelisted bool
	now         func() time.Time
	accounts    map[string]*account // by name
	sessions    map[string]string   // user key -> name
	pastes      map[string]*entry
	order       []string // paste keys, oldest first
}

type account struct {
	password string
	user     pastebin.User
}

type entry struct {
	paste   pastebin.Paste
	content string
}

// NewServer starts a fake service that accepts devKey. The server is closed
// when the test ends.
func NewServer(t testing.TB, devKey string) *Server {
	t.Helper()

	s := &Server{
		devKey:      devKey,
		whitelisted: true,
		now:         time.Now,
		accounts:    make(map[string]*account),
		sessions:    make(map[string]string),
		pastes:      make(map[string]*entry),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/api_login.php", s.handleLogin)
	r.Post("/api/api_post.php", s.handlePost)
	r.Post("/api/api_raw.php", s.handleUserRaw)
	r.Get("/raw/{key}", s.handleRaw)
	r.Get("/api_scraping.php", s.handleScrape)
	r.Get("/api_scrape_item.php", s.handleScrapeItem)
	r.Get("/api_scrape_item_meta.php", s.handleScrapeMeta)
	return r
}

// AddUser registers an account with the service's default settings.
func (s *Server) AddUser(name, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := pastebin.NewUser()
	u.Name = name
	s.accounts[name] = &account{password: password, user: u}
}

// SetWhitelisted controls whether scraping requests are answered. The default
// is true.
func (s *Server) SetWhitelisted(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.whitelisted = ok
}

// SetClock replaces the time source used for paste dates and expirations.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Content returns the stored content of a paste.
func (s *Server) Content(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pastes[key]
	if !ok {
		return "", false
	}
	return e.content, true
}

// Len returns the number of stored pastes.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pastes)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.checkDevKey(w, r) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[r.PostFormValue("api_user_name")]
	if !ok || acct.password != r.PostFormValue("api_user_password") {
		badRequest(w, "invalid login")
		return
	}
	key := newKey()
	s.sessions[key] = acct.user.Name
	fmt.Fprint(w, key)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if !s.checkDevKey(w, r) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.PostFormValue("api_option") {
	case "paste":
		s.createPaste(w, r)
	case "list":
		s.listPastes(w, r)
	case "trends":
		s.trending(w)
	case "delete":
		s.deletePaste(w, r)
	case "userdetails":
		s.userDetails(w, r)
	default:
		badRequest(w, "invalid api_option")
	}
}

func (s *Server) handleUserRaw(w http.ResponseWriter, r *http.Request) {
	if !s.checkDevKey(w, r) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r.PostFormValue("api_option") != "show_paste" {
		badRequest(w, "invalid api_option")
		return
	}
	owner, ok := s.session(w, r)
	if !ok {
		return
	}
	e, ok := s.pastes[r.PostFormValue("api_paste_key")]
	if !ok || e.paste.User != owner {
		badRequest(w, "invalid permission to view this paste or invalid api_paste_key")
		return
	}
	fmt.Fprint(w, e.content)
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pastes[chi.URLParam(r, "key")]
	if !ok || e.paste.Visibility == pastebin.VisibilityPrivate {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "Error, this is a private paste or it is pending moderation.")
		return
	}
	e.paste.Hits++
	fmt.Fprint(w, e.content)
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.checkWhitelist(w) {
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxScrapeLimit {
			fmt.Fprint(w, "Error, invalid limit")
			return
		}
		limit = n
	}
	lang := r.URL.Query().Get("lang")

	out := make([]scrapeItem, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		e := s.pastes[s.order[i]]
		if e.paste.Visibility != pastebin.VisibilityPublic {
			continue
		}
		if lang != "" && syntaxOf(e.paste) != lang {
			continue
		}
		out = append(out, s.scrapeItem(e.paste))
	}
	writeJSON(w, out)
}

func (s *Server) handleScrapeItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.scrapeLookup(w, r)
	if !ok {
		return
	}
	fmt.Fprint(w, e.content)
}

func (s *Server) handleScrapeMeta(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.scrapeLookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, []scrapeItem{s.scrapeItem(e.paste)})
}

// =============================================================================
// api_option handlers (called with s.mu held)
// =============================================================================

func (s *Server) createPaste(w http.ResponseWriter, r *http.Request) {
	content := r.PostFormValue("api_paste_code")
	if content == "" {
		badRequest(w, "api_paste_code was empty")
		return
	}

	owner := ""
	if r.PostFormValue("api_user_key") != "" {
		name, ok := s.session(w, r)
		if !ok {
			return
		}
		owner = name
	}

	vis, err := strconv.Atoi(r.PostFormValue("api_paste_private"))
	if err != nil || vis < 0 || vis > 2 {
		badRequest(w, "invalid api_paste_private")
		return
	}
	if pastebin.Visibility(vis) == pastebin.VisibilityPrivate && owner == "" {
		badRequest(w, "invalid api_paste_private")
		return
	}

	now := s.now().UTC().Truncate(time.Second)
	expire, ok := expiry(pastebin.Expiration(r.PostFormValue("api_paste_expire_date")), now)
	if !ok {
		badRequest(w, "invalid api_expire_date")
		return
	}

	format := r.PostFormValue("api_paste_format")
	long := ""
	if format != "" {
		f, ok := pastebin.LookupFormat(format)
		if !ok {
			badRequest(w, "invalid api_paste_format")
			return
		}
		long = f.Name
	}

	key := newKey()[:pasteKeyLength]
	s.pastes[key] = &entry{
		content: content,
		paste: pastebin.Paste{
			Key:         key,
			Date:        now,
			Title:       r.PostFormValue("api_paste_name"),
			Size:        len(content),
			ExpireDate:  expire,
			Visibility:  pastebin.Visibility(vis),
			FormatLong:  long,
			FormatShort: format,
			URL:         s.URL + "/" + key,
			User:        owner,
		},
	}
	s.order = append(s.order, key)
	fmt.Fprint(w, s.URL+"/"+key)
}

func (s *Server) listPastes(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.session(w, r)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(r.PostFormValue("api_results_limit"))
	if err != nil || limit < 1 || limit > 1000 {
		badRequest(w, "invalid api_results_limit")
		return
	}

	var pastes []pastebin.Paste
	for i := len(s.order) - 1; i >= 0 && len(pastes) < limit; i-- {
		if p := s.pastes[s.order[i]].paste; p.User == owner {
			pastes = append(pastes, p)
		}
	}
	if len(pastes) == 0 {
		fmt.Fprint(w, "No pastes found.")
		return
	}
	writePastesXML(w, pastes)
}

func (s *Server) trending(w http.ResponseWriter) {
	var pastes []pastebin.Paste
	for _, key := range s.order {
		if p := s.pastes[key].paste; p.Visibility == pastebin.VisibilityPublic {
			pastes = append(pastes, p)
		}
	}
	writePastesXML(w, pastes)
}

func (s *Server) deletePaste(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.session(w, r)
	if !ok {
		return
	}
	key := r.PostFormValue("api_paste_key")
	e, ok := s.pastes[key]
	if !ok || e.paste.User != owner {
		badRequest(w, "invalid permission to remove paste")
		return
	}
	delete(s.pastes, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	fmt.Fprint(w, "Paste Removed")
}

func (s *Server) userDetails(w http.ResponseWriter, r *http.Request) {
	name, ok := s.session(w, r)
	if !ok {
		return
	}
	u := s.accounts[name].user
	format := u.FormatShort
	if format == "" {
		format = "None"
	}
	writeXML(w, xmlUser{
		Name:        u.Name,
		FormatShort: format,
		Expiration:  string(u.Expiration),
		AvatarURL:   u.AvatarURL,
		Private:     int(u.Visibility),
		Website:     u.Website,
		Email:       u.Email,
		Location:    u.Location,
		AccountType: int(u.AccountType),
	})
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) checkDevKey(w http.ResponseWriter, r *http.Request) bool {
	if r.PostFormValue("api_dev_key") != s.devKey {
		badRequest(w, "invalid api_dev_key")
		return false
	}
	return true
}

// session resolves api_user_key to an account name.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, ok := s.sessions[r.PostFormValue("api_user_key")]
	if !ok {
		badRequest(w, "invalid api_user_key")
	}
	return name, ok
}

func (s *Server) checkWhitelist(w http.ResponseWriter) bool {
	if !s.whitelisted {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprintf(w, "YOUR IP: 127.0.0.1 DOES NOT HAVE ACCESS. VISIT: %s/scraping TO GET ACCESS!", s.URL)
	}
	return s.whitelisted
}

func (s *Server) scrapeLookup(w http.ResponseWriter, r *http.Request) (*entry, bool) {
	if !s.checkWhitelist(w) {
		return nil, false
	}
	e, ok := s.pastes[r.URL.Query().Get("i")]
	if !ok || e.paste.Visibility == pastebin.VisibilityPrivate {
		fmt.Fprint(w, "Error, we cannot find this paste.")
		return nil, false
	}
	return e, true
}

func badRequest(w http.ResponseWriter, msg string) {
	fmt.Fprintf(w, "Bad API request, %s", msg)
}

// newKey returns a random 32-character hex key.
func newKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

var expireDurations = map[pastebin.Expiration]time.Duration{
	pastebin.Expire10Minute: 10 * time.Minute,
	pastebin.Expire1Hour:    time.Hour,
	pastebin.Expire1Day:     24 * time.Hour,
	pastebin.Expire1Week:    7 * 24 * time.Hour,
	pastebin.Expire2Weeks:   14 * 24 * time.Hour,
}

func expiry(e pastebin.Expiration, now time.Time) (*time.Time, bool) {
	var t time.Time
	switch e {
	case pastebin.ExpireNever:
		return nil, true
	case pastebin.Expire1Month:
		t = now.AddDate(0, 1, 0)
	case pastebin.Expire6Months:
		t = now.AddDate(0, 6, 0)
	case pastebin.Expire1Year:
		t = now.AddDate(1, 0, 0)
	default:
		d, ok := expireDurations[e]
		if !ok {
			return nil, false
		}
		t = now.Add(d)
	}
	return &t, true
}

func syntaxOf(p pastebin.Paste) string {
	if p.FormatShort == "" {
		return pastebin.FormatNone
	}
	return p.FormatShort
}

func unixOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}

// =============================================================================
// Wire formats
// =============================================================================

type xmlPaste struct {
	XMLName     xml.Name `xml:"paste"`
	Key         string   `xml:"paste_key"`
	Date        int64    `xml:"paste_date"`
	Title       string   `xml:"paste_title"`
	Size        int      `xml:"paste_size"`
	ExpireDate  int64    `xml:"paste_expire_date"`
	Private     int      `xml:"paste_private"`
	FormatLong  string   `xml:"paste_format_long"`
	FormatShort string   `xml:"paste_format_short"`
	URL         string   `xml:"paste_url"`
	Hits        int      `xml:"paste_hits"`
}

type xmlUser struct {
	XMLName     xml.Name `xml:"user"`
	Name        string   `xml:"user_name"`
	FormatShort string   `xml:"user_format_short"`
	Expiration  string   `xml:"user_expiration"`
	AvatarURL   string   `xml:"user_avatar_url"`
	Private     int      `xml:"user_private"`
	Website     string   `xml:"user_website"`
	Email       string   `xml:"user_email"`
	Location    string   `xml:"user_location"`
	AccountType int      `xml:"user_account_type"`
}

type scrapeItem struct {
	ScrapeURL string `json:"scrape_url"`
	FullURL   string `json:"full_url"`
	Date      string `json:"date"`
	Key       string `json:"key"`
	Size      string `json:"size"`
	Expire    string `json:"expire"`
	Title     string `json:"title"`
	Syntax    string `json:"syntax"`
	User      string `json:"user"`
	Hits      string `json:"hits"`
}

func (s *Server) scrapeItem(p pastebin.Paste) scrapeItem {
	return scrapeItem{
		ScrapeURL: s.URL + "/api_scrape_item.php?i=" + p.Key,
		FullURL:   p.URL,
		Date:      strconv.FormatInt(p.Date.Unix(), 10),
		Key:       p.Key,
		Size:      strconv.Itoa(p.Size),
		Expire:    strconv.FormatInt(unixOrZero(p.ExpireDate), 10),
		Title:     p.Title,
		Syntax:    syntaxOf(p),
		User:      p.User,
		Hits:      strconv.Itoa(p.Hits),
	}
}

func writePastesXML(w http.ResponseWriter, pastes []pastebin.Paste) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	for _, p := range pastes {
		long, short := p.FormatLong, p.FormatShort
		if short == "" {
			long, short = "None", "None"
		}
		writeXML(w, xmlPaste{
			Key:         p.Key,
			Date:        p.Date.Unix(),
			Title:       p.Title,
			Size:        p.Size,
			ExpireDate:  unixOrZero(p.ExpireDate),
			Private:     int(p.Visibility),
			FormatLong:  long,
			FormatShort: short,
			URL:         p.URL,
			Hits:        p.Hits,
		})
	}
}

func writeXML(w http.ResponseWriter, v any) {
	data, err := xml.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
