package pastebintest

import (
	"context"
	"testing"
	"time"

	perrors "github.com/matzehuels/pastebin/pkg/errors"
	"github.com/matzehuels/pastebin/pkg/pastebin"
)

func newClient(t *testing.T, srv *Server, opts ...pastebin.Option) *pastebin.Client {
	t.Helper()
	opts = append([]pastebin.Option{pastebin.WithBaseURL(srv.URL), pastebin.WithHTTPClient(srv.Client())}, opts...)
	client, err := pastebin.NewClient("dev", opts...)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return client
}

func TestLifecycle(t *testing.T) {
	srv := NewServer(t, "dev")
	srv.AddUser("alice", "secret")
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	srv.SetClock(func() time.Time { return fixed })

	client := newClient(t, srv)
	ctx := context.Background()

	// No pastes yet: absent, not empty.
	if _, err := client.Authenticate(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Authenticate() error: %v", err)
	}
	if len(client.UserKey()) != 32 {
		t.Errorf("UserKey() = %q, want 32 hex characters", client.UserKey())
	}
	if _, ok, err := client.ListPastes(ctx, nil); ok || err != nil {
		t.Fatalf("ListPastes() = ok %v, err %v, want absent", ok, err)
	}

	url, err := client.CreatePaste(ctx, "package main", &pastebin.PasteOptions{
		Title:      "main.go",
		Format:     "go",
		AsUser:     true,
		Visibility: "private",
		Expiration: pastebin.Expire1Day,
	})
	if err != nil {
		t.Fatalf("CreatePaste() error: %v", err)
	}
	key := url[len(srv.URL)+1:]
	if got, _ := srv.Content(key); got != "package main" {
		t.Errorf("stored content = %q", got)
	}

	raw, ok, err := client.ListPastes(ctx, &pastebin.ListOptions{Limit: pastebin.Limit(10)})
	if err != nil || !ok {
		t.Fatalf("ListPastes() = ok %v, err %v", ok, err)
	}
	pastes, err := pastebin.ParsePastesXML(raw)
	if err != nil {
		t.Fatalf("ParsePastesXML() error: %v", err)
	}
	if len(pastes) != 1 {
		t.Fatalf("len(pastes) = %d, want 1", len(pastes))
	}
	p := pastes[0]
	if p.Key != key || p.Title != "main.go" || p.Visibility != pastebin.VisibilityPrivate {
		t.Errorf("paste = %+v", p)
	}
	if p.FormatShort != "go" || p.FormatLong != "Go" {
		t.Errorf("formats = %q/%q", p.FormatLong, p.FormatShort)
	}
	if !p.Date.Equal(fixed) || p.ExpireDate == nil || !p.ExpireDate.Equal(fixed.Add(24*time.Hour)) {
		t.Errorf("dates = %v/%v", p.Date, p.ExpireDate)
	}

	content, err := client.UserPaste(ctx, key, "")
	if err != nil || string(content) != "package main" {
		t.Errorf("UserPaste() = %q, %v", content, err)
	}

	// Private pastes are not readable anonymously.
	if _, err := client.RawPaste(ctx, key); !perrors.Is(err, perrors.ErrCodeRequestError) {
		t.Errorf("RawPaste() error = %v, want REQUEST_ERROR", err)
	}

	details, err := client.UserDetails(ctx, "")
	if err != nil {
		t.Fatalf("UserDetails() error: %v", err)
	}
	users, err := pastebin.ParseUsersXML(details)
	if err != nil || len(users) != 1 || users[0].Name != "alice" {
		t.Fatalf("ParseUsersXML() = %v, %v", users, err)
	}
	if users[0].AvatarURL != pastebin.DefaultAvatarURL || users[0].FormatShort != pastebin.FormatNone {
		t.Errorf("user = %+v, want defaults", users[0])
	}

	deleted, err := client.DeletePaste(ctx, key, "")
	if err != nil || !deleted {
		t.Fatalf("DeletePaste() = %v, %v", deleted, err)
	}
	if srv.Len() != 0 {
		t.Errorf("Len() = %d after delete", srv.Len())
	}
	if _, err := client.DeletePaste(ctx, key, ""); !perrors.Is(err, perrors.ErrCodeBadRequest) {
		t.Errorf("second DeletePaste() error = %v, want BAD_REQUEST", err)
	}
}

func TestLoginErrors(t *testing.T) {
	srv := NewServer(t, "dev")
	srv.AddUser("alice", "secret")
	ctx := context.Background()

	_, err := newClient(t, srv).Authenticate(ctx, "alice", "wrong")
	if perrors.UserMessage(err) != "invalid login" {
		t.Errorf("Authenticate() error = %v, want invalid login", err)
	}

	other, err := pastebin.NewClient("other", pastebin.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	_, err = other.Authenticate(ctx, "alice", "secret")
	if !perrors.Is(err, perrors.ErrCodeBadRequest) || perrors.UserMessage(err) != "invalid api_dev_key" {
		t.Errorf("Authenticate() error = %v, want invalid api_dev_key", err)
	}
}

func TestGuestPasteAndScraping(t *testing.T) {
	srv := NewServer(t, "dev")
	client := newClient(t, srv)
	ctx := context.Background()

	var keys []string
	for _, opts := range []*pastebin.PasteOptions{
		{Title: "one", Format: "python"},
		{Title: "two"},
		{Title: "hidden", Visibility: "unlisted"},
	} {
		url, err := client.CreatePaste(ctx, "content "+opts.Title, opts)
		if err != nil {
			t.Fatalf("CreatePaste(%s) error: %v", opts.Title, err)
		}
		keys = append(keys, url[len(srv.URL)+1:])
	}

	content, err := client.RawPaste(ctx, keys[0])
	if err != nil || string(content) != "content one" {
		t.Errorf("RawPaste() = %q, %v", content, err)
	}

	data, err := client.ScrapeRecent(ctx, 10, "")
	if err != nil {
		t.Fatalf("ScrapeRecent() error: %v", err)
	}
	recent, err := pastebin.ParsePastesJSON(data)
	if err != nil {
		t.Fatalf("ParsePastesJSON() error: %v", err)
	}
	// Newest first, unlisted excluded.
	if len(recent) != 2 || recent[0].Title != "two" || recent[1].Title != "one" {
		t.Fatalf("recent = %+v", recent)
	}
	if recent[0].FormatShort != "" || recent[1].FormatShort != "python" {
		t.Errorf("syntax = %q/%q", recent[0].FormatShort, recent[1].FormatShort)
	}
	if recent[1].Hits != 1 {
		t.Errorf("Hits = %d, want 1 after one raw read", recent[1].Hits)
	}

	data, err = client.ScrapeRecent(ctx, 0, "python")
	if err != nil {
		t.Fatalf("ScrapeRecent(lang) error: %v", err)
	}
	if byLang, _ := pastebin.ParsePastesJSON(data); len(byLang) != 1 {
		t.Errorf("ScrapeRecent(lang) = %d pastes, want 1", len(byLang))
	}

	meta, err := client.ScrapeItemMeta(ctx, keys[1])
	if err != nil {
		t.Fatalf("ScrapeItemMeta() error: %v", err)
	}
	one, err := pastebin.ParsePastesJSONCollapsed(meta)
	if err != nil {
		t.Fatalf("ParsePastesJSONCollapsed() error: %v", err)
	}
	if p, ok := one.(pastebin.Paste); !ok || p.Key != keys[1] {
		t.Errorf("metadata = %#v", one)
	}

	item, err := client.ScrapeItem(ctx, keys[2])
	if err != nil || string(item) != "content hidden" {
		t.Errorf("ScrapeItem() = %q, %v", item, err)
	}

	if _, err := client.ScrapeItem(ctx, "missing"); !perrors.Is(err, perrors.ErrCodeRequestError) {
		t.Errorf("ScrapeItem(missing) error = %v, want REQUEST_ERROR", err)
	}

	srv.SetWhitelisted(false)
	if _, err := client.ScrapeRecent(ctx, 0, ""); !perrors.Is(err, perrors.ErrCodeNotWhitelisted) {
		t.Errorf("ScrapeRecent() error = %v, want NOT_WHITELISTED", err)
	}
}

func TestCreatePasteRejected(t *testing.T) {
	srv := NewServer(t, "dev")
	client := newClient(t, srv)
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		opts    *pastebin.PasteOptions
		wantMsg string
	}{
		{"empty content", "", nil, "api_paste_code was empty"},
		{"unknown format", "x", &pastebin.PasteOptions{Format: "klingon"}, "invalid api_paste_format"},
		{"bad expiration", "x", &pastebin.PasteOptions{Expiration: "3D"}, "invalid api_expire_date"},
		{"private guest", "x", &pastebin.PasteOptions{Visibility: "private"}, "invalid api_paste_private"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreatePaste(ctx, tt.content, tt.opts)
			if !perrors.Is(err, perrors.ErrCodeBadRequest) || perrors.UserMessage(err) != tt.wantMsg {
				t.Errorf("CreatePaste() error = %v, want %q", err, tt.wantMsg)
			}
		})
	}
	if srv.Len() != 0 {
		t.Errorf("Len() = %d, want 0", srv.Len())
	}
}

func TestTrending(t *testing.T) {
	srv := NewServer(t, "dev")
	client := newClient(t, srv)
	ctx := context.Background()

	raw, err := client.Trending(ctx)
	if err != nil {
		t.Fatalf("Trending() error: %v", err)
	}
	if pastes, err := pastebin.ParsePastesXML(raw); err != nil || len(pastes) != 0 {
		t.Errorf("empty trends = %v, %v", pastes, err)
	}

	if _, err := client.CreatePaste(ctx, "x", &pastebin.PasteOptions{Title: "t"}); err != nil {
		t.Fatalf("CreatePaste() error: %v", err)
	}
	raw, err = client.Trending(ctx)
	if err != nil {
		t.Fatalf("Trending() error: %v", err)
	}
	pastes, err := pastebin.ParsePastesXML(raw)
	if err != nil || len(pastes) != 1 || pastes[0].FormatShort != "" {
		t.Errorf("trends = %+v, %v", pastes, err)
	}
}
