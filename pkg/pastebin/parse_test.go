package pastebin

import (
	"strings"
	"testing"
	"time"

	perrors "github.com/matzehuels/pastebin/pkg/errors"
)

const pasteXML1 = `<paste>
<paste_key>0b42rwhf</paste_key>
<paste_date>1297953260</paste_date>
<paste_title>javascript test</paste_title>
<paste_size>15</paste_size>
<paste_expire_date>1297956860</paste_expire_date>
<paste_private>0</paste_private>
<paste_format_long>JavaScript</paste_format_long>
<paste_format_short>javascript</paste_format_short>
<paste_url>https://pastebin.com/0b42rwhf</paste_url>
<paste_hits>15</paste_hits>
</paste>`

const pasteXML2 = `<paste>
<paste_key>0C343n0d</paste_key>
<paste_date>1297694343</paste_date>
<paste_title>Welcome To Pastebin V3</paste_title>
<paste_size>490</paste_size>
<paste_expire_date>0</paste_expire_date>
<paste_private>2</paste_private>
<paste_format_long>None</paste_format_long>
<paste_format_short>None</paste_format_short>
<paste_url>https://pastebin.com/0C343n0d</paste_url>
<paste_hits>65</paste_hits>
</paste>`

const userXML = `<user>
<user_name>wiz_kitty</user_name>
<user_format_short>text</user_format_short>
<user_expiration>N</user_expiration>
<user_avatar_url>https://pastebin.com/cache/a/1.jpg</user_avatar_url>
<user_private>1</user_private>
<user_website>https://example.com</user_website>
<user_email>wiz@example.com</user_email>
<user_location>Nowhere</user_location>
<user_account_type>1</user_account_type>
</user>`

const scrapeJSON = `[
  {
    "scrape_url": "https://scrape.pastebin.com/api_scrape_item.php?i=0CeaNm8Y",
    "full_url": "https://pastebin.com/0CeaNm8Y",
    "date": "1442911802",
    "key": "0CeaNm8Y",
    "size": "890",
    "expire": "0",
    "title": "Once we all know when we goto function",
    "syntax": "java",
    "user": "admin",
    "hits": "12"
  },
  {
    "scrape_url": "https://scrape.pastebin.com/api_scrape_item.php?i=Gw0ACkny",
    "full_url": "https://pastebin.com/Gw0ACkny",
    "date": 1442911798,
    "key": "Gw0ACkny",
    "size": 2,
    "expire": 1442998198,
    "title": "",
    "syntax": "text",
    "user": "",
    "hits": 0
  }
]`

func TestParsePastesXML(t *testing.T) {
	pastes, err := ParsePastesXML(pasteXML1 + "\n" + pasteXML2)
	if err != nil {
		t.Fatalf("ParsePastesXML() error: %v", err)
	}
	if len(pastes) != 2 {
		t.Fatalf("len = %d, want 2", len(pastes))
	}

	first := pastes[0]
	if first.Key != "0b42rwhf" || first.Title != "javascript test" {
		t.Errorf("first = %+v, want key 0b42rwhf in document order", first)
	}
	if !first.Date.Equal(time.Unix(1297953260, 0)) || first.Date.Location() != time.UTC {
		t.Errorf("Date = %v, want UTC instant 1297953260", first.Date)
	}
	if first.ExpireDate == nil || first.ExpireDate.Unix() != 1297956860 {
		t.Errorf("ExpireDate = %v, want 1297956860", first.ExpireDate)
	}
	if first.Size != 15 || first.Hits != 15 {
		t.Errorf("Size/Hits = %d/%d, want 15/15", first.Size, first.Hits)
	}
	if first.FormatLong != "JavaScript" || first.FormatShort != "javascript" {
		t.Errorf("formats = %q/%q", first.FormatLong, first.FormatShort)
	}

	second := pastes[1]
	if second.ExpireDate != nil {
		t.Errorf("ExpireDate = %v, want nil for 0", second.ExpireDate)
	}
	if second.FormatLong != "" || second.FormatShort != "" {
		t.Errorf("formats = %q/%q, want absent for None", second.FormatLong, second.FormatShort)
	}
	if second.Visibility != VisibilityPrivate {
		t.Errorf("Visibility = %v, want private", second.Visibility)
	}
}

func TestParsePastesXMLEmpty(t *testing.T) {
	for _, in := range []string{"", "  \n"} {
		pastes, err := ParsePastesXML(in)
		if err != nil {
			t.Fatalf("ParsePastesXML(%q) error: %v", in, err)
		}
		if pastes == nil || len(pastes) != 0 {
			t.Errorf("ParsePastesXML(%q) = %v, want empty slice", in, pastes)
		}
	}
}

func TestParsePastesXMLExpireNever(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"zero", "0"},
		{"N", "N"},
		{"negative", "-1"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := replaceField(pasteXML1, "paste_expire_date", tt.value)
			pastes, err := ParsePastesXML(in)
			if err != nil {
				t.Fatalf("ParsePastesXML() error: %v", err)
			}
			if pastes[0].ExpireDate != nil {
				t.Errorf("ExpireDate = %v, want nil", pastes[0].ExpireDate)
			}
		})
	}
}

func TestParsePastesXMLMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing field", removeField(pasteXML1, "paste_hits")},
		{"non-numeric size", replaceField(pasteXML1, "paste_size", "big")},
		{"non-numeric date", replaceField(pasteXML1, "paste_date", "yesterday")},
		{"unclosed element", "<paste><paste_key>x</paste_key>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePastesXML(tt.in)
			if !perrors.Is(err, perrors.ErrCodeMalformed) {
				t.Errorf("ParsePastesXML() error = %v, want MALFORMED_RESPONSE", err)
			}
		})
	}
}

func TestParsePastesXMLCollapsed(t *testing.T) {
	single, err := ParsePastesXMLCollapsed(pasteXML1)
	if err != nil {
		t.Fatalf("ParsePastesXMLCollapsed() error: %v", err)
	}
	if p, ok := single.(Paste); !ok || p.Key != "0b42rwhf" {
		t.Errorf("single result = %#v, want Paste", single)
	}

	multi, err := ParsePastesXMLCollapsed(pasteXML1 + pasteXML2)
	if err != nil {
		t.Fatalf("ParsePastesXMLCollapsed() error: %v", err)
	}
	if ps, ok := multi.([]Paste); !ok || len(ps) != 2 {
		t.Errorf("multi result = %#v, want []Paste of 2", multi)
	}

	empty, err := ParsePastesXMLCollapsed("")
	if err != nil {
		t.Fatalf("ParsePastesXMLCollapsed() error: %v", err)
	}
	if ps, ok := empty.([]Paste); !ok || len(ps) != 0 {
		t.Errorf("empty result = %#v, want empty []Paste", empty)
	}
}

func TestParsePastesJSON(t *testing.T) {
	pastes, err := ParsePastesJSON([]byte(scrapeJSON))
	if err != nil {
		t.Fatalf("ParsePastesJSON() error: %v", err)
	}
	if len(pastes) != 2 {
		t.Fatalf("len = %d, want 2", len(pastes))
	}

	first := pastes[0]
	if first.Key != "0CeaNm8Y" || first.User != "admin" || first.FormatShort != "java" {
		t.Errorf("first = %+v", first)
	}
	if first.ExpireDate != nil {
		t.Errorf("ExpireDate = %v, want nil for 0", first.ExpireDate)
	}
	if first.ScrapeURL == "" || first.URL != "https://pastebin.com/0CeaNm8Y" {
		t.Errorf("URLs = %q/%q", first.URL, first.ScrapeURL)
	}
	if first.Size != 890 || first.Hits != 12 {
		t.Errorf("Size/Hits = %d/%d, want 890/12", first.Size, first.Hits)
	}

	// Numbers as JSON numbers; "text" and "" are absent. Fields never leak
	// from the previous record.
	second := pastes[1]
	if second.FormatShort != "" {
		t.Errorf("FormatShort = %q, want absent for text", second.FormatShort)
	}
	if second.User != "" || second.Title != "" {
		t.Errorf("User/Title = %q/%q, want empty", second.User, second.Title)
	}
	if second.ExpireDate == nil || second.ExpireDate.Unix() != 1442998198 {
		t.Errorf("ExpireDate = %v, want 1442998198", second.ExpireDate)
	}
	if second.Size != 2 || second.Hits != 0 {
		t.Errorf("Size/Hits = %d/%d, want 2/0", second.Size, second.Hits)
	}
}

func TestParsePastesJSONEmpty(t *testing.T) {
	for _, in := range []string{"", "null", "[]"} {
		pastes, err := ParsePastesJSON([]byte(in))
		if err != nil {
			t.Fatalf("ParsePastesJSON(%q) error: %v", in, err)
		}
		if pastes == nil || len(pastes) != 0 {
			t.Errorf("ParsePastesJSON(%q) = %v, want empty slice", in, pastes)
		}
	}
}

func TestParsePastesJSONMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "VISIT: https://pastebin.com/scraping"},
		{"object not array", `{"key": "x"}`},
		{"missing field", `[{"key": "x", "date": "1"}]`},
		{"nested value", `[{"key": {"a": 1}}]`},
		{"non-numeric hits", `[{"scrape_url":"","full_url":"","date":"1","key":"k","size":"1","expire":"0","title":"","syntax":"text","user":"","hits":"many"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePastesJSON([]byte(tt.in))
			if !perrors.Is(err, perrors.ErrCodeMalformed) {
				t.Errorf("ParsePastesJSON() error = %v, want MALFORMED_RESPONSE", err)
			}
		})
	}
}

func TestParsePastesJSONCollapsed(t *testing.T) {
	one := `[{"scrape_url":"s","full_url":"u","date":"1","key":"k","size":"1","expire":"0","title":"t","syntax":"go","user":"","hits":"0"}]`

	got, err := ParsePastesJSONCollapsed([]byte(one))
	if err != nil {
		t.Fatalf("ParsePastesJSONCollapsed() error: %v", err)
	}
	if p, ok := got.(Paste); !ok || p.Key != "k" {
		t.Errorf("result = %#v, want single Paste", got)
	}
}

func TestParseUsersXML(t *testing.T) {
	users, err := ParseUsersXML(userXML)
	if err != nil {
		t.Fatalf("ParseUsersXML() error: %v", err)
	}
	// A single user is never collapsed.
	if len(users) != 1 {
		t.Fatalf("len = %d, want 1", len(users))
	}

	u := users[0]
	if u.Name != "wiz_kitty" || u.FormatShort != "text" || u.Expiration != ExpireNever {
		t.Errorf("user = %+v", u)
	}
	if u.Visibility != VisibilityUnlisted || u.AccountType != AccountPro {
		t.Errorf("Visibility/AccountType = %v/%v, want unlisted/pro", u.Visibility, u.AccountType)
	}
	if u.Website != "https://example.com" || u.Email != "wiz@example.com" || u.Location != "Nowhere" {
		t.Errorf("contact fields = %q/%q/%q", u.Website, u.Email, u.Location)
	}
}

func TestParseUsersXMLNoneFormat(t *testing.T) {
	users, err := ParseUsersXML(replaceField(userXML, "user_format_short", "None"))
	if err != nil {
		t.Fatalf("ParseUsersXML() error: %v", err)
	}
	if users[0].FormatShort != "" {
		t.Errorf("FormatShort = %q, want absent for None", users[0].FormatShort)
	}
}

func TestParseUsersXMLMalformed(t *testing.T) {
	_, err := ParseUsersXML(removeField(userXML, "user_email"))
	if !perrors.Is(err, perrors.ErrCodeMalformed) {
		t.Errorf("ParseUsersXML() error = %v, want MALFORMED_RESPONSE", err)
	}

	_, err = ParseUsersXML(replaceField(userXML, "user_account_type", "gold"))
	if !perrors.Is(err, perrors.ErrCodeMalformed) {
		t.Errorf("ParseUsersXML() error = %v, want MALFORMED_RESPONSE", err)
	}
}

func TestCollapseSingle(t *testing.T) {
	if got, ok := CollapseSingle(nil).([]Paste); !ok || got != nil {
		t.Errorf("CollapseSingle(nil) = %#v", got)
	}
	if _, ok := CollapseSingle([]Paste{{Key: "a"}}).(Paste); !ok {
		t.Error("CollapseSingle(one) did not collapse")
	}
	if got, ok := CollapseSingle([]Paste{{Key: "a"}, {Key: "b"}}).([]Paste); !ok || len(got) != 2 {
		t.Errorf("CollapseSingle(two) = %#v", got)
	}
}

// replaceField sets the text of <name> in an XML record.
func replaceField(s, name, value string) string {
	start := strings.Index(s, "<"+name+">") + len(name) + 2
	end := strings.Index(s, "</"+name+">")
	return s[:start] + value + s[end:]
}

// removeField drops <name>...</name> from an XML record.
func removeField(s, name string) string {
	start := strings.Index(s, "<"+name+">")
	end := strings.Index(s, "</"+name+">") + len(name) + 3
	return s[:start] + s[end:]
}
