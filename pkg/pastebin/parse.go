package pastebin

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	perrors "github.com/matzehuels/pastebin/pkg/errors"
)

// noneValue is the placeholder the XML endpoints send for an unset format.
const noneValue = "None"

// ParsePastesXML parses the <paste> list returned by [Client.ListPastes] and
// [Client.Trending].
//
// The service sends sibling <paste> elements without a root element; the
// fragment is wrapped in a synthetic root before decoding. Pastes are returned
// in document order. Empty input yields an empty slice. A record missing any
// expected field, or carrying a non-numeric number, fails with
// [perrors.ErrCodeMalformed].
func ParsePastesXML(s string) ([]Paste, error) {
	records, err := decodeXMLRecords(s)
	if err != nil {
		return nil, err
	}
	pastes := make([]Paste, 0, len(records))
	for _, r := range records {
		p, err := pasteFromXML(r)
		if err != nil {
			return nil, err
		}
		pastes = append(pastes, p)
	}
	return pastes, nil
}

// ParsePastesJSON parses the JSON array returned by [Client.ScrapeRecent] and
// [Client.ScrapeItemMeta]. Numeric fields may be JSON numbers or numeric
// strings. Empty or null input yields an empty slice.
func ParsePastesJSON(data []byte) ([]Paste, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []Paste{}, nil
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeMalformed, err, "decode paste JSON")
	}

	pastes := make([]Paste, 0, len(raw))
	for i, obj := range raw {
		r, err := recordFromJSON(i, obj)
		if err != nil {
			return nil, err
		}
		p, err := pasteFromJSON(r)
		if err != nil {
			return nil, err
		}
		pastes = append(pastes, p)
	}
	return pastes, nil
}

// ParseUsersXML parses the <user> element returned by [Client.UserDetails].
//
// Unlike the paste parsers it has no collapsed variant: the result is always a
// slice, even when the payload holds a single user.
func ParseUsersXML(s string) ([]User, error) {
	records, err := decodeXMLRecords(s)
	if err != nil {
		return nil, err
	}
	users := make([]User, 0, len(records))
	for _, r := range records {
		u, err := userFromXML(r)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// ParsePastesXMLCollapsed is [ParsePastesXML] with the legacy result shape: a
// single Paste when exactly one paste was parsed, a []Paste otherwise.
//
// Callers must type-switch on the result. New code should use ParsePastesXML.
func ParsePastesXMLCollapsed(s string) (any, error) {
	pastes, err := ParsePastesXML(s)
	if err != nil {
		return nil, err
	}
	return CollapseSingle(pastes), nil
}

// ParsePastesJSONCollapsed is [ParsePastesJSON] with the same legacy result
// shape as [ParsePastesXMLCollapsed].
func ParsePastesJSONCollapsed(data []byte) (any, error) {
	pastes, err := ParsePastesJSON(data)
	if err != nil {
		return nil, err
	}
	return CollapseSingle(pastes), nil
}

// CollapseSingle returns the only element of pastes when len(pastes) == 1 and
// pastes itself otherwise. An empty slice is never collapsed.
func CollapseSingle(pastes []Paste) any {
	if len(pastes) == 1 {
		return pastes[0]
	}
	return pastes
}

// =============================================================================
// Records
// =============================================================================

// record is the flat field mapping of one <paste>, <user> or JSON object.
type record struct {
	kind   string
	index  int
	fields map[string]string
}

func (r record) str(key string) (string, error) {
	v, ok := r.fields[key]
	if !ok {
		return "", perrors.New(perrors.ErrCodeMalformed, "%s %d: missing field %q", r.kind, r.index, key)
	}
	return v, nil
}

func (r record) integer(key string) (int64, error) {
	v, err := r.str(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, perrors.Wrap(perrors.ErrCodeMalformed, err, "%s %d: field %q", r.kind, r.index, key)
	}
	return n, nil
}

// optional returns the value of key, or "" when it equals placeholder.
func (r record) optional(key, placeholder string) (string, error) {
	v, err := r.str(key)
	if err != nil || v == placeholder {
		return "", err
	}
	return v, nil
}

func (r record) date(key string) (time.Time, error) {
	n, err := r.integer(key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(n, 0).UTC(), nil
}

// expiry returns nil for "N", an empty value or a timestamp <= 0.
func (r record) expiry(key string) (*time.Time, error) {
	v, err := r.str(key)
	if err != nil {
		return nil, err
	}
	if v = strings.TrimSpace(v); v == "" || v == string(ExpireNever) {
		return nil, nil
	}
	n, err := r.integer(key)
	if err != nil || n <= 0 {
		return nil, err
	}
	t := time.Unix(n, 0).UTC()
	return &t, nil
}

// =============================================================================
// XML
// =============================================================================

type xmlFragment struct {
	Records []xmlRecord `xml:",any"`
}

type xmlRecord struct {
	XMLName xml.Name
	Fields  []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

func decodeXMLRecords(s string) ([]record, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var frag xmlFragment
	if err := xml.Unmarshal([]byte("<root>"+s+"</root>"), &frag); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeMalformed, err, "decode XML")
	}

	records := make([]record, 0, len(frag.Records))
	for i, rec := range frag.Records {
		fields := make(map[string]string, len(rec.Fields))
		for _, f := range rec.Fields {
			fields[f.XMLName.Local] = f.Text
		}
		records = append(records, record{kind: rec.XMLName.Local, index: i, fields: fields})
	}
	return records, nil
}

func pasteFromXML(r record) (Paste, error) {
	var (
		p   Paste
		err error
		n   int64
	)
	if p.Key, err = r.str("paste_key"); err != nil {
		return Paste{}, err
	}
	if p.Date, err = r.date("paste_date"); err != nil {
		return Paste{}, err
	}
	if p.Title, err = r.str("paste_title"); err != nil {
		return Paste{}, err
	}
	if n, err = r.integer("paste_size"); err != nil {
		return Paste{}, err
	}
	p.Size = int(n)
	if p.ExpireDate, err = r.expiry("paste_expire_date"); err != nil {
		return Paste{}, err
	}
	if n, err = r.integer("paste_private"); err != nil {
		return Paste{}, err
	}
	p.Visibility = Visibility(n)
	if p.FormatLong, err = r.optional("paste_format_long", noneValue); err != nil {
		return Paste{}, err
	}
	if p.FormatShort, err = r.optional("paste_format_short", noneValue); err != nil {
		return Paste{}, err
	}
	if p.URL, err = r.str("paste_url"); err != nil {
		return Paste{}, err
	}
	if n, err = r.integer("paste_hits"); err != nil {
		return Paste{}, err
	}
	p.Hits = int(n)
	return p, nil
}

func userFromXML(r record) (User, error) {
	var (
		u   User
		err error
		n   int64
		exp string
	)
	if u.Name, err = r.str("user_name"); err != nil {
		return User{}, err
	}
	if u.FormatShort, err = r.optional("user_format_short", noneValue); err != nil {
		return User{}, err
	}
	if exp, err = r.str("user_expiration"); err != nil {
		return User{}, err
	}
	u.Expiration = Expiration(exp)
	if u.AvatarURL, err = r.str("user_avatar_url"); err != nil {
		return User{}, err
	}
	if n, err = r.integer("user_private"); err != nil {
		return User{}, err
	}
	u.Visibility = Visibility(n)
	if u.Website, err = r.str("user_website"); err != nil {
		return User{}, err
	}
	if u.Email, err = r.str("user_email"); err != nil {
		return User{}, err
	}
	if u.Location, err = r.str("user_location"); err != nil {
		return User{}, err
	}
	if n, err = r.integer("user_account_type"); err != nil {
		return User{}, err
	}
	u.AccountType = AccountType(n)
	return u, nil
}

// =============================================================================
// JSON
// =============================================================================

// recordFromJSON flattens one JSON object: strings keep their value, numbers
// keep their literal text and null becomes "".
func recordFromJSON(i int, obj map[string]json.RawMessage) (record, error) {
	fields := make(map[string]string, len(obj))
	for k, raw := range obj {
		raw = bytes.TrimSpace(raw)
		switch {
		case bytes.Equal(raw, []byte("null")):
			fields[k] = ""
		case len(raw) > 0 && raw[0] == '"':
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return record{}, perrors.Wrap(perrors.ErrCodeMalformed, err, "paste %d: field %q", i, k)
			}
			fields[k] = s
		case len(raw) > 0 && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')):
			fields[k] = string(raw)
		default:
			return record{}, perrors.New(perrors.ErrCodeMalformed, "paste %d: field %q has unsupported value %s", i, k, raw)
		}
	}
	return record{kind: "paste", index: i, fields: fields}, nil
}

func pasteFromJSON(r record) (Paste, error) {
	var (
		p   Paste
		err error
		n   int64
	)
	if p.Key, err = r.str("key"); err != nil {
		return Paste{}, err
	}
	if p.Date, err = r.date("date"); err != nil {
		return Paste{}, err
	}
	if p.Title, err = r.str("title"); err != nil {
		return Paste{}, err
	}
	if n, err = r.integer("size"); err != nil {
		return Paste{}, err
	}
	p.Size = int(n)
	if p.ExpireDate, err = r.expiry("expire"); err != nil {
		return Paste{}, err
	}
	if p.FormatShort, err = r.optional("syntax", FormatNone); err != nil {
		return Paste{}, err
	}
	if p.URL, err = r.str("full_url"); err != nil {
		return Paste{}, err
	}
	if p.ScrapeURL, err = r.str("scrape_url"); err != nil {
		return Paste{}, err
	}
	if n, err = r.integer("hits"); err != nil {
		return Paste{}, err
	}
	p.Hits = int(n)
	if p.User, err = r.str("user"); err != nil {
		return Paste{}, err
	}
	return p, nil
}
