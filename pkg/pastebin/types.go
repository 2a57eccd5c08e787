package pastebin

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Pastebin service URL.
	DefaultBaseURL = "https://pastebin.com"

	// DefaultAvatarURL is the avatar the service assigns to accounts without one.
	DefaultAvatarURL = DefaultBaseURL + "/i/guest.png"

	// dateLayout renders paste and expiration dates.
	dateLayout = "2006-01-02"

	// none renders absent optional fields.
	none = "none"
)

// Visibility is the api_paste_private / user_private code of a paste.
type Visibility int

const (
	VisibilityPublic   Visibility = 0
	VisibilityUnlisted Visibility = 1
	VisibilityPrivate  Visibility = 2
)

var visibilityLabels = [...]string{"public", "unlisted", "private"}

// String returns the label of v ("public", "unlisted" or "private").
func (v Visibility) String() string {
	if v >= 0 && int(v) < len(visibilityLabels) {
		return visibilityLabels[v]
	}
	return "Visibility(" + strconv.Itoa(int(v)) + ")"
}

// ParseVisibility maps a visibility label to its code.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseVisibility(name string) (Visibility, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, label := range visibilityLabels {
		if label == name {
			return Visibility(i), true
		}
	}
	return VisibilityUnlisted, false
}

// AccountType is the user_account_type code of a user.
type AccountType int

const (
	AccountNormal AccountType = 0
	AccountPro    AccountType = 1
)

var accountLabels = [...]string{"normal", "pro"}

// String returns the label of a ("normal" or "pro").
func (a AccountType) String() string {
	if a >= 0 && int(a) < len(accountLabels) {
		return accountLabels[a]
	}
	return "AccountType(" + strconv.Itoa(int(a)) + ")"
}

// Expiration is an api_paste_expire_date value.
type Expiration string

// Expiration values accepted by the paste creation API.
const (
	ExpireNever    Expiration = "N"
	Expire10Minute Expiration = "10M"
	Expire1Hour    Expiration = "1H"
	Expire1Day     Expiration = "1D"
	Expire1Week    Expiration = "1W"
	Expire2Weeks   Expiration = "2W"
	Expire1Month   Expiration = "1M"
	Expire6Months  Expiration = "6M"
	Expire1Year    Expiration = "1Y"
)

// Expirations returns every accepted expiration value.
func Expirations() []Expiration {
	return []Expiration{
		ExpireNever, Expire10Minute, Expire1Hour, Expire1Day, Expire1Week,
		Expire2Weeks, Expire1Month, Expire6Months, Expire1Year,
	}
}

// Paste holds the metadata of a paste as reported by the list, trends and
// scraping endpoints.
//
// Optional string fields are empty when absent. The parsers never store the
// service's "None" or "text" placeholders; those become empty strings.
// Paste is a value type: parsers build a fresh one per record.
type Paste struct {
	Key         string     // Paste key (e.g. "0b42rwhf")
	Date        time.Time  // Creation time, UTC
	Title       string     // Title (may be empty)
	Size        int        // Size in bytes
	ExpireDate  *time.Time // Expiration time, nil if the paste never expires
	Visibility  Visibility // Public, unlisted or private
	FormatLong  string     // Syntax display name (may be empty)
	FormatShort string     // Syntax identifier (may be empty)
	URL         string     // Canonical paste URL
	Hits        int        // View count
	ScrapeURL   string     // Scraping API URL (scraping endpoints only, may be empty)
	User        string     // Owner username (may be empty); not resolved to a User
}

// String renders every field on one line. Absent values render as "none".
func (p Paste) String() string {
	expire := none
	if p.ExpireDate != nil {
		expire = p.ExpireDate.Format(dateLayout)
	}
	return fmt.Sprintf("Paste: key %s date %s title %s size %d expire date %s visibility %s "+
		"format (long %s short %s) url %s hits %d scrape URL %s user %s",
		p.Key, p.Date.Format(dateLayout), orNone(p.Title), p.Size, expire, p.Visibility,
		orNone(p.FormatLong), orNone(p.FormatShort), orNone(p.URL), p.Hits,
		orNone(p.ScrapeURL), orNone(p.User))
}

// Expired reports whether p has an expiration date at or before now.
func (p Paste) Expired(now time.Time) bool {
	return p.ExpireDate != nil && !p.ExpireDate.After(now)
}

// User holds the account settings returned by the userdetails endpoint.
type User struct {
	Name        string      // Account name
	FormatShort string      // Default syntax identifier (empty if the service reported "None")
	Expiration  Expiration  // Default expiration for new pastes
	AvatarURL   string      // Avatar image URL
	Visibility  Visibility  // Default visibility for new pastes
	Website     string      // Personal website (may be empty)
	Email       string      // Email address (may be empty)
	Location    string      // Location (may be empty)
	AccountType AccountType // Normal or pro
}

// NewUser returns a User with the service defaults: plain text format, no
// expiration, the guest avatar, public visibility and a normal account.
func NewUser() User {
	return User{
		FormatShort: FormatNone,
		Expiration:  ExpireNever,
		AvatarURL:   DefaultAvatarURL,
		Visibility:  VisibilityPublic,
		AccountType: AccountNormal,
	}
}

// String renders every field on one line using labels for the enumerations.
func (u User) String() string {
	return fmt.Sprintf("User: name %s def. format %s def. expiration %s avatar URL %s "+
		"def. visibility %s website %s email %s location %s account type %s",
		orNone(u.Name), orNone(u.FormatShort), orNone(string(u.Expiration)), orNone(u.AvatarURL),
		u.Visibility, orNone(u.Website), orNone(u.Email), orNone(u.Location), u.AccountType)
}

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}
