package pastebin

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/pastebin/pkg/errors"
	"github.com/matzehuels/pastebin/pkg/integrations"
	"github.com/matzehuels/pastebin/pkg/observability"
)

// Endpoint paths, relative to the base URL.
const (
	loginPath      = "/api/api_login.php"
	postPath       = "/api/api_post.php"
	rawAPIPath     = "/api/api_raw.php"
	scrapingPath   = "/api_scraping.php"
	scrapeItemPath = "/api_scrape_item.php"
	scrapeMetaPath = "/api_scrape_item_meta.php"
	rawPath        = "/raw/"
)

// Markers the service uses in place of HTTP status codes.
const (
	badRequestMarker   = "Bad API request"
	requestErrorMarker = "Error, "
	noPastesMarker     = "No pastes found"
	pasteOpenTag       = "<paste>"
	userOpenTag        = "<user>"
)

// List limits for [Client.ListPastes].
const (
	DefaultListLimit = 50
	MinListLimit     = 1
	MaxListLimit     = 1000
)

// errNotWhitelisted is the message of every NOT_WHITELISTED error.
const errNotWhitelisted = "Not using a whitelisted IP!"

// Client provides access to the Pastebin API.
//
// The developer key is fixed at construction. The user key is optional and is
// set by [Client.Authenticate] or [WithUserKey]; methods that need it accept an
// explicit key and fall back to the stored one. Each method performs exactly
// one request and never retries.
//
// A Client may be shared between goroutines; the stored user key is guarded.
type Client struct {
	*integrations.Client
	baseURL string
	devKey  string

	mu      sync.RWMutex
	userKey string
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL string
	doer    integrations.Doer
	logger  *log.Logger
	userKey string
}

// WithBaseURL sets a custom service URL (e.g. a test server).
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets the transport used for requests. *http.Client satisfies Doer.
func WithHTTPClient(doer integrations.Doer) Option {
	return func(o *options) {
		o.doer = doer
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithUserKey sets a previously obtained user key.
func WithUserKey(key string) Option {
	return func(o *options) {
		o.userKey = key
	}
}

// NewClient creates a Pastebin client for the given developer key.
//
// Returns a KEY_REQUIRED error if devKey is empty and an INVALID_INPUT error if
// the base URL is not http(s).
func NewClient(devKey string, opts ...Option) (*Client, error) {
	devKey = strings.TrimSpace(devKey)
	if devKey == "" {
		return nil, perrors.New(perrors.ErrCodeKeyRequired, "a developer key is required")
	}

	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}
	if err := perrors.ValidateURL(o.baseURL); err != nil {
		return nil, err
	}

	return &Client{
		Client:  integrations.NewClient(o.doer, o.logger, nil),
		baseURL: o.baseURL,
		devKey:  devKey,
		userKey: o.userKey,
	}, nil
}

// BaseURL returns the service URL the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// DevKey returns the developer key.
func (c *Client) DevKey() string { return c.devKey }

// UserKey returns the stored user key, or "" if none was obtained.
func (c *Client) UserKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userKey
}

// SetUserKey replaces the stored user key.
func (c *Client) SetUserKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userKey = key
}

// =============================================================================
// Authenticated API
// =============================================================================

// Authenticate logs in and stores the returned user key on the client.
//
// A "Bad API request" answer fails with BAD_REQUEST carrying the service's
// message (e.g. "invalid login").
func (c *Client) Authenticate(ctx context.Context, username, password string) (key string, err error) {
	defer track(ctx, "login")(&err)

	form := url.Values{}
	form.Set("api_dev_key", c.devKey)
	form.Set("api_user_name", username)
	form.Set("api_user_password", password)

	body, err := c.post(ctx, loginPath, form)
	if err != nil {
		return "", err
	}
	if err := badRequest(body); err != nil {
		return "", err
	}

	key = strings.TrimSpace(body)
	c.SetUserKey(key)
	c.Logger().Debug("obtained user key", "user", username)
	return key, nil
}

// PasteOptions configures [Client.CreatePaste]. The zero value creates a public
// guest paste that never expires.
type PasteOptions struct {
	Title      string     // Paste title (optional)
	Format     string     // Syntax identifier, see [Formats] (optional)
	AsUser     bool       // Post under the authenticated account instead of as guest
	Visibility string     // "public" (default), "unlisted" or "private"; unknown names mean unlisted
	Expiration Expiration // Expiration code, default [ExpireNever]
}

// CreatePaste submits content and returns the URL of the new paste.
//
// Posting with AsUser requires a user key; without one the call fails with
// KEY_REQUIRED before any request is made. A response that is neither a
// "Bad API request" nor a paste URL fails with UNEXPECTED_RESPONSE carrying the
// raw body.
func (c *Client) CreatePaste(ctx context.Context, content string, opts *PasteOptions) (pasteURL string, err error) {
	defer track(ctx, "paste")(&err)

	if opts == nil {
		opts = &PasteOptions{}
	}

	form := c.form("paste")
	if opts.AsUser {
		key := c.UserKey()
		if key == "" {
			return "", perrors.New(perrors.ErrCodeKeyRequired, "generate a user key before adding a user-registered paste")
		}
		form.Set("api_user_key", key)
	}
	form.Set("api_paste_code", content)
	if opts.Title != "" {
		form.Set("api_paste_name", opts.Title)
	}
	if opts.Format != "" {
		form.Set("api_paste_format", opts.Format)
	}
	form.Set("api_paste_private", strconv.Itoa(int(c.visibility(opts.Visibility))))
	form.Set("api_paste_expire_date", string(normalizeExpiration(opts.Expiration)))

	body, err := c.post(ctx, postPath, form)
	if err != nil {
		return "", err
	}
	if err := badRequest(body); err != nil {
		return "", err
	}
	pasteURL = strings.TrimSpace(body)
	if !strings.HasPrefix(pasteURL, c.baseURL+"/") {
		return "", perrors.Message(perrors.ErrCodeUnexpectedResponse, body)
	}
	return pasteURL, nil
}

// Limit returns a pointer to n, for [ListOptions.Limit].
func Limit(n int) *int { return &n }

// ListOptions configures [Client.ListPastes].
type ListOptions struct {
	UserKey string // Overrides the stored user key
	Limit   *int   // Number of pastes, clamped to [1, 1000]; nil means 50
}

// ListPastes returns the raw <paste> XML of the user's pastes. Feed it to
// [ParsePastesXML].
//
// When the service answers "No pastes found" it returns ok == false and no
// error; that is distinct from an empty XML list. A body that does not start
// with <paste> fails with UNEXPECTED_RESPONSE.
func (c *Client) ListPastes(ctx context.Context, opts *ListOptions) (xml string, ok bool, err error) {
	defer track(ctx, "list")(&err)

	if opts == nil {
		opts = &ListOptions{}
	}
	key, err := c.resolveUserKey(opts.UserKey, "generate a user key before listing pastes")
	if err != nil {
		return "", false, err
	}

	form := c.form("list")
	form.Set("api_user_key", key)
	form.Set("api_results_limit", strconv.Itoa(clampLimit(opts.Limit)))

	body, err := c.post(ctx, postPath, form)
	if err != nil {
		return "", false, err
	}
	if err := badRequest(body); err != nil {
		return "", false, err
	}
	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, noPastesMarker) {
		return "", false, nil
	}
	if !strings.HasPrefix(trimmed, pasteOpenTag) {
		return "", false, perrors.Message(perrors.ErrCodeUnexpectedResponse, body)
	}
	return body, true, nil
}

// Trending returns the raw <paste> XML of the currently trending pastes.
func (c *Client) Trending(ctx context.Context) (xml string, err error) {
	defer track(ctx, "trends")(&err)

	body, err := c.post(ctx, postPath, c.form("trends"))
	if err != nil {
		return "", err
	}
	if err := badRequest(body); err != nil {
		return "", err
	}
	return body, nil
}

// DeletePaste deletes a paste owned by the user. An empty userKey selects the
// stored key.
func (c *Client) DeletePaste(ctx context.Context, pasteKey, userKey string) (deleted bool, err error) {
	defer track(ctx, "delete")(&err)

	key, err := c.resolveUserKey(userKey, "generate a user key before deleting pastes")
	if err != nil {
		return false, err
	}
	if err := perrors.ValidatePasteKey(pasteKey); err != nil {
		return false, err
	}

	form := c.form("delete")
	form.Set("api_user_key", key)
	form.Set("api_paste_key", pasteKey)

	body, err := c.post(ctx, postPath, form)
	if err != nil {
		return false, err
	}
	if err := badRequest(body); err != nil {
		return false, err
	}
	return true, nil
}

// UserDetails returns the raw <user> XML of the account. Feed it to
// [ParseUsersXML]. An empty userKey selects the stored key.
func (c *Client) UserDetails(ctx context.Context, userKey string) (xml string, err error) {
	defer track(ctx, "userdetails")(&err)

	key, err := c.resolveUserKey(userKey, "generate a user key before requesting user details")
	if err != nil {
		return "", err
	}

	form := c.form("userdetails")
	form.Set("api_user_key", key)

	body, err := c.post(ctx, postPath, form)
	if err != nil {
		return "", err
	}
	if err := badRequest(body); err != nil {
		return "", err
	}
	if !strings.HasPrefix(strings.TrimSpace(body), userOpenTag) {
		return "", perrors.Message(perrors.ErrCodeUnexpectedResponse, body)
	}
	return body, nil
}

// UserPaste returns the content of one of the user's pastes, private ones
// included. An empty userKey selects the stored key. Public pastes can be read
// without a key through [Client.RawPaste].
func (c *Client) UserPaste(ctx context.Context, pasteKey, userKey string) (content []byte, err error) {
	defer track(ctx, "show_paste")(&err)

	key, err := c.resolveUserKey(userKey,
		"a user key is required to read a private paste's content; use RawPaste for public pastes")
	if err != nil {
		return nil, err
	}
	if err := perrors.ValidatePasteKey(pasteKey); err != nil {
		return nil, err
	}

	form := c.form("show_paste")
	form.Set("api_user_key", key)
	form.Set("api_paste_key", pasteKey)

	body, err := c.post(ctx, rawAPIPath, form)
	if err != nil {
		return nil, err
	}
	if err := badRequest(body); err != nil {
		return nil, err
	}
	return []byte(body), nil
}

// =============================================================================
// Anonymous API
// =============================================================================

// RawPaste returns the content of a public or unlisted paste. No key is needed.
func (c *Client) RawPaste(ctx context.Context, pasteKey string) (content []byte, err error) {
	defer track(ctx, "raw")(&err)

	if err := perrors.ValidatePasteKey(pasteKey); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, rawPath+url.PathEscape(pasteKey))
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(string(body), requestErrorMarker) {
		return nil, perrors.Message(perrors.ErrCodeRequestError, trimQuotes(string(body)))
	}
	return body, nil
}

// ScrapeRecent returns the JSON array of the most recent pastes. Feed it to
// [ParsePastesJSON]. limit (1-250) is sent only when positive and language only
// when non-empty.
//
// The scraping endpoints only answer allow-listed IPs; any other caller gets
// NOT_WHITELISTED.
func (c *Client) ScrapeRecent(ctx context.Context, limit int, language string) (data []byte, err error) {
	defer track(ctx, "scrape")(&err)

	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if language != "" {
		q.Set("lang", language)
	}
	path := scrapingPath
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if c.notWhitelisted(body) {
		return nil, perrors.Message(perrors.ErrCodeNotWhitelisted, errNotWhitelisted)
	}
	return body, nil
}

// ScrapeItem returns the raw content of a paste through the scraping API.
func (c *Client) ScrapeItem(ctx context.Context, pasteKey string) (data []byte, err error) {
	defer track(ctx, "scrape_item")(&err)
	return c.scrapeKey(ctx, scrapeItemPath, pasteKey)
}

// ScrapeItemMeta returns the JSON metadata of a paste through the scraping API.
// The payload is a one-element array accepted by [ParsePastesJSON].
func (c *Client) ScrapeItemMeta(ctx context.Context, pasteKey string) (data []byte, err error) {
	defer track(ctx, "scrape_item_meta")(&err)
	return c.scrapeKey(ctx, scrapeMetaPath, pasteKey)
}

func (c *Client) scrapeKey(ctx context.Context, path, pasteKey string) ([]byte, error) {
	if err := perrors.ValidatePasteKey(pasteKey); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, path+"?"+url.Values{"i": {pasteKey}}.Encode())
	if err != nil {
		return nil, err
	}
	if c.notWhitelisted(body) {
		return nil, perrors.Message(perrors.ErrCodeNotWhitelisted, errNotWhitelisted)
	}
	if msg, ok := strings.CutPrefix(string(body), requestErrorMarker); ok {
		return nil, perrors.Message(perrors.ErrCodeRequestError, trimQuotes(msg))
	}
	return body, nil
}

// =============================================================================
// Helpers
// =============================================================================

func (c *Client) form(option string) url.Values {
	form := url.Values{}
	form.Set("api_dev_key", c.devKey)
	form.Set("api_option", option)
	return form
}

func (c *Client) endpoint(path string) string {
	return integrations.JoinURL(c.baseURL, path)
}

func (c *Client) post(ctx context.Context, path string, form url.Values) (string, error) {
	resp, err := c.PostForm(ctx, c.endpoint(path), form)
	if err != nil {
		return "", err
	}
	if err := c.checkStatus(resp); err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.Get(ctx, c.endpoint(path))
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// checkStatus rejects non-2xx responses unless the body carries one of the
// service's markers, which the caller classifies.
func (c *Client) checkStatus(resp *integrations.Response) error {
	if resp.OK() {
		return nil
	}
	body := string(resp.Body)
	if strings.HasPrefix(body, badRequestMarker) ||
		strings.HasPrefix(body, requestErrorMarker) ||
		strings.HasPrefix(strings.TrimSpace(body), noPastesMarker) ||
		c.notWhitelisted(resp.Body) {
		return nil
	}
	return perrors.New(perrors.ErrCodeNetwork, "unexpected status %d", resp.StatusCode)
}

func (c *Client) scrapeMarker() string {
	return "VISIT: " + c.baseURL + "/scraping TO GET ACCESS!"
}

func (c *Client) notWhitelisted(body []byte) bool {
	return strings.Contains(string(body), c.scrapeMarker())
}

// resolveUserKey returns explicit if set, else the stored key, else a
// KEY_REQUIRED error with msg.
func (c *Client) resolveUserKey(explicit, msg string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if key := c.UserKey(); key != "" {
		return key, nil
	}
	return "", perrors.Message(perrors.ErrCodeKeyRequired, msg)
}

func (c *Client) visibility(name string) Visibility {
	if name == "" {
		return VisibilityPublic
	}
	v, ok := ParseVisibility(name)
	if !ok {
		c.Logger().Debug("unknown visibility, using unlisted", "visibility", name)
	}
	return v
}

func normalizeExpiration(e Expiration) Expiration {
	s := strings.ToUpper(strings.TrimSpace(string(e)))
	if s == "" {
		return ExpireNever
	}
	return Expiration(s)
}

func clampLimit(limit *int) int {
	if limit == nil {
		return DefaultListLimit
	}
	return min(max(*limit, MinListLimit), MaxListLimit)
}

// badRequest returns a BAD_REQUEST error if body starts with the service's
// "Bad API request" marker, and nil otherwise.
func badRequest(body string) error {
	if !strings.HasPrefix(body, badRequestMarker) {
		return nil
	}
	return perrors.Message(perrors.ErrCodeBadRequest, badRequestMessage(body))
}

// badRequestMessage extracts the text after the first comma:
// "Bad API request, invalid api_dev_key" yields "invalid api_dev_key".
func badRequestMessage(body string) string {
	msg := strings.TrimPrefix(body, badRequestMarker)
	if _, after, ok := strings.Cut(body, ","); ok {
		msg = after
	}
	if msg = trimQuotes(msg); msg == "" {
		return badRequestMarker
	}
	return msg
}

func trimQuotes(s string) string {
	return strings.Trim(s, "'\" \t\r\n")
}

// track emits API hooks around one operation; defer the returned func with a
// pointer to the operation's named error.
func track(ctx context.Context, op string) func(*error) {
	hooks := observability.API()
	hooks.OnCallStart(ctx, op)
	start := time.Now()
	return func(err *error) {
		hooks.OnCallComplete(ctx, op, time.Since(start), *err)
	}
}
