// Package cli implements the pastebin demo command.
//
// The demo walks through the authenticated API with the account from the
// credentials file: it logs in, lists the account's pastes, prints each one,
// reads the first paste's content and prints the account details. A failing
// step is reported and the run moves on to the next one.
//
// # Configuration
//
// Credentials come from $PASTEBIN_CONFIG or ~/.pbcreds (JSON, or TOML when the
// name ends in ".toml"). PASTEBIN_DEV_KEY, PASTEBIN_USERNAME, PASTEBIN_PASSWORD
// and PASTEBIN_BASE_URL override the file. PASTEBIN_LOG_LEVEL sets the log
// level (debug, info, warn, error).
//
// # Example
//
//	func main() {
//	    if err := cli.Run(ctx, cli.Options{}); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"

	perrors "github.com/matzehuels/pastebin/pkg/errors"
	"github.com/matzehuels/pastebin/pkg/integrations"
	"github.com/matzehuels/pastebin/pkg/pastebin"
)

// appName prefixes log lines.
const appName = "pastebin"

// Options configures Run. The zero value writes to the process's stdout and
// stderr and reads the process environment.
type Options struct {
	Out         io.Writer           // Results (default os.Stdout)
	Err         io.Writer           // Logs and spinners (default os.Stderr)
	Getenv      func(string) string // Environment lookup (default os.Getenv)
	HTTPClient  integrations.Doer   // Transport (default integrations.NewHTTPClient)
	Interactive bool                // Show spinners while requests are in flight
}

func (o *Options) setDefaults() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
}

// Run executes the demo. It returns an error only when the client cannot be set
// up (credentials, base URL) or ctx is cancelled; API failures are logged and
// skipped.
func Run(ctx context.Context, opts Options) error {
	opts.setDefaults()

	level, ok := parseLevel(opts.Getenv(envLogLevel))
	logger := newLogger(opts.Err, level)
	if !ok {
		logger.Warn("unknown log level, using info", "value", opts.Getenv(envLogLevel))
	}
	ctx = withLogger(ctx, logger)

	creds, err := loadCredentials(opts.Getenv)
	if err != nil {
		return err
	}

	clientOpts := []pastebin.Option{
		pastebin.WithLogger(logger),
		pastebin.WithHTTPClient(opts.HTTPClient),
	}
	if creds.BaseURL != "" {
		clientOpts = append(clientOpts, pastebin.WithBaseURL(creds.BaseURL))
	}
	client, err := pastebin.NewClient(creds.DevKey, clientOpts...)
	if err != nil {
		return err
	}

	r := &runner{
		client:      client,
		creds:       creds,
		out:         printer{w: opts.Out},
		errW:        opts.Err,
		interactive: opts.Interactive,
	}
	r.run(ctx)
	return ctx.Err()
}

type runner struct {
	client      *pastebin.Client
	creds       Credentials
	out         printer
	errW        io.Writer
	interactive bool
}

func (r *runner) run(ctx context.Context) {
	r.authenticate(ctx)
	if ctx.Err() != nil {
		return
	}

	pastes, ok := r.listPastes(ctx)
	if !ok || ctx.Err() != nil {
		return
	}
	if len(pastes) == 0 {
		r.out.warning("No pastes available")
		return
	}
	r.printPastes(pastes)

	r.showContent(ctx, pastes[0])
	if ctx.Err() != nil {
		return
	}
	r.userDetails(ctx)
}

func (r *runner) authenticate(ctx context.Context) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s := startSpinner(ctx, r.errW, r.interactive, "Logging in...")
	_, err := r.client.Authenticate(ctx, r.creds.Username, r.creds.Password)
	s.stop()
	if err != nil {
		r.fail(ctx, "get user key", err)
		return
	}
	prog.done("Logged in as " + r.creds.Username)
}

// listPastes returns ok == false when the step failed.
func (r *runner) listPastes(ctx context.Context) ([]pastebin.Paste, bool) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s := startSpinner(ctx, r.errW, r.interactive, "Listing pastes...")
	raw, found, err := r.client.ListPastes(ctx, nil)
	s.stop()
	if err != nil {
		r.fail(ctx, "list", err)
		return nil, false
	}
	if !found {
		return nil, true
	}

	pastes, err := pastebin.ParsePastesXML(raw)
	if err != nil {
		r.fail(ctx, "parse pastes", err)
		return nil, false
	}
	prog.done("Listed pastes")
	r.out.success("Found %d pastes", len(pastes))
	return pastes, true
}

func (r *runner) printPastes(pastes []pastebin.Paste) {
	r.out.title("Pastes")
	for _, p := range pastes {
		r.out.block(p.String())
	}
	r.out.newline()
}

func (r *runner) showContent(ctx context.Context, p pastebin.Paste) {
	s := startSpinner(ctx, r.errW, r.interactive, "Fetching paste...")
	content, err := r.client.UserPaste(ctx, p.Key, "")
	s.stop()
	if err != nil {
		r.fail(ctx, "private paste", err)
		return
	}

	r.out.title("Paste " + p.Key)
	r.out.link("url", p.URL)
	r.out.block(string(content))
	r.out.newline()
}

func (r *runner) userDetails(ctx context.Context) {
	s := startSpinner(ctx, r.errW, r.interactive, "Fetching account...")
	raw, err := r.client.UserDetails(ctx, "")
	s.stop()
	if err != nil {
		r.fail(ctx, "user details", err)
		return
	}

	users, err := pastebin.ParseUsersXML(raw)
	if err != nil {
		r.fail(ctx, "parse user details", err)
		return
	}
	r.out.title("Account")
	for _, u := range users {
		r.out.keyValue("name", u.Name)
		r.out.keyValue("account", u.AccountType.String())
		r.out.keyValue("visibility", u.Visibility.String())
		r.out.detail("%s", u)
	}
}

// fail reports a failed step on the output and in the log.
func (r *runner) fail(ctx context.Context, step string, err error) {
	r.out.failure("%s: %s", step, perrors.UserMessage(err))
	loggerFromContext(ctx).Error("step failed", "step", step, "code", perrors.GetCode(err), "err", err)
}
