// Package integrations provides the shared HTTP layer for third-party API bindings.
//
// # Overview
//
// API bindings (currently [pastebin]) embed [Client] to perform requests. The
// client does not interpret response bodies: services such as Pastebin report
// failures inside a 200 response, so the binding classifies the body itself.
//
// # Client Pattern
//
//	base := integrations.NewClient(nil, logger, nil)  // nil Doer = default *http.Client
//	resp, err := base.PostForm(ctx, endpoint, form)
//	if err != nil {
//	    // transport failure, wrapped with errors.ErrCodeNetwork
//	}
//	fmt.Println(resp.StatusCode, string(resp.Body))
//
// Clients handle:
//   - Form-encoded POST and plain GET requests through an injected [Doer]
//   - Default headers, including a User-Agent from [buildinfo]
//   - Debug logging of method, host, path, status and duration
//   - [observability.HTTPHooks] events for every request
//
// Request bodies are never logged; they carry credentials.
//
// [pastebin]: github.com/matzehuels/pastebin/pkg/pastebin
// [buildinfo]: github.com/matzehuels/pastebin/pkg/buildinfo
// [observability.HTTPHooks]: github.com/matzehuels/pastebin/pkg/observability.HTTPHooks
package integrations
