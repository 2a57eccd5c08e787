// Package pkg holds the libraries of the Pastebin API client.
//
// # Overview
//
// The pkg directory is organized leaf-first:
//
//  1. [errors] - Structured error type and error codes
//  2. [observability] - Hooks for API calls and HTTP requests
//  3. [buildinfo] - Version and User-Agent
//  4. [integrations] - Shared HTTP client (form POST, GET, logging, hooks)
//  5. [pastebin] - Domain models, payload parsers and the API client
//  6. [pastebintest] - In-memory fake of the service for tests
//
// # Data Flow
//
//	pastebin.Client method
//	         ↓
//	integrations.Client (form POST / GET)
//	         ↓
//	response marker classification → errors.Error
//	         ↓
//	raw XML / JSON payload
//	         ↓
//	pastebin.ParsePastesXML / ParsePastesJSON / ParseUsersXML
//	         ↓
//	[]pastebin.Paste, []pastebin.User
//
// # Quick Start
//
//	import "github.com/matzehuels/pastebin/pkg/pastebin"
//
//	client, err := pastebin.NewClient(devKey)
//	if err != nil {
//	    return err
//	}
//	raw, err := client.Trending(ctx)
//	if err != nil {
//	    return err
//	}
//	pastes, err := pastebin.ParsePastesXML(raw)
//
// [errors]: https://pkg.go.dev/github.com/matzehuels/pastebin/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pastebin/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pastebin/pkg/buildinfo
// [integrations]: https://pkg.go.dev/github.com/matzehuels/pastebin/pkg/integrations
// [pastebin]: https://pkg.go.dev/github.com/matzehuels/pastebin/pkg/pastebin
// [pastebintest]: https://pkg.go.dev/github.com/matzehuels/pastebin/pkg/pastebin/pastebintest
package pkg
