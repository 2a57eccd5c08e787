// Package pastebin provides a client for the Pastebin HTTP API.
//
// # Overview
//
// The package has three parts:
//
//   - [Client]: one method per API operation (login, paste, list, trends,
//     delete, user details, raw content, scraping)
//   - Parsers: [ParsePastesXML], [ParsePastesJSON] and [ParseUsersXML] turn the
//     service's payloads into [Paste] and [User] values
//   - Tables: the syntax [Formats] and the [Expiration] codes accepted on upload
//
// Methods return the service's raw payload; parsing is a separate step so
// callers can store or forward the original text.
//
// # Usage
//
//	client, err := pastebin.NewClient(devKey)
//	if err != nil {
//	    return err
//	}
//	if _, err := client.Authenticate(ctx, username, password); err != nil {
//	    return err
//	}
//	raw, ok, err := client.ListPastes(ctx, &pastebin.ListOptions{Limit: pastebin.Limit(10)})
//	if err != nil || !ok {
//	    return err // ok == false: the account has no pastes
//	}
//	pastes, err := pastebin.ParsePastesXML(raw)
//
// # Errors
//
// The service reports failures in the response body, usually with status 200.
// The client recognizes its markers and returns an [errors.Error] whose code
// classifies the failure:
//
//   - "Bad API request, <reason>" becomes BAD_REQUEST with message <reason>
//   - "Error, <reason>" becomes REQUEST_ERROR
//   - the scraping "VISIT ... TO GET ACCESS!" notice becomes NOT_WHITELISTED
//   - a body of the wrong shape becomes UNEXPECTED_RESPONSE carrying the body
//   - an authenticated call without a user key becomes KEY_REQUIRED, before any request
//
// Transport failures and non-2xx responses without a marker are NETWORK_ERROR.
// No method retries.
//
// # Dates
//
// Dates are Unix timestamps on the wire and [time.Time] values in UTC after
// parsing. An expiration of "N", 0 or a negative value means the paste never
// expires and leaves [Paste.ExpireDate] nil.
//
// [errors.Error]: github.com/matzehuels/pastebin/pkg/errors.Error
package pastebin
