// Package errors provides the structured error type used across pokedex-api.
//
// Errors carry a Code, a message that is safe to log, an optional cause and
// free-form metadata. Every layer adds context by wrapping; the HTTP handlers
// decide what, if anything, reaches the caller.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFoundf("Unable to find '%s'", name)
//	err := errors.MissingLocalizedText("no english flavor text")
//
// Adding metadata:
//
//	err := errors.Unavailable("species lookup failed").
//	    WithMeta("name", name).
//	    WithMeta("status", resp.StatusCode)
//
// Wrapping errors:
//
//	if err := c.do(req); err != nil {
//	    return errors.WrapWithCode(err, errors.CodeUnavailable, "translation request failed")
//	}
//
// # Error Checking
//
//	if errors.IsNotFound(err) {
//	    // 404 to the caller
//	}
//
//	code := errors.GetCode(err)
//	meta := errors.GetMeta(err)
//
// # Upstream Taxonomy
//
// Payload errors raised while reading a successful upstream response:
//   - MalformedUpstreamData: required field missing or wrong JSON shape
//   - MissingLocalizedText: no entry in the wanted locale
//   - InvalidResponseShape: translation envelope could not be decoded
//
// Transport errors:
//   - NotFound: the upstream answered 404
//   - Unavailable: any other non-2xx status, timeout or connection failure
//   - ResourceExhausted: the upstream rate limited the request (429)
//
// None of these are retried.
//
// # Layer-Specific Guidelines
//
// Client layer:
//   - Map transport and status outcomes onto the taxonomy above
//   - Include the requested name and upstream status in metadata
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Collapse anything but NotFound into Internal
//
// Handler layer:
//   - Convert errors to HTTP responses
//   - Never echo upstream detail to the caller
package errors
