// Package backend talks to the Bilrost service over HTTP.
//
// Actions is the full set of remote operations the CLI dispatches; Client is
// its HTTP+JSON implementation. Asset, resource and subscription references
// are appended to workspace routes verbatim (they already start with
// /assets/ or /resources/). Responses are decoded into generic JSON values
// and handed back for printing; non-2xx replies become *RemoteError and are
// passed to the caller untouched.
package backend
