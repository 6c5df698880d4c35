// Package pokeapi implements the driven ports for the PokeAPI REST service.
//
// The Client lists resource pages, fetches individual records and downloads
// the OpenAPI document. All requests go through a single resty client
// configured with the API timeout and User-Agent.
//
// # Rate Limiting
//
// When api.requests_per_second is set, a token bucket paces every request.
// Throttling only delays requests. Failed requests are never retried.
//
// # Tracing
//
// Each request is wrapped in an OpenTelemetry span named after its HTTP
// method. Spans go to the global tracer provider, which is a no-op unless
// the host installs one.
//
// # Errors
//
// Non-success responses are reported as [domain.FetchError] carrying the
// status and URL. Bodies that are not valid JSON are reported as
// [domain.ParseError].
package pokeapi
