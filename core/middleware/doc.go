// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key validation (X-API-Key) protecting the team endpoints.
//   - rayid: a request id per request, stored in the context locals and echoed in
//     the X-Ray-ID response header for tracing.
//
// /metrics is registered before auth and stays public.
package middleware
