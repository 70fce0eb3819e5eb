// Package middleware groups the HTTP middleware of the Fiber application.
//
// # Components
//
//   - auth: API key validation. Keys come from the X-API-Key header or the
//     api_key query value; an empty configured key disables the check.
//   - rayid: assigns every request a Ray ID, stored in the "ray_id" local
//     and echoed in the X-Ray-ID response header. logger.WithRayID picks it
//     up so sync logs of one request can be correlated.
//
// The start command registers rayid first, then request logging, then auth.
package middleware
