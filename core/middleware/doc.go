// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation (X-API-Key or Bearer token).
//   - rayid: assigns every request a ray id, exposed in the X-Ray-ID header
//     and in the request locals for logging.
package middleware
