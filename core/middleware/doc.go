// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting every route except the skip list.
//   - rayid: assigns a RayID (request id) to every request, stores it in the
//     Fiber locals for logger.WithRayID and echoes it in the X-Ray-ID header.
package middleware
