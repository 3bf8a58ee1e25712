// Package requestid tags every HTTP request of the document server with a
// correlation ID.
//
// Middleware reuses a well-formed "X-Request-ID" header sent by the client or
// generates a UUID, stores the ID in the request context and echoes it in the
// response. Extractor adds the ID to every log record written with that
// context:
//
//	log := logger.New(logger.WithContextExtractors(requestid.Extractor))
//	r.Use(requestid.Middleware)
//
// Malformed client IDs are replaced, never rejected.
package requestid
