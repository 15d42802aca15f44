// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a client supplied "X-Request-ID" header when it is made of
// at most 128 characters from [a-zA-Z0-9_-]; anything else is replaced with a
// fresh UUID. The id is echoed back in the response header and stored in the
// request context, where FromContext and LoggerExtractor pick it up.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
