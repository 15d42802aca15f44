// Package binder parses request bodies.
//
// Middleware is a pipeline stage that validates JSON and urlencoded bodies
// before routing: malformed input stops the request with a 400, oversized
// input with a 413. The parsed value is available through
// PayloadFromContext and the raw body stays readable.
//
// JSON, Form and Bind decode the body into a typed struct inside handlers:
//
//	type LoginRequest struct {
//		Username string `json:"username" form:"username"`
//		Password string `json:"password" form:"password"`
//	}
//
//	var req LoginRequest
//	if err := binder.Bind(r, &req); err != nil {
//		// errors.Is(err, binder.ErrFailedToParseJSON) ...
//	}
package binder
