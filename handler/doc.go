// Package handler provides typed HTTP handlers and response helpers.
//
// Wrap turns a HandlerFunc[C, R] into an http.HandlerFunc: the request is
// bound into R, the handler returns a Response and errors from binding or
// rendering go to an ErrorHandler.
//
//	type LoginRequest struct {
//		Username string `json:"username" form:"username"`
//		Password string `json:"password" form:"password"`
//	}
//
//	login := func(ctx handler.Context, req LoginRequest) handler.Response {
//		ctx.Session().SetUserID(req.Username)
//		return handler.JSON(map[string]string{"user": req.Username})
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinder[handler.Context, LoginRequest](binder.Bind),
//	))
//
// JSON responses use the envelope
//
//	{"data": ..., "meta": ..., "error": {"code": "...", "message": "..."}}
//
// Errors are mapped to status codes by HTTPError, ValidationError (422) and
// the sentinel errors of the binder and cookie packages. WriteError and
// NewErrorResponder expose the same mapping to middleware.
package handler
