// Package app assembles the webstarter HTTP application: configuration,
// session back-end selection and the middleware pipeline in front of the
// router.
//
// The pipeline runs in a fixed order. Request id, access log, panic
// recovery, CORS, body parsing, cookie parsing and session loading all happen
// before route dispatch. Parse failures stop the chain with a JSON error.
package app
