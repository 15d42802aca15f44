// Package session provides server-side HTTP sessions bound to the client
// through a signed cookie.
//
// A Manager loads the session referenced by the request, exposes it through
// the request context and saves it only when the request changed it. New
// sessions get an absolute lifetime (12 hours by default) that is never
// extended by later activity. Requests that never touch the session cause
// neither a store write nor a Set-Cookie header.
//
//	store := session.NewMemoryStore(time.Minute)
//	mgr := session.New(store, session.WithCookieManager(cookies))
//	r.Use(mgr.Middleware)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		sess := session.MustFromContext(r.Context())
//		sess.Set("theme", "dark")
//	}
//
// Stores for MongoDB and Redis live in the mongo and redis packages.
package session
