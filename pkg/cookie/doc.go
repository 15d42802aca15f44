// Package cookie reads, writes and signs HTTP cookies.
//
// A Manager is created with one or more secrets of at least 32 characters.
// SetSigned appends an HMAC-SHA256 signature to the value; GetSigned verifies
// it in constant time against every configured secret, so a new secret can be
// put first while cookies signed with the previous one remain valid.
//
// Middleware is the cookie-parsing stage of the request pipeline: it parses
// every Cookie header once, rejects malformed headers, and stores the result
// in the request context where Manager.Get and FromContext read it.
//
// # Usage
//
//	mgr, err := cookie.New(cookie.ParseSecrets(os.Getenv("SECRET_KEY")))
//	if err != nil {
//	    return err
//	}
//
//	r.Use(cookie.Middleware(nil))
//
//	_ = mgr.SetSigned(w, "sid", sessionID, cookie.WithMaxAge(43200))
//	id, err := mgr.GetSigned(r, "sid")
//	if errors.Is(err, cookie.ErrInvalidSignature) {
//	    // tampered cookie
//	}
package cookie
