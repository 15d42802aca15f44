// Package auth provides the authentication route set: a login page, JSON or
// form login, logout and a who-am-i endpoint backed by the session.
//
// Credentials come from AUTH_USERS as username:bcrypt-hash pairs; there is
// no user store. A successful login regenerates the session id before the
// user reference is stored under session.UserKey.
package auth
