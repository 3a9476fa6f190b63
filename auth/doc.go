// Package auth issues and verifies the JWTs that protect the API and keeps
// the optional server-side session record used to invalidate them.
//
// A token is accepted when its HS256 signature verifies, it has not expired
// and it carries a userName. When a SessionStore is configured the token must
// also be the one stored for that user: logging in again replaces the stored
// token and logging out deletes it, so both invalidate older tokens.
// Without a store the service runs stateless and tokens live until expiry.
package auth
