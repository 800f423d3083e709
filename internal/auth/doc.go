// Package auth implements the back-office authentication session.
//
// A Session is an explicit object owned by its caller. It resolves the
// current admin through a Provider, records every login attempt in the
// audit log without letting audit failures affect the login, and
// publishes each change of the signed-in user to its subscribers.
package auth
