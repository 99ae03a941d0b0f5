// Package auth implements registration and credential verification over the
// user store. Session issuance lives in internal/web/session; this package
// only decides whether an identity exists and whether a credential matches.
package auth
