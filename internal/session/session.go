// Package session reads and writes the persisted proof-of-login: an opaque
// token string plus a small userInfo JSON blob. Corrupt or missing entries
// are treated as "not logged in", never as a fatal condition.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zhaohz/homeseek/internal/kvstore"
	"github.com/zhaohz/homeseek/internal/models"
)

// Storage keys shared by the auth and user stores.
const (
	KeyToken    = "token"
	KeyUserInfo = "userInfo"
)

// Load restores a persisted session. It returns ok=false when either entry
// is missing, the userInfo blob does not parse, or the token is a JWT that
// has expired.
func Load(kv kvstore.Store) (token string, info models.SessionInfo, ok bool) {
	token, ok = kv.Get(KeyToken)
	if !ok || token == "" {
		return "", models.SessionInfo{}, false
	}
	if !kvstore.GetJSON(kv, KeyUserInfo, &info) {
		return "", models.SessionInfo{}, false
	}
	if info.UserID == 0 {
		return "", models.SessionInfo{}, false
	}
	if !TokenUsable(token) {
		return "", models.SessionInfo{}, false
	}
	return token, info, true
}

// Save persists the two session entries.
func Save(kv kvstore.Store, token string, info models.SessionInfo) error {
	if err := kv.Set(KeyToken, token); err != nil {
		return err
	}
	return kvstore.SetJSON(kv, KeyUserInfo, info)
}

// Clear removes both session entries.
func Clear(kv kvstore.Store) error {
	if err := kv.Delete(KeyToken); err != nil {
		return err
	}
	return kv.Delete(KeyUserInfo)
}

// CurrentUserID reads the persisted userInfo blob and returns the user id.
// It returns ok=false for absent, empty, or malformed data and never fails
// any harder than that.
func CurrentUserID(kv kvstore.Store) (int64, bool) {
	var info models.SessionInfo
	if !kvstore.GetJSON(kv, KeyUserInfo, &info) {
		return 0, false
	}
	if info.UserID == 0 {
		return 0, false
	}
	return info.UserID, true
}

// TokenUsable reports whether a stored token may still back a session.
// Server-issued JWTs are parsed (without signature verification — the
// client holds no key) and rejected once their exp claim has passed.
// Tokens that are not JWTs are opaque to the client and accepted as-is.
func TokenUsable(token string) bool {
	if token == "" {
		return false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Not a JWT: opaque token, nothing to check.
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}
