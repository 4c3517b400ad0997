package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zhaohz/homeseek/internal/kvstore"
	"github.com/zhaohz/homeseek/internal/models"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestLoad_RoundTrip(t *testing.T) {
	kv := kvstore.NewMem()
	info := models.SessionInfo{UserID: 7, Username: "alice", UserProfile: "{}"}

	if err := Save(kv, "real-token-123", info); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	token, got, ok := Load(kv)
	if !ok {
		t.Fatal("Load returned ok=false for a saved session")
	}
	if token != "real-token-123" || got.UserID != 7 || got.Username != "alice" {
		t.Errorf("Load = %q, %+v", token, got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		userInfo string
		noToken  bool
		noInfo   bool
	}{
		{name: "no entries", noToken: true, noInfo: true},
		{name: "empty token", token: "", userInfo: `{"userId":7}`},
		{name: "missing userInfo", token: "tok", noInfo: true},
		{name: "malformed userInfo", token: "tok", userInfo: `{broken`},
		{name: "zero userId", token: "tok", userInfo: `{"userId":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMem()
			if !tt.noToken {
				_ = kv.Set(KeyToken, tt.token)
			}
			if !tt.noInfo {
				_ = kv.Set(KeyUserInfo, tt.userInfo)
			}
			if _, _, ok := Load(kv); ok {
				t.Error("Load returned ok=true for invalid persisted state")
			}
		})
	}
}

func TestLoad_ExpiredJWT(t *testing.T) {
	kv := kvstore.NewMem()
	expired := signedToken(t, time.Now().Add(-time.Hour))
	_ = Save(kv, expired, models.SessionInfo{UserID: 7, Username: "alice"})

	if _, _, ok := Load(kv); ok {
		t.Error("Load accepted a session with an expired JWT")
	}

	fresh := signedToken(t, time.Now().Add(time.Hour))
	_ = Save(kv, fresh, models.SessionInfo{UserID: 7, Username: "alice"})
	if _, _, ok := Load(kv); !ok {
		t.Error("Load rejected a session with a valid JWT")
	}
}

func TestClear(t *testing.T) {
	kv := kvstore.NewMem()
	_ = Save(kv, "tok", models.SessionInfo{UserID: 7})
	if err := Clear(kv); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := kv.Get(KeyToken); ok {
		t.Error("token entry survived Clear")
	}
	if _, ok := kv.Get(KeyUserInfo); ok {
		t.Error("userInfo entry survived Clear")
	}
}

func TestCurrentUserID(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		skip   bool
		wantID int64
		wantOK bool
	}{
		{name: "absent", skip: true},
		{name: "empty", stored: ""},
		{name: "malformed", stored: "][not json"},
		{name: "no userId", stored: `{"username":"alice"}`},
		{name: "valid", stored: `{"userId":42,"username":"bob"}`, wantID: 42, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMem()
			if !tt.skip {
				_ = kv.Set(KeyUserInfo, tt.stored)
			}
			id, ok := CurrentUserID(kv)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("CurrentUserID = %d, %v; want %d, %v", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestTokenUsable_Opaque(t *testing.T) {
	if !TokenUsable("real-token-1700000000000") {
		t.Error("opaque token rejected")
	}
	if TokenUsable("") {
		t.Error("empty token accepted")
	}
}
