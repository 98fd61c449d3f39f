// Package auth issues and verifies the bearer tokens that guard admin routes.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const defaultTTL = 24 * time.Hour

// Claims identify the tournament event an admin logged into. Exp is a Unix
// timestamp in milliseconds.
type Claims struct {
	Tournament string `json:"tournament"`
	Event      string `json:"event"`
	Exp        int64  `json:"exp"`
	Nonce      string `json:"nonce"`
}

// Issuer signs tokens of the form base64url(claims) "." hex(hmac-sha256).
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer using secret. An empty secret is replaced by a
// random one, so tokens do not survive a restart.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: key, ttl: ttl, now: time.Now}, nil
}

// Issue creates a token for tournament and event.
func (i *Issuer) Issue(tournament, event string) (string, error) {
	claims := Claims{
		Tournament: tournament,
		Event:      event,
		Exp:        i.now().Add(i.ttl).UnixMilli(),
		Nonce:      uuid.NewString(),
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + i.sign(payload), nil
}

// Verify checks the signature and expiry of token.
func (i *Issuer) Verify(token string) (Claims, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return Claims{}, ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(i.sign(payload))) {
		return Claims{}, ErrInvalidToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.Exp < i.now().UnixMilli() {
		return Claims{}, ErrExpiredToken
	}
	return claims, nil
}

func (i *Issuer) sign(payload string) string {
	h := hmac.New(sha256.New, i.secret)
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
