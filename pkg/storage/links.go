package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidLink = errors.New("invalid download link")
	ErrLinkExpired = errors.New("download link expired")
)

// LinkSigner issues HMAC signed download tokens for stored results.
// A token has the form exportID.expiry.base64(path).signature.
type LinkSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewLinkSigner constructs a signer. Non-positive ttl defaults to a day.
func NewLinkSigner(secret string, ttl time.Duration) *LinkSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &LinkSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token granting access to relPath until the returned time.
func (s *LinkSigner) Sign(exportID, relPath string) (string, time.Time, error) {
	if exportID == "" || relPath == "" || strings.Contains(exportID, ".") {
		return "", time.Time{}, fmt.Errorf("sign link: export id and path required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("sign link: secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	expiry := strconv.FormatInt(expiresAt.Unix(), 10)
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	token := strings.Join([]string{exportID, expiry, encodedPath, s.signature(exportID, expiry, encodedPath)}, ".")
	return token, expiresAt, nil
}

// Verify checks the token signature and expiry and returns the export id
// and stored path.
func (s *LinkSigner) Verify(token string) (exportID, relPath string, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return "", "", ErrInvalidLink
	}
	exportID, expiry, encodedPath, signature := parts[0], parts[1], parts[2], parts[3]

	if !hmac.Equal([]byte(s.signature(exportID, expiry, encodedPath)), []byte(signature)) {
		return "", "", ErrInvalidLink
	}
	expUnix, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return "", "", ErrInvalidLink
	}
	if s.now().After(time.Unix(expUnix, 0)) {
		return "", "", ErrLinkExpired
	}
	rawPath, err := base64.RawURLEncoding.DecodeString(encodedPath)
	if err != nil {
		return "", "", ErrInvalidLink
	}
	return exportID, string(rawPath), nil
}

func (s *LinkSigner) signature(exportID, expiry, encodedPath string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(exportID + "|" + expiry + "|" + encodedPath))
	return hex.EncodeToString(mac.Sum(nil))
}
