package utils // package utils provides helpers for token creation and hashing

import (
    "crypto/sha256" // SHA-256 hashing for stored token digests
    "encoding/hex"  // hex encoding of digests
    "time"          // expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
    "github.com/google/uuid"       // unique jti claim per issued token
)

// AccessToken represents a signed JWT bearer token along with its expiry.
// The Token field contains the serialized JWT handed back to the client.
// Only the SHA-256 hash of that string is persisted, which lets the server
// revoke an individual token without being able to reconstruct it from a
// stolen database row.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID and a TTL in minutes.  The claims carry the
// subject (sub), a unique token ID (jti), issued-at (iat) and expiry (exp).
// The jti makes every issued token distinct even when two logins for the
// same user land on the same second, so their stored hashes never collide.
func NewAccessToken(secret string, userID uint64, ttlMin int) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": userID,
        "jti": uuid.NewString(),
        "exp": exp.Unix(),
        "iat": now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// HashTokenRaw returns the SHA-256 hash of a serialized bearer token as a
// hex string.  Storing only the hash means a leaked access_tokens table
// cannot be replayed against the API.
func HashTokenRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}
