package auth

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names used in the token payload.
const (
	ClaimSubject   = "sub"
	ClaimSubjectID = "id"
	ClaimExpiresAt = "exp"
)

// maxExpiry bounds exp to 9999-12-31T23:59:59Z; larger values do not fit the
// int64 conversion time.Unix needs.
const maxExpiry = 253402300799

// Claims is what gets signed into a token besides the expiry.
type Claims struct {
	Subject   string
	SubjectID int64
}

// DecodedClaims is a verified payload. A nil field means the claim was absent,
// null or of the wrong type.
type DecodedClaims struct {
	Subject   *string
	SubjectID *int64
	ExpiresAt *time.Time
}

// TokenEncoder mints signed tokens.
type TokenEncoder interface {
	Encode(claims Claims, ttl time.Duration) (string, error)
}

// TokenDecoder verifies signed tokens.
type TokenDecoder interface {
	Decode(token string) (*DecodedClaims, error)
}

// Codec signs and verifies compact HS256 JWTs with a single shared secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec creates a Codec for secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret, now: time.Now}
}

// Encode signs claims with exp = now + ttl.
func (c *Codec) Encode(claims Claims, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		ClaimSubject:   claims.Subject,
		ClaimSubjectID: claims.SubjectID,
		ClaimExpiresAt: c.now().Add(ttl).Unix(),
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Decode verifies the signature and algorithm and returns the payload. It
// does not check expiry; callers compare ExpiresAt with their own clock.
func (c *Codec) Decode(tokenString string) (*DecodedClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
		jwt.WithJSONNumber(),
	)

	token, err := parser.ParseWithClaims(tokenString, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrDecode
	}

	out := &DecodedClaims{}

	if sub, ok := mc[ClaimSubject].(string); ok {
		out.Subject = &sub
	}

	if n, ok := mc[ClaimSubjectID].(json.Number); ok {
		if id, err := n.Int64(); err == nil {
			out.SubjectID = &id
		}
	}

	if raw, present := mc[ClaimExpiresAt]; present && raw != nil {
		n, ok := raw.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: exp is not numeric", ErrDecode)
		}
		secs, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: exp: %w", ErrDecode, err)
		}
		if math.IsNaN(secs) || math.Abs(secs) > maxExpiry {
			return nil, fmt.Errorf("%w: exp out of range", ErrDecode)
		}
		exp := time.Unix(int64(secs), 0)
		out.ExpiresAt = &exp
	}

	return out, nil
}
