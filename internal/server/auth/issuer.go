package auth

import "time"

// DefaultAccessTokenTTL is the lifetime of tokens handed out at login.
const DefaultAccessTokenTTL = 20 * time.Minute

// Issuer mints access tokens for authenticated identities.
type Issuer struct {
	codec TokenEncoder
	ttl   time.Duration
}

// NewIssuer creates an Issuer whose IssueDefault uses ttl. A non-positive
// ttl means DefaultAccessTokenTTL.
func NewIssuer(codec TokenEncoder, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &Issuer{codec: codec, ttl: ttl}
}

func (i *Issuer) Issue(id Identity, ttl time.Duration) (string, error) {
	return i.codec.Encode(Claims{Subject: id.SubjectName, SubjectID: id.SubjectID}, ttl)
}

func (i *Issuer) IssueDefault(id Identity) (string, error) {
	return i.Issue(id, i.ttl)
}

// TTL is the lifetime used by IssueDefault.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
