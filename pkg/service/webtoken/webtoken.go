package webtoken

import (
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// DefaultTTL bounds how long a posted map link stays valid
const DefaultTTL = 24 * time.Hour

const stoneClaim = "stone"

// Service mints and verifies signed map-link tokens. A token authorizes
// read access to one stone's journey data without a chat session.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithTTL overrides the token lifetime
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// New creates a token service with the given signing secret
func New(secret []byte, opts ...Option) (*Service, error) {
	if len(secret) == 0 {
		return nil, goerr.New("token signing secret is required")
	}

	s := &Service{
		secret: secret,
		ttl:    DefaultTTL,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Issue mints a signed token scoped to one stone
func (s *Service) Issue(stoneID types.StoneID) (string, error) {
	now := time.Now()
	token, err := jwt.NewBuilder().
		IssuedAt(now).
		Expiration(now.Add(s.ttl)).
		Claim(stoneClaim, int64(stoneID)).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token", goerr.V("stoneID", stoneID))
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token", goerr.V("stoneID", stoneID))
	}

	return string(signed), nil
}

// Verify checks the signature and expiry and returns the stone the
// token is scoped to
func (s *Service) Verify(raw string) (types.StoneID, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, s.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return 0, goerr.Wrap(types.ErrInvalidInput, "invalid map token", goerr.V("cause", err))
	}

	claim, ok := token.Get(stoneClaim)
	if !ok {
		return 0, goerr.Wrap(types.ErrInvalidInput, "map token has no stone claim")
	}

	// jwx decodes JSON numbers as float64
	switch v := claim.(type) {
	case float64:
		return types.StoneID(v), nil
	case int64:
		return types.StoneID(v), nil
	default:
		return 0, goerr.Wrap(types.ErrInvalidInput, "unexpected stone claim type", goerr.V("claim", claim))
	}
}
