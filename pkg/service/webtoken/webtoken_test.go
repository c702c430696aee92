package webtoken_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/service/webtoken"
)

func TestTokenRoundTrip(t *testing.T) {
	svc, err := webtoken.New([]byte("test-secret"))
	gt.NoError(t, err).Required()

	raw, err := svc.Issue(types.StoneID(42))
	gt.NoError(t, err).Required()

	stoneID, err := svc.Verify(raw)
	gt.NoError(t, err).Required()
	gt.Value(t, stoneID).Equal(types.StoneID(42))
}

func TestExpiredTokenIsRejected(t *testing.T) {
	svc, err := webtoken.New([]byte("test-secret"), webtoken.WithTTL(-time.Minute))
	gt.NoError(t, err).Required()

	raw, err := svc.Issue(types.StoneID(42))
	gt.NoError(t, err).Required()

	_, err = svc.Verify(raw)
	gt.Error(t, err)
}

func TestWrongSecretIsRejected(t *testing.T) {
	issuer, err := webtoken.New([]byte("secret-a"))
	gt.NoError(t, err).Required()
	verifier, err := webtoken.New([]byte("secret-b"))
	gt.NoError(t, err).Required()

	raw, err := issuer.Issue(types.StoneID(7))
	gt.NoError(t, err).Required()

	_, err = verifier.Verify(raw)
	gt.Error(t, err)
}

func TestEmptySecretIsRejected(t *testing.T) {
	_, err := webtoken.New(nil)
	gt.Error(t, err)
}
