package roi

import (
	"context"
	"testing"
	"time"

	"clinvetia/models"
	"clinvetia/services/fault"
	"clinvetia/services/verify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionRepo struct {
	sessions map[string]*models.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*models.Session{}}
}

func (r *memSessionRepo) Create(_ context.Context, s *models.Session) error {
	cp := *s
	r.sessions[s.Token] = &cp
	return nil
}

func (r *memSessionRepo) GetByToken(_ context.Context, token string) (*models.Session, error) {
	s, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSessionRepo) DeleteByTokens(_ context.Context, tokens []string) (int64, error) {
	var n int64
	for _, t := range tokens {
		if _, ok := r.sessions[t]; ok {
			delete(r.sessions, t)
			n++
		}
	}
	return n, nil
}

func (r *memSessionRepo) EnsureIndexes() error { return nil }

type stubVerifier struct {
	result *verify.Result
	err    error
}

func (v *stubVerifier) Verify(context.Context, string, string, float64, string) (*verify.Result, error) {
	return v.result, v.err
}

func TestSessionCreatePersistsSnapshot(t *testing.T) {
	repo := newMemSessionRepo()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc := &DefaultSessionService{Repo: repo, Now: func() time.Time { return now }}

	session, err := svc.Create(context.Background(), Input{
		MonthlyPatients: 220, AverageTicket: 45, ConversionLoss: 18,
	})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, now.Add(models.SessionTTL), session.ExpiresAt)
	assert.True(t, session.ROI.Complete())
	assert.Equal(t, float64(320), *session.ROI.ROI)

	stored, err := repo.GetByToken(context.Background(), session.Token)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, float64(220), *stored.ROI.MonthlyPatients)
}

func TestSessionCreateRejectsNonPositiveFigures(t *testing.T) {
	svc := &DefaultSessionService{Repo: newMemSessionRepo()}

	_, err := svc.Create(context.Background(), Input{MonthlyPatients: 0, AverageTicket: 45, ConversionLoss: 18})
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.CodeOf(err))
}

func TestSessionCreateVerified(t *testing.T) {
	repo := newMemSessionRepo()
	input := Input{MonthlyPatients: 100, AverageTicket: 50, ConversionLoss: 20}

	t.Run("passes on verified token", func(t *testing.T) {
		svc := &DefaultSessionService{Repo: repo, Verifier: &stubVerifier{result: &verify.Result{OK: true, Score: 0.9}}}
		session, err := svc.CreateVerified(context.Background(), input, "proof", "1.2.3.4")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
	})

	t.Run("rejects failed verification", func(t *testing.T) {
		svc := &DefaultSessionService{Repo: repo, Verifier: &stubVerifier{result: &verify.Result{OK: false, Reason: "score too low"}}}
		_, err := svc.CreateVerified(context.Background(), input, "proof", "1.2.3.4")
		require.Error(t, err)
		assert.Equal(t, fault.Validation, fault.CodeOf(err))
	})

	t.Run("maps verifier outage to upstream failure", func(t *testing.T) {
		svc := &DefaultSessionService{Repo: repo, Verifier: &stubVerifier{err: context.DeadlineExceeded}}
		_, err := svc.CreateVerified(context.Background(), input, "proof", "1.2.3.4")
		require.Error(t, err)
		assert.Equal(t, fault.Upstream, fault.CodeOf(err))
	})
}

func TestSessionRead(t *testing.T) {
	repo := newMemSessionRepo()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc := &DefaultSessionService{Repo: repo, Now: func() time.Time { return now }}

	session, err := svc.Create(context.Background(), Input{MonthlyPatients: 50, AverageTicket: 30, ConversionLoss: 25})
	require.NoError(t, err)

	t.Run("resolves a live token", func(t *testing.T) {
		got, err := svc.Read(context.Background(), session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.Token, got.Token)
	})

	t.Run("unknown token reads as not found", func(t *testing.T) {
		_, err := svc.Read(context.Background(), "no-such-token")
		require.Error(t, err)
		assert.Equal(t, fault.NotFound, fault.CodeOf(err))
	})

	t.Run("lapsed token reads as expired, not missing", func(t *testing.T) {
		late := &DefaultSessionService{Repo: repo, Now: func() time.Time { return now.Add(models.SessionTTL + time.Minute) }}
		_, err := late.Read(context.Background(), session.Token)
		require.Error(t, err)
		assert.Equal(t, fault.Expired, fault.CodeOf(err))
	})

	t.Run("empty token is a validation error", func(t *testing.T) {
		_, err := svc.Read(context.Background(), "")
		require.Error(t, err)
		assert.Equal(t, fault.Validation, fault.CodeOf(err))
	})
}
