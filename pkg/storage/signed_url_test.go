package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndVerify(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("job-1", "members/job-1.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	grant, err := signer.Verify(token, false)
	require.NoError(t, err)
	require.Equal(t, "job-1", grant.JobID)
	require.Equal(t, "members/job-1.csv", grant.Path)
	require.True(t, expiresAt.Equal(grant.ExpiresAt))
}

func TestSignedURLSignerExpired(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return base }
	token, _, err := signer.Generate("job-1", "feed/job-1.pdf")
	require.NoError(t, err)

	signer.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = signer.Verify(token, false)
	require.ErrorIs(t, err, ErrTokenExpired)

	grant, err := signer.Verify(token, true)
	require.NoError(t, err)
	require.Equal(t, "feed/job-1.pdf", grant.Path)
}

func TestSignedURLSignerRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("job-1", "members/job-1.csv")
	require.NoError(t, err)

	other := NewSignedURLSigner("other", time.Hour)
	_, err = other.Verify(token, false)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = signer.Verify("job-2"+token[len("job-1"):], false)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = signer.Verify("not-a-token", false)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = signer.Generate("job.1", "x.csv")
	assert.Error(t, err)
}
