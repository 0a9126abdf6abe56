package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOTPService(t *testing.T, expiry time.Duration) (*OTPService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewOTPService(client, logrus.New(), expiry), mr
}

func TestOTPIssueAndVerify(t *testing.T) {
	svc, _ := setupOTPService(t, 5*time.Minute)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "9876543210")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	require.NoError(t, svc.Verify(ctx, "9876543210", code))
}

func TestOTPVerifyConsumesCode(t *testing.T) {
	svc, _ := setupOTPService(t, 5*time.Minute)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "9876543210")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, "9876543210", code))
	assert.ErrorIs(t, svc.Verify(ctx, "9876543210", code), ErrOTPMismatch)
}

func TestOTPCheckDoesNotConsume(t *testing.T) {
	svc, _ := setupOTPService(t, 5*time.Minute)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "9876543210")
	require.NoError(t, err)

	// A client may check the code before the step that spends it.
	require.NoError(t, svc.Check(ctx, "9876543210", code))
	require.NoError(t, svc.Check(ctx, "9876543210", code))
	require.NoError(t, svc.Verify(ctx, "9876543210", code))

	assert.ErrorIs(t, svc.Check(ctx, "9876543210", code), ErrOTPMismatch)
}

func TestOTPCheckWrongCode(t *testing.T) {
	svc, _ := setupOTPService(t, 5*time.Minute)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "9876543210")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	assert.ErrorIs(t, svc.Check(ctx, "9876543210", wrong), ErrOTPMismatch)
}

func TestOTPVerifyWrongCode(t *testing.T) {
	svc, _ := setupOTPService(t, 5*time.Minute)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "9876543210")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	assert.ErrorIs(t, svc.Verify(ctx, "9876543210", wrong), ErrOTPMismatch)

	// A failed attempt does not consume the pending code.
	require.NoError(t, svc.Verify(ctx, "9876543210", code))
}

func TestOTPVerifyNeverIssued(t *testing.T) {
	svc, _ := setupOTPService(t, 5*time.Minute)

	assert.ErrorIs(t, svc.Verify(context.Background(), "9876543210", "123456"), ErrOTPMismatch)
}

func TestOTPExpires(t *testing.T) {
	svc, mr := setupOTPService(t, time.Minute)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "9876543210")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	assert.ErrorIs(t, svc.Verify(ctx, "9876543210", code), ErrOTPMismatch)
}

func TestOTPReissueOverwrites(t *testing.T) {
	svc, _ := setupOTPService(t, 5*time.Minute)
	ctx := context.Background()

	first, err := svc.Issue(ctx, "9876543210")
	require.NoError(t, err)
	second, err := svc.Issue(ctx, "9876543210")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, svc.Verify(ctx, "9876543210", first), ErrOTPMismatch)
	}
	require.NoError(t, svc.Verify(ctx, "9876543210", second))
}

func TestOTPIsScopedByMobile(t *testing.T) {
	svc, _ := setupOTPService(t, 5*time.Minute)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "9876543210")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Verify(ctx, "1112223334", code), ErrOTPMismatch)
	require.NoError(t, svc.Verify(ctx, "9876543210", code))
}
