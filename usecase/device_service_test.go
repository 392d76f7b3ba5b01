package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/arkanandi/finlock/adapters"
	"github.com/arkanandi/finlock/domain/entities"
	"github.com/arkanandi/finlock/domain/repositories"
	"github.com/arkanandi/finlock/internal/auth"
)

const testSecret = "test-secret"

// stubEncoder records the payload instead of rendering a real PNG.
type stubEncoder struct {
	lastPayload string
	fail        bool
}

func (s *stubEncoder) DataURL(payload string) (string, error) {
	if s.fail {
		return "", errors.New("render failed")
	}
	s.lastPayload = payload
	return "data:image/png;base64,stub", nil
}

func newDeviceService(t testing.TB) (*DeviceService, *adapters.MemoryDeviceRepository, *stubEncoder) {
	t.Helper()
	repo := adapters.NewMemoryDeviceRepository()
	enc := &stubEncoder{}
	svc := NewDeviceService(repo, auth.NewTokenService([]byte(testSecret)), enc, zap.NewNop())
	return svc, repo, enc
}

func TestGenerateQR(t *testing.T) {
	svc, repo, enc := newDeviceService(t)
	ctx := context.Background()

	code, err := svc.GenerateQR(ctx, "D1")
	if err != nil {
		t.Fatalf("GenerateQR failed: %v", err)
	}
	if code.DeviceID != "D1" {
		t.Errorf("Expected device ID D1, got %s", code.DeviceID)
	}
	if code.URL == "" {
		t.Error("Expected non-empty QR URL")
	}

	// The payload handed to the encoder is the scannable contract
	var payload struct {
		DeviceID string `json:"deviceId"`
		Token    string `json:"token"`
	}
	if err := json.Unmarshal([]byte(enc.lastPayload), &payload); err != nil {
		t.Fatalf("QR payload is not valid JSON: %v", err)
	}
	if payload.DeviceID != "D1" || payload.Token == "" {
		t.Errorf("Unexpected QR payload: %+v", payload)
	}

	device, err := repo.GetByID(ctx, "D1")
	if err != nil {
		t.Fatalf("Device not stored: %v", err)
	}
	if device.Status != entities.DeviceStatusPending {
		t.Errorf("Expected status pending, got %s", device.Status)
	}
	if device.Token != payload.Token {
		t.Error("Stored token does not match QR payload token")
	}
}

func TestGenerateQRDuplicate(t *testing.T) {
	svc, _, _ := newDeviceService(t)
	ctx := context.Background()

	if _, err := svc.GenerateQR(ctx, "D1"); err != nil {
		t.Fatalf("First GenerateQR failed: %v", err)
	}

	_, err := svc.GenerateQR(ctx, "D1")
	if !errors.Is(err, repositories.ErrDeviceExists) {
		t.Errorf("Expected ErrDeviceExists, got %v", err)
	}
}

func TestGenerateQRRenderFailure(t *testing.T) {
	svc, repo, enc := newDeviceService(t)
	enc.fail = true
	ctx := context.Background()

	if _, err := svc.GenerateQR(ctx, "D1"); err == nil {
		t.Fatal("Expected render error")
	}

	// A failed registration must not leave a half-created device behind
	if _, err := repo.GetByID(ctx, "D1"); !errors.Is(err, repositories.ErrDeviceNotFound) {
		t.Errorf("Expected ErrDeviceNotFound after failed registration, got %v", err)
	}
}

func TestEnrollRoundTrip(t *testing.T) {
	svc, repo, _ := newDeviceService(t)
	ctx := context.Background()

	if _, err := svc.GenerateQR(ctx, "D1"); err != nil {
		t.Fatalf("GenerateQR failed: %v", err)
	}
	device, _ := repo.GetByID(ctx, "D1")

	if err := svc.Enroll(ctx, "D1", device.Token); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	status, err := svc.Status(ctx, "D1")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status != entities.DeviceStatusActive {
		t.Errorf("Expected status active, got %s", status)
	}
}

func TestEnrollTokenBinding(t *testing.T) {
	svc, repo, _ := newDeviceService(t)
	ctx := context.Background()

	if _, err := svc.GenerateQR(ctx, "D1"); err != nil {
		t.Fatalf("GenerateQR failed: %v", err)
	}
	if _, err := svc.GenerateQR(ctx, "D2"); err != nil {
		t.Fatalf("GenerateQR failed: %v", err)
	}

	// A validly signed, unexpired token for another device must be rejected
	other, _ := repo.GetByID(ctx, "D2")
	err := svc.Enroll(ctx, "D1", other.Token)
	if !errors.Is(err, ErrTokenMismatch) {
		t.Errorf("Expected ErrTokenMismatch, got %v", err)
	}
}

func TestEnrollGarbageToken(t *testing.T) {
	svc, _, _ := newDeviceService(t)
	ctx := context.Background()

	if _, err := svc.GenerateQR(ctx, "D1"); err != nil {
		t.Fatalf("GenerateQR failed: %v", err)
	}

	err := svc.Enroll(ctx, "D1", "garbage")
	if !errors.Is(err, ErrTokenMismatch) {
		t.Errorf("Expected ErrTokenMismatch, got %v", err)
	}
}

func TestEnrollUnknownDevice(t *testing.T) {
	svc, _, _ := newDeviceService(t)

	err := svc.Enroll(context.Background(), "NOPE", "whatever")
	if !errors.Is(err, ErrTokenMismatch) {
		t.Errorf("Expected ErrTokenMismatch, got %v", err)
	}
}

func TestEnrollExpiredToken(t *testing.T) {
	svc, repo, _ := newDeviceService(t)
	ctx := context.Background()

	// Token matches the stored one but its expiry is more than 30 days gone
	claims := &auth.EnrollmentClaims{
		DeviceID: "D1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-31 * 24 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign expired token: %v", err)
	}

	device := &entities.Device{
		DeviceID: "D1",
		Token:    expired,
		Status:   entities.DeviceStatusPending,
	}
	if err := repo.Create(ctx, device); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Enroll(ctx, "D1", expired); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestLockIdempotence(t *testing.T) {
	svc, repo, _ := newDeviceService(t)
	ctx := context.Background()

	if _, err := svc.GenerateQR(ctx, "D1"); err != nil {
		t.Fatalf("GenerateQR failed: %v", err)
	}
	device, _ := repo.GetByID(ctx, "D1")
	if err := svc.Enroll(ctx, "D1", device.Token); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.Lock(ctx, "D1"); err != nil {
			t.Fatalf("Lock %d failed: %v", i, err)
		}
	}
	if status, _ := svc.Status(ctx, "D1"); status != entities.DeviceStatusLocked {
		t.Errorf("Expected status locked, got %s", status)
	}

	if err := svc.Unlock(ctx, "D1"); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if status, _ := svc.Status(ctx, "D1"); status != entities.DeviceStatusActive {
		t.Errorf("Expected status active, got %s", status)
	}
}

func TestLockUnknownDevice(t *testing.T) {
	svc, _, _ := newDeviceService(t)

	if err := svc.Lock(context.Background(), "NOPE"); !errors.Is(err, repositories.ErrDeviceNotFound) {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
	if err := svc.Unlock(context.Background(), "NOPE"); !errors.Is(err, repositories.ErrDeviceNotFound) {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
}

func TestReEnrollAfterLock(t *testing.T) {
	svc, repo, _ := newDeviceService(t)
	ctx := context.Background()

	if _, err := svc.GenerateQR(ctx, "D1"); err != nil {
		t.Fatalf("GenerateQR failed: %v", err)
	}
	device, _ := repo.GetByID(ctx, "D1")
	if err := svc.Enroll(ctx, "D1", device.Token); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if err := svc.Lock(ctx, "D1"); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	// The stored token stays valid after a lock, so the original QR still
	// enrolls the device back to active.
	if err := svc.Enroll(ctx, "D1", device.Token); err != nil {
		t.Fatalf("Re-enroll failed: %v", err)
	}
	if status, _ := svc.Status(ctx, "D1"); status != entities.DeviceStatusActive {
		t.Errorf("Expected status active, got %s", status)
	}
}
