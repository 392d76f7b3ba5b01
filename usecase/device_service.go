package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arkanandi/finlock/domain/entities"
	"github.com/arkanandi/finlock/domain/repositories"
	"github.com/arkanandi/finlock/internal/auth"
)

// ErrTokenMismatch means the device is unknown or the presented token does
// not equal the stored one. The two cases are indistinguishable on purpose.
var ErrTokenMismatch = errors.New("invalid device or token")

// QRCode is the renderable result of registering a device.
type QRCode struct {
	URL      string
	DeviceID string
}

// qrPayload is the JSON structure scanned by the device during enrollment.
type qrPayload struct {
	DeviceID string `json:"deviceId"`
	Token    string `json:"token"`
}

// DeviceService handles device lifecycle logic: registration with a
// QR-encoded credential, enrollment, and remote lock control.
type DeviceService struct {
	devices repositories.DeviceRepository
	tokens  *auth.TokenService
	qr      repositories.QrEncoder
	logger  *zap.Logger
}

// NewDeviceService creates a new device service
func NewDeviceService(
	devices repositories.DeviceRepository,
	tokens *auth.TokenService,
	qr repositories.QrEncoder,
	logger *zap.Logger,
) *DeviceService {
	return &DeviceService{
		devices: devices,
		tokens:  tokens,
		qr:      qr,
		logger:  logger,
	}
}

// GenerateQR mints an enrollment credential for a new device, renders the
// QR payload, and registers the device as pending.
func (s *DeviceService) GenerateQR(ctx context.Context, deviceID string) (*QRCode, error) {
	// The repository enforces uniqueness again on insert; this early lookup
	// only keeps the common duplicate case from minting a throwaway token.
	if _, err := s.devices.GetByID(ctx, deviceID); err == nil {
		return nil, repositories.ErrDeviceExists
	} else if !errors.Is(err, repositories.ErrDeviceNotFound) {
		return nil, err
	}

	token, err := s.tokens.Issue(deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue enrollment token: %w", err)
	}

	payload, err := json.Marshal(qrPayload{DeviceID: deviceID, Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}

	qrCodeURL, err := s.qr.DataURL(string(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}

	device := &entities.Device{
		DeviceID: deviceID,
		Token:    token,
		Status:   entities.DeviceStatusPending,
	}
	if err := s.devices.Create(ctx, device); err != nil {
		return nil, err
	}

	s.logger.Info("Device registered",
		zap.String("device_id", deviceID))

	return &QRCode{URL: qrCodeURL, DeviceID: deviceID}, nil
}

// Enroll activates a device presenting its enrollment credential. The
// presented token must equal the stored one (replay defence) and carry a
// valid, unexpired signature (tamper defence). Both checks are required.
func (s *DeviceService) Enroll(ctx context.Context, deviceID, token string) error {
	device, err := s.devices.GetByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repositories.ErrDeviceNotFound) {
			return ErrTokenMismatch
		}
		return err
	}

	if device.Token != token {
		return ErrTokenMismatch
	}

	if _, err := s.tokens.Verify(token); err != nil {
		return err
	}

	if err := s.devices.UpdateStatus(ctx, deviceID, entities.DeviceStatusActive); err != nil {
		return err
	}

	s.logger.Info("Device enrolled",
		zap.String("device_id", deviceID))

	return nil
}

// Status returns the device's lifecycle state.
func (s *DeviceService) Status(ctx context.Context, deviceID string) (entities.DeviceStatus, error) {
	device, err := s.devices.GetByID(ctx, deviceID)
	if err != nil {
		return "", err
	}
	return device.Status, nil
}

// Lock puts the device into the locked state. Locking a locked device is a
// no-op.
func (s *DeviceService) Lock(ctx context.Context, deviceID string) error {
	if err := s.devices.UpdateStatus(ctx, deviceID, entities.DeviceStatusLocked); err != nil {
		return err
	}

	s.logger.Info("Device locked",
		zap.String("device_id", deviceID))

	return nil
}

// Unlock returns the device to the active state. Unlocking an active device
// is a no-op.
func (s *DeviceService) Unlock(ctx context.Context, deviceID string) error {
	if err := s.devices.UpdateStatus(ctx, deviceID, entities.DeviceStatusActive); err != nil {
		return err
	}

	s.logger.Info("Device unlocked",
		zap.String("device_id", deviceID))

	return nil
}
