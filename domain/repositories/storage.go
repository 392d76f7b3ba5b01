package repositories

import (
	"context"
	"errors"

	"github.com/arkanandi/finlock/domain/entities"
)

// Sentinel errors shared by every repository implementation.
var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrDeviceExists     = errors.New("device already registered")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerExists   = errors.New("customer already exists")
)

// DeviceRepository defines data access methods for device records.
type DeviceRepository interface {
	// Create inserts a new device. Returns ErrDeviceExists if the device ID
	// is already taken.
	Create(ctx context.Context, device *entities.Device) error
	GetByID(ctx context.Context, deviceID string) (*entities.Device, error)
	// UpdateStatus transitions the device to the given status. Transitions
	// are deliberately unrestricted; lock and unlock are idempotent.
	UpdateStatus(ctx context.Context, deviceID string, status entities.DeviceStatus) error
	// SetCustomer assigns the customer back-reference on the device.
	SetCustomer(ctx context.Context, deviceID, customerID string) error
}

// CustomerRepository defines data access methods for customer records.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entities.Customer) error
	GetByID(ctx context.Context, customerID string) (*entities.Customer, error)
}

// QrEncoder renders a payload string into a scannable image data URI.
type QrEncoder interface {
	DataURL(payload string) (string, error)
}
