package adapters

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/arkanandi/finlock/domain/entities"
	"github.com/arkanandi/finlock/domain/repositories"
)

// MemoryDeviceRepository is an in-memory implementation of DeviceRepository.
// This is the reference storage backend; state is lost on restart.
type MemoryDeviceRepository struct {
	mu      sync.RWMutex
	devices map[string]*entities.Device
}

// NewMemoryDeviceRepository creates a new in-memory device repository
func NewMemoryDeviceRepository() *MemoryDeviceRepository {
	return &MemoryDeviceRepository{
		devices: make(map[string]*entities.Device),
	}
}

// Create implements DeviceRepository interface
func (m *MemoryDeviceRepository) Create(ctx context.Context, device *entities.Device) error {
	if device == nil {
		return errors.New("device cannot be nil")
	}

	if err := device.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Insert is compare-and-set: the existence check and the write happen
	// under the same lock.
	if _, exists := m.devices[device.DeviceID]; exists {
		return repositories.ErrDeviceExists
	}

	now := time.Now()
	device.CreatedAt = now
	device.UpdatedAt = now

	deviceCopy := *device
	m.devices[device.DeviceID] = &deviceCopy

	return nil
}

// GetByID implements DeviceRepository interface
func (m *MemoryDeviceRepository) GetByID(ctx context.Context, deviceID string) (*entities.Device, error) {
	if deviceID == "" {
		return nil, errors.New("device ID cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	device, exists := m.devices[deviceID]
	if !exists {
		return nil, repositories.ErrDeviceNotFound
	}

	// Return a copy to prevent external modifications
	deviceCopy := *device
	return &deviceCopy, nil
}

// UpdateStatus implements DeviceRepository interface
func (m *MemoryDeviceRepository) UpdateStatus(ctx context.Context, deviceID string, status entities.DeviceStatus) error {
	if deviceID == "" {
		return errors.New("device ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	device, exists := m.devices[deviceID]
	if !exists {
		return repositories.ErrDeviceNotFound
	}

	device.Status = status
	device.UpdatedAt = time.Now()

	return nil
}

// SetCustomer implements DeviceRepository interface
func (m *MemoryDeviceRepository) SetCustomer(ctx context.Context, deviceID, customerID string) error {
	if deviceID == "" {
		return errors.New("device ID cannot be empty")
	}
	if customerID == "" {
		return errors.New("customer ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	device, exists := m.devices[deviceID]
	if !exists {
		return repositories.ErrDeviceNotFound
	}

	device.CustomerID = &customerID
	device.UpdatedAt = time.Now()

	return nil
}
