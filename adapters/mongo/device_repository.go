package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arkanandi/finlock/domain/entities"
	"github.com/arkanandi/finlock/domain/repositories"
)

// DeviceRepository is the MongoDB-backed device store. The device ID is the
// document _id, so uniqueness rides on the collection's primary index.
type DeviceRepository struct {
	collection *mongo.Collection
}

// NewDeviceRepository creates a new MongoDB device repository
func NewDeviceRepository(db *mongo.Database) repositories.DeviceRepository {
	return &DeviceRepository{
		collection: db.Collection("devices"),
	}
}

// Create implements repositories.DeviceRepository
func (r *DeviceRepository) Create(ctx context.Context, device *entities.Device) error {
	if device == nil {
		return errors.New("device cannot be nil")
	}

	if err := device.Validate(); err != nil {
		return err
	}

	now := time.Now()
	device.CreatedAt = now
	device.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, device)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDeviceExists
		}
		return fmt.Errorf("failed to create device: %w", err)
	}

	return nil
}

// GetByID implements repositories.DeviceRepository
func (r *DeviceRepository) GetByID(ctx context.Context, deviceID string) (*entities.Device, error) {
	if deviceID == "" {
		return nil, errors.New("device ID cannot be empty")
	}

	var device entities.Device
	err := r.collection.FindOne(ctx, bson.M{"_id": deviceID}).Decode(&device)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to get device %s: %w", deviceID, err)
	}

	return &device, nil
}

// UpdateStatus implements repositories.DeviceRepository
func (r *DeviceRepository) UpdateStatus(ctx context.Context, deviceID string, status entities.DeviceStatus) error {
	if deviceID == "" {
		return errors.New("device ID cannot be empty")
	}

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": deviceID}, update)
	if err != nil {
		return fmt.Errorf("failed to update device status: %w", err)
	}

	if result.MatchedCount == 0 {
		return repositories.ErrDeviceNotFound
	}

	return nil
}

// SetCustomer implements repositories.DeviceRepository
func (r *DeviceRepository) SetCustomer(ctx context.Context, deviceID, customerID string) error {
	if deviceID == "" {
		return errors.New("device ID cannot be empty")
	}
	if customerID == "" {
		return errors.New("customer ID cannot be empty")
	}

	update := bson.M{
		"$set": bson.M{
			"customer_id": customerID,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": deviceID}, update)
	if err != nil {
		return fmt.Errorf("failed to set device customer: %w", err)
	}

	if result.MatchedCount == 0 {
		return repositories.ErrDeviceNotFound
	}

	return nil
}
