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

// CustomerRepository is the MongoDB-backed customer store.
type CustomerRepository struct {
	collection *mongo.Collection
}

// NewCustomerRepository creates a new MongoDB customer repository
func NewCustomerRepository(db *mongo.Database) repositories.CustomerRepository {
	return &CustomerRepository{
		collection: db.Collection("customers"),
	}
}

// Create implements repositories.CustomerRepository
func (r *CustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	if customer == nil {
		return errors.New("customer cannot be nil")
	}

	if err := customer.Validate(); err != nil {
		return err
	}

	customer.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, customer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrCustomerExists
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// GetByID implements repositories.CustomerRepository
func (r *CustomerRepository) GetByID(ctx context.Context, customerID string) (*entities.Customer, error) {
	if customerID == "" {
		return nil, errors.New("customer ID cannot be empty")
	}

	var customer entities.Customer
	err := r.collection.FindOne(ctx, bson.M{"_id": customerID}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}

	return &customer, nil
}
