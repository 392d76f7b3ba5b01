package adapters

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/arkanandi/finlock/domain/entities"
	"github.com/arkanandi/finlock/domain/repositories"
)

// MemoryCustomerRepository is an in-memory implementation of CustomerRepository.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*entities.Customer
}

// NewMemoryCustomerRepository creates a new in-memory customer repository
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		customers: make(map[string]*entities.Customer),
	}
}

// Create implements CustomerRepository interface
func (m *MemoryCustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	if customer == nil {
		return errors.New("customer cannot be nil")
	}

	if err := customer.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Generated IDs are UUID-based; a collision still gets rejected here
	// rather than silently overwriting.
	if _, exists := m.customers[customer.CustomerID]; exists {
		return repositories.ErrCustomerExists
	}

	customer.CreatedAt = time.Now()

	customerCopy := *customer
	m.customers[customer.CustomerID] = &customerCopy

	return nil
}

// GetByID implements CustomerRepository interface
func (m *MemoryCustomerRepository) GetByID(ctx context.Context, customerID string) (*entities.Customer, error) {
	if customerID == "" {
		return nil, errors.New("customer ID cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	customer, exists := m.customers[customerID]
	if !exists {
		return nil, repositories.ErrCustomerNotFound
	}

	// Return a copy to prevent external modifications
	customerCopy := *customer
	return &customerCopy, nil
}
