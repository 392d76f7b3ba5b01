package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arkanandi/finlock/domain/entities"
	"github.com/arkanandi/finlock/domain/repositories"
)

// CustomerService handles customer records and their binding to devices.
type CustomerService struct {
	customers repositories.CustomerRepository
	devices   repositories.DeviceRepository
	logger    *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customers repositories.CustomerRepository,
	devices repositories.DeviceRepository,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customers: customers,
		devices:   devices,
		logger:    logger,
	}
}

// Add creates a customer bound to an existing device and writes the
// back-reference onto the device record.
func (s *CustomerService) Add(ctx context.Context, name, email string, emiPerMonth, downpayment float64, deviceID string) (*entities.Customer, error) {
	if _, err := s.devices.GetByID(ctx, deviceID); err != nil {
		return nil, err
	}

	customer := &entities.Customer{
		CustomerID:  fmt.Sprintf("customer-%s", uuid.New().String()),
		Name:        name,
		Email:       email,
		EmiPerMonth: emiPerMonth,
		Downpayment: downpayment,
		DeviceID:    deviceID,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	if err := s.devices.SetCustomer(ctx, deviceID, customer.CustomerID); err != nil {
		return nil, err
	}

	s.logger.Info("Customer added",
		zap.String("customer_id", customer.CustomerID),
		zap.String("device_id", deviceID))

	return customer, nil
}
