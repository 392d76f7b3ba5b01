package entities

import (
	"errors"
	"time"
)

// DeviceStatus is the lifecycle state of a financed device.
type DeviceStatus string

const (
	DeviceStatusPending DeviceStatus = "pending"
	DeviceStatusActive  DeviceStatus = "active"
	DeviceStatusLocked  DeviceStatus = "locked"
)

// Device represents a financed device under remote lock control.
type Device struct {
	DeviceID   string       `json:"deviceId" bson:"_id"`
	Token      string       `json:"token" bson:"token"`
	Status     DeviceStatus `json:"status" bson:"status"`
	CustomerID *string      `json:"customerId" bson:"customer_id"`
	CreatedAt  time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time    `json:"updatedAt" bson:"updated_at"`
}

// Customer represents the party repaying a device, bound 1:1 to it.
type Customer struct {
	CustomerID  string    `json:"customerId" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	EmiPerMonth float64   `json:"emiPerMonth" bson:"emi_per_month"`
	Downpayment float64   `json:"downpayment" bson:"downpayment"`
	DeviceID    string    `json:"deviceId" bson:"device_id"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// Domain validation methods
func (d *Device) Validate() error {
	if d.DeviceID == "" {
		return errors.New("device ID is required")
	}
	if d.Token == "" {
		return errors.New("token is required")
	}
	switch d.Status {
	case DeviceStatusPending, DeviceStatusActive, DeviceStatusLocked:
	default:
		return errors.New("invalid device status")
	}
	return nil
}

func (c *Customer) Validate() error {
	if c.CustomerID == "" {
		return errors.New("customer ID is required")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if c.EmiPerMonth < 0 {
		return errors.New("emi per month must not be negative")
	}
	if c.Downpayment < 0 {
		return errors.New("downpayment must not be negative")
	}
	if c.DeviceID == "" {
		return errors.New("device ID is required")
	}
	return nil
}
