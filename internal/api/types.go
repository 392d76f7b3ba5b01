package api

import (
	"fmt"
	"strconv"

	"github.com/arkanandi/finlock/domain/entities"
)

// Amount is a money value that accepts both JSON numbers and numeric
// strings on input. Operator tooling posts amounts either way.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %s", string(data))
	}
	*a = Amount(f)
	return nil
}

// GenerateQRRequest represents the request payload for device registration
type GenerateQRRequest struct {
	DeviceID string `json:"deviceId"`
}

// GenerateQRResponse represents the response payload for device registration
type GenerateQRResponse struct {
	QRCodeURL string `json:"qrCodeUrl"`
	DeviceID  string `json:"deviceId"`
}

// EnrollRequest represents the request payload for device enrollment
type EnrollRequest struct {
	DeviceID string `json:"deviceId"`
	Token    string `json:"token"`
}

// DeviceStatusResponse represents the response payload for a status query
type DeviceStatusResponse struct {
	Status entities.DeviceStatus `json:"status"`
}

// LockRequest represents the request payload for lock and unlock commands
type LockRequest struct {
	DeviceID string `json:"deviceId"`
}

// AddCustomerRequest represents the request payload for customer creation.
// Amounts are pointers so a missing field is distinguishable from zero.
type AddCustomerRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	EmiPerMonth *Amount `json:"emiPerMonth"`
	Downpayment *Amount `json:"downpayment"`
	DeviceID    string  `json:"deviceId"`
}

// AddCustomerResponse represents the response payload for customer creation
type AddCustomerResponse struct {
	Message  string             `json:"message"`
	Customer *entities.Customer `json:"customer"`
}

// MessageResponse represents a plain success response
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
