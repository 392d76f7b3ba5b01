package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/arkanandi/finlock/domain/repositories"
	"github.com/arkanandi/finlock/internal/auth"
	"github.com/arkanandi/finlock/usecase"
)

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, devices *usecase.DeviceService, customers *usecase.CustomerService, logger *zap.Logger) {
	h := &handler{devices: devices, customers: customers, logger: logger}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "finlock-server",
		})
	})

	g := e.Group("/api")

	// Device APIs
	g.POST("/devices/generate-qr", h.generateQR)
	g.POST("/devices/enroll", h.enroll)
	g.GET("/devices/:deviceId", h.deviceStatus)
	g.POST("/devices/lock", h.lock)
	g.POST("/devices/unlock", h.unlock)

	// Customer APIs
	g.POST("/customers/add", h.addCustomer)
}

type handler struct {
	devices   *usecase.DeviceService
	customers *usecase.CustomerService
	logger    *zap.Logger
}

func (h *handler) generateQR(c echo.Context) error {
	var req GenerateQRRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Please provide a device ID"})
	}
	if req.DeviceID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Please provide a device ID"})
	}

	code, err := h.devices.GenerateQR(c.Request().Context(), req.DeviceID)
	if err != nil {
		return h.fail(c, "Error generating QR code", err)
	}

	return c.JSON(http.StatusOK, GenerateQRResponse{
		QRCodeURL: code.URL,
		DeviceID:  code.DeviceID,
	})
}

func (h *handler) enroll(c echo.Context) error {
	var req EnrollRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Device ID and token are required"})
	}
	if req.DeviceID == "" || req.Token == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Device ID and token are required"})
	}

	if err := h.devices.Enroll(c.Request().Context(), req.DeviceID, req.Token); err != nil {
		return h.fail(c, "Error enrolling device", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Device enrolled successfully"})
}

func (h *handler) deviceStatus(c echo.Context) error {
	deviceID := c.Param("deviceId")

	status, err := h.devices.Status(c.Request().Context(), deviceID)
	if err != nil {
		return h.fail(c, "Error fetching device status", err)
	}

	return c.JSON(http.StatusOK, DeviceStatusResponse{Status: status})
}

func (h *handler) lock(c echo.Context) error {
	var req LockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Device ID is required"})
	}
	if req.DeviceID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Device ID is required"})
	}

	if err := h.devices.Lock(c.Request().Context(), req.DeviceID); err != nil {
		return h.fail(c, "Error locking device", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Device locked successfully"})
}

func (h *handler) unlock(c echo.Context) error {
	var req LockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Device ID is required"})
	}
	if req.DeviceID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Device ID is required"})
	}

	if err := h.devices.Unlock(c.Request().Context(), req.DeviceID); err != nil {
		return h.fail(c, "Error unlocking device", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Device unlocked successfully"})
}

func (h *handler) addCustomer(c echo.Context) error {
	var req AddCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All customer details are required"})
	}
	if req.Name == "" || req.Email == "" || req.EmiPerMonth == nil || req.Downpayment == nil || req.DeviceID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All customer details are required"})
	}
	if *req.EmiPerMonth < 0 || *req.Downpayment < 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All customer details are required"})
	}

	customer, err := h.customers.Add(
		c.Request().Context(),
		req.Name,
		req.Email,
		float64(*req.EmiPerMonth),
		float64(*req.Downpayment),
		req.DeviceID,
	)
	if err != nil {
		return h.fail(c, "Error adding customer", err)
	}

	return c.JSON(http.StatusOK, AddCustomerResponse{
		Message:  "Customer added successfully",
		Customer: customer,
	})
}

// fail maps service errors onto the wire taxonomy. Anything unexpected is
// logged server-side and answered with a generic 500 body.
func (h *handler) fail(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrDeviceExists):
		// Kept as 400 rather than 409; clients depend on this contract.
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Device already registered"})
	case errors.Is(err, usecase.ErrTokenMismatch):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid device or token"})
	case errors.Is(err, auth.ErrTokenInvalid):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Token is invalid or expired"})
	case errors.Is(err, repositories.ErrDeviceNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Device not found"})
	case errors.Is(err, repositories.ErrCustomerNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
	default:
		h.logger.Error(op, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Something went wrong. Please try again later."})
	}
}
