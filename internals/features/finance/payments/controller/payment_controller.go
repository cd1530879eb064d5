package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	billmodel "schoolku_backend/internals/features/finance/billings/model"
	dto "schoolku_backend/internals/features/finance/payments/dto"
	paymodel "schoolku_backend/internals/features/finance/payments/model"
	service "schoolku_backend/internals/features/finance/payments/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type PaymentHandler struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db, Ledger: service.NewLedgerService(db)}
}

// ====== CREATE
// POST /api/a/payments
// Records a manual payment (cash, bank transfer, mobile money) against a
// bill and returns it together with its receipt.
func (h *PaymentHandler) ApplyPayment(c *fiber.Ctx) error {
	var body dto.ApplyPaymentDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	userID, err := helperAuth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	payment, err := h.Ledger.ApplyPayment(c.Context(), service.PaymentInput{
		BillID:     body.BillID,
		Amount:     body.Amount,
		Method:     paymodel.PaymentMethod(body.Method),
		Reference:  body.Reference,
		ReceivedBy: userID,
		PaidAt:     body.PaidAt,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.JsonCreated(c, "Payment recorded", dto.ToPaymentResponse(payment))
}

// ====== LIST
// GET /api/a/payments?bill_id=...
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	billID, err := uuid.Parse(strings.TrimSpace(c.Query("bill_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "bill_id is required")
	}
	payments, err := h.Ledger.ListPayments(c.Context(), billID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list payments")
	}
	return helper.JsonOK(c, "OK", dto.ToPaymentResponses(payments))
}

// ====== SNAP TOKEN
// POST /api/a/payments/snap-token
// Creates a gateway checkout token for the open balance of a bill.
func (h *PaymentHandler) CreateSnapToken(c *fiber.Ctx) error {
	var body dto.SnapTokenDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var bill billmodel.StudentBillModel
	if err := h.DB.WithContext(c.Context()).
		First(&bill, "student_bill_id = ?", body.BillID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bill not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load bill")
	}

	token, orderID, err := service.GenerateSnapToken(bill, service.CustomerInput{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     body.Phone,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return helper.JsonOK(c, "Snap token created", dto.SnapTokenResponse{Token: token, OrderID: orderID})
}

// ====== WEBHOOK
// POST /api/payments/gateway/callback
// Gateway settlement notification. Applies the settled amount to the bill
// through the same ledger rule as manual payments. Replayed notifications
// hit the unique reference and are acknowledged without a second posting.
func (h *PaymentHandler) GatewayCallback(c *fiber.Ctx) error {
	var note dto.GatewayNotificationDTO
	if err := c.BodyParser(&note); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification body")
	}

	settled := note.TransactionStatus == "settlement" ||
		(note.TransactionStatus == "capture" && note.FraudStatus == "accept")
	if !settled {
		return helper.JsonOK(c, "Ignored", fiber.Map{"order_id": note.OrderID, "status": note.TransactionStatus})
	}

	billID, err := billIDFromOrder(note.OrderID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unrecognized order id")
	}
	amount, err := parseGrossAmount(note.GrossAmount)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unrecognized gross amount")
	}

	ref := note.OrderID
	payment, err := h.Ledger.ApplyPayment(c.Context(), service.PaymentInput{
		BillID:    billID,
		Amount:    amount,
		Method:    paymodel.PaymentMethodOnline,
		Reference: &ref,
		// zero received-by marks a gateway settlement
		ReceivedBy: uuid.Nil,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateReference) {
			return helper.JsonOK(c, "Already settled", fiber.Map{"order_id": note.OrderID})
		}
		return mapLedgerError(c, err)
	}
	return helper.JsonOK(c, "Settled", dto.ToPaymentResponse(payment))
}

func mapLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrBillNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidAmount):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrReferenceRequired):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrOverpayment):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrDuplicateReference):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record payment")
	}
}

// billIDFromOrder extracts the bill id from an order id shaped BILL-<uuid>.
func billIDFromOrder(orderID string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(orderID, "BILL-")
	if !ok {
		return uuid.Nil, errors.New("missing BILL- prefix")
	}
	return uuid.Parse(raw)
}

// parseGrossAmount parses the gateway's decimal string ("150000.00") into
// whole currency units. Bills are billed in whole units, so a fractional
// amount means a mangled notification and is rejected.
func parseGrossAmount(s string) (int64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	if frac != "" && strings.Trim(frac, "0") != "" {
		return 0, errors.New("fractional amount")
	}
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("non-positive amount")
	}
	return n, nil
}
