package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Requests
========================================================= */

type ApplyPaymentDTO struct {
	BillID    uuid.UUID  `json:"bill_id" validate:"required"`
	Amount    int64      `json:"amount" validate:"required,gt=0"`
	Method    string     `json:"method" validate:"required,oneof=cash bank_transfer mobile_money online"`
	Reference *string    `json:"reference,omitempty" validate:"omitempty,max=100"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

type SnapTokenDTO struct {
	BillID    uuid.UUID `json:"bill_id" validate:"required"`
	FirstName string    `json:"first_name" validate:"required,max=50"`
	LastName  string    `json:"last_name" validate:"omitempty,max=50"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"omitempty,max=20"`
}

// GatewayNotificationDTO is the subset of the gateway's HTTP notification
// the settlement handler needs.
type GatewayNotificationDTO struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	GrossAmount       string `json:"gross_amount"`
}

/* =========================================================
   Responses
========================================================= */

type PaymentReceiptResponse struct {
	PaymentReceiptID     uuid.UUID `json:"payment_receipt_id"`
	PaymentReceiptNumber string    `json:"payment_receipt_number"`
	IssuedAt             time.Time `json:"issued_at"`
}

type PaymentResponse struct {
	PaymentID        uuid.UUID               `json:"payment_id"`
	PaymentBillID    uuid.UUID               `json:"payment_bill_id"`
	PaymentStudentID uuid.UUID               `json:"payment_student_id"`
	Amount           int64                   `json:"amount"`
	Method           string                  `json:"method"`
	Reference        *string                 `json:"reference,omitempty"`
	PaidAt           time.Time               `json:"paid_at"`
	ReceivedBy       uuid.UUID               `json:"received_by"`
	Receipt          *PaymentReceiptResponse `json:"receipt,omitempty"`
}

func ToPaymentResponse(m model.PaymentModel) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:        m.PaymentID,
		PaymentBillID:    m.PaymentBillID,
		PaymentStudentID: m.PaymentStudentID,
		Amount:           m.PaymentAmount,
		Method:           string(m.PaymentMethod),
		Reference:        m.PaymentReference,
		PaidAt:           m.PaymentDate,
		ReceivedBy:       m.PaymentReceivedBy,
	}
	if m.Receipt != nil {
		resp.Receipt = &PaymentReceiptResponse{
			PaymentReceiptID:     m.Receipt.PaymentReceiptID,
			PaymentReceiptNumber: m.Receipt.PaymentReceiptNumber,
			IssuedAt:             m.Receipt.PaymentReceiptIssuedAt,
		}
	}
	return resp
}

func ToPaymentResponses(ms []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPaymentResponse(m))
	}
	return out
}

type SnapTokenResponse struct {
	Token   string `json:"token"`
	OrderID string `json:"order_id"`
}
