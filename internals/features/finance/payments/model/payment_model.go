package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodOnline       PaymentMethod = "online" // settled via the gateway webhook
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMobileMoney, PaymentMethodOnline:
		return true
	}
	return false
}

// RequiresReference: every non-cash method must carry a unique
// transaction reference.
func (m PaymentMethod) RequiresReference() bool {
	return m != PaymentMethodCash
}

type PaymentModel struct {
	PaymentID        uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentBillID    uuid.UUID `gorm:"column:payment_bill_id;type:uuid;not null;index" json:"payment_bill_id"`
	PaymentStudentID uuid.UUID `gorm:"column:payment_student_id;type:uuid;not null;index" json:"payment_student_id"`

	PaymentAmount     int64         `gorm:"column:payment_amount;not null;check:payment_amount>0" json:"payment_amount"`
	PaymentDate       time.Time     `gorm:"column:payment_date;not null;index" json:"payment_date"`
	PaymentMethod     PaymentMethod `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	PaymentReference  *string       `gorm:"column:payment_reference;type:varchar(100);uniqueIndex:uniq_payment_reference" json:"payment_reference,omitempty"`
	PaymentReceivedBy uuid.UUID     `gorm:"column:payment_received_by;type:uuid;not null" json:"payment_received_by"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;not null" json:"payment_created_at"`

	Receipt *PaymentReceiptModel `gorm:"foreignKey:PaymentReceiptPaymentID;references:PaymentID" json:"receipt,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	now := time.Now()
	if m.PaymentCreatedAt.IsZero() {
		m.PaymentCreatedAt = now
	}
	if m.PaymentDate.IsZero() {
		m.PaymentDate = now
	}
	return nil
}

// PaymentReceiptModel: exactly one per payment, created in the same
// transaction as the payment row.
type PaymentReceiptModel struct {
	PaymentReceiptID        uuid.UUID `gorm:"column:payment_receipt_id;type:uuid;primaryKey" json:"payment_receipt_id"`
	PaymentReceiptPaymentID uuid.UUID `gorm:"column:payment_receipt_payment_id;type:uuid;not null;uniqueIndex:uniq_receipt_payment" json:"payment_receipt_payment_id"`
	PaymentReceiptNumber    string    `gorm:"column:payment_receipt_number;type:varchar(40);not null;uniqueIndex:uniq_receipt_number" json:"payment_receipt_number"`
	PaymentReceiptIssuedAt  time.Time `gorm:"column:payment_receipt_issued_at;not null" json:"payment_receipt_issued_at"`
}

func (PaymentReceiptModel) TableName() string { return "payment_receipts" }

func (m *PaymentReceiptModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentReceiptID == uuid.Nil {
		m.PaymentReceiptID = uuid.New()
	}
	if m.PaymentReceiptIssuedAt.IsZero() {
		m.PaymentReceiptIssuedAt = time.Now()
	}
	return nil
}
