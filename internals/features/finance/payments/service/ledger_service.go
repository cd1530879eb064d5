package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	billmodel "schoolku_backend/internals/features/finance/billings/model"
	model "schoolku_backend/internals/features/finance/payments/model"
	helper "schoolku_backend/internals/helpers"
)

var (
	// ErrOverpayment: amount exceeds the bill's open balance.
	ErrOverpayment = errors.New("payment amount exceeds bill balance")
	// ErrInvalidAmount: amount must be positive.
	ErrInvalidAmount = errors.New("payment amount must be positive")
	// ErrReferenceRequired: non-cash payments need a transaction reference.
	ErrReferenceRequired = errors.New("transaction reference is required for non-cash payments")
	// ErrDuplicateReference: transaction reference already used.
	ErrDuplicateReference = errors.New("transaction reference already exists")
	// ErrBillNotFound: no such bill.
	ErrBillNotFound = errors.New("bill not found")
)

// PaymentInput is one ledger application.
type PaymentInput struct {
	BillID     uuid.UUID
	Amount     int64
	Method     model.PaymentMethod
	Reference  *string
	ReceivedBy uuid.UUID
	PaidAt     *time.Time
}

// LedgerService applies payments to bills. The bill mutation, the payment
// row and its receipt commit in one transaction or not at all.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// ApplyPayment validates and records a payment against a bill:
// paid += amount, balance -= amount, status re-derived. Rejections leave
// the bill untouched.
func (s *LedgerService) ApplyPayment(ctx context.Context, in PaymentInput) (model.PaymentModel, error) {
	var payment model.PaymentModel

	if in.Amount <= 0 {
		return payment, ErrInvalidAmount
	}
	ref := normalizeReference(in.Reference)
	if in.Method.RequiresReference() && ref == nil {
		return payment, ErrReferenceRequired
	}
	if !in.Method.Valid() {
		return payment, fmt.Errorf("unknown payment method %q", in.Method)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// row lock where the dialect supports it (sqlite in tests does not)
		q := tx
		if tx.Dialector.Name() != "sqlite" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var bill billmodel.StudentBillModel
		if err := q.
			First(&bill, "student_bill_id = ?", in.BillID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBillNotFound
			}
			return err
		}

		if in.Amount > bill.StudentBillBalance {
			return ErrOverpayment
		}

		bill.StudentBillAmountPaid += in.Amount
		bill.StudentBillBalance -= in.Amount
		bill.StudentBillStatus = billmodel.DeriveBillStatus(bill.StudentBillAmountPaid, bill.StudentBillTotalAmount)
		if err := tx.Save(&bill).Error; err != nil {
			return err
		}

		payment = model.PaymentModel{
			PaymentBillID:     bill.StudentBillID,
			PaymentStudentID:  bill.StudentBillStudentID,
			PaymentAmount:     in.Amount,
			PaymentMethod:     in.Method,
			PaymentReference:  ref,
			PaymentReceivedBy: in.ReceivedBy,
		}
		if in.PaidAt != nil {
			payment.PaymentDate = *in.PaidAt
		}
		if err := tx.Create(&payment).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrDuplicateReference
			}
			return err
		}

		receipt := model.PaymentReceiptModel{
			PaymentReceiptPaymentID: payment.PaymentID,
			PaymentReceiptNumber:    receiptNumber(payment.PaymentID),
		}
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}
		payment.Receipt = &receipt
		return nil
	})
	if err != nil {
		return model.PaymentModel{}, err
	}
	return payment, nil
}

// ListPayments returns the payments of one bill, receipts preloaded.
func (s *LedgerService) ListPayments(ctx context.Context, billID uuid.UUID) ([]model.PaymentModel, error) {
	var payments []model.PaymentModel
	err := s.DB.WithContext(ctx).
		Preload("Receipt").
		Where("payment_bill_id = ?", billID).
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}

func normalizeReference(ref *string) *string {
	if ref == nil {
		return nil
	}
	t := strings.TrimSpace(*ref)
	if t == "" {
		return nil
	}
	return &t
}

// receiptNumber derives a stable receipt number from the payment id and
// issue date.
func receiptNumber(paymentID uuid.UUID) string {
	short := strings.ToUpper(strings.ReplaceAll(paymentID.String(), "-", ""))[:12]
	return fmt.Sprintf("RCP-%s-%s", time.Now().Format("20060102"), short)
}
