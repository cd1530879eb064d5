package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	billmodel "schoolku_backend/internals/features/finance/billings/model"
	model "schoolku_backend/internals/features/finance/payments/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&billmodel.FeeStructureModel{},
		&billmodel.StudentBillModel{},
		&model.PaymentModel{},
		&model.PaymentReceiptModel{},
	))
	return db
}

func seedBill(t *testing.T, db *gorm.DB, total int64) billmodel.StudentBillModel {
	t.Helper()
	bill := billmodel.StudentBillModel{
		StudentBillStudentID:      uuid.New(),
		StudentBillAcademicYearID: uuid.New(),
		StudentBillFeeStructureID: uuid.New(),
		StudentBillTotalAmount:    total,
		StudentBillAmountPaid:     0,
		StudentBillBalance:        total,
		StudentBillStatus:         billmodel.StudentBillStatusPending,
	}
	require.NoError(t, db.Create(&bill).Error)
	return bill
}

func reloadBill(t *testing.T, db *gorm.DB, id uuid.UUID) billmodel.StudentBillModel {
	t.Helper()
	var bill billmodel.StudentBillModel
	require.NoError(t, db.First(&bill, "student_bill_id = ?", id).Error)
	return bill
}

func strPtr(s string) *string { return &s }

func TestApplyPayment_CashHappyPath(t *testing.T) {
	db := setupDB(t)
	bill := seedBill(t, db, 5000)
	svc := NewLedgerService(db)

	p, err := svc.ApplyPayment(context.Background(), PaymentInput{
		BillID:     bill.StudentBillID,
		Amount:     2000,
		Method:     model.PaymentMethodCash,
		ReceivedBy: uuid.New(),
	})
	require.NoError(t, err)
	require.NotNil(t, p.Receipt)
	assert.NotEmpty(t, p.Receipt.PaymentReceiptNumber)

	got := reloadBill(t, db, bill.StudentBillID)
	assert.Equal(t, int64(2000), got.StudentBillAmountPaid)
	assert.Equal(t, int64(3000), got.StudentBillBalance)
	assert.Equal(t, billmodel.StudentBillStatusPartiallyPaid, got.StudentBillStatus)
	assert.Equal(t, got.StudentBillTotalAmount, got.StudentBillAmountPaid+got.StudentBillBalance)
}

func TestApplyPayment_FullSettlement(t *testing.T) {
	db := setupDB(t)
	bill := seedBill(t, db, 5000)
	svc := NewLedgerService(db)
	ctx := context.Background()

	_, err := svc.ApplyPayment(ctx, PaymentInput{
		BillID: bill.StudentBillID, Amount: 2000,
		Method: model.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	require.NoError(t, err)
	_, err = svc.ApplyPayment(ctx, PaymentInput{
		BillID: bill.StudentBillID, Amount: 3000,
		Method: model.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	require.NoError(t, err)

	got := reloadBill(t, db, bill.StudentBillID)
	assert.Equal(t, int64(0), got.StudentBillBalance)
	assert.Equal(t, billmodel.StudentBillStatusFullyPaid, got.StudentBillStatus)

	payments, err := svc.ListPayments(ctx, bill.StudentBillID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	for _, p := range payments {
		require.NotNil(t, p.Receipt)
	}
}

func TestApplyPayment_RejectsOverpayment(t *testing.T) {
	db := setupDB(t)
	bill := seedBill(t, db, 1000)
	svc := NewLedgerService(db)

	_, err := svc.ApplyPayment(context.Background(), PaymentInput{
		BillID: bill.StudentBillID, Amount: 1001,
		Method: model.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrOverpayment)

	got := reloadBill(t, db, bill.StudentBillID)
	assert.Equal(t, int64(1000), got.StudentBillBalance)
	assert.Equal(t, billmodel.StudentBillStatusPending, got.StudentBillStatus)

	var payments int64
	require.NoError(t, db.Model(&model.PaymentModel{}).Count(&payments).Error)
	assert.Equal(t, int64(0), payments)
}

func TestApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	db := setupDB(t)
	bill := seedBill(t, db, 1000)
	svc := NewLedgerService(db)

	_, err := svc.ApplyPayment(context.Background(), PaymentInput{
		BillID: bill.StudentBillID, Amount: 0,
		Method: model.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestApplyPayment_NonCashRequiresReference(t *testing.T) {
	db := setupDB(t)
	bill := seedBill(t, db, 1000)
	svc := NewLedgerService(db)
	ctx := context.Background()

	_, err := svc.ApplyPayment(ctx, PaymentInput{
		BillID: bill.StudentBillID, Amount: 500,
		Method: model.PaymentMethodBankTransfer, ReceivedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrReferenceRequired)

	// whitespace-only reference is still missing
	_, err = svc.ApplyPayment(ctx, PaymentInput{
		BillID: bill.StudentBillID, Amount: 500,
		Method: model.PaymentMethodMobileMoney, Reference: strPtr("   "),
		ReceivedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrReferenceRequired)

	p, err := svc.ApplyPayment(ctx, PaymentInput{
		BillID: bill.StudentBillID, Amount: 500,
		Method: model.PaymentMethodBankTransfer, Reference: strPtr("TRX-001"),
		ReceivedBy: uuid.New(),
	})
	require.NoError(t, err)
	require.NotNil(t, p.PaymentReference)
	assert.Equal(t, "TRX-001", *p.PaymentReference)
	require.NotNil(t, p.Receipt)
}

func TestApplyPayment_RejectsDuplicateReference(t *testing.T) {
	db := setupDB(t)
	bill := seedBill(t, db, 2000)
	svc := NewLedgerService(db)
	ctx := context.Background()

	_, err := svc.ApplyPayment(ctx, PaymentInput{
		BillID: bill.StudentBillID, Amount: 500,
		Method: model.PaymentMethodBankTransfer, Reference: strPtr("TRX-DUP"),
		ReceivedBy: uuid.New(),
	})
	require.NoError(t, err)

	_, err = svc.ApplyPayment(ctx, PaymentInput{
		BillID: bill.StudentBillID, Amount: 500,
		Method: model.PaymentMethodBankTransfer, Reference: strPtr("TRX-DUP"),
		ReceivedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrDuplicateReference)

	// rejected payment rolled the bill mutation back too
	got := reloadBill(t, db, bill.StudentBillID)
	assert.Equal(t, int64(500), got.StudentBillAmountPaid)
	assert.Equal(t, int64(1500), got.StudentBillBalance)
}

func TestApplyPayment_UnknownBill(t *testing.T) {
	db := setupDB(t)
	svc := NewLedgerService(db)

	_, err := svc.ApplyPayment(context.Background(), PaymentInput{
		BillID: uuid.New(), Amount: 100,
		Method: model.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrBillNotFound)
}
