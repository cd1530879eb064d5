package service

import (
	"errors"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	billmodel "schoolku_backend/internals/features/finance/billings/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans must be called at app bootstrap.
func InitMidtrans(serverKey string, useProduction bool) {
	if serverKey == "" {
		return
	}
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// GenerateSnapToken creates a gateway checkout token for the open balance
// of a bill. The order id doubles as the transaction reference the
// settlement webhook pays with.
func GenerateSnapToken(bill billmodel.StudentBillModel, cust CustomerInput) (token, orderID string, err error) {
	if bill.StudentBillBalance <= 0 {
		return "", "", errors.New("bill has no open balance")
	}

	orderID = fmt.Sprintf("BILL-%s", bill.StudentBillID.String())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: bill.StudentBillBalance,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FirstName,
			LName: cust.LastName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
	}

	resp, snapErr := SnapClient.CreateTransaction(req)
	if snapErr != nil {
		return "", "", snapErr
	}
	return resp.Token, orderID, nil
}
