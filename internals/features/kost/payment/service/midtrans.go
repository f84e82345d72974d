package service

import (
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"kostku_backend/internals/features/kost/payment/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var (
	SnapClient snap.Client
	CoreClient coreapi.Client
)

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
	CoreClient.New(serverKey, env)
}

/* =========================================================
   Input helper untuk data customer
========================================================= */

type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// CreateSnapTransaction membuka transaksi Snap untuk satu payment:
// order_id = payment_order_code, expiry 24 jam.
// Return (token, redirectURL, error).
func CreateSnapTransaction(p *model.PaymentModel, itemName string, cust CustomerInput) (string, string, error) {
	if p.PaymentNominal <= 0 {
		return "", "", errors.New("nominal payment tidak valid")
	}
	if p.PaymentOrderCode == "" {
		return "", "", errors.New("payment_order_code wajib diisi (dipakai sebagai OrderID)")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.PaymentOrderCode,
			GrossAmt: int64(p.PaymentNominal),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.Name,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       p.PaymentOrderCode,
				Price:    int64(p.PaymentNominal),
				Qty:      1,
				Name:     truncate(itemName, 50),
				Category: "Kost",
			},
		},
		Expiry: &snap.ExpiryDetails{
			Unit:     "hour",
			Duration: 24,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

// CheckTransactionStatus polling status transaksi ke Midtrans by order code.
func CheckTransactionStatus(orderCode string) (*coreapi.TransactionStatusResponse, error) {
	resp, err := CoreClient.CheckTransaction(orderCode)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

/* =========================================================
   Utils
========================================================= */

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
