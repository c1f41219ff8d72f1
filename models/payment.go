package models

type PaymentStatus string

type PaymentMethod string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"

	MethodCash PaymentMethod = "cash"
	MethodQRIS PaymentMethod = "qris"
)

// Payment hanya mencatat status & metode, tidak ada pemrosesan pembayaran sungguhan
type Payment struct {
	Status PaymentStatus `json:"status"`
	Method PaymentMethod `json:"method"`
}

func (s PaymentStatus) Valid() bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodQRIS
}
