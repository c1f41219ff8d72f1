package services

import (
	"github.com/yeremiapane/warung-pos/models"
)

func findTransaction(transactions []models.Order, id string) int {
	if id == "" {
		return -1
	}
	for i, t := range transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// SubmitOrder menyimpan order ke daftar transaksi.
// ID yang sudah ada diganti di posisi yang sama, ID baru ditaruh paling depan.
// updated bernilai true kalau transaksi lama diganti.
func SubmitOrder(transactions []models.Order, order models.Order, locked bool) (out []models.Order, updated bool, err error) {
	if len(order.Items) == 0 {
		return transactions, false, ErrEmptyOrder
	}

	idx := findTransaction(transactions, order.ID)
	updated = idx != -1
	if !updated && locked {
		return transactions, false, ErrDayClosed
	}

	saved := order.Clone()
	saved.Total = models.CalculateTotal(saved.Items)

	out = models.CloneOrders(transactions)
	if updated {
		out[idx] = saved
	} else {
		out = append([]models.Order{saved}, out...)
	}
	return out, updated, nil
}

// CancelTransaction menghapus transaksi secara permanen
func CancelTransaction(transactions []models.Order, id string) ([]models.Order, error) {
	idx := findTransaction(transactions, id)
	if idx == -1 {
		return transactions, ErrTransactionNotFound
	}
	out := make([]models.Order, 0, len(transactions)-1)
	for i, t := range transactions {
		if i != idx {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

// ToggleItemDelivered membalik status antar satu baris
func ToggleItemDelivered(transactions []models.Order, id string, itemIndex int) ([]models.Order, error) {
	idx := findTransaction(transactions, id)
	if idx == -1 {
		return transactions, ErrTransactionNotFound
	}
	if itemIndex < 0 || itemIndex >= len(transactions[idx].Items) {
		return transactions, ErrLineNotFound
	}
	out := models.CloneOrders(transactions)
	out[idx].Items[itemIndex].IsDelivered = !out[idx].Items[itemIndex].IsDelivered
	return out, nil
}

// MarkAllDelivered menandai semua baris transaksi sudah diantar
func MarkAllDelivered(transactions []models.Order, id string) ([]models.Order, error) {
	idx := findTransaction(transactions, id)
	if idx == -1 {
		return transactions, ErrTransactionNotFound
	}
	out := models.CloneOrders(transactions)
	for i := range out[idx].Items {
		out[idx].Items[i].IsDelivered = true
	}
	return out, nil
}

// TransactionForEdit mengembalikan salinan transaksi untuk dimuat ulang ke kasir
func TransactionForEdit(transactions []models.Order, id string) (models.Order, error) {
	idx := findTransaction(transactions, id)
	if idx == -1 {
		return models.Order{}, ErrTransactionNotFound
	}
	return transactions[idx].Clone(), nil
}
