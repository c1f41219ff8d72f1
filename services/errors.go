package services

import "errors"

// Pesan-pesan ini langsung ditampilkan ke kasir / dapur sebagai notifikasi.
var (
	ErrEmptyOrder          = errors.New("Pesanan kosong!")
	ErrDayClosed           = errors.New("Hari ini sudah ditutup, tidak bisa membuat pesanan baru.")
	ErrMonitoringMode      = errors.New("Mode Monitoring: Tidak bisa menambah pesanan baru.")
	ErrNoToppingOptions    = errors.New("Item ini tidak memiliki opsi topping.")
	ErrNotCustomizable     = errors.New("Item ini tidak memiliki opsi edit lanjutan.")
	ErrLineNotFound        = errors.New("baris pesanan tidak ditemukan")
	ErrToppingNotFound     = errors.New("topping tidak ditemukan")
	ErrTransactionNotFound = errors.New("transaksi tidak ditemukan")
	ErrCatalogItemNotFound = errors.New("item katalog tidak ditemukan")
	ErrBuilderNotOpen      = errors.New("tidak ada item yang sedang dikustomisasi")
	ErrBuilderIncomplete   = errors.New("pilihan belum lengkap")
	ErrInvalidChoice       = errors.New("pilihan tidak valid")
	ErrSessionNotFound     = errors.New("sesi kasir tidak ditemukan")
	ErrDayAlreadyClosed    = errors.New("hari ini sudah ditutup")
	ErrInvalidPayment      = errors.New("status atau metode pembayaran tidak valid")
	ErrInvalidCatalogItem  = errors.New("data katalog tidak valid")
)
