package services

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/warung-pos/models"
	"github.com/yeremiapane/warung-pos/utils"
)

type MethodTotal struct {
	Method  models.PaymentMethod `json:"method"`
	Count   int                  `json:"count"`
	Revenue int64                `json:"revenue"`
}

type ItemTotal struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

// DayReport adalah rekap penjualan satu tanggal usaha
type DayReport struct {
	Date          string         `json:"date"`
	OrderCount    int            `json:"order_count"`
	Revenue       int64          `json:"revenue"`
	PaidCount     int            `json:"paid_count"`
	PaidRevenue   int64          `json:"paid_revenue"`
	UnpaidCount   int            `json:"unpaid_count"`
	UnpaidRevenue int64          `json:"unpaid_revenue"`
	Methods       []MethodTotal  `json:"methods"`
	Items         []ItemTotal    `json:"items"`
	Kitchen       KitchenSummary `json:"kitchen"`
	Closed        bool           `json:"closed"`
}

// BuildDayReport merekap transaksi dengan tanggal usaha = date
func BuildDayReport(transactions []models.Order, date string) DayReport {
	report := DayReport{
		Date:    date,
		Methods: []MethodTotal{},
		Items:   []ItemTotal{},
	}

	methods := map[models.PaymentMethod]int{}
	items := map[string]int{}
	var lines []models.OrderItem

	for _, t := range FilterTransactions(transactions, QueueFilter{Date: date}) {
		report.OrderCount++
		report.Revenue += t.Total
		if t.Payment.Status == models.PaymentPaid {
			report.PaidCount++
			report.PaidRevenue += t.Total
		} else {
			report.UnpaidCount++
			report.UnpaidRevenue += t.Total
		}

		mi, ok := methods[t.Payment.Method]
		if !ok {
			mi = len(report.Methods)
			methods[t.Payment.Method] = mi
			report.Methods = append(report.Methods, MethodTotal{Method: t.Payment.Method})
		}
		report.Methods[mi].Count++
		report.Methods[mi].Revenue += t.Total

		for _, item := range t.Items {
			name := item.Name
			if item.SelectedVariant != "" {
				name = fmt.Sprintf("%s (%s)", item.Name, item.SelectedVariant)
			}
			ii, ok := items[name]
			if !ok {
				ii = len(report.Items)
				items[name] = ii
				report.Items = append(report.Items, ItemTotal{Name: name})
			}
			report.Items[ii].Quantity += item.Quantity
			report.Items[ii].Revenue += item.LineTotal()
			lines = append(lines, item)
		}
	}

	sort.SliceStable(report.Methods, func(i, j int) bool { return report.Methods[i].Method < report.Methods[j].Method })
	sort.SliceStable(report.Items, func(i, j int) bool { return report.Items[i].Quantity > report.Items[j].Quantity })
	report.Kitchen = BuildKitchenSummary(lines)
	return report
}

// RenderDayReportPDF menulis rekap harian sebagai PDF A4
func RenderDayReportPDF(w io.Writer, report DayReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laporan Harian "+report.Date, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Laporan Penjualan Harian", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	status := "Belum ditutup"
	if report.Closed {
		status = "Sudah ditutup"
	}
	pdf.CellFormat(0, 7, fmt.Sprintf("Tanggal: %s (%s)", report.Date, status), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.CellFormat(80, 7, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, value, "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Ringkasan", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	row("Jumlah Pesanan", fmt.Sprintf("%d", report.OrderCount))
	row("Total Pendapatan", utils.FormatCurrencyIDR(report.Revenue))
	row(fmt.Sprintf("Lunas (%d)", report.PaidCount), utils.FormatCurrencyIDR(report.PaidRevenue))
	row(fmt.Sprintf("Belum Bayar (%d)", report.UnpaidCount), utils.FormatCurrencyIDR(report.UnpaidRevenue))
	for _, m := range report.Methods {
		row(fmt.Sprintf("Metode %s (%d)", m.Method, m.Count), utils.FormatCurrencyIDR(m.Revenue))
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Penjualan per Item", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(100, 7, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Total", "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, item := range report.Items {
		pdf.CellFormat(100, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(0, 7, utils.FormatCurrencyIDR(item.Revenue), "1", 1, "R", false, 0, "")
	}

	if len(report.Kitchen) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Rekap Dapur", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, line := range report.Kitchen {
			row(line.Label, fmt.Sprintf("%d", line.Quantity))
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render day report: %w", err)
	}
	return pdf.Output(w)
}
