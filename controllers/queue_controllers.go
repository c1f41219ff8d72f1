package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/warung-pos/services"
	"github.com/yeremiapane/warung-pos/utils"
)

var (
	cancelConfirmation = utils.ConfirmationRequest{
		Title:       "Konfirmasi Pembatalan",
		Body:        "Yakin membatalkan pesanan ini?",
		ConfirmText: "Ya, Batalkan",
	}
	closeDayConfirmation = utils.ConfirmationRequest{
		Title:       "Konfirmasi Tutup Hari Ini",
		Body:        "Anda yakin ingin menutup penjualan untuk hari ini? Tindakan ini akan memfinalisasi laporan penjualan hari ini dan tidak dapat dibatalkan.",
		ConfirmText: "Ya, Tutup Hari Ini",
	}
)

type QueueController struct {
	Queue *services.QueueService
}

func NewQueueController(queue *services.QueueService) *QueueController {
	return &QueueController{Queue: queue}
}

// GetQueue -> GET /queue?date=&status=&method=&name=&delivered=
func (qc *QueueController) GetQueue(c *gin.Context) {
	var filter services.QueueFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daftar antrian", qc.Queue.List(filter))
}

func (qc *QueueController) ToggleDelivered(c *gin.Context) {
	index, err := paramIndex(c, "index")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	tx, err := qc.Queue.ToggleDelivered(c.Request.Context(), c.Param("transaction_id"), index)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Status antar diperbarui", tx)
}

func (qc *QueueController) DeliverAll(c *gin.Context) {
	tx, err := qc.Queue.DeliverAll(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Semua pesanan di meja ini selesai.", tx)
}

// CancelTransaction butuh confirm=true, tanpa itu dijawab 409 dengan data modal konfirmasi
func (qc *QueueController) CancelTransaction(c *gin.Context) {
	if !confirmed(c) {
		utils.RespondConfirm(c, http.StatusConflict, cancelConfirmation)
		return
	}
	tx, err := qc.Queue.Cancel(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pesanan dibatalkan.", tx)
}

// CloseDay -> POST /queue/close-day, juga butuh confirm=true
func (qc *QueueController) CloseDay(c *gin.Context) {
	if !confirmed(c) {
		utils.RespondConfirm(c, http.StatusConflict, closeDayConfirmation)
		return
	}
	res, err := qc.Queue.CloseDay(c.Request.Context(), c.GetString("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Hari ini sudah ditutup.", res)
}
