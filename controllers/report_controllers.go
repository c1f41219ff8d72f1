package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/warung-pos/models"
	"github.com/yeremiapane/warung-pos/services"
	"github.com/yeremiapane/warung-pos/utils"
)

// ReportController menyajikan rekap harian dan status hari usaha
type ReportController struct {
	Queue *services.QueueService
	Days  *services.BusinessDayService
}

func NewReportController(queue *services.QueueService, days *services.BusinessDayService) *ReportController {
	return &ReportController{Queue: queue, Days: days}
}

func reportDate(c *gin.Context) (string, error) {
	date := c.Query("date")
	if date == "" {
		return "", nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", fmt.Errorf("format tanggal harus YYYY-MM-DD")
	}
	return date, nil
}

// GetBusinessDay -> tanggal usaha sekarang dan status kuncinya
func (rc *ReportController) GetBusinessDay(c *gin.Context) {
	state, err := rc.Days.State(c.Request.Context(), rc.Queue.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Hari usaha", gin.H{
		"date":   state.Date,
		"locked": state.Locked,
	})
}

func (rc *ReportController) GetDayReport(c *gin.Context) {
	date, err := reportDate(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	report, err := rc.Queue.Report(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Laporan harian", report)
}

// DownloadDayReportPDF -> GET /queue/report.pdf
func (rc *ReportController) DownloadDayReportPDF(c *gin.Context) {
	date, err := reportDate(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	report, err := rc.Queue.Report(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.RenderDayReportPDF(&buf, report); err != nil {
		respondServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("laporan-%s.pdf", report.Date)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// GetClosedDays -> riwayat tutup hari (admin)
func (rc *ReportController) GetClosedDays(c *gin.Context) {
	days, err := rc.Days.ClosedDays(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Riwayat tutup hari", days)
}
