package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/warung-pos/utils"
)

// AuditLogger mencatat siapa yang menjalankan aksi yang mengubah antrian (antar, batal, tutup hari)
func AuditLogger(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		fields := logrus.Fields{
			"action":         action,
			"user":           c.GetString(CtxUsername),
			"transaction_id": c.Param("transaction_id"),
			"status":         c.Writer.Status(),
		}
		if c.Writer.Status() < 300 {
			utils.InfoLogger.WithFields(fields).Info("audit")
		} else {
			utils.ErrorLogger.WithFields(fields).Warn("audit")
		}
	}
}
