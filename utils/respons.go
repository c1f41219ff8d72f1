package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ConfirmationRequest dikirim saat aksi butuh konfirmasi eksplisit (pengganti modal di UI)
type ConfirmationRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	ConfirmText string `json:"confirm_text"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondConfirm -> 409, client mengulang request dengan confirm=true
func RespondConfirm(c *gin.Context, code int, confirm ConfirmationRequest) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: confirm.Title,
		Data:    confirm,
	})
}
