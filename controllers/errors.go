package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/warung-pos/services"
	"github.com/yeremiapane/warung-pos/utils"
)

// ErrNoPermission adalah error custom untuk aksi yang tidak boleh dilakukan role ini
var ErrNoPermission = &CustomError{"You do not have permission"}

var errInvalidIndex = &CustomError{"index tidak valid"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// statusFor memetakan error service ke HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, services.ErrCatalogItemNotFound),
		errors.Is(err, services.ErrLineNotFound),
		errors.Is(err, services.ErrToppingNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDayClosed),
		errors.Is(err, services.ErrMonitoringMode),
		errors.Is(err, services.ErrDayAlreadyClosed),
		errors.Is(err, services.ErrBuilderNotOpen),
		errors.Is(err, services.ErrBuilderIncomplete):
		return http.StatusConflict
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrNoToppingOptions),
		errors.Is(err, services.ErrNotCustomizable),
		errors.Is(err, services.ErrInvalidChoice),
		errors.Is(err, services.ErrInvalidPayment),
		errors.Is(err, services.ErrInvalidCatalogItem),
		errors.Is(err, errInvalidIndex):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNoPermission):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func respondServiceError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		utils.ErrorLogger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	utils.RespondError(c, code, err)
}

func paramIndex(c *gin.Context, name string) (int, error) {
	idx, err := strconv.Atoi(c.Param(name))
	if err != nil || idx < 0 {
		return 0, errInvalidIndex
	}
	return idx, nil
}

// confirmed -> true kalau request membawa confirm=true (query atau JSON body)
func confirmed(c *gin.Context) bool {
	if ok, err := strconv.ParseBool(c.Query("confirm")); err == nil {
		return ok
	}
	var body struct {
		Confirm bool `json:"confirm"`
	}
	if c.Request.ContentLength > 0 && c.ShouldBindJSON(&body) == nil {
		return body.Confirm
	}
	return false
}
