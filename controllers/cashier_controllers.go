package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/warung-pos/models"
	"github.com/yeremiapane/warung-pos/services"
	"github.com/yeremiapane/warung-pos/utils"
)

type CashierController struct {
	Cashier *services.CashierService
}

func NewCashierController(cashier *services.CashierService) *CashierController {
	return &CashierController{Cashier: cashier}
}

func (cc *CashierController) respond(c *gin.Context, message string, view services.SessionView, err error) {
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, view)
}

// OpenSession -> POST /cashier/sessions
func (cc *CashierController) OpenSession(c *gin.Context) {
	view, err := cc.Cashier.OpenSession(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Sesi kasir dibuat", view)
}

func (cc *CashierController) GetSession(c *gin.Context) {
	view, err := cc.Cashier.Get(c.Request.Context(), c.Param("session_id"))
	cc.respond(c, "Sesi kasir", view, err)
}

// SelectItem -> tap item katalog
func (cc *CashierController) SelectItem(c *gin.Context) {
	var req struct {
		ItemID string `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := cc.Cashier.SelectItem(c.Request.Context(), c.Param("session_id"), req.ItemID)
	cc.respond(c, "Item dipilih", view, err)
}

// SetItemQuantity -> input jumlah manual; nilai tidak valid dianggap 0 (hapus baris)
func (cc *CashierController) SetItemQuantity(c *gin.Context) {
	index, err := paramIndex(c, "index")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req struct {
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	qty := utils.CoerceQuantity(req.Quantity, 0)
	view, err := cc.Cashier.SetItemQuantity(c.Request.Context(), c.Param("session_id"), index, qty)
	cc.respond(c, "Jumlah diperbarui", view, err)
}

func (cc *CashierController) EditLine(c *gin.Context) {
	index, err := paramIndex(c, "index")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view, err := cc.Cashier.EditLine(c.Request.Context(), c.Param("session_id"), index)
	cc.respond(c, "Edit item", view, err)
}

// AdjustLineTopping -> tombol +/- topping di baris keranjang
func (cc *CashierController) AdjustLineTopping(c *gin.Context) {
	index, err := paramIndex(c, "index")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	toppingIndex, err := paramIndex(c, "topping_index")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := cc.Cashier.AdjustToppingQuantity(c.Request.Context(), c.Param("session_id"), index, toppingIndex, req.Delta)
	cc.respond(c, "Topping diperbarui", view, err)
}

func (cc *CashierController) Choose(c *gin.Context) {
	var req struct {
		Choice string `json:"choice" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := cc.Cashier.Choose(c.Request.Context(), c.Param("session_id"), req.Choice)
	cc.respond(c, "Pilihan disimpan", view, err)
}

// AdjustBuilderTopping -> POST builder/toppings/:topping_id {delta}
func (cc *CashierController) AdjustBuilderTopping(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := cc.Cashier.AdjustBuilderTopping(c.Request.Context(), c.Param("session_id"), c.Param("topping_id"), req.Delta)
	cc.respond(c, "Topping diperbarui", view, err)
}

// SetBuilderTopping -> PUT builder/toppings/:topping_id {quantity}; nilai tidak valid menghapus topping
func (cc *CashierController) SetBuilderTopping(c *gin.Context) {
	var req struct {
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	qty := utils.CoerceQuantity(req.Quantity, 0)
	view, err := cc.Cashier.SetBuilderTopping(c.Request.Context(), c.Param("session_id"), c.Param("topping_id"), qty)
	cc.respond(c, "Topping diperbarui", view, err)
}

// SetBuilderQuantity -> {quantity} untuk input manual (min 1) atau {delta} untuk tombol +/-
func (cc *CashierController) SetBuilderQuantity(c *gin.Context) {
	var req struct {
		Quantity json.RawMessage `json:"quantity"`
		Delta    *int            `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var (
		view services.SessionView
		err  error
	)
	if req.Delta != nil {
		view, err = cc.Cashier.AdjustBuilderQuantity(c.Request.Context(), c.Param("session_id"), *req.Delta)
	} else {
		view, err = cc.Cashier.SetBuilderQuantity(c.Request.Context(), c.Param("session_id"), utils.CoerceQuantity(req.Quantity, 1))
	}
	cc.respond(c, "Jumlah diperbarui", view, err)
}

func (cc *CashierController) FinishBuilder(c *gin.Context) {
	view, err := cc.Cashier.FinishBuilder(c.Request.Context(), c.Param("session_id"))
	cc.respond(c, "Item ditambahkan", view, err)
}

func (cc *CashierController) CancelBuilder(c *gin.Context) {
	view, err := cc.Cashier.CancelBuilder(c.Request.Context(), c.Param("session_id"))
	cc.respond(c, "Kustomisasi dibatalkan", view, err)
}

// UpdateOrder -> nama pelanggan dan status/metode pembayaran
func (cc *CashierController) UpdateOrder(c *gin.Context) {
	var req struct {
		CustomerName  *string              `json:"customer_name"`
		PaymentStatus models.PaymentStatus `json:"payment_status"`
		PaymentMethod models.PaymentMethod `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := cc.Cashier.UpdateOrder(c.Request.Context(), c.Param("session_id"), services.OrderUpdate{
		CustomerName: req.CustomerName,
		Status:       req.PaymentStatus,
		Method:       req.PaymentMethod,
	})
	cc.respond(c, "Pesanan diperbarui", view, err)
}

// Submit -> proses pesanan
func (cc *CashierController) Submit(c *gin.Context) {
	res, err := cc.Cashier.Submit(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.WithField("transaction_id", res.Transaction.ID).Info(res.Notice())
	utils.RespondJSON(c, http.StatusOK, res.Notice(), res)
}

func (cc *CashierController) Reset(c *gin.Context) {
	view, err := cc.Cashier.Reset(c.Request.Context(), c.Param("session_id"))
	cc.respond(c, "Keranjang dikosongkan", view, err)
}

// LoadTransaction -> muat transaksi lama ke kasir untuk diedit
func (cc *CashierController) LoadTransaction(c *gin.Context) {
	view, err := cc.Cashier.LoadTransaction(c.Request.Context(), c.Param("session_id"), c.Param("transaction_id"))
	cc.respond(c, "Mode edit pesanan", view, err)
}
