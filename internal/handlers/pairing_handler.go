package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/services"
	apperrors "github.com/calebgil/tandem/pkg/errors"
	"github.com/calebgil/tandem/pkg/response"
)

// PairingHandler exposes the pairing lifecycle.
type PairingHandler struct {
	pairs    *services.PairService
	users    *services.UserService
	notifier *services.Notifier
}

// NewPairingHandler constructs a PairingHandler.
func NewPairingHandler(pairs *services.PairService, users *services.UserService, notifier *services.Notifier) *PairingHandler {
	return &PairingHandler{pairs: pairs, users: users, notifier: notifier}
}

// GenerateCode mints (or reissues) the caller's pairing code.
func (h *PairingHandler) GenerateCode(c *gin.Context) {
	code, err := h.pairs.GenerateCode(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, code)
}

// GenerateCodeQR renders the caller's pairing code as a QR PNG so the partner
// can scan it instead of typing.
func (h *PairingHandler) GenerateCodeQR(c *gin.Context) {
	code, err := h.pairs.GenerateCode(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	png, err := qrcode.Encode(code.Code, qrcode.Medium, 256)
	if err != nil {
		response.Error(c, apperrors.Wrap(err, "could not render QR code"))
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

type redeemRequest struct {
	Code string `json:"code" validate:"required,min=4,max=16"`
}

// RedeemCode pairs the caller with the code's owner and congratulates both
// sides.
func (h *PairingHandler) RedeemCode(c *gin.Context) {
	var req redeemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.pairs.RedeemCode(c.Request.Context(), middleware.UserID(c), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Fan-out happens after the transaction committed; a notification failure
	// cannot undo the pairing.
	h.notifier.PairEstablished(c.Request.Context(), result)

	response.Success(c, http.StatusOK, result.Pair)
}

// Status reports the caller's pairing state and partner profile.
func (h *PairingHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()
	uid := middleware.UserID(c)

	user, err := h.users.Get(ctx, uid)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := gin.H{"paired": false}
	if user.PairID != nil {
		partnerID, err := h.pairs.PartnerID(ctx, uid, user.PairID)
		if err != nil {
			response.Error(c, err)
			return
		}
		status["paired"] = partnerID != ""
		if partnerID != "" {
			if partner, err := h.users.Get(ctx, partnerID); err == nil {
				status["partner"] = partner
			}
		}
	}

	response.Success(c, http.StatusOK, status)
}

// Unpair dissolves the caller's pair.
func (h *PairingHandler) Unpair(c *gin.Context) {
	if err := h.pairs.Unpair(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unpaired": true})
}
