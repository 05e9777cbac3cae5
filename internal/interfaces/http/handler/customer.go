package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/application/session"
	"github.com/pupuk/storefront/internal/domain/customer"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
)

// ContactRequest is the checkout form's contact block
// @Description Customer contact as typed in the checkout form
type ContactRequest struct {
	Name          string `json:"name" binding:"max=100" example:"Budi Santoso"`
	Phone         string `json:"phone" binding:"max=30" example:"081234567890"`
	AddressDetail string `json:"address_detail" binding:"max=500" example:"Jl. Merdeka No. 10, RT 02/RW 05"`
}

func (r ContactRequest) contact() customer.Contact {
	return customer.Contact{Name: r.Name, Phone: r.Phone, AddressDetail: r.AddressDetail}
}

// ContactResponse is the remembered contact
// @Description Remembered customer contact
type ContactResponse struct {
	Name          string `json:"name" example:"Budi Santoso"`
	Phone         string `json:"phone" example:"081234567890"`
	AddressDetail string `json:"address_detail" example:"Jl. Merdeka No. 10, RT 02/RW 05"`
}

func toContactResponse(c customer.Contact) ContactResponse {
	return ContactResponse{Name: c.Name, Phone: c.Phone, AddressDetail: c.AddressDetail}
}

// CustomerHandler serves the remembered checkout contact.
type CustomerHandler struct {
	SessionHandler
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(sessions *session.Registry) *CustomerHandler {
	return &CustomerHandler{SessionHandler{sessions: sessions}}
}

// Get godoc
// @Summary      Get remembered contact
// @Tags         customer
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Success      200 {object} dto.Response{data=ContactResponse}
// @Router       /customer [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	h.Success(c, toContactResponse(h.session(c).Contact.Get()))
}

// Update godoc
// @Summary      Remember contact
// @Description  Store the contact as typed. It is only validated at checkout.
// @Tags         customer
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Param        request body ContactRequest true "Contact"
// @Success      200 {object} dto.Response{data=ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customer [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	var req ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	book := h.session(c).Contact
	if err := book.Update(c.Request.Context(), req.contact()); err != nil {
		logger.FromContext(c.Request.Context()).Warn("Contact kept in memory only", zap.Error(err))
	}
	h.Success(c, toContactResponse(book.Get()))
}
