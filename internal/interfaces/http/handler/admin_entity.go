package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/pupuk/storefront/internal/application/catalog"
	"github.com/pupuk/storefront/internal/domain/catalog"
	"github.com/pupuk/storefront/internal/interfaces/http/dto"
)

// EntityHandler manages products, categories, brands and suppliers through
// one set of routes keyed by kind.
type EntityHandler struct {
	BaseHandler
	admin  *catalogapp.AdminService
	images *catalogapp.ImageService
}

// NewEntityHandler creates a new EntityHandler
func NewEntityHandler(admin *catalogapp.AdminService, images *catalogapp.ImageService) *EntityHandler {
	return &EntityHandler{admin: admin, images: images}
}

func (h *EntityHandler) kind(c *gin.Context) (catalog.Kind, bool) {
	kind, err := catalog.ParseKind(c.Param("kind"))
	if err != nil {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, err.Error())
		return "", false
	}
	return kind, true
}

// bindForm binds the body into the request type for kind.
func (h *EntityHandler) bindForm(c *gin.Context, kind catalog.Kind) (catalog.Form, bool) {
	req := catalogapp.NewFormRequest(kind)
	if req == nil {
		h.HandleError(c, catalogapp.ErrUnknownKind)
		return nil, false
	}
	if !bindJSON(c, req) {
		return nil, false
	}
	return req.Form(), true
}

// List godoc
// @Summary      List catalog entities
// @Tags         admin-catalog
// @Produce      json
// @Param        kind path string true "Entity kind" Enums(product, category, brand, supplier)
// @Success      200 {object} dto.Response{data=[]object}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/entities/{kind} [get]
func (h *EntityHandler) List(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	items, err := h.admin.List(c.Request.Context(), kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Create godoc
// @Summary      Create catalog entity
// @Description  The body shape depends on kind. Product slugs are generated from the name.
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Param        kind path string true "Entity kind" Enums(product, category, brand, supplier)
// @Param        request body object true "Entity form"
// @Success      201 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/entities/{kind} [post]
func (h *EntityHandler) Create(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	form, ok := h.bindForm(c, kind)
	if !ok {
		return
	}
	out, err := h.admin.Create(c.Request.Context(), form)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// Update godoc
// @Summary      Update catalog entity
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Param        kind path string true "Entity kind" Enums(product, category, brand, supplier)
// @Param        id path string true "Entity ID" format(uuid)
// @Param        request body object true "Entity form"
// @Success      200 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/entities/{kind}/{id} [put]
func (h *EntityHandler) Update(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	form, ok := h.bindForm(c, kind)
	if !ok {
		return
	}
	out, err := h.admin.Update(c.Request.Context(), id, form)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Delete godoc
// @Summary      Delete catalog entity
// @Tags         admin-catalog
// @Produce      json
// @Param        kind path string true "Entity kind" Enums(product, category, brand, supplier)
// @Param        id path string true "Entity ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/entities/{kind}/{id} [delete]
func (h *EntityHandler) Delete(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.admin.Delete(c.Request.Context(), kind, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadImage godoc
// @Summary      Upload product image
// @Description  Store an image from the multipart field "file" and return its public URL.
// @Tags         admin-catalog
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image file"
// @Success      201 {object} dto.Response{data=catalogapp.ImageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      415 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/images [post]
func (h *EntityHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing image file")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer f.Close()

	out, err := h.images.Upload(c.Request.Context(), catalogapp.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}
