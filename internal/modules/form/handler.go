package form

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"frontline/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const notFoundMessage = "Form not found"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/submit-form", h.Create)
	r.GET("/forms", h.List)
	r.GET("/forms/:id", h.Get)
	r.GET("/form/:id", h.GetWrapped)
	r.PUT("/forms/:id", h.Replace)
	r.PUT("/edit/:id", h.UpdateRates)
	r.DELETE("/forms/:id", h.Delete)
}

// Create stores a new form together with its QR code.
// @Summary		Submit a form
// @Description	Allocates an id, renders the QR code for the detail page and stores the record.
// @Tags		Forms
// @Param		request	body	CreateFormRequest	true	"Form fields without id and code"
// @Success		201	{object}	map[string]interface{}	"Form data saved successfully!"
// @Failure		400	{object}	map[string]interface{}	"Validation or save error"
// @Router		/submit-form [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateFormRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "Error saving form data", err)
		return
	}

	f, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Error saving form data", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Form data saved successfully!",
		"form":    f,
	})
}

// List returns forms newest first, 30 per page.
// @Summary		List forms
// @Tags		Forms
// @Param		page	query	int	false	"Page number (default: 1)"
// @Success		200	{object}	FormPage
// @Failure		500	{object}	map[string]interface{}
// @Router		/forms [GET]
func (h *Handler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Error fetching form history", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns the bare record.
func (h *Handler) Get(c *gin.Context) {
	f, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Message(c, http.StatusNotFound, notFoundMessage)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error fetching form details", err)
		return
	}

	c.JSON(http.StatusOK, f)
}

// GetWrapped returns the record inside {message, data}.
func (h *Handler) GetWrapped(c *gin.Context) {
	f, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Message(c, http.StatusNotFound, notFoundMessage)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error fetching form", err)
		return
	}

	response.WithPayload(c, http.StatusOK, "Form retrieved successfully", "data", f)
}

// Replace overwrites all editable fields of a form.
// @Summary		Update a form
// @Description	Every one of areticalNo, name, date, warpDetails, weftDetails, dyingMillName, fabricsShortage and code must be present.
// @Tags		Forms
// @Param		id		path	string				true	"Form id"
// @Param		request	body	ReplaceFormRequest	true	"Full field set"
// @Success		200	{object}	map[string]interface{}	"Form updated successfully"
// @Failure		400	{object}	map[string]interface{}	"Missing required fields"
// @Failure		404	{object}	map[string]interface{}	"Form not found"
// @Failure		500	{object}	map[string]interface{}	"Error updating form"
// @Router		/forms/{id} [PUT]
func (h *Handler) Replace(c *gin.Context) {
	var req ReplaceFormRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	f, err := h.svc.Replace(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		var missing *MissingFieldsError
		switch {
		case errors.As(err, &missing):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":       "Missing required fields",
				"missingFields": missing.Fields,
			})
		case errors.Is(err, ErrNotFound):
			response.Message(c, http.StatusNotFound, notFoundMessage)
		default:
			response.Error(c, http.StatusInternalServerError, "Error updating form", err)
		}
		return
	}

	response.WithPayload(c, http.StatusOK, "Form updated successfully", "data", f)
}

// UpdateRates sets warpRate and/or weftRate and nothing else.
func (h *Handler) UpdateRates(c *gin.Context) {
	var req UpdateRatesRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	f, err := h.svc.UpdateRates(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoRateFields):
			response.Message(c, http.StatusBadRequest, "No valid fields to update")
		case errors.Is(err, ErrNotFound):
			response.Message(c, http.StatusNotFound, notFoundMessage)
		default:
			response.Error(c, http.StatusInternalServerError, "Error updating form rates", err)
		}
		return
	}

	response.WithPayload(c, http.StatusOK, "Form updated successfully", "data", f)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Message(c, http.StatusNotFound, notFoundMessage)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error deleting form", err)
		return
	}

	response.Message(c, http.StatusOK, "Form deleted successfully")
}

// bindJSON decodes the body into obj. An empty body decodes as {} so the
// field checks report what is missing.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
