package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/httpresp"
	"github.com/servicollantas/workshop-api/internal/models"
	ucrating "github.com/servicollantas/workshop-api/internal/usecase/rating"
)

type RatingHandler struct {
	db        *gorm.DB
	generate  *ucrating.GenerateLink
	tokenInfo *ucrating.GetTokenInfo
	submit    *ucrating.Submit
}

func NewRatingHandler(
	db *gorm.DB,
	generate *ucrating.GenerateLink,
	tokenInfo *ucrating.GetTokenInfo,
	submit *ucrating.Submit,
) *RatingHandler {
	return &RatingHandler{
		db:        db,
		generate:  generate,
		tokenInfo: tokenInfo,
		submit:    submit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SubmitRatingRequest struct {
	Rating      int    `json:"rating" binding:"required"`
	Comment     string `json:"comment"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
}

// ======================================================
// GENERATE LINK (operador, sobre una cita completada)
// ======================================================

func (h *RatingHandler) GenerateLink(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	link, err := h.generate.Execute(c.Request.Context(), id)
	if err != nil {
		if httperr.FromBusiness(c, err, "No fue posible generar el enlace.") {
			return
		}
		httperr.Internal(c, "failed_to_generate_link", "Error al generar enlace de calificación.")
		return
	}

	httpresp.Created(c, link)
}

// ======================================================
// TOKEN INFO (público: la página de calificación resuelve el token)
// ======================================================

func (h *RatingHandler) TokenInfo(c *gin.Context) {
	token := c.Param("token")

	info, err := h.tokenInfo.Execute(c.Request.Context(), token)
	if err != nil {
		if httperr.FromBusiness(c, err, "Enlace inválido o vencido.") {
			return
		}
		httperr.Internal(c, "failed_to_resolve_token", "Error al consultar el enlace.")
		return
	}

	httpresp.OK(c, info)
}

// ======================================================
// SUBMIT (público, consume el token)
// ======================================================

func (h *RatingHandler) Submit(c *gin.Context) {
	token := c.Param("token")

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	r, err := h.submit.Execute(c.Request.Context(), ucrating.SubmitInput{
		Token:       token,
		Rating:      req.Rating,
		Comment:     req.Comment,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
	})
	if err != nil {
		if httperr.FromBusiness(c, err, "No fue posible registrar la calificación.") {
			return
		}
		httperr.Internal(c, "failed_to_submit_rating", "Error al registrar la calificación.")
		return
	}

	httpresp.Created(c, r)
}

// ======================================================
// LIST (operador: historial de calificaciones)
// ======================================================

func (h *RatingHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Rating{})

	if mechanicID := c.Query("mechanic_id"); mechanicID != "" {
		q = q.Where("mechanic_id = ?", mechanicID)
	}

	var ratings []models.Rating
	if err := q.Order("created_at DESC").Find(&ratings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_ratings", "Error al listar calificaciones.")
		return
	}

	httpresp.OK(c, ratings)
}
