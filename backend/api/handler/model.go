package handler

import (
	"net/http"

	"sbml-builder/backend/model"

	"github.com/gin-gonic/gin"
)

type createModelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListModels godoc
// @Summary List all stored models, newest first
// @Produce json
// @Success 200 {object} object
// @Failure 500 {object} common.ErrorResponse
// @Router /api/models [get]
func ListModels(c *gin.Context) {
	models, err := model.GetAllModels(c.Request.Context())
	if err != nil {
		fail(c, "listing models", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}

// CreateModel godoc
// @Summary Create a model through the model engine and store its document
// @Accept json
// @Produce json
// @Success 201 {object} object
// @Failure 500 {object} common.ErrorResponse
// @Router /api/models [post]
func CreateModel(c *gin.Context) {
	var req createModelRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		fail(c, "creating model", err)
		return
	}
	name := model.NormalizeModelName(req.Name)

	doc, err := ModelEngine.CreateModel(c.Request.Context(), name, req.Description)
	if err != nil {
		fail(c, "creating model", err)
		return
	}

	m := &model.SBMLModel{
		Name:        name,
		Description: req.Description,
		SBMLData:    model.Document(doc),
	}
	if err := model.CreateModel(c.Request.Context(), m); err != nil {
		fail(c, "creating model", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   m.ID,
		"name": m.Name,
		"sbml": m.SBMLData,
	})
}

// GetModel godoc
// @Summary Get one stored model
// @Produce json
// @Param id path int true "model id"
// @Success 200 {object} object
// @Failure 404 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/models/{id} [get]
func GetModel(c *gin.Context) {
	id, err := modelIDParam(c)
	if err != nil {
		fail(c, "getting model", err)
		return
	}
	m, err := model.GetModelByID(c.Request.Context(), id)
	if err != nil {
		fail(c, "getting model", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"model": m})
}

// DeleteModel godoc
// @Summary Delete a model with its components and simulations
// @Description Deleting an unknown id succeeds.
// @Produce json
// @Param id path int true "model id"
// @Success 200 {object} object
// @Failure 500 {object} common.ErrorResponse
// @Router /api/models/{id} [delete]
func DeleteModel(c *gin.Context) {
	id, err := modelIDParam(c)
	if err != nil {
		// Nothing with this id can exist, so there is nothing to delete.
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	if err := model.DeleteModel(c.Request.Context(), id); err != nil {
		fail(c, "deleting model", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportSBML godoc
// @Summary Download the stored document of a model
// @Produce json
// @Param id path int true "model id"
// @Success 200 {object} object
// @Failure 404 {object} common.ErrorResponse
// @Router /api/models/{id}/export/sbml [get]
func ExportSBML(c *gin.Context) {
	id, err := modelIDParam(c)
	if err != nil {
		fail(c, "exporting SBML", err)
		return
	}
	m, err := model.GetModelByID(c.Request.Context(), id)
	if err != nil {
		fail(c, "exporting SBML", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filename": m.ExportFilename(),
		"content":  m.SBMLData,
	})
}
