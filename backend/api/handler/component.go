package handler

import (
	"encoding/json"
	"net/http"

	"sbml-builder/backend/library/ccapp"
	"sbml-builder/backend/model"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type addComponentRequest struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Properties json.RawMessage `json:"properties"`
}

type addInteractionRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// AddComponent godoc
// @Summary Add a component through the model engine
// @Description The engine answers with the complete document, which replaces
// @Description the stored one. Concurrent calls are last-write-wins.
// @Accept json
// @Produce json
// @Param id path int true "model id"
// @Success 200 {object} object
// @Failure 404 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/models/{id}/components [post]
func AddComponent(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := modelIDParam(c)
	if err != nil {
		fail(c, "adding component", err)
		return
	}
	var req addComponentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		fail(c, "adding component", err)
		return
	}
	if req.Type == "" {
		req.Type = ccapp.DefaultComponentType
	}
	if _, err := model.GetModelByID(ctx, id); err != nil {
		fail(c, "adding component", err)
		return
	}

	doc, err := ModelEngine.AddComponent(ctx, id, req.Name, req.Type)
	if err != nil {
		fail(c, "adding component", err)
		return
	}

	component := &model.Component{
		Name: req.Name,
		Type: req.Type,
	}
	if len(req.Properties) > 0 && string(req.Properties) != "null" {
		component.Properties = datatypes.JSON(req.Properties)
	}
	if err := model.ReplaceDocument(ctx, id, model.Document(doc), component); err != nil {
		fail(c, "adding component", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "sbml": model.Document(doc)})
}

// ListComponents godoc
// @Summary List the components recorded for a model
// @Produce json
// @Param id path int true "model id"
// @Success 200 {object} object
// @Failure 404 {object} common.ErrorResponse
// @Router /api/models/{id}/components [get]
func ListComponents(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := modelIDParam(c)
	if err != nil {
		fail(c, "listing components", err)
		return
	}
	if _, err := model.GetModelByID(ctx, id); err != nil {
		fail(c, "listing components", err)
		return
	}
	components, err := model.GetComponentsByModelID(ctx, id)
	if err != nil {
		fail(c, "listing components", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"components": components})
}

// AddInteraction godoc
// @Summary Link two components through the model engine
// @Description Same replacement semantics as AddComponent.
// @Accept json
// @Produce json
// @Param id path int true "model id"
// @Success 200 {object} object
// @Failure 404 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/models/{id}/interactions [post]
func AddInteraction(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := modelIDParam(c)
	if err != nil {
		fail(c, "adding interaction", err)
		return
	}
	var req addInteractionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		fail(c, "adding interaction", err)
		return
	}
	if _, err := model.GetModelByID(ctx, id); err != nil {
		fail(c, "adding interaction", err)
		return
	}

	doc, err := ModelEngine.AddInteraction(ctx, id, req.Source, req.Target, req.Type)
	if err != nil {
		fail(c, "adding interaction", err)
		return
	}
	if err := model.ReplaceDocument(ctx, id, model.Document(doc), nil); err != nil {
		fail(c, "adding interaction", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "sbml": model.Document(doc)})
}
