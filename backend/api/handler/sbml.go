package handler

import (
	"mime"
	"net/http"

	"sbml-builder/backend/model"

	"github.com/gin-gonic/gin"
)

// ValidateSBML relays a raw SBML document to the model engine and returns its
// validation report unchanged.
func ValidateSBML(c *gin.Context) {
	content, err := c.GetRawData()
	if err != nil {
		fail(c, "validating SBML", err)
		return
	}
	report, err := ModelEngine.ValidateSBML(c.Request.Context(), content)
	if err != nil {
		fail(c, "validating SBML", err)
		return
	}
	relayJSON(c, report)
}

// GetEngineModel returns the model engine's own view of a stored model.
func GetEngineModel(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := modelIDParam(c)
	if err != nil {
		fail(c, "getting engine model", err)
		return
	}
	if _, err := model.GetModelByID(ctx, id); err != nil {
		fail(c, "getting engine model", err)
		return
	}
	raw, err := ModelEngine.GetModel(ctx, id)
	if err != nil {
		fail(c, "getting engine model", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"model": raw})
}

// ExportEngineSBML streams the engine-rendered SBML XML as a download, as
// opposed to ExportSBML which returns the stored document.
func ExportEngineSBML(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := modelIDParam(c)
	if err != nil {
		fail(c, "exporting engine SBML", err)
		return
	}
	m, err := model.GetModelByID(ctx, id)
	if err != nil {
		fail(c, "exporting engine SBML", err)
		return
	}
	xml, err := ModelEngine.ExportSBML(ctx, id)
	if err != nil {
		fail(c, "exporting engine SBML", err)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": m.ExportFilename()}))
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(xml))
}
