package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"asetgraph/internal/codec"
	"asetgraph/internal/domain"
	"asetgraph/internal/service"
)

var contentTypes = map[string]string{
	"json": "application/json",
	"yaml": "application/x-yaml",
	"yml":  "application/x-yaml",
}

// exportHandler writes a snapshot of every collection
func (s *Server) exportHandler(c *gin.Context) {
	format := c.Param("format")
	if _, err := codec.ForFormat(format); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format", "details": err.Error()})
		return
	}

	// buffered so a failed snapshot can still produce an error response
	var buf bytes.Buffer
	if err := s.archive.Export(c.Request.Context(), format, &buf); err != nil {
		s.logger.Errorw("Failed to export dataset", "format", format, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export dataset", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=asetgraph."+format)
	c.Data(http.StatusOK, contentTypes[format], buf.Bytes())
}

// importHandler applies an uploaded dataset with ?strategy=merge|replace
func (s *Server) importHandler(c *gin.Context) {
	format := c.Param("format")
	cd, err := codec.ForFormat(format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format", "details": err.Error()})
		return
	}

	strategy := c.DefaultQuery("strategy", service.StrategyMerge)
	result, err := s.archive.Import(c.Request.Context(), cd, c.Request.Body, strategy)
	if err != nil {
		s.logger.Errorw("Failed to import dataset", "format", format, "strategy", strategy, "error", err)
		status := http.StatusBadRequest
		if domain.IsStorageError(err) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": "Failed to import dataset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
