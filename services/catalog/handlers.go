// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package catalog exposes the plugin registry over HTTP: parameter
// listings at the display level an operator works at, citations, published
// documentation links, and a dry-run validation of process-list overrides.
package catalog

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/beamtools/services/pipeline"
)

// =============================================================================
// Handler State
// =============================================================================

// Handlers holds the catalog endpoint handlers.
//
// Thread Safety: safe for concurrent use; the registry serves immutable
// descriptor chains and every request builds its own Tools instance.
type Handlers struct {
	reg    *pipeline.Registry
	logger *slog.Logger
}

// NewHandlers returns catalog handlers backed by the given registry.
func NewHandlers(reg *pipeline.Registry, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{reg: reg, logger: logger}
}

// ErrorResponse is the wire shape of every catalog error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func getOrCreateRequestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

// =============================================================================
// Wire Types
// =============================================================================

// ParameterInfo is the wire shape of one parameter definition with its
// current value.
type ParameterInfo struct {
	Name        string   `json:"name"`
	Visibility  string   `json:"visibility"`
	Dtype       []string `json:"dtype"`
	Description string   `json:"description"`
	Options     []string `json:"options,omitempty"`
	Value       any      `json:"value"`
}

// ListPluginsResponse lists the registered plugin names.
type ListPluginsResponse struct {
	Plugins []string `json:"plugins"`
}

// ParametersResponse lists a plugin's visible parameters in definition
// order.
type ParametersResponse struct {
	Plugin     string          `json:"plugin"`
	Level      string          `json:"level"`
	Parameters []ParameterInfo `json:"parameters"`
}

// CitationInfo is the wire shape of one registered citation.
type CitationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Bibtex      string `json:"bibtex,omitempty"`
	Endnote     string `json:"endnote,omitempty"`
	DOI         string `json:"doi,omitempty"`
}

// DocResponse carries a plugin's documentation block.
type DocResponse struct {
	Plugin  string `json:"plugin"`
	Verbose string `json:"verbose,omitempty"`
	Warn    string `json:"warn,omitempty"`
	DocLink string `json:"doc_link,omitempty"`
}

// ValidateRequest carries process-list overrides to dry-run against a
// plugin's definitions.
type ValidateRequest struct {
	Parameters map[string]any `json:"parameters" binding:"required"`
}

// ValidateResponse returns the parameter values after a successful
// dry-run, including resolved dependent defaults.
type ValidateResponse struct {
	Plugin string         `json:"plugin"`
	Values map[string]any `json:"values"`
}

// =============================================================================
// Handlers
// =============================================================================

// levelRank orders the operator-facing display levels. Parameters at a
// higher rank than the requested level are withheld.
var levelRank = map[string]int{
	string(pipeline.VisibilityBasic):        0,
	string(pipeline.VisibilityIntermediate): 1,
	string(pipeline.VisibilityAdvanced):     2,
}

// HandleListPlugins handles GET /v1/catalog/plugins.
func (h *Handlers) HandleListPlugins(c *gin.Context) {
	c.JSON(http.StatusOK, ListPluginsResponse{Plugins: h.reg.Names()})
}

// HandleGetParameters handles GET /v1/catalog/plugins/:name/parameters.
//
// Query Parameters:
//
//	level: basic, intermediate or advanced (default basic)
//
// Response:
//
//	200 OK: ParametersResponse
//	400 Bad Request: Unknown level
//	404 Not Found: Plugin not registered
func (h *Handlers) HandleGetParameters(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleGetParameters")

	level := c.DefaultQuery("level", string(pipeline.VisibilityBasic))
	rank, ok := levelRank[level]
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "level must be basic, intermediate or advanced",
			Code:  "INVALID_LEVEL",
		})
		return
	}

	tools, ok := h.buildTools(c, logger)
	if !ok {
		return
	}

	resp := ParametersResponse{
		Plugin:     tools.Plugin(),
		Level:      level,
		Parameters: make([]ParameterInfo, 0, tools.ParamDefinitions().Len()),
	}
	tools.ParamDefinitions().Each(func(name string, def *pipeline.Definition) {
		if !def.Display {
			return
		}
		vis := string(def.Visibility)
		if r, leveled := levelRank[vis]; leveled && r > rank {
			return
		}
		value, _ := tools.ParamValue(name)
		resp.Parameters = append(resp.Parameters, ParameterInfo{
			Name:        name,
			Visibility:  vis,
			Dtype:       def.Dtype,
			Description: def.Description.Summary,
			Options:     def.Options,
			Value:       value,
		})
	})
	c.JSON(http.StatusOK, resp)
}

// HandleGetCitations handles GET /v1/catalog/plugins/:name/citations.
func (h *Handlers) HandleGetCitations(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleGetCitations")

	tools, ok := h.buildTools(c, logger)
	if !ok {
		return
	}

	cites := tools.Citations()
	out := make([]CitationInfo, 0, cites.Len())
	for _, name := range cites.Names() {
		cite, _ := cites.Get(name)
		out = append(out, CitationInfo{
			Name:        name,
			Description: cite.Description,
			Bibtex:      cite.Bibtex,
			Endnote:     cite.Endnote,
			DOI:         cite.DOI,
		})
	}
	c.JSON(http.StatusOK, gin.H{"plugin": tools.Plugin(), "citations": out})
}

// HandleGetDoc handles GET /v1/catalog/plugins/:name/doc.
func (h *Handlers) HandleGetDoc(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleGetDoc")

	tools, ok := h.buildTools(c, logger)
	if !ok {
		return
	}

	doc := tools.Doc()
	c.JSON(http.StatusOK, DocResponse{
		Plugin:  tools.Plugin(),
		Verbose: doc.Verbose,
		Warn:    doc.Warn,
		DocLink: doc.DocLink,
	})
}

// HandleValidateParameters handles POST /v1/catalog/plugins/:name/validate.
//
// Description:
//
//	Applies the request's overrides to a fresh Tools instance exactly as a
//	process-list load would, and returns the resulting parameter values.
//	Nothing is persisted; the endpoint is a dry run.
//
// Response:
//
//	200 OK: ValidateResponse
//	400 Bad Request: Malformed body or rejected overrides
//	404 Not Found: Plugin not registered
func (h *Handlers) HandleValidateParameters(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleValidateParameters")

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "request body must carry a parameters object",
			Code:  "INVALID_BODY",
		})
		return
	}

	tools, ok := h.buildTools(c, logger)
	if !ok {
		return
	}

	if err := tools.ApplyProcessListParameters(req.Parameters); err != nil {
		logger.Info("parameter validation rejected", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_PARAMETERS",
		})
		return
	}

	c.JSON(http.StatusOK, ValidateResponse{
		Plugin: tools.Plugin(),
		Values: tools.ParamValues(),
	})
}

// HandleHealth handles GET /v1/catalog/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "plugins": len(h.reg.Names())})
}

// buildTools constructs a Tools for the :name path parameter, writing the
// error response itself when the plugin is unknown or its parameter block
// is invalid.
func (h *Handlers) buildTools(c *gin.Context, logger *slog.Logger) (*pipeline.Tools, bool) {
	name := c.Param("name")
	tools, err := h.reg.NewTools(name, &pipeline.ToolsOptions{
		Logger:          logger,
		Recommendations: io.Discard,
	})
	if err != nil {
		if _, registered := h.reg.Chain(name); !registered {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "plugin " + name + " is not registered",
				Code:  "UNKNOWN_PLUGIN",
			})
			return nil, false
		}
		logger.Error("tools build failed", "plugin", name, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Code:  "TOOLS_BUILD_FAILED",
		})
		return nil, false
	}
	return tools, true
}
