// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package catalog

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all catalog routes with the router.
//
// Description:
//
//	Registers all /v1/catalog/* endpoints with the given Gin router group.
//	The router group should already have any required middleware applied.
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
//
// Endpoints:
//
//	GET  /v1/catalog/plugins - List registered plugins
//	GET  /v1/catalog/plugins/:name/parameters - List a plugin's parameters
//	GET  /v1/catalog/plugins/:name/citations - List a plugin's citations
//	GET  /v1/catalog/plugins/:name/doc - Get a plugin's documentation block
//	POST /v1/catalog/plugins/:name/validate - Dry-run parameter overrides
//	GET  /v1/catalog/health - Health check
//
// Example:
//
//	handlers := catalog.NewHandlers(pipeline.Default(), logger)
//
//	v1 := router.Group("/v1")
//	catalog.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	cat := rg.Group("/catalog")
	{
		cat.GET("/plugins", handlers.HandleListPlugins)
		cat.GET("/plugins/:name/parameters", handlers.HandleGetParameters)
		cat.GET("/plugins/:name/citations", handlers.HandleGetCitations)
		cat.GET("/plugins/:name/doc", handlers.HandleGetDoc)
		cat.POST("/plugins/:name/validate", handlers.HandleValidateParameters)

		cat.GET("/health", handlers.HandleHealth)
	}
}
