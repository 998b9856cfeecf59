// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/beamtools/services/catalog"
	"github.com/AleutianAI/beamtools/services/pipeline"
)

// servePort and serveDebug hold flag values for the serve command.
var (
	servePort  int
	serveDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the plugin catalog API",
	Long: `serve starts the catalog HTTP server.

Endpoints are registered under /v1/catalog; Prometheus metrics are
exposed at /metrics.`,
	RunE: runServeCommand,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "enable debug mode")
}

func runServeCommand(_ *cobra.Command, _ []string) error {
	if serveDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if serveDebug {
		router.Use(gin.Logger())
	}

	handlers := catalog.NewHandlers(pipeline.Default(), slog.Default())
	v1 := router.Group("/v1")
	catalog.RegisterRoutes(v1, handlers)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf(":%d", servePort)
	slog.Info("starting catalog server",
		slog.String("address", addr),
		slog.Int("plugins", len(pipeline.Default().Names())))
	return router.Run(addr)
}
