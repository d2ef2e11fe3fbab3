package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the word service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>wordbook - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// OpenAPI document for the word API and the operational endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "wordbook", "version": "v0.1.0" },
  "paths": {
    "/api/word": {
      "post": {
        "summary": "Add a word",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["origin","translation"],"properties":{"origin":{"type":"string"},"translation":{"type":"string"}}}}}},
        "responses": {
          "200": { "description": "envelope with success=true and the stored word, or success=false on store failure" },
          "400": { "description": "envelope with success=false (malformed body or missing fields)" },
          "405": { "description": "envelope with success=false (method not allowed)" }
        }
      }
    },
    "/": { "get": { "summary": "Word list page (HTML)", "responses": { "200": { "description": "rendered list" } } } },
    "/word/{origin}": {
      "get": {
        "summary": "Word detail page (HTML)",
        "parameters": [{"name":"origin","in":"path","required":true,"schema":{"type":"string"}}],
        "responses": { "200": { "description": "rendered word" }, "404": { "description": "not found" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
