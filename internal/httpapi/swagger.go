//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "basePath": "{{.BasePath}}",
  "paths": {
    "/healthz": {"get": {"summary": "Liveness probe", "responses": {"200": {"description": "ok"}}}},
    "/readyz": {"get": {"summary": "Ready once the library is bound", "responses": {"200": {"description": "bound"}, "503": {"description": "not bound"}}}},
    "/status": {"get": {"summary": "Binder status", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.BindStatus"}}}}},
    "/env": {"get": {"summary": "Search environment and candidate directories", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.EnvReport"}}}}},
    "/find/{name}": {"get": {"summary": "Locate a library by logical name", "produces": ["application/json"],
      "parameters": [{"name": "name", "in": "path", "required": true, "type": "string"}],
      "responses": {"200": {"description": "found", "schema": {"$ref": "#/definitions/types.FindResponse"}}, "404": {"description": "not found", "schema": {"$ref": "#/definitions/types.FindResponse"}}}}},
    "/bind": {"post": {"summary": "Bind the library now", "produces": ["application/json"], "responses": {"200": {"description": "bound", "schema": {"$ref": "#/definitions/types.BindStatus"}}, "503": {"description": "bind failed", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}}}},
    "/unbind": {"post": {"summary": "Release the library handle", "responses": {"200": {"description": "unbound", "schema": {"$ref": "#/definitions/types.BindStatus"}}}}}
  },
  "definitions": {
    "types.Probe": {"type": "object", "properties": {"source": {"type": "string"}, "dir": {"type": "string"}}},
    "types.FindResponse": {"type": "object", "properties": {"library": {"type": "string"}, "file": {"type": "string"}, "found": {"type": "boolean"}, "path": {"type": "string"}, "probed": {"type": "array", "items": {"$ref": "#/definitions/types.Probe"}}, "error": {"type": "string"}}},
    "types.BindStatus": {"type": "object", "properties": {"state": {"type": "string"}, "mode": {"type": "string"}, "library": {"type": "string"}, "path": {"type": "string"}, "symbols": {"type": "integer"}, "version": {"type": "string"}, "skip_link": {"type": "boolean"}, "error_kind": {"type": "string"}, "error": {"type": "string"}}},
    "types.EnvReport": {"type": "object", "properties": {"platform": {"type": "string"}, "vars": {"type": "object", "additionalProperties": {"type": "string"}}, "candidates": {"type": "array", "items": {"$ref": "#/definitions/types.Probe"}}}},
    "types.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "integer"}}}
  }
}`

// SwaggerInfo holds the exported API metadata.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "ovlink diagnostics API",
	Description:      "Inspect OpenVINO library discovery and binding.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// MountSwagger serves the UI and doc.json under /swagger/.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
