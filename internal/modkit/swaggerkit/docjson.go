package swaggerkit

import "net/http"

// docReader is a seam so tests can serve alternate specs
var docReader = func() string { return coordinatorSpec }

// serveDocJSON serves the coordinator OpenAPI document
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(docReader()))
	}
}

// coordinatorSpec is maintained by hand, the surface is small enough
const coordinatorSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "verihub coordinator", "version": "1.0.0"},
  "servers": [{"url": "/api/v1"}],
  "paths": {
    "/gateway/messages": {
      "post": {
        "tags": ["gateway"],
        "summary": "Dispatch one inbound message and return its single response",
        "requestBody": {"content": {"application/json": {"schema": {"type": "object"}}}},
        "responses": {"200": {"description": "response envelope"}}
      }
    },
    "/analysis/reports/{id}": {
      "get": {
        "tags": ["analysis"],
        "summary": "Fetch a recently completed analysis report",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "report"}, "404": {"description": "not found"}}
      }
    },
    "/panel/latest": {
      "get": {
        "tags": ["panel"],
        "summary": "Read the most recent analysis update",
        "responses": {"200": {"description": "update"}, "404": {"description": "no update published yet"}}
      }
    },
    "/panel/current": {
      "get": {
        "tags": ["panel"],
        "summary": "Read the update the panel is displaying",
        "responses": {"200": {"description": "update"}, "404": {"description": "nothing displayed"}}
      },
      "post": {
        "tags": ["panel"],
        "summary": "Record the update the panel is displaying",
        "requestBody": {"content": {"application/json": {"schema": {"type": "object"}}}},
        "responses": {"200": {"description": "stored"}}
      }
    },
    "/panel/badge": {
      "get": {
        "tags": ["panel"],
        "summary": "Read the pending panel badge",
        "responses": {"200": {"description": "badge"}, "404": {"description": "no badge pending"}}
      },
      "delete": {
        "tags": ["panel"],
        "summary": "Clear the pending panel badge",
        "responses": {"200": {"description": "cleared"}}
      }
    },
    "/panel/open": {
      "post": {
        "tags": ["panel"],
        "summary": "Request the panel to be raised for the calling tab",
        "responses": {"200": {"description": "requested"}}
      }
    }
  }
}`
