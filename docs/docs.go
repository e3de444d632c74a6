// Package docs holds the OpenAPI document for the API. Regenerate with
// swag init -g cmd/api/main.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/films": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "Create a film",
                "parameters": [
                    {"description": "Film", "name": "film", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.FilmRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.FilmRepresentation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/films/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "Get a film",
                "parameters": [
                    {"type": "string", "description": "Film id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.FilmRepresentation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "Replace a film",
                "parameters": [
                    {"type": "string", "description": "Film id", "name": "id", "in": "path", "required": true},
                    {"description": "Film", "name": "film", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.FilmRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.FilmRepresentation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["films"],
                "summary": "Delete a film",
                "parameters": [
                    {"type": "string", "description": "Film id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/planets": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["planets"],
                "summary": "Create a planet",
                "parameters": [
                    {"description": "Planet", "name": "planet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PlanetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.PlanetRepresentation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/planets/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["planets"],
                "summary": "Get a planet",
                "parameters": [
                    {"type": "string", "description": "Planet id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.PlanetRepresentation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["planets"],
                "summary": "Replace a planet",
                "parameters": [
                    {"type": "string", "description": "Planet id", "name": "id", "in": "path", "required": true},
                    {"description": "Planet", "name": "planet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PlanetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.PlanetRepresentation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["planets"],
                "summary": "Delete a planet",
                "parameters": [
                    {"type": "string", "description": "Planet id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/health-status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entities.FilmRepresentation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "release_date": {"type": "string"},
                "director": {"type": "string"},
                "planets": {"type": "array", "items": {"type": "string"}},
                "created": {"type": "string"},
                "edited": {"type": "string"}
            }
        },
        "entities.PlanetRepresentation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "climate": {"type": "string"},
                "diameter": {"type": "string"},
                "population": {"type": "string"},
                "films": {"type": "array", "items": {"type": "string"}},
                "created": {"type": "string"},
                "edited": {"type": "string"}
            }
        },
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handlers.FilmRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "release_date": {"type": "string"},
                "director": {"type": "string"},
                "planets": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "service": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "handlers.PlanetRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "climate": {"type": "string"},
                "diameter": {"type": "string"},
                "population": {"type": "string"},
                "films": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "API Star Wars",
	Description:      "Films and planets with cross references checked on write.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
