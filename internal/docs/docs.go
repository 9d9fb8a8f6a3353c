// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/jwt": {
            "post": {
                "summary": "Issue a session cookie for an identity claim",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "claim", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "200": {"description": "cookie set", "schema": {"$ref": "#/definitions/success"}},
                    "400": {"description": "body is not a JSON object", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/logout": {
            "post": {
                "summary": "Clear the session cookie",
                "produces": ["application/json"],
                "responses": {"200": {"description": "cookie cleared", "schema": {"$ref": "#/definitions/success"}}}
            }
        },
        "/services": {
            "get": {
                "summary": "List the service catalog",
                "produces": ["application/json"],
                "responses": {"200": {"description": "catalog", "schema": {"type": "array", "items": {"$ref": "#/definitions/service"}}}}
            }
        },
        "/services/{id}": {
            "get": {
                "summary": "Get one catalog entry, null when unknown",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "entry or null", "schema": {"$ref": "#/definitions/service"}},
                    "400": {"description": "invalid id", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/checkout": {
            "get": {
                "summary": "List the bookings of the authenticated user",
                "produces": ["application/json"],
                "parameters": [{"in": "query", "name": "email", "type": "string"}],
                "responses": {
                    "200": {"description": "bookings", "schema": {"type": "array", "items": {"$ref": "#/definitions/checkout"}}},
                    "401": {"description": "unauthorized access", "schema": {"$ref": "#/definitions/message"}},
                    "403": {"description": "forbidden", "schema": {"$ref": "#/definitions/message"}}
                }
            },
            "post": {
                "summary": "Create a booking",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "checkout", "required": true, "schema": {"$ref": "#/definitions/checkout"}}],
                "responses": {
                    "200": {"description": "insert result", "schema": {"$ref": "#/definitions/insertResult"}},
                    "400": {"description": "invalid booking", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/checkout/{id}": {
            "patch": {
                "summary": "Update the status of a booking",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "status", "required": true, "schema": {"type": "object", "properties": {"status": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "update result", "schema": {"$ref": "#/definitions/updateResult"}}}
            },
            "delete": {
                "summary": "Delete a booking",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "delete result", "schema": {"$ref": "#/definitions/deleteResult"}}}
            }
        }
    },
    "definitions": {
        "message": {"type": "object", "properties": {"message": {"type": "string"}}},
        "success": {"type": "object", "properties": {"success": {"type": "boolean"}}},
        "facility": {"type": "object", "properties": {"name": {"type": "string"}, "details": {"type": "string"}}},
        "service": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "service_id": {"type": "string"},
                "title": {"type": "string"},
                "img": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "facility": {"type": "array", "items": {"$ref": "#/definitions/facility"}}
            }
        },
        "checkout": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "customerName": {"type": "string"},
                "email": {"type": "string"},
                "img": {"type": "string"},
                "date": {"type": "string"},
                "service": {"type": "string"},
                "service_id": {"type": "string"},
                "price": {"type": "number"},
                "status": {"type": "string"}
            }
        },
        "insertResult": {"type": "object", "properties": {"acknowledged": {"type": "boolean"}, "insertedId": {"type": "string"}}},
        "updateResult": {"type": "object", "properties": {"acknowledged": {"type": "boolean"}, "matchedCount": {"type": "integer"}, "modifiedCount": {"type": "integer"}}},
        "deleteResult": {"type": "object", "properties": {"acknowledged": {"type": "boolean"}, "deletedCount": {"type": "integer"}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Car Doctor API",
	Description:      "Service catalog and booking checkout with cookie sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
