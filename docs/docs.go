// Package docs holds the OpenAPI descriptor served under /swagger.
// Regenerate with: swag init -g cmd/main.go
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
        "/": {
            "get": {
                "produces": ["text/plain", "text/html"],
                "tags": ["device"],
                "summary": "Greeting",
                "responses": {
                    "200": {"description": "1700000000 ~ Hello from mcu!", "schema": {"type": "string"}}
                }
            }
        },
        "/temperature": {
            "get": {
                "description": "One serialized read of the on-chip sensor. Failures are reported in the body.",
                "produces": ["text/plain", "text/html"],
                "tags": ["device"],
                "summary": "Chip temperature",
                "responses": {
                    "200": {"description": "1700000000 ~ chip temperature: 41.25°C", "schema": {"type": "string"}}
                }
            }
        },
        "/led": {
            "get": {
                "description": "Accepts /led?on, /led?off or /led?cmd=on. Returns as soon as the command is queued.",
                "produces": ["text/plain", "text/html"],
                "tags": ["device"],
                "summary": "Switch the LED fade",
                "parameters": [
                    {"enum": ["on", "off"], "type": "string", "description": "on or off", "name": "cmd", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "1700000000 ~ The LED is fading in / out ...", "schema": {"type": "string"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an operator",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtain a bearer token",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/status": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["actuator"],
                "summary": "Device snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeviceStatus"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/actuator/status": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Last known fade state; may lag the fade task by one step.",
                "produces": ["application/json"],
                "tags": ["actuator"],
                "summary": "Actuator status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ActuatorStatus"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/actuator/command": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["actuator"],
                "summary": "Submit an actuator command",
                "parameters": [
                    {"description": "Command payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CommandRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handlers.CommandResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List journal entries",
                "parameters": [
                    {"type": "string", "example": "2026-08-01", "description": "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')", "name": "from", "in": "query"},
                    {"type": "string", "example": "2026-08-31", "description": "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["COMMAND", "ENABLED", "DISABLED", "FAULT"], "type": "string", "description": "Event type", "name": "type", "in": "query"},
                    {"type": "integer", "description": "Newest N entries (default and max 1000)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Upgrades to a websocket and pushes {\"type\":\"status\",\"data\":ActuatorStatus} every interval (default 1s, max 10s) and whenever the state changes.",
                "tags": ["actuator"],
                "summary": "Live actuator status",
                "parameters": [
                    {"type": "string", "description": "e.g. 250ms", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "milliseconds", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "s3cret"},
                "username": {"type": "string", "example": "operator"}
            }
        },
        "handlers.CommandRequest": {
            "type": "object",
            "required": ["command"],
            "properties": {
                "command": {"description": "on or off", "type": "string", "example": "on"}
            }
        },
        "handlers.CommandResponse": {
            "type": "object",
            "properties": {
                "command": {"type": "string", "example": "on"},
                "queued": {"type": "boolean"},
                "status": {"$ref": "#/definitions/models.ActuatorStatus"}
            }
        },
        "models.ActuatorStatus": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["STOPPED", "FADING_UP", "FADING_DOWN"]},
                "direction": {"type": "string", "enum": ["ASCENDING", "DESCENDING"]},
                "duty": {"type": "number"},
                "spawned": {"type": "boolean"},
                "faulted": {"type": "boolean"},
                "fault": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.DeviceStatus": {
            "type": "object",
            "properties": {
                "actuator": {"$ref": "#/definitions/models.ActuatorStatus"},
                "temperature_c": {"type": "number"},
                "temperature_error": {"type": "string"},
                "taken_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "mcu-control",
	Description:      "LED fade actuator and chip temperature service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
