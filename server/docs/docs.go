// Package docs registers the goshogi API description with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "http://github.com/icco/goshogi"
        },
        "license": {
            "name": "MIT",
            "url": "https://github.com/icco/goshogi/blob/main/LICENSE"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Returns basic API information and available endpoints",
                "produces": ["text/html"],
                "tags": ["info"],
                "summary": "Get API information",
                "responses": {"200": {"description": "HTML page with API information", "schema": {"type": "string"}}}
            }
        },
        "/healthz": {
            "get": {
                "description": "Returns service health status",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}}}
            }
        },
        "/rules": {
            "get": {
                "description": "Lists the rules games can be created with",
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "List rules",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/server.RuleSummary"}}}}
            }
        },
        "/auth/register": {
            "post": {
                "description": "Creates a local account and returns a token for it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [{"description": "Account", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Exchanges an email and password for a token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"description": "Credentials", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/game/new": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a game of a rule and seats the caller at direction 0",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Create a new game",
                "parameters": [{"description": "Game configuration", "name": "game", "in": "body", "schema": {"$ref": "#/definitions/server.CreateGameRequest"}}],
                "responses": {
                    "307": {"description": "Redirect to game URL", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/game/{slug}": {
            "get": {
                "description": "Returns the serialized state of a game",
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Get game state",
                "parameters": [{"type": "string", "description": "Game slug identifier", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.GameResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/game/{slug}/{turn}": {
            "get": {
                "description": "Returns the state of a game after the given number of kifu entries",
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Get position at a turn",
                "parameters": [
                    {"type": "string", "description": "Game slug identifier", "name": "slug", "in": "path", "required": true},
                    {"type": "integer", "description": "Kifu entries to replay", "name": "turn", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.GameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/game/{slug}/kifu": {
            "get": {
                "description": "Exports the game history as kifu text",
                "produces": ["text/plain"],
                "tags": ["game"],
                "summary": "Get kifu",
                "parameters": [{"type": "string", "description": "Game slug identifier", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "Kifu text", "schema": {"type": "string"}}}
            }
        },
        "/game/{slug}/legal": {
            "get": {
                "description": "Lists the commands the seat on turn may play",
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Legal moves",
                "parameters": [{"type": "string", "description": "Game slug identifier", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.LegalResponse"}}}
            }
        },
        "/game/{slug}/join": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Takes a free seat. The game starts once every seat is filled",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Join a waiting game",
                "parameters": [
                    {"type": "string", "description": "Game slug identifier", "name": "slug", "in": "path", "required": true},
                    {"description": "Seat choice", "name": "seat", "in": "body", "schema": {"$ref": "#/definitions/server.JoinRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.JoinResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/game/{slug}/command": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Runs a command for the caller's seat",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Run a command",
                "parameters": [
                    {"type": "string", "description": "Game slug identifier", "name": "slug", "in": "path", "required": true},
                    {"description": "Command", "name": "command", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.CommandRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.GameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "server.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "server.HealthResponse": {"type": "object", "properties": {
            "healthy": {"type": "string"}, "revision": {"type": "string"}, "tag": {"type": "string"}, "branch": {"type": "string"}
        }},
        "server.RuleSummary": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "seats": {"type": "integer"}}},
        "server.RegisterRequest": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "server.LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "server.TokenResponse": {"type": "object", "properties": {"token": {"type": "string"}, "user": {"type": "string"}}},
        "server.CreateGameRequest": {"type": "object", "properties": {"rule": {"type": "integer", "example": 1}}},
        "server.JoinRequest": {"type": "object", "properties": {"direction": {"type": "integer"}}},
        "server.JoinResponse": {"type": "object", "properties": {"slug": {"type": "string"}, "direction": {"type": "integer"}, "status": {"type": "string"}}},
        "server.CommandRequest": {"type": "object", "properties": {
            "text": {"type": "string", "example": "77-76"},
            "command": {"type": "object"},
            "direction": {"type": "integer"}
        }},
        "server.GameResponse": {"type": "object", "properties": {
            "slug": {"type": "string"}, "status": {"type": "string"}, "notation": {"type": "string"}, "state": {"type": "object"}
        }},
        "server.LegalResponse": {"type": "object", "properties": {
            "direction": {"type": "integer"}, "commands": {"type": "array", "items": {"type": "string"}}
        }}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token in format: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "goshogi API",
	Description:      "A shogi variant game server API with authentication",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
