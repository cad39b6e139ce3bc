package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Petstock API",
        "description": "Pet inventory management for the shop floor",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Session management"},
        {"name": "Pets", "description": "Inventory records"},
        {"name": "Accounts", "description": "Staff account administration"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"},
                    "403": {"description": "Account blocked"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Account created"},
                    "409": {"description": "Username already exists"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "responses": {
                    "204": {"description": "Session cleared"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current account",
                "responses": {
                    "200": {"description": "Account info", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pets": {
            "get": {
                "tags": ["Pets"],
                "summary": "List pets",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Inventory, newest first"}
                }
            },
            "post": {
                "tags": ["Pets"],
                "summary": "Register a pet",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IntakeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Pet registered in stock"},
                    "400": {"description": "Missing required field"}
                }
            }
        },
        "/pets/lookup": {
            "get": {
                "tags": ["Pets"],
                "summary": "Lookup by code",
                "parameters": [
                    {"name": "code", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Matching pet"},
                    "404": {"description": "No match"}
                }
            }
        },
        "/pets/export": {
            "get": {
                "tags": ["Pets"],
                "summary": "Export stock report",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        },
        "/pets/{id}": {
            "get": {
                "tags": ["Pets"],
                "summary": "Get pet by id",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Pet record"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Pets"],
                "summary": "Remove pet record",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Removed (or already absent)"}
                }
            }
        },
        "/pets/{id}/advice": {
            "get": {
                "tags": ["Pets"],
                "summary": "Feeding advice",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Generated advice or placeholder"}
                }
            }
        },
        "/pets/{id}/status": {
            "patch": {
                "tags": ["Pets"],
                "summary": "Transition pet status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated record"},
                    "409": {"description": "Transition not permitted"}
                }
            }
        },
        "/accounts": {
            "get": {
                "tags": ["Accounts"],
                "summary": "List accounts",
                "responses": {
                    "200": {"description": "Accounts in insertion order"},
                    "403": {"description": "Administrator only"}
                }
            }
        },
        "/accounts/{id}/status": {
            "patch": {
                "tags": ["Accounts"],
                "summary": "Toggle account status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Account after toggle (admins unchanged)"},
                    "204": {"description": "Unknown account, nothing toggled"},
                    "403": {"description": "Administrator only"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "IntakeRequest": {
            "type": "object",
            "required": ["species", "cabinet_id"],
            "properties": {
                "species": {"type": "string"},
                "gene": {"type": "string"},
                "weight": {"type": "number", "minimum": 0},
                "feeding_date": {"type": "string", "format": "date"},
                "cabinet_id": {"type": "string"}
            }
        },
        "TransitionRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["SOLD", "DECEASED"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
