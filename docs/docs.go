// Package docs registers the OpenAPI document for the expense tracker API.
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
        "/healthCheck": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.Envelope"}}
                }
            }
        },
        "/user/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.credentialsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/rest.Envelope"}}
                }
            }
        },
        "/user/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Log in and receive a bearer token",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.credentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.Envelope"}}
                }
            }
        },
        "/expense/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expense"],
                "summary": "Create an expense",
                "parameters": [
                    {"description": "Expense", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.createExpenseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/rest.Envelope"}}
                }
            }
        },
        "/expense/all": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["expense"],
                "summary": "List the caller's expenses, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/rest.Envelope"}}
                }
            }
        },
        "/expense/update/{expenseId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expense"],
                "summary": "Partially update an expense",
                "parameters": [
                    {"type": "string", "description": "Expense id", "name": "expenseId", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.updateExpenseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.Envelope"}}
                }
            }
        },
        "/expense/delete/{expenseId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["expense"],
                "summary": "Delete an expense",
                "parameters": [
                    {"type": "string", "description": "Expense id", "name": "expenseId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "rest.Envelope": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "string"}
            }
        },
        "rest.credentialsRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "rest.createExpenseRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number", "minimum": 0},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "rest.updateExpenseRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number", "minimum": 0},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "date": {"type": "string"}
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
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Expense Tracker API",
	Description:      "User registration, login and per-user expense records.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
