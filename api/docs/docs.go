// Package docs registers the swagger specification served at /swagger/.
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
        "/api/tasks": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "description": "zero-indexed page; omit both params for the full list"},
                    {"name": "size", "in": "query", "type": "integer", "description": "page size (max 200)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskhubapi.TaskView"}}}
                }
            },
            "post": {
                "tags": ["tasks"],
                "summary": "Create a task owned by the calling user",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/taskhubapi.CreateTaskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/taskhubapi.TaskView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            }
        },
        "/api/tasks/{id}": {
            "get": {
                "tags": ["tasks"],
                "summary": "Get a task by id",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskhubapi.TaskView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["tasks"],
                "summary": "Update a task",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/taskhubapi.CreateTaskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskhubapi.TaskView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Delete a task",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            }
        },
        "/api/tasks/user/{userId}": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks owned by a user",
                "parameters": [{"name": "userId", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskhubapi.TaskView"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            }
        },
        "/api/tasks/status/{status}": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks by status",
                "parameters": [{"name": "status", "in": "path", "type": "string", "required": true, "description": "TODO, IN_PROGRESS, DONE or CANCELLED"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskhubapi.TaskView"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            }
        },
        "/api/tasks/priority/{priority}": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks by priority",
                "parameters": [{"name": "priority", "in": "path", "type": "string", "required": true, "description": "LOW, MEDIUM, HIGH or URGENT"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskhubapi.TaskView"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            }
        },
        "/api/tasks/search": {
            "get": {
                "tags": ["tasks"],
                "summary": "Search tasks by keyword",
                "parameters": [{"name": "keyword", "in": "query", "type": "string", "required": true, "description": "case-sensitive substring of title or description"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskhubapi.TaskView"}}}
                }
            }
        },
        "/api/tasks/overdue": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks past their due date",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskhubapi.TaskView"}}}
                }
            }
        },
        "/api/users": {
            "get": {
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskhubapi.UserView"}}}
                }
            },
            "post": {
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/taskhubapi.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/taskhubapi.UserView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            }
        },
        "/api/users/{id}": {
            "get": {
                "tags": ["users"],
                "summary": "Get a user by id",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskhubapi.UserView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["users"],
                "summary": "Update a user",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/taskhubapi.CreateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskhubapi.UserView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["users"],
                "summary": "Delete a user and the tasks they own",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/taskhubapi.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskhubapi.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe including a database ping",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskhubapi.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/taskhubapi.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "taskhubapi.CreateTaskRequest": {
            "type": "object",
            "required": ["title", "status", "priority"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["TODO", "IN_PROGRESS", "DONE", "CANCELLED"]},
                "priority": {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH", "URGENT"]},
                "dueDate": {"type": "string", "example": "2025-07-01T09:00:00"},
                "assignedToId": {"type": "integer"}
            }
        },
        "taskhubapi.CreateUserRequest": {
            "type": "object",
            "required": ["username", "email", "name"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["USER", "ADMIN"]}
            }
        },
        "taskhubapi.TaskView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string"},
                "priority": {"type": "string"},
                "dueDate": {"type": "string"},
                "user": {"$ref": "#/definitions/taskhubapi.UserView"},
                "assignedTo": {"$ref": "#/definitions/taskhubapi.UserView"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "taskhubapi.UserView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "taskhubapi.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "taskhubapi.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {
                    "type": "object",
                    "properties": {"database": {"type": "string"}}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TaskHub API",
	Description:      "Task tracking backend: users create, assign, and query tasks by status, priority, and due date.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
