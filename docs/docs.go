// Package docs holds the OpenAPI document served under /swagger.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "login payload",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register user",
                "parameters": [
                    {
                        "description": "registration payload",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.registerRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.registerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/auth/verify": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Verify token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.verifyResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/employees": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "List employees",
                "parameters": [
                    {"type": "string", "description": "case-insensitive match on name or email", "name": "search", "in": "query"},
                    {"type": "string", "description": "exact department", "name": "department", "in": "query"},
                    {"type": "string", "description": "exact job role", "name": "role", "in": "query"},
                    {"type": "string", "description": "active, inactive or pending", "name": "status", "in": "query"},
                    {"type": "string", "description": "name, email, role, department, status, hire_date or salary", "name": "sortBy", "in": "query"},
                    {"type": "string", "description": "ASC or DESC", "name": "sortOrder", "in": "query"},
                    {"type": "integer", "description": "page size (1-200)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.employeeResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Create employee",
                "parameters": [
                    {
                        "description": "employee",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.createEmployeeRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.createEmployeeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/employees/stats/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Dashboard statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.statsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/employees/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Get employee",
                "parameters": [{"type": "string", "description": "employee id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.employeeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Update employee",
                "parameters": [
                    {"type": "string", "description": "employee id", "name": "id", "in": "path", "required": true},
                    {
                        "description": "fields to change",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.updateEmployeeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.updateEmployeeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Delete employee",
                "parameters": [{"type": "string", "description": "employee id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/presenter.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.statusResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.notReadyResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.statusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "handlers.notReadyResponse": {
            "type": "object",
            "properties": {
                "dependency": {"type": "string"},
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handlers.createEmployeeRequest": {
            "type": "object",
            "required": ["department", "email", "name", "role", "status"],
            "properties": {
                "address": {"type": "string"},
                "department": {"type": "string"},
                "email": {"type": "string"},
                "hire_date": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string"},
                "salary": {"type": "number", "maximum": 99999999.99},
                "status": {"type": "string", "enum": ["active", "inactive", "pending"]},
                "user_id": {"type": "string"}
            }
        },
        "handlers.createEmployeeResponse": {
            "type": "object",
            "properties": {
                "employeeId": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.departmentCount": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "department": {"type": "string"}
            }
        },
        "handlers.employeeResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "created_at": {"type": "string"},
                "department": {"type": "string"},
                "email": {"type": "string"},
                "hire_date": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string"},
                "salary": {"type": "number"},
                "status": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"},
                "user_role": {"type": "string"}
            }
        },
        "handlers.identityResponse": {
            "type": "object",
            "properties": {
                "department": {"type": "string"},
                "email": {"type": "string"},
                "expires_at": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handlers.loginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.loginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/handlers.userResponse"}
            }
        },
        "handlers.registerRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "department": {"type": "string"},
                "email": {"type": "string"},
                "employee_role": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string"},
                "salary": {"type": "number"}
            }
        },
        "handlers.registerResponse": {
            "type": "object",
            "properties": {
                "employeeId": {"type": "string"},
                "message": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "handlers.roleCount": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "role": {"type": "string"}
            }
        },
        "handlers.statsResponse": {
            "type": "object",
            "properties": {
                "active": {"type": "integer"},
                "departmentStats": {"type": "array", "items": {"$ref": "#/definitions/handlers.departmentCount"}},
                "inactive": {"type": "integer"},
                "pending": {"type": "integer"},
                "roleStats": {"type": "array", "items": {"$ref": "#/definitions/handlers.roleCount"}},
                "total": {"type": "integer"}
            }
        },
        "handlers.updateEmployeeRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "department": {"type": "string"},
                "email": {"type": "string"},
                "hire_date": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string"},
                "salary": {"type": "number"},
                "status": {"type": "string"}
            }
        },
        "handlers.updateEmployeeResponse": {
            "type": "object",
            "properties": {
                "employee": {"$ref": "#/definitions/handlers.employeeResponse"},
                "message": {"type": "string"}
            }
        },
        "handlers.userResponse": {
            "type": "object",
            "properties": {
                "department": {"type": "string"},
                "email": {"type": "string"},
                "employee_role": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handlers.verifyResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/handlers.identityResponse"}
            }
        },
        "presenter.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/validation.FieldError"}},
                "message": {"type": "string"}
            }
        },
        "presenter.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "validation.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Access token. Both \"Bearer <JWT>\" and a bare \"<JWT>\" are accepted.",
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
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Employee Management API",
	Description:      "Employee directory with role-based access: JWT authentication, scoped profile management and dashboard statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
