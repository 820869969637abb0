// Package docs holds the OpenAPI description served at /swagger. Regenerate
// with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/courses": {
            "get": {"produces": ["application/json"], "tags": ["courses"], "summary": "List courses",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["courses"], "summary": "Replace the whole course list",
                "parameters": [{"description": "Ordered course names", "name": "request", "in": "body", "required": true, "schema": {"type": "array", "items": {"type": "string"}}}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/profiles": {
            "get": {"produces": ["application/json"], "tags": ["profiles"], "summary": "List directory profiles, or find one by username",
                "parameters": [{"type": "string", "description": "Username", "name": "username", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Profile"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["profiles"], "summary": "Create a profile by redeeming an invite",
                "parameters": [{"description": "Signup data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.SignupInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Profile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/profiles/{id}": {
            "get": {"produces": ["application/json"], "tags": ["profiles"], "summary": "Get a profile",
                "parameters": [{"type": "string", "description": "Profile ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Profile"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["profiles"], "summary": "Update a profile",
                "parameters": [{"type": "string", "description": "Profile ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.UpdateProfileInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Profile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["profiles"], "summary": "Delete a profile",
                "parameters": [{"type": "string", "description": "Profile ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/admins": {
            "get": {"produces": ["application/json"], "tags": ["admins"], "summary": "Find an admin by username",
                "parameters": [{"type": "string", "description": "Username", "name": "username", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Admin"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["admins"], "summary": "Create an admin account",
                "parameters": [{"description": "Admin data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.RegisterAdminInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Admin"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/admins/{id}": {
            "get": {"produces": ["application/json"], "tags": ["admins"], "summary": "Get an admin",
                "parameters": [{"type": "string", "description": "Admin ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Admin"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/invites": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["invites"], "summary": "List invites",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Invite"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "post": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["invites"], "summary": "Issue an invite",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.InviteResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["invites"], "summary": "Cancel an unused invite",
                "parameters": [{"description": "Invite code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CancelInviteInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Invite"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/login/alumni": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Log in as alumni",
                "parameters": [{"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/login/admin": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Log in as admin",
                "parameters": [{"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/email/send": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["email"], "summary": "Send invite emails",
                "parameters": [{"description": "Campaign", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.EmailRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.EmailReport"}},
                    "207": {"description": "Multi-Status", "schema": {"$ref": "#/definitions/service.EmailReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/service.EmailReport"}}}}
        },
        "/session": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["session"], "summary": "Describe the current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SessionResponse"}}}}
        },
        "/session/refresh": {
            "post": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["session"], "summary": "Reload the session's directory state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SessionResponse"}}}}
        },
        "/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["session"], "summary": "Log out",
                "responses": {"204": {"description": "No Content"}}}
        },
        "/search": {
            "get": {"produces": ["application/json"], "tags": ["search"], "summary": "Search the directory",
                "parameters": [{"type": "string", "description": "Name or course substring", "name": "q", "in": "query"},
                    {"type": "string", "description": "Exact course", "name": "course", "in": "query"},
                    {"type": "string", "description": "Graduation year substring", "name": "year", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Profile"}}}}}
        },
        "/search/suggest": {
            "get": {"produces": ["application/json"], "tags": ["search"], "summary": "Autocomplete suggestions",
                "parameters": [{"type": "string", "description": "Name or course substring", "name": "q", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Profile"}}}}}
        },
        "/search/recent": {
            "get": {"produces": ["application/json"], "tags": ["search"], "summary": "First profiles of the directory",
                "parameters": [{"type": "integer", "default": 6, "description": "How many profiles", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Profile"}}}}}
        }
    },
    "definitions": {
        "errors.ErrorResponse": {"type": "object", "properties": {"code": {"type": "string"}, "error": {"type": "string"}}},
        "model.Profile": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "username": {"type": "string"}, "course": {"type": "string"},
            "graduationYear": {"type": "string"}, "personalDescription": {"type": "string"}, "careerDescription": {"type": "string"},
            "contactLinks": {"type": "array", "items": {"type": "string"}}, "profileImage": {"type": "string"}, "faceImage": {"type": "string"},
            "facePoints": {"type": "string"}, "verified": {"type": "boolean"}, "termsAccepted": {"type": "boolean"},
            "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}},
        "model.Admin": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "username": {"type": "string"}, "role": {"type": "string"},
            "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}},
        "model.Invite": {"type": "object", "properties": {
            "id": {"type": "string"}, "code": {"type": "string"}, "used": {"type": "boolean"}, "createdBy": {"type": "string"},
            "createdAt": {"type": "string"}, "usedAt": {"type": "string"}}},
        "service.SignupInput": {"type": "object", "required": ["inviteCode", "name", "password", "termsAccepted", "username"], "properties": {
            "inviteCode": {"type": "string"}, "username": {"type": "string"}, "password": {"type": "string", "minLength": 6}, "name": {"type": "string"},
            "course": {"type": "string"}, "graduationYear": {"type": "string"}, "personalDescription": {"type": "string"}, "careerDescription": {"type": "string"},
            "contactLinks": {"type": "array", "maxItems": 5, "items": {"type": "string"}}, "profileImage": {"type": "string"}, "faceImage": {"type": "string"},
            "facePoints": {"type": "string"}, "termsAccepted": {"type": "boolean"}}},
        "service.UpdateProfileInput": {"type": "object", "properties": {
            "name": {"type": "string"}, "course": {"type": "string"}, "graduationYear": {"type": "string"}, "personalDescription": {"type": "string"},
            "careerDescription": {"type": "string"}, "contactLinks": {"type": "array", "maxItems": 5, "items": {"type": "string"}},
            "profileImage": {"type": "string"}, "faceImage": {"type": "string"}, "facePoints": {"type": "string"},
            "password": {"type": "string", "minLength": 6}, "verified": {"type": "boolean"}}},
        "service.RegisterAdminInput": {"type": "object", "required": ["name", "password", "username"], "properties": {
            "name": {"type": "string"}, "username": {"type": "string"}, "password": {"type": "string", "minLength": 6}, "role": {"type": "string"}}},
        "service.CancelInviteInput": {"type": "object", "required": ["code"], "properties": {"code": {"type": "string"}}},
        "service.EmailRequest": {"type": "object", "required": ["html", "recipients", "subject"], "properties": {
            "recipients": {"type": "array", "items": {"type": "object", "properties": {"email": {"type": "string"}}}},
            "subject": {"type": "string"}, "html": {"type": "string"}, "text": {"type": "string"}}},
        "service.EmailReport": {"type": "object", "properties": {
            "message": {"type": "string"},
            "details": {"type": "object", "properties": {
                "successfulSends": {"type": "integer"}, "failedSends": {"type": "integer"},
                "errors": {"type": "array", "items": {"type": "object", "properties": {"email": {"type": "string"}, "error": {"type": "string"}}}}}}}},
        "handler.LoginRequest": {"type": "object", "required": ["password", "username"], "properties": {
            "username": {"type": "string"}, "password": {"type": "string"}, "firstLogin": {"type": "boolean"}}},
        "handler.AuthResponse": {"type": "object", "properties": {"token": {"type": "string"}, "session": {"type": "object"}}},
        "handler.InviteResponse": {"type": "object", "properties": {"code": {"type": "string"}, "link": {"type": "string"}}},
        "handler.SessionResponse": {"type": "object", "properties": {
            "session": {"type": "object"}, "courses": {"type": "array", "items": {"type": "string"}},
            "directorySize": {"type": "integer"}, "loadedAt": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
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
	Title:            "Alumni Directory API",
	Description:      "Alumni directory with invite-gated signup, admin moderation and bulk invite email.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
