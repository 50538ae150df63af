// Package docs registers the Swagger document served under /swagger/.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Create an account with 5 starting HelpPoints", "consumes": ["application/json", "multipart/form-data"], "responses": {"201": {"description": "Created"}, "400": {"description": "User already exists"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Exchange email and password for a bearer token", "responses": {"200": {"description": "OK"}, "400": {"description": "Email or password invalid"}, "404": {"description": "User not found"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/update": {"patch": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Update name, email or avatar", "responses": {"200": {"description": "OK"}}}},
        "/posts": {
            "get": {"tags": ["posts"], "summary": "Marketplace; excludes the caller's own posts when signed in", "parameters": [{"name": "category", "in": "query", "type": "string"}, {"name": "type", "in": "query", "type": "string", "enum": ["Offer", "Request"]}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["posts"], "security": [{"BearerAuth": []}], "summary": "Create a skill post", "responses": {"201": {"description": "Created"}}}
        },
        "/posts/my-posts": {"get": {"tags": ["posts"], "security": [{"BearerAuth": []}], "summary": "Posts owned by the caller", "responses": {"200": {"description": "OK"}}}},
        "/posts/{id}": {
            "get": {"tags": ["posts"], "summary": "Post details", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Post not found"}}},
            "delete": {"tags": ["posts"], "security": [{"BearerAuth": []}], "summary": "Delete an own post", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Not the owner"}, "404": {"description": "Post not found"}}}
        },
        "/swaps/request": {"post": {"tags": ["swaps"], "security": [{"BearerAuth": []}], "summary": "Send a swap request against a post", "responses": {"201": {"description": "Created"}, "400": {"description": "Own post"}, "403": {"description": "Insufficient HelpPoints"}, "404": {"description": "Post not found"}}}},
        "/swaps/my-swaps": {"get": {"tags": ["swaps"], "security": [{"BearerAuth": []}], "summary": "Incoming and outgoing swaps, paged", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK"}}}},
        "/swaps/{id}": {"get": {"tags": ["swaps"], "security": [{"BearerAuth": []}], "summary": "Swap details for a participant", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Not a participant"}}}},
        "/swaps/{id}/ledger": {"get": {"tags": ["swaps"], "security": [{"BearerAuth": []}], "summary": "HelpPoints ledger rows for a swap", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/swaps/{id}/status": {"put": {"tags": ["swaps"], "security": [{"BearerAuth": []}], "summary": "Accept (with meeting details) or reject a pending swap", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid status or transition"}, "403": {"description": "Not the owner"}, "404": {"description": "Swap not found"}}}},
        "/swaps/{id}/complete": {"post": {"tags": ["swaps"], "security": [{"BearerAuth": []}], "summary": "Finalize an accepted swap and transfer one HelpPoint", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Swap must be accepted before completion"}, "403": {"description": "Not the receiving party"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "SkillSwap API",
	Description:      "Peer-to-peer skill exchange with HelpPoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
