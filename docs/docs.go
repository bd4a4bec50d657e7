// Package docs : OpenAPI-описание API для swagger UI.
// Совпадает с аннотациями обработчиков в internal/handler, swag init перезаписывает его целиком
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
        "/access-requests/confirm/{token}": {
            "get": {
                "description": "Переход по ссылке из письма. Повторный переход возвращает 409.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "AccessRequests"
                ],
                "summary": "Подтверждение email отправителя заявки",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Токен из письма",
                        "name": "token",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ConfirmEmailResponse"
                        }
                    },
                    "404": {
                        "description": "Ссылка недействительна или устарела",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email уже подтверждён",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/access-requests": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "AccessRequests"
                ],
                "summary": "Заявки, адресованные текущему пользователю",
                "parameters": [
                    {
                        "type": "string",
                        "default": "Bearer <access_token>",
                        "description": "Bearer токен",
                        "name": "Authorization",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ListAccessRequestsResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/access-requests/{id}": {
            "get": {
                "description": "Доступна только получателю заявки.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "AccessRequests"
                ],
                "summary": "Заявка по ID",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID заявки",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "default": "Bearer <access_token>",
                        "description": "Bearer токен",
                        "name": "Authorization",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.AccessRequestResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/access-requests/{id}/accept": {
            "post": {
                "description": "Переводит заявку в accepted, создаёт секретную ссылку и отправляет её автору заявки.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "AccessRequests"
                ],
                "summary": "Принять заявку",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID заявки",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Сообщение и срок действия ссылки",
                        "name": "body",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/requestresponse.DecisionRequest"
                        }
                    },
                    {
                        "type": "string",
                        "default": "Bearer <access_token>",
                        "description": "Bearer токен",
                        "name": "Authorization",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.AccessRequestResponse"
                        }
                    },
                    "400": {
                        "description": "Заявка не в состоянии pending",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/access-requests/{id}/reject": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "AccessRequests"
                ],
                "summary": "Отклонить заявку",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID заявки",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Сообщение автору заявки",
                        "name": "body",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/requestresponse.DecisionRequest"
                        }
                    },
                    {
                        "type": "string",
                        "default": "Bearer <access_token>",
                        "description": "Bearer токен",
                        "name": "Authorization",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.AccessRequestResponse"
                        }
                    },
                    "400": {
                        "description": "Заявка не в состоянии pending",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/links": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "SecretLinks"
                ],
                "summary": "Секретные ссылки текущего пользователя",
                "parameters": [
                    {
                        "type": "string",
                        "default": "Bearer <access_token>",
                        "description": "Bearer токен",
                        "name": "Authorization",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ListSecretLinksResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "SecretLinks"
                ],
                "summary": "Создать секретную ссылку на свою запись",
                "parameters": [
                    {
                        "description": "Тело запроса",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/requestresponse.CreateSecretLinkRequest"
                        }
                    },
                    {
                        "type": "string",
                        "default": "Bearer <access_token>",
                        "description": "Bearer токен",
                        "name": "Authorization",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.SecretLinkResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Запись принадлежит другому пользователю",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/links/{id}": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "SecretLinks"
                ],
                "summary": "Отозвать секретную ссылку",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID ссылки",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "default": "Bearer <access_token>",
                        "description": "Bearer токен",
                        "name": "Authorization",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.RevokeResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/records/{recid}/access-requests": {
            "post": {
                "description": "Создаёт заявку. Анонимному отправителю или отправителю с неподтверждённым email\nприходит письмо с ссылкой подтверждения, иначе заявка сразу уходит владельцу.\nДля вошедшего пользователя используется email аккаунта, поле email игнорируется.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "AccessRequests"
                ],
                "summary": "Запрос доступа к закрытой записи",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID записи",
                        "name": "recid",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Тело запроса",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/requestresponse.CreateAccessRequestRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.AccessRequestResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/records/{recid}/files/{key}": {
            "get": {
                "tags": [
                    "Records"
                ],
                "summary": "Скачать файл записи",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID записи",
                        "name": "recid",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Имя файла",
                        "name": "key",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Токен секретной ссылки",
                        "name": "token",
                        "in": "query"
                    }
                ],
                "responses": {
                    "302": {
                        "description": "Редирект на файл"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/requestresponse.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "requestresponse.AccessRequestResponse": {
            "type": "object",
            "properties": {
                "created": {
                    "type": "string",
                    "example": "2025-08-23T12:34:56Z"
                },
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "justification": {
                    "type": "string",
                    "example": "please"
                },
                "link_id": {
                    "type": "integer",
                    "example": 1
                },
                "message": {
                    "type": "string",
                    "example": "ok"
                },
                "modified": {
                    "type": "string",
                    "example": "2025-08-23T12:34:56Z"
                },
                "recid": {
                    "type": "integer",
                    "example": 1
                },
                "sender_email": {
                    "type": "string",
                    "example": "jane@example.org"
                },
                "sender_full_name": {
                    "type": "string",
                    "example": "Jane Doe"
                },
                "status": {
                    "type": "string",
                    "example": "pending"
                }
            }
        },
        "requestresponse.ConfirmEmailResponse": {
            "type": "object",
            "properties": {
                "response": {
                    "type": "object",
                    "properties": {
                        "message": {
                            "type": "string",
                            "example": "email подтверждён"
                        },
                        "status": {
                            "type": "string",
                            "example": "pending"
                        }
                    }
                }
            }
        },
        "requestresponse.CreateAccessRequestRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "example": "jane@example.org"
                },
                "full_name": {
                    "type": "string",
                    "example": "Jane Doe"
                },
                "justification": {
                    "type": "string",
                    "example": "please"
                }
            }
        },
        "requestresponse.CreateSecretLinkRequest": {
            "type": "object",
            "properties": {
                "description": {
                    "type": "string",
                    "example": ""
                },
                "expires_at": {
                    "type": "string",
                    "example": "2025-08-23T00:00:00Z"
                },
                "recid": {
                    "type": "integer",
                    "example": 1
                },
                "title": {
                    "type": "string",
                    "example": "Для рецензента"
                }
            }
        },
        "requestresponse.DecisionRequest": {
            "type": "object",
            "properties": {
                "expires_at": {
                    "type": "string",
                    "example": "2025-08-23T00:00:00Z"
                },
                "message": {
                    "type": "string",
                    "example": "ok"
                }
            }
        },
        "requestresponse.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer",
                    "example": 400
                },
                "text": {
                    "type": "string",
                    "example": "описание ошибки"
                }
            }
        },
        "requestresponse.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "$ref": "#/definitions/requestresponse.ErrorDetail"
                }
            }
        },
        "requestresponse.ListAccessRequestsResponse": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer",
                    "example": 10
                },
                "data": {
                    "type": "object",
                    "properties": {
                        "requests": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/requestresponse.AccessRequestResponse"
                            }
                        }
                    }
                }
            }
        },
        "requestresponse.ListSecretLinksResponse": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer",
                    "example": 10
                },
                "data": {
                    "type": "object",
                    "properties": {
                        "links": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/requestresponse.SecretLinkResponse"
                            }
                        }
                    }
                }
            }
        },
        "requestresponse.RevokeResponse": {
            "type": "object",
            "properties": {
                "response": {
                    "type": "object",
                    "properties": {
                        "revoked": {
                            "type": "boolean",
                            "example": true
                        }
                    }
                }
            }
        },
        "requestresponse.SecretLinkResponse": {
            "type": "object",
            "properties": {
                "created": {
                    "type": "string",
                    "example": "2025-08-23T12:34:56Z"
                },
                "description": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string",
                    "example": "2025-09-23T12:34:56Z"
                },
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "revoked_at": {
                    "type": "string"
                },
                "title": {
                    "type": "string",
                    "example": "Doc"
                },
                "url": {
                    "type": "string",
                    "example": "https://zenodo.example/records/1?token=..."
                },
                "valid": {
                    "type": "boolean",
                    "example": true
                }
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Access-request-server",
	Description:      "REST API заявок на доступ к закрытым записям и секретных ссылок",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
