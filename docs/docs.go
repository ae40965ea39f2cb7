// Package docs holds the OpenAPI description of the HTTP API. It mirrors
// the godoc annotations on the controllers and is regenerated with
// `swag init -g cmd/server/main.go`.
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
        "/api/business/transaction/add": {
            "post": {
                "summary": "Record transactions",
                "description": "Records one transaction or a batch of them. A batch is applied atomically.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transaction"
                ],
                "parameters": [
                    {
                        "description": "Transaction or array of transactions",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.AddTransactionRequestBody"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/controllers.AddTransactionResponseBody"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/business/transaction/delete/{id}": {
            "delete": {
                "summary": "Delete a transaction",
                "description": "Deletes a transaction, and both legs of a transfer",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transaction"
                ],
                "parameters": [
                    {
                        "description": "Transaction id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.DeleteResult"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/business/transaction/detail/{id}": {
            "get": {
                "summary": "Retrieve a transaction",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transaction"
                ],
                "parameters": [
                    {
                        "description": "Transaction id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Transaction"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/business/transaction/edit/{id}": {
            "put": {
                "summary": "Edit a transaction",
                "description": "Changes the given fields of a transaction and updates every affected balance",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transaction"
                ],
                "parameters": [
                    {
                        "description": "Transaction id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "description": "Fields to change",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.EditTransactionRequestBody"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Transaction"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/business/transaction/list": {
            "get": {
                "summary": "List transactions",
                "description": "Returns transactions newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transaction"
                ],
                "parameters": [
                    {
                        "description": "Account id",
                        "name": "account_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Category id, subcategories included",
                        "name": "category_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "income, expense or transfer",
                        "name": "transaction_type",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "pending, completed or cancelled",
                        "name": "status",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Earliest transaction date",
                        "name": "start_time",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Latest transaction date",
                        "name": "end_time",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Minimum absolute amount",
                        "name": "min_amount",
                        "in": "query",
                        "type": "number"
                    },
                    {
                        "description": "Maximum absolute amount",
                        "name": "max_amount",
                        "in": "query",
                        "type": "number"
                    },
                    {
                        "description": "Only transfers, or no transfers",
                        "name": "is_transfer",
                        "in": "query",
                        "type": "boolean"
                    },
                    {
                        "description": "Page, starting at 1",
                        "name": "page",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Page size",
                        "name": "page_size",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.TransactionPage"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/business/transaction/related/{id}": {
            "get": {
                "summary": "Retrieve the other leg of a transfer",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transaction"
                ],
                "parameters": [
                    {
                        "description": "Transaction id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.Transaction"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/business/transaction/status/{id}": {
            "patch": {
                "summary": "Change the status of a transaction",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transaction"
                ],
                "parameters": [
                    {
                        "description": "Transaction id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "description": "New status",
                        "name": "status",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.SetStatusRequestBody"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Transaction"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/accountTypes/add": {
            "post": {
                "summary": "Create an account type",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "parameters": [
                    {
                        "description": "Account type",
                        "name": "type",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.AccountTypeRequestBody"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.AccountType"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/accountTypes/delete/{id}": {
            "delete": {
                "summary": "Delete an unused account type",
                "tags": [
                    "Account"
                ],
                "parameters": [
                    {
                        "description": "Account type id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/accountTypes/list": {
            "get": {
                "summary": "List account types",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.AccountType"
                            }
                        }
                    }
                }
            }
        },
        "/api/setting/accounts/add": {
            "post": {
                "summary": "Open an account",
                "description": "Creates an account with a zero balance",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "parameters": [
                    {
                        "description": "Account",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.AccountRequestBody"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Account"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/accounts/delete/{id}": {
            "delete": {
                "summary": "Delete an unused account",
                "tags": [
                    "Account"
                ],
                "parameters": [
                    {
                        "description": "Account id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/accounts/detail/{id}": {
            "get": {
                "summary": "Retrieve an account",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "parameters": [
                    {
                        "description": "Account id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Account"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/accounts/edit/{id}": {
            "put": {
                "summary": "Edit an account",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "parameters": [
                    {
                        "description": "Account id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "description": "Fields to change",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.AccountRequestBody"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Account"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/accounts/list": {
            "get": {
                "summary": "List accounts",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "parameters": [
                    {
                        "description": "Matches name or number",
                        "name": "keyword",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Account type",
                        "name": "type_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Active flag",
                        "name": "is_active",
                        "in": "query",
                        "type": "boolean"
                    },
                    {
                        "description": "account_name, balance, opening_date, created_at or updated_at",
                        "name": "sort_field",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Descending order",
                        "name": "sort_desc",
                        "in": "query",
                        "type": "boolean"
                    },
                    {
                        "description": "Page, starting at 1",
                        "name": "page",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Page size",
                        "name": "page_size",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.AccountPage"
                        }
                    }
                }
            }
        },
        "/api/setting/accounts/recompute/{id}": {
            "post": {
                "summary": "Repair the balance chain of an account",
                "description": "Rewrites every snapshot and the balance from a replay. Returns the state found before the repair.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "parameters": [
                    {
                        "description": "Account id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.ChainReport"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/accounts/verify/{id}": {
            "get": {
                "summary": "Verify the balance chain of an account",
                "description": "Replays the amounts of an account and reports every snapshot that disagrees",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "parameters": [
                    {
                        "description": "Account id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.ChainReport"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/category/add": {
            "post": {
                "summary": "Create a category",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Category"
                ],
                "parameters": [
                    {
                        "description": "Category",
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.CategoryRequestBody"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Category"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/category/delete/{id}": {
            "delete": {
                "summary": "Delete an unused category",
                "tags": [
                    "Category"
                ],
                "parameters": [
                    {
                        "description": "Category id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/category/detail/{id}": {
            "get": {
                "summary": "Retrieve a category",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Category"
                ],
                "parameters": [
                    {
                        "description": "Category id",
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Category"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/setting/category/list": {
            "get": {
                "summary": "List categories as a tree",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Category"
                ],
                "parameters": [
                    {
                        "description": "income or expense",
                        "name": "type",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/service.CategoryNode"
                            }
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Check system health",
                "description": "Pings the database",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/controllers.HealthResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/responses.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "controllers.AccountRequestBody": {
            "type": "object",
            "properties": {
                "account_name": {
                    "type": "string"
                },
                "account_number": {
                    "type": "string"
                },
                "type_id": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "institution": {
                    "type": "string"
                },
                "credit_limit": {
                    "type": "string",
                    "example": "0"
                },
                "is_active": {
                    "type": "boolean"
                },
                "opening_date": {
                    "type": "string"
                },
                "sort_order": {
                    "type": "integer"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "controllers.AccountTypeRequestBody": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "is_digital": {
                    "type": "boolean"
                },
                "can_overdraft": {
                    "type": "boolean"
                },
                "remark": {
                    "type": "string"
                }
            }
        },
        "controllers.AddTransactionRequestBody": {
            "type": "object",
            "properties": {
                "account_id": {
                    "type": "integer"
                },
                "related_account_id": {
                    "type": "integer"
                },
                "category_id": {
                    "type": "integer"
                },
                "amount": {
                    "type": "string",
                    "example": "0"
                },
                "transaction_type": {
                    "type": "string"
                },
                "transaction_date": {
                    "type": "string"
                },
                "payee": {
                    "type": "string"
                },
                "payer": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "attachment": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "controllers.AddTransactionResponseBody": {
            "type": "object",
            "properties": {
                "transactions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/service.CreatedTransaction"
                    }
                }
            }
        },
        "controllers.CategoryRequestBody": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "parent_id": {
                    "type": "integer"
                },
                "icon": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "in_statistics": {
                    "type": "boolean"
                }
            }
        },
        "controllers.EditTransactionRequestBody": {
            "type": "object",
            "properties": {
                "account_id": {
                    "type": "integer"
                },
                "related_account_id": {
                    "type": "integer"
                },
                "category_id": {
                    "type": "integer"
                },
                "amount": {
                    "type": "string",
                    "example": "0"
                },
                "transaction_type": {
                    "type": "string"
                },
                "transaction_date": {
                    "type": "string"
                },
                "payee": {
                    "type": "string"
                },
                "payer": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "attachment": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "controllers.HealthResponse": {
            "type": "object",
            "properties": {
                "result": {
                    "type": "string"
                }
            }
        },
        "controllers.SetStatusRequestBody": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            }
        },
        "models.Account": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "account_name": {
                    "type": "string"
                },
                "account_number": {
                    "type": "string"
                },
                "type_id": {
                    "type": "integer"
                },
                "account_type": {
                    "$ref": "#/definitions/models.AccountType"
                },
                "currency": {
                    "type": "string"
                },
                "institution": {
                    "type": "string"
                },
                "balance": {
                    "type": "string",
                    "example": "0"
                },
                "credit_limit": {
                    "type": "string",
                    "example": "0"
                },
                "is_active": {
                    "type": "boolean"
                },
                "opening_date": {
                    "type": "string"
                },
                "sort_order": {
                    "type": "integer"
                },
                "description": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "models.AccountType": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "is_digital": {
                    "type": "boolean"
                },
                "can_overdraft": {
                    "type": "boolean"
                },
                "remark": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "models.Category": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "parent_id": {
                    "type": "integer"
                },
                "icon": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "is_active": {
                    "type": "boolean"
                },
                "in_statistics": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "models.Transaction": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "transaction_no": {
                    "type": "string"
                },
                "account_id": {
                    "type": "integer"
                },
                "related_account_id": {
                    "type": "integer"
                },
                "category_id": {
                    "type": "integer"
                },
                "amount": {
                    "type": "string",
                    "example": "0"
                },
                "transaction_type": {
                    "type": "string"
                },
                "transaction_date": {
                    "type": "string"
                },
                "balance_after": {
                    "type": "string",
                    "example": "0"
                },
                "payee": {
                    "type": "string"
                },
                "payer": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "attachment": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "is_transfer": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "responses.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "boolean"
                },
                "code": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "field": {
                    "type": "string"
                }
            }
        },
        "service.AccountPage": {
            "type": "object",
            "properties": {
                "list": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Account"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                }
            }
        },
        "service.CategoryNode": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "parent_id": {
                    "type": "integer"
                },
                "icon": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "is_active": {
                    "type": "boolean"
                },
                "in_statistics": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "children": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Category"
                    }
                }
            }
        },
        "service.ChainReport": {
            "type": "object",
            "properties": {
                "account_id": {
                    "type": "integer"
                },
                "rows": {
                    "type": "integer"
                },
                "stored_balance": {
                    "type": "string",
                    "example": "0"
                },
                "expected_balance": {
                    "type": "string",
                    "example": "0"
                },
                "mismatches": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/service.SnapshotMismatch"
                    }
                }
            }
        },
        "service.CreatedTransaction": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "transaction_no": {
                    "type": "string"
                },
                "account_id": {
                    "type": "integer"
                },
                "amount": {
                    "type": "string",
                    "example": "0"
                },
                "transaction_type": {
                    "type": "string"
                },
                "balance_after": {
                    "type": "string",
                    "example": "0"
                },
                "related_transaction_id": {
                    "type": "integer"
                }
            }
        },
        "service.DeleteResult": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "related_id": {
                    "type": "integer"
                },
                "cascaded": {
                    "type": "boolean"
                }
            }
        },
        "service.SnapshotMismatch": {
            "type": "object",
            "properties": {
                "transaction_id": {
                    "type": "integer"
                },
                "stored": {
                    "type": "string",
                    "example": "0"
                },
                "expected": {
                    "type": "string",
                    "example": "0"
                }
            }
        },
        "service.TransactionPage": {
            "type": "object",
            "properties": {
                "list": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Transaction"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "LedgerHub",
	Description:      "Household ledger with running balances per account.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
