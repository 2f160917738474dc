// Package swagger holds the OpenAPI document served at /swagger.
//
// The document is maintained by hand and must follow the @Router annotations
// in feature/inventory/handler.go and feature/integrity/handler.go. Running
// `swag init -o docs/swagger` regenerates it from those annotations.
package swagger

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
        "/integrity": {
            "get": {
                "description": "Performs all available integrity checks (Schema, Reference, Archive).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Run All Integrity Checks",
                "responses": {
                    "200": {"description": "Combined Report", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/integrity/archive": {
            "get": {
                "description": "Checks that the snapshot archive bucket exists. Optionally creates it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Snapshot Archive",
                "parameters": [
                    {"type": "boolean", "description": "Create the bucket if missing", "name": "fix", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Archive Report", "schema": {"$ref": "#/definitions/checks.ArchiveReport"}},
                    "404": {"description": "Archive Disabled", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/integrity/reference": {
            "get": {
                "description": "Counts known locations, commodities and linked users.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Reference Data",
                "responses": {
                    "200": {"description": "Reference Report", "schema": {"$ref": "#/definitions/checks.ReferenceReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/integrity/schema": {
            "get": {
                "description": "Checks if the database schema matches the inventory models.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Schema",
                "responses": {
                    "200": {"description": "Schema Report", "schema": {"$ref": "#/definitions/checks.SchemaReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/inventory/{userId}": {
            "get": {
                "description": "Get the user's storages and items as written by the last sync.",
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Get Inventory",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Inventory", "schema": {"$ref": "#/definitions/inventory.InventoryView"}},
                    "400": {"description": "Invalid User ID", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "User Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/inventory/{userId}/sync": {
            "post": {
                "description": "Replace the user's stored inventory with the current FIO snapshot. A 200 response may still carry per-item errors; check success.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Sync Inventory",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Sync Outcome", "schema": {"$ref": "#/definitions/reconcile.Outcome"}},
                    "400": {"description": "Invalid User ID", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "User Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Sync Already Running", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "FIO Account Not Linked", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Sync Aborted", "schema": {"$ref": "#/definitions/inventory.SyncFailure"}}
                }
            }
        }
    },
    "definitions": {
        "checks.ArchiveReport": {
            "type": "object",
            "properties": {
                "bucket": {"type": "string"},
                "exists": {"type": "boolean"},
                "snapshots": {"type": "integer"}
            }
        },
        "checks.ReferenceReport": {
            "type": "object",
            "properties": {
                "commodities": {"type": "integer"},
                "linked_users": {"type": "integer"},
                "locations": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "checks.SchemaReport": {
            "type": "object",
            "properties": {
                "driver": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "matched": {"type": "boolean"},
                "tables": {"type": "object", "additionalProperties": {"$ref": "#/definitions/checks.TableReport"}}
            }
        },
        "checks.TableReport": {
            "type": "object",
            "properties": {
                "missing_columns": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "type_mismatches": {"type": "array", "items": {"type": "string"}}
            }
        },
        "inventory.InventoryView": {
            "type": "object",
            "properties": {
                "handle": {"type": "string"},
                "sourceAt": {"type": "string"},
                "storages": {"type": "array", "items": {"$ref": "#/definitions/inventory.StorageView"}},
                "syncedAt": {"type": "string"},
                "userId": {"type": "integer"}
            }
        },
        "inventory.ItemView": {
            "type": "object",
            "properties": {
                "quantity": {"type": "integer"},
                "ticker": {"type": "string"}
            }
        },
        "inventory.StorageView": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/inventory.ItemView"}},
                "kind": {"type": "string"},
                "locationId": {"type": "string"},
                "sourceUpdatedAt": {"type": "string"},
                "storageKey": {"type": "string"},
                "syncedAt": {"type": "string"}
            }
        },
        "inventory.SyncFailure": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "outcome": {"$ref": "#/definitions/reconcile.Outcome"}
            }
        },
        "reconcile.Outcome": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"type": "string"}},
                "inserted": {"type": "integer"},
                "lastSourceTimestamp": {"type": "string"},
                "skippedExcludedLocations": {"type": "integer"},
                "skippedUnknownCommodities": {"type": "integer"},
                "skippedUnknownLocations": {"type": "integer"},
                "storageLocations": {"type": "integer"},
                "success": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Kawa Inventory API",
	Description:      "API for syncing and reading community members' FIO inventory.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
