package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Community Hub API",
        "description": "Member directory, feed discovery, mention autocomplete and exports.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Directory",
            "description": "Filtered and sorted member and feed listings"
        },
        {
            "name": "Members",
            "description": "Member registration"
        },
        {
            "name": "Feed",
            "description": "Post publishing"
        },
        {
            "name": "Mentions",
            "description": "@mention autocomplete"
        },
        {
            "name": "Exports",
            "description": "Asynchronous CSV and PDF exports"
        },
        {
            "name": "Observability",
            "description": "Health and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Readiness check against Postgres and Redis",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "A dependency is unreachable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Aggregated request, cache and discovery counters",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/members": {
            "get": {
                "tags": [
                    "Directory"
                ],
                "summary": "List community members",
                "parameters": [
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Case-insensitive substring search"
                    },
                    {
                        "name": "role",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "all, mentor, student (alias learner) or both"
                    },
                    {
                        "name": "skill",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Exact skill, case-insensitive"
                    },
                    {
                        "name": "rating",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "all, 1+, 2+, 3+ or 4+"
                    },
                    {
                        "name": "availability",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "all, available, busy or offline"
                    },
                    {
                        "name": "sort",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "recent, most-liked, most-commented, rating, name or joined-date"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page number"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page size"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Members"
                ],
                "summary": "Register a member",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateMemberRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Username taken",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/members/skills": {
            "get": {
                "tags": [
                    "Directory"
                ],
                "summary": "Distinct member skills",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/feed": {
            "get": {
                "tags": [
                    "Directory"
                ],
                "summary": "List feed posts",
                "parameters": [
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Case-insensitive substring search"
                    },
                    {
                        "name": "role",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "all, mentor, student (alias learner) or both"
                    },
                    {
                        "name": "skill",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Exact skill, case-insensitive"
                    },
                    {
                        "name": "rating",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "all, 1+, 2+, 3+ or 4+"
                    },
                    {
                        "name": "availability",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "all, available, busy or offline"
                    },
                    {
                        "name": "sort",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "recent, most-liked, most-commented, rating, name or joined-date"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page number"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page size"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/posts": {
            "post": {
                "tags": [
                    "Feed"
                ],
                "summary": "Publish a post",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreatePostRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Author not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/mentions/suggest": {
            "get": {
                "tags": [
                    "Mentions"
                ],
                "summary": "Suggest members to mention",
                "parameters": [
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Typed query without the @"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Maximum suggestions"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/mentions/lookup": {
            "post": {
                "tags": [
                    "Mentions"
                ],
                "summary": "Resolve the mention at the caret",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/MentionLookupRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/mentions/apply": {
            "post": {
                "tags": [
                    "Mentions"
                ],
                "summary": "Insert a chosen mention",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/MentionApplyRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/exports": {
            "post": {
                "tags": [
                    "Exports"
                ],
                "summary": "Queue an export",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ExportRequest"
                        }
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "503": {
                        "description": "Exports disabled",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/exports/{id}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Export job status",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown job",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/exports/download/{token}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Download a finished export",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "token",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File stream",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Invalid token",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Export not finished",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "410": {
                        "description": "Link expired",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "Selection": {
            "type": "object",
            "properties": {
                "sortBy": {
                    "type": "string"
                },
                "roleFilter": {
                    "type": "string"
                },
                "skillFilter": {
                    "type": "string"
                },
                "ratingFilter": {
                    "type": "string"
                },
                "availabilityFilter": {
                    "type": "string"
                },
                "searchQuery": {
                    "type": "string"
                }
            }
        },
        "CreateMemberRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "enum": [
                        "learner",
                        "mentor",
                        "admin"
                    ]
                },
                "skills": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "rating": {
                    "type": "number"
                },
                "availability": {
                    "type": "string",
                    "enum": [
                        "available",
                        "busy",
                        "offline"
                    ]
                },
                "is_online": {
                    "type": "boolean"
                }
            },
            "required": [
                "name",
                "username",
                "email",
                "role"
            ]
        },
        "CreatePostRequest": {
            "type": "object",
            "properties": {
                "author_id": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                }
            },
            "required": [
                "author_id",
                "content"
            ]
        },
        "MentionToken": {
            "type": "object",
            "properties": {
                "start": {
                    "type": "integer"
                },
                "end": {
                    "type": "integer"
                },
                "query": {
                    "type": "string"
                }
            }
        },
        "FontMetrics": {
            "type": "object",
            "properties": {
                "char_width": {
                    "type": "number"
                },
                "line_height": {
                    "type": "number"
                },
                "wrap_columns": {
                    "type": "integer"
                },
                "padding_left": {
                    "type": "number"
                },
                "padding_top": {
                    "type": "number"
                }
            }
        },
        "MentionLookupRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                },
                "caret": {
                    "type": "integer"
                },
                "metrics": {
                    "$ref": "#/definitions/FontMetrics"
                },
                "limit": {
                    "type": "integer"
                }
            }
        },
        "MentionApplyRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                },
                "token": {
                    "$ref": "#/definitions/MentionToken"
                },
                "username": {
                    "type": "string"
                }
            },
            "required": [
                "username"
            ]
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "scope": {
                    "type": "string",
                    "enum": [
                        "members",
                        "feed"
                    ]
                },
                "format": {
                    "type": "string",
                    "enum": [
                        "csv",
                        "pdf"
                    ]
                },
                "selection": {
                    "$ref": "#/definitions/Selection"
                }
            },
            "required": [
                "scope",
                "format"
            ]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
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
