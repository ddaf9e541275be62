package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Automatic Timetable API",
        "description": "Greedy timetable generation for vocational course schedules",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Timetable", "description": "Generation and schedule queries"},
        {"name": "Teachers", "description": "Teacher catalog"},
        {"name": "Rooms", "description": "Room catalog"},
        {"name": "Subjects", "description": "Subject catalog"},
        {"name": "Timeslots", "description": "Weekly period grid"},
        {"name": "StudentGroups", "description": "Student group catalog"},
        {"name": "Constraints", "description": "Scheduling rules"},
        {"name": "Import", "description": "CSV catalog import"},
        {"name": "Dashboard", "description": "Aggregated totals"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate with username and password",
                "responses": {
                    "200": {"description": "Token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/admin/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate the weekly timetable",
                "responses": {
                    "200": {"description": "Generation report"},
                    "409": {"description": "Generation already in progress"}
                }
            }
        },
        "/schedule": {
            "get": {
                "tags": ["Timetable"],
                "summary": "List persisted schedule entries",
                "responses": {
                    "200": {"description": "Schedule entries"}
                }
            }
        },
        "/schedule/export": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Export the schedule as CSV or PDF",
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Catalog totals and the latest generation report",
                "responses": {
                    "200": {"description": "Dashboard summary"}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
