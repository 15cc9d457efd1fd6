package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Planner API",
        "description": "Lecturer choices and activity retrieval over a stored course catalog",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Campuses, courses and catalog import"},
        {"name": "Planner", "description": "Lecturer choices and activity retrieval"},
        {"name": "Exports", "description": "Rendered timetables"},
        {"name": "System", "description": "Counters"}
    ],
    "paths": {
        "/campuses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List campuses",
                "parameters": [
                    {"name": "language", "in": "query", "type": "string", "enum": ["en", "he"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List courses offered on a campus",
                "parameters": [
                    {"name": "campus", "in": "query", "type": "string"},
                    {"name": "language", "in": "query", "type": "string", "enum": ["en", "he"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown campus", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/activities": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List every activity of the named courses with meetings",
                "parameters": [
                    {"name": "campus", "in": "query", "type": "string"},
                    {"name": "language", "in": "query", "type": "string", "enum": ["en", "he"]},
                    {"name": "course", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown campus or course", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/semesters": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List stored semesters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/personal-activities": {
            "get": {
                "tags": ["Personal"],
                "summary": "List personal activities",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Personal"],
                "summary": "Store personal activities",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PersonalActivitiesRequest"}}
                ],
                "responses": {
                    "201": {"description": "Stored", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/personal-activities/{id}": {
            "delete": {
                "tags": ["Personal"],
                "summary": "Delete a personal activity",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Unknown personal activity", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/catalog": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List every stored course of a language",
                "parameters": [
                    {"name": "language", "in": "query", "type": "string", "enum": ["en", "he"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/import": {
            "post": {
                "tags": ["Catalog"],
                "summary": "Import a campus catalog",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CatalogImportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Imported", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid catalog", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/course-choices": {
            "get": {
                "tags": ["Planner"],
                "summary": "Lecturer choices per course",
                "parameters": [
                    {"name": "campus", "in": "query", "type": "string"},
                    {"name": "language", "in": "query", "type": "string", "enum": ["en", "he"]},
                    {"name": "course", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}
                ],
                "responses": {
                    "200": {"description": "Course name to CourseChoice", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown campus or course", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activities/search": {
            "post": {
                "tags": ["Planner"],
                "summary": "Retrieve activities for lecturer choices",
                "description": "Empty lecturer lists accept any lecturer of that kind group.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ActivitySearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid choices", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown campus", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export a timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Stored, with a signed download URL", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download an exported timetable",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Timetable file"},
                    "404": {"description": "Invalid or expired link", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["System"],
                "summary": "Planner counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ChoicePayload": {
            "type": "object",
            "properties": {
                "course_name": {"type": "string"},
                "lecture_lecturers": {"type": "array", "items": {"type": "string"}},
                "practice_lecturers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ActivitySearchRequest": {
            "type": "object",
            "properties": {
                "campus": {"type": "string"},
                "language": {"type": "string"},
                "choices": {"type": "object", "additionalProperties": {"$ref": "#/definitions/ChoicePayload"}}
            }
        },
        "ExportRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "campus": {"type": "string"},
                "language": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "title": {"type": "string"},
                "choices": {"type": "object", "additionalProperties": {"$ref": "#/definitions/ChoicePayload"}},
                "include_personal": {"type": "boolean"}
            }
        },
        "PersonalActivityPayload": {
            "type": "object",
            "required": ["name", "meetings"],
            "properties": {
                "name": {"type": "string"},
                "meetings": {"type": "array", "items": {"$ref": "#/definitions/MeetingPayload"}}
            }
        },
        "PersonalActivitiesRequest": {
            "type": "object",
            "required": ["activities"],
            "properties": {
                "activities": {"type": "array", "items": {"$ref": "#/definitions/PersonalActivityPayload"}}
            }
        },
        "MeetingPayload": {
            "type": "object",
            "properties": {
                "day": {"type": "integer", "minimum": 1, "maximum": 7},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "11:00"}
            }
        },
        "ActivityPayload": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "kind": {"type": "string", "enum": ["LECTURE", "SEMINAR", "PRACTICE", "LAB", "OTHER"]},
                "attendance_required": {"type": "boolean"},
                "lecturer_name": {"type": "string"},
                "course_number": {"type": "integer"},
                "parent_course_number": {"type": "integer"},
                "location": {"type": "string"},
                "activity_id": {"type": "string"},
                "description": {"type": "string"},
                "current_capacity": {"type": "integer"},
                "max_capacity": {"type": "integer"},
                "actual_course_number": {"type": "integer"},
                "meetings": {"type": "array", "items": {"$ref": "#/definitions/MeetingPayload"}}
            }
        },
        "CatalogImportRequest": {
            "type": "object",
            "required": ["campus", "language"],
            "properties": {
                "campus": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "integer"},
                        "english_name": {"type": "string"},
                        "hebrew_name": {"type": "string"}
                    }
                },
                "language": {"type": "string"},
                "semesters": {"type": "array", "items": {"type": "string"}},
                "courses": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "name": {"type": "string"},
                            "course_number": {"type": "integer"},
                            "parent_course_number": {"type": "integer"},
                            "semesters": {"type": "array", "items": {"type": "string"}}
                        }
                    }
                },
                "activities": {"type": "array", "items": {"$ref": "#/definitions/ActivityPayload"}}
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
