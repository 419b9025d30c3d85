// Package docs registers the launchpad OpenAPI document with swag.
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
        "/launches": {
            "get": {
                "description": "Launch IDs split into active and completed, optionally sorted",
                "produces": ["application/json"],
                "tags": ["launches"],
                "summary": "List launches",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "X-Session-Id", "in": "header", "required": true},
                    {"type": "string", "description": "Sort field ('id', 'state', 'vehicle', 'createdat')", "name": "sort", "in": "query"},
                    {"type": "string", "description": "Sort order ('asc' or 'desc')", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Launch IDs", "schema": {"$ref": "#/definitions/models.LaunchList"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Validate the vehicle, payload and parameters and create a launch in READY_TO_LAUNCH",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["launches"],
                "summary": "Create a launch",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "X-Session-Id", "in": "header", "required": true},
                    {"description": "Launch to create", "name": "launch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateLaunchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Launch created", "schema": {"$ref": "#/definitions/api.CreateLaunchResponse"}},
                    "400": {"description": "Bad input", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "403": {"description": "Mission not accessible", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/launches/{id}": {
            "get": {
                "description": "Launch details including the mission snapshot, crew and payload orbit",
                "produces": ["application/json"],
                "tags": ["launches"],
                "summary": "Get launch by ID",
                "parameters": [
                    {"type": "integer", "description": "Launch ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Launch details", "schema": {"$ref": "#/definitions/models.LaunchView"}},
                    "400": {"description": "Unknown launch", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/launches/{id}/status": {
            "put": {
                "description": "Issue a state machine action; an illegal action or a fault is reported as bad input",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["launches"],
                "summary": "Update launch status",
                "parameters": [
                    {"type": "integer", "description": "Launch ID", "name": "id", "in": "path", "required": true},
                    {"description": "Action to apply", "name": "action", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.StatusRequest"}}
                ],
                "responses": {
                    "204": {"description": "Action applied"},
                    "400": {"description": "Illegal action or fault", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/launches/{id}/astronauts/{astronautId}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["crew"],
                "summary": "Allocate astronaut",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "X-Session-Id", "in": "header", "required": true},
                    {"type": "integer", "description": "Launch ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Astronaut ID", "name": "astronautId", "in": "path", "required": true},
                    {"description": "Mission the launch belongs to", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.AllocateRequest"}}
                ],
                "responses": {
                    "204": {"description": "Astronaut allocated"},
                    "400": {"description": "Bad input", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "403": {"description": "Mission not accessible", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["crew"],
                "summary": "Deallocate astronaut",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "X-Session-Id", "in": "header", "required": true},
                    {"type": "integer", "description": "Launch ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Astronaut ID", "name": "astronautId", "in": "path", "required": true},
                    {"type": "integer", "description": "Mission the launch belongs to", "name": "missionId", "in": "query", "required": true}
                ],
                "responses": {
                    "204": {"description": "Astronaut deallocated"},
                    "400": {"description": "Bad input", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "403": {"description": "Mission not accessible", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/clear": {
            "delete": {
                "description": "Cancel every pending timer and delete every launch",
                "tags": ["system"],
                "summary": "Reset launch control",
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns 200 OK when the service is healthy",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Service status", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "api.AllocateRequest": {
            "type": "object",
            "properties": {"missionId": {"type": "integer"}}
        },
        "api.CreateLaunchRequest": {
            "type": "object",
            "properties": {
                "missionId": {"type": "integer"},
                "launchVehicleId": {"type": "integer"},
                "payload": {"$ref": "#/definitions/api.PayloadRequest"},
                "launchCalculationParameters": {"$ref": "#/definitions/models.CalculationParameters"}
            }
        },
        "api.CreateLaunchResponse": {
            "type": "object",
            "properties": {"launchId": {"type": "integer"}}
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "kind": {"type": "string"}}
        },
        "api.PayloadRequest": {
            "type": "object",
            "properties": {"description": {"type": "string"}, "weight": {"type": "number"}}
        },
        "api.StatusRequest": {
            "type": "object",
            "properties": {
                "action": {
                    "type": "string",
                    "enum": ["LIFTOFF", "CORRECTION", "FIRE_THRUSTERS", "DEPLOY_PAYLOAD", "GO_HOME", "RETURN", "FAULT", "SKIP_WAITING"]
                }
            }
        },
        "models.AstronautSummary": {
            "type": "object",
            "properties": {"astronautId": {"type": "integer"}, "designation": {"type": "string"}}
        },
        "models.CalculationParameters": {
            "type": "object",
            "properties": {
                "targetDistance": {"type": "number"},
                "thrustFuel": {"type": "number"},
                "fuelBurnRate": {"type": "number"},
                "activeGravityForce": {"type": "number"},
                "maneuveringDelay": {"type": "number"}
            }
        },
        "models.LaunchList": {
            "type": "object",
            "properties": {
                "activeLaunches": {"type": "array", "items": {"type": "integer"}},
                "completedLaunches": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "models.LaunchView": {
            "type": "object",
            "properties": {
                "launchId": {"type": "integer"},
                "missionCopy": {"$ref": "#/definitions/models.MissionSummary"},
                "timeCreated": {"type": "string"},
                "state": {"type": "string"},
                "launchVehicle": {"$ref": "#/definitions/models.VehicleSummary"},
                "payload": {"$ref": "#/definitions/models.PayloadSummary"},
                "allocatedAstronauts": {"type": "array", "items": {"$ref": "#/definitions/models.AstronautSummary"}},
                "launchCalculationParameters": {"$ref": "#/definitions/models.CalculationParameters"}
            }
        },
        "models.MissionSummary": {
            "type": "object",
            "properties": {
                "missionId": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "target": {"type": "string"},
                "assignedAstronauts": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "models.PayloadSummary": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "weight": {"type": "number"},
                "deployed": {"type": "boolean"},
                "deployedAt": {"type": "string"},
                "orbitalDistance": {"type": "number"},
                "orbitalVelocity": {"type": "number"},
                "deviationAngle": {"type": "number"}
            }
        },
        "models.VehicleSummary": {
            "type": "object",
            "properties": {
                "launchVehicleId": {"type": "integer"},
                "name": {"type": "string"},
                "maneuveringFuelRemaining": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Launchpad API",
	Description:      "Launch control for space missions: launch creation, crew allocation and the launch state machine.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
