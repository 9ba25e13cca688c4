// Package docs регистрирует OpenAPI-описание Flight Telemetry API для /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/api/v1/airports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Metadata"],
                "summary": "Справочник аэропортов",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/api/v1/flights": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Metadata"],
                "summary": "Справочник рейсов",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/api/v1/map/locations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Map"],
                "summary": "Текущие положения рейсов",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.FlightLocationsRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/map/locations/{flight}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Map"],
                "summary": "Положение одного рейса",
                "parameters": [
                    {"type": "string", "description": "Номер рейса", "name": "flight", "in": "path", "required": true},
                    {"type": "boolean", "description": "Читать из таблицы текущих положений", "name": "materialized", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/map/view": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Map"],
                "summary": "Состояние карты",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.MapViewRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/arrivals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Arrivals"],
                "summary": "Табло прилётов",
                "parameters": [{"type": "string", "description": "Коды аэропортов через запятую", "name": "airports", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/telemetry": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Telemetry"],
                "summary": "Приём события телеметрии",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/geo/distance": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Geo"],
                "summary": "Расстояние между точками",
                "parameters": [
                    {"type": "number", "name": "lat1", "in": "query", "required": true},
                    {"type": "number", "name": "lon1", "in": "query", "required": true},
                    {"type": "number", "name": "lat2", "in": "query", "required": true},
                    {"type": "number", "name": "lon2", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/geo/circle": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Geo"],
                "summary": "Окружность вокруг точки",
                "parameters": [
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lon", "in": "query", "required": true},
                    {"type": "number", "name": "radius", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/geo/no-fly-zone": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Geo"],
                "summary": "Проверка зоны запрета полётов",
                "parameters": [
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lon", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/geo/no-fly-zone/overlay": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Geo"],
                "summary": "Контур зоны запрета полётов",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/cost-log": {
            "get": {
                "produces": ["application/json"],
                "tags": ["CostLog"],
                "summary": "Журнал стоимости запросов",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["CostLog"],
                "summary": "Сброс журнала стоимости",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "dto.FlightLocationsRequest": {
            "type": "object",
            "properties": {
                "flight_numbers": {"type": "array", "items": {"type": "string"}},
                "show_flights": {"type": "boolean"},
                "use_materialized_view": {"type": "boolean"}
            }
        },
        "dto.MapViewRequest": {
            "type": "object",
            "properties": {
                "flight_numbers": {"type": "array", "items": {"type": "string"}},
                "show_flights": {"type": "boolean"},
                "use_materialized_view": {"type": "boolean"},
                "show_airports": {"type": "boolean"},
                "show_labels": {"type": "boolean"},
                "show_trailing": {"type": "boolean"},
                "show_leading": {"type": "boolean"},
                "show_no_fly_zone": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Flight Telemetry API",
	Description:      "Положения самолётов, табло прилётов, зона запрета полётов над Вашингтоном и журнал стоимости запросов.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
