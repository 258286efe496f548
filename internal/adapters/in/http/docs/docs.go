// Package docs registers the swagger description of the freight API.
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
        "/api/v1/users": {
            "post": {"tags": ["users"], "summary": "Register a user", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/NewUser"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Created"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/v1/users/{userId}/vehicles": {
            "post": {"tags": ["users"], "summary": "Add a vehicle to a transporter fleet", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "userId", "type": "string", "format": "uuid", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/NewVehicle"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Created"}}, "403": {"description": "User is not a transporter", "schema": {"$ref": "#/definitions/Error"}}, "422": {"description": "Address not resolved", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/v1/users/{userId}/vehicles/{vehicleId}": {
            "put": {"tags": ["users"], "summary": "Update vehicle availability and position", "consumes": ["application/json"],
                "parameters": [{"in": "path", "name": "userId", "type": "string", "format": "uuid", "required": true}, {"in": "path", "name": "vehicleId", "type": "string", "format": "uuid", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/VehicleUpdate"}}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/v1/users/{userId}/orders": {
            "get": {"tags": ["users"], "summary": "List the orders of a user", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "userId", "type": "string", "format": "uuid", "required": true}, {"in": "query", "name": "role", "type": "string", "enum": ["orderer", "transporter"]}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Order"}}}}}
        },
        "/api/v1/matches": {
            "post": {"tags": ["matching"], "summary": "Find priced vehicles able to carry a cargo", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/MatchRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Match"}}}, "422": {"description": "Address not resolved", "schema": {"$ref": "#/definitions/Error"}}, "502": {"description": "Geocoder unavailable", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/v1/orders": {
            "post": {"tags": ["orders"], "summary": "Book a matched vehicle", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/NewOrder"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Created"}}, "409": {"description": "Vehicle cannot take the order", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/v1/orders/postings": {
            "post": {"tags": ["orders"], "summary": "Post an open order", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/NewPosting"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Created"}}}}
        },
        "/api/v1/orders/available": {
            "get": {"tags": ["orders"], "summary": "Pending orders a vehicle can take", "produces": ["application/json"],
                "parameters": [{"in": "query", "name": "vehicleId", "type": "string", "format": "uuid", "required": true}, {"in": "query", "name": "maxDistanceKm", "type": "number"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AvailableOrder"}}}}}
        },
        "/api/v1/orders/{orderId}": {
            "get": {"tags": ["orders"], "summary": "Get an order", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "orderId", "type": "string", "format": "uuid", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Order"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/v1/orders/{orderId}/proposals": {
            "post": {"tags": ["orders"], "summary": "Propose a price for a pending order", "consumes": ["application/json"],
                "parameters": [{"in": "path", "name": "orderId", "type": "string", "format": "uuid", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Proposal"}}],
                "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/v1/orders/{orderId}/proposals/accept": {
            "post": {"tags": ["orders"], "summary": "Accept the proposed price",
                "parameters": [{"in": "path", "name": "orderId", "type": "string", "format": "uuid", "required": true}],
                "responses": {"204": {"description": "No Content"}, "409": {"description": "No proposed price", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/v1/orders/{orderId}/status": {
            "put": {"tags": ["orders"], "summary": "Move an order to the next status", "consumes": ["application/json"],
                "parameters": [{"in": "path", "name": "orderId", "type": "string", "format": "uuid", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/StatusChange"}}],
                "responses": {"204": {"description": "No Content"}, "409": {"description": "Illegal transition or stale version", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/v1/orders/{orderId}/location": {
            "put": {"tags": ["orders"], "summary": "Record the live position of an order", "consumes": ["application/json"],
                "parameters": [{"in": "path", "name": "orderId", "type": "string", "format": "uuid", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Location"}}],
                "responses": {"204": {"description": "No Content"}}}
        },
        "/api/v1/vehicles/{vehicleId}/capacity": {
            "get": {"tags": ["vehicles"], "summary": "Remaining capacity of a vehicle", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "vehicleId", "type": "string", "format": "uuid", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/VehicleCapacity"}}}}
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}},
        "Created": {"type": "object", "properties": {"id": {"type": "string", "format": "uuid"}}},
        "Location": {"type": "object", "properties": {"address": {"type": "string"}, "latitude": {"type": "number"}, "longitude": {"type": "number"}, "updatedAt": {"type": "string", "format": "date-time"}}},
        "Cargo": {"type": "object", "properties": {"description": {"type": "string"}, "weight": {"type": "number"}, "length": {"type": "number"}, "width": {"type": "number"}, "height": {"type": "number"}, "volume": {"type": "number"}, "items": {"type": "integer"}, "requiresRefrigeration": {"type": "boolean"}, "isHazardous": {"type": "boolean"}, "isUrgent": {"type": "boolean"}}},
        "NewUser": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "role": {"type": "string", "enum": ["orderer", "transporter"]}}},
        "Tariff": {"type": "object", "properties": {"basePrice": {"type": "number"}, "pricePerKm": {"type": "number"}, "pricePerApproachKm": {"type": "number"}, "pricePerKg": {"type": "number"}, "pricePerM3": {"type": "number"}, "coolingCoefficient": {"type": "number"}, "hazardousCoefficient": {"type": "number"}, "urgentCoefficient": {"type": "number"}}},
        "NewVehicle": {"type": "object", "properties": {"type": {"type": "string"}, "model": {"type": "string"}, "licensePlate": {"type": "string"}, "maxWeight": {"type": "number"}, "maxVolume": {"type": "number"}, "isRefrigerated": {"type": "boolean"}, "currency": {"type": "string"}, "tariff": {"$ref": "#/definitions/Tariff"}, "location": {"$ref": "#/definitions/Location"}}},
        "VehicleUpdate": {"type": "object", "properties": {"available": {"type": "boolean"}, "location": {"$ref": "#/definitions/Location"}}},
        "MatchRequest": {"type": "object", "properties": {"pickupLocation": {"$ref": "#/definitions/Location"}, "deliveryLocation": {"$ref": "#/definitions/Location"}, "cargo": {"$ref": "#/definitions/Cargo"}, "searchRadiusKm": {"type": "number"}}},
        "Match": {"type": "object", "properties": {"vehicleId": {"type": "string", "format": "uuid"}, "transporterId": {"type": "string", "format": "uuid"}, "transporterName": {"type": "string"}, "vehicleType": {"type": "string"}, "model": {"type": "string"}, "licensePlate": {"type": "string"}, "isRefrigerated": {"type": "boolean"}, "vehicleLocation": {"$ref": "#/definitions/Location"}, "price": {"type": "number"}, "currency": {"type": "string"}, "distanceKm": {"type": "number"}, "approachDistanceKm": {"type": "number"}, "remainingWeight": {"type": "number"}, "remainingVolume": {"type": "number"}}},
        "NewOrder": {"type": "object", "properties": {"ordererId": {"type": "string", "format": "uuid"}, "vehicleId": {"type": "string", "format": "uuid"}, "pickupLocation": {"$ref": "#/definitions/Location"}, "deliveryLocation": {"$ref": "#/definitions/Location"}, "cargo": {"$ref": "#/definitions/Cargo"}, "notes": {"type": "string"}}},
        "NewPosting": {"type": "object", "properties": {"ordererId": {"type": "string", "format": "uuid"}, "pickupLocation": {"$ref": "#/definitions/Location"}, "deliveryLocation": {"$ref": "#/definitions/Location"}, "cargo": {"$ref": "#/definitions/Cargo"}, "budget": {"type": "number"}, "currency": {"type": "string"}, "notes": {"type": "string"}}},
        "Proposal": {"type": "object", "properties": {"transporterId": {"type": "string", "format": "uuid"}, "vehicleId": {"type": "string", "format": "uuid"}, "price": {"type": "number"}}},
        "StatusChange": {"type": "object", "properties": {"status": {"type": "string", "enum": ["pickup", "in_transit", "delivered", "cancelled"]}, "note": {"type": "string"}}},
        "StatusUpdate": {"type": "object", "properties": {"status": {"type": "string"}, "timestamp": {"type": "string", "format": "date-time"}, "note": {"type": "string"}}},
        "Order": {"type": "object", "properties": {"id": {"type": "string", "format": "uuid"}, "ordererId": {"type": "string", "format": "uuid"}, "transporterId": {"type": "string", "format": "uuid"}, "vehicleId": {"type": "string", "format": "uuid"}, "status": {"type": "string"}, "pickupLocation": {"$ref": "#/definitions/Location"}, "deliveryLocation": {"$ref": "#/definitions/Location"}, "cargo": {"$ref": "#/definitions/Cargo"}, "price": {"type": "number"}, "proposedPrice": {"type": "number"}, "priceConfirmed": {"type": "boolean"}, "currency": {"type": "string"}, "distanceKm": {"type": "number"}, "approachDistanceKm": {"type": "number"}, "statusUpdates": {"type": "array", "items": {"$ref": "#/definitions/StatusUpdate"}}, "currentLocation": {"$ref": "#/definitions/Location"}, "notes": {"type": "string"}, "createdAt": {"type": "string", "format": "date-time"}, "version": {"type": "integer"}}},
        "AvailableOrder": {"type": "object", "properties": {"order": {"$ref": "#/definitions/Order"}, "distanceKm": {"type": "number"}, "estimatedPrice": {"type": "number"}}},
        "VehicleCapacity": {"type": "object", "properties": {"vehicleId": {"type": "string", "format": "uuid"}, "transporterId": {"type": "string", "format": "uuid"}, "licensePlate": {"type": "string"}, "maxWeight": {"type": "number"}, "maxVolume": {"type": "number"}, "remainingWeight": {"type": "number"}, "remainingVolume": {"type": "number"}, "assignedOrders": {"type": "array", "items": {"$ref": "#/definitions/Order"}}, "overbooked": {"type": "boolean"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Freight API",
	Description:      "Matching, pricing and lifecycle of freight orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
