package dataset

import "restaurant-workers/internal/common/validation"

// outputSchema is the handoff contract read by the ingest and search tools.
const outputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "rating", "cuisine", "image", "description", "menu"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string"},
      "rating": {"type": "number"},
      "cuisine": {"type": "string"},
      "image": {"type": "string"},
      "description": {"type": "string"},
      "menu": {
        "type": "array",
        "minItems": 1,
        "items": {
          "type": "object",
          "required": ["id", "name", "description", "price", "category", "restaurantId"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "name": {"type": "string"},
            "description": {"type": "string"},
            "price": {"type": "number", "exclusiveMinimum": 0},
            "category": {"type": "string", "maxLength": 1000},
            "restaurantId": {"type": "string"}
          }
        }
      }
    }
  }
}`

var contract = validation.MustCompileSchema("cleaned-restaurant-data", outputSchema)
