package schema

import (
	"sort"

	"itinera/internal/domain"
)

// The two target record shapes. Every field is optional: the schema declares
// the shape, extraction populates a best-effort subset, and absence of a field
// is never an error.

func baseProperties() map[string]any {
	return map[string]any{
		"documentDate":       map[string]any{"type": "string"},
		"currency":           map[string]any{"type": "string"},
		"totalAmount":        map[string]any{"type": "number"},
		"vendorName":         map[string]any{"type": "string"},
		"vendorAddress":      map[string]any{"type": "string"},
		"confirmationNumber": map[string]any{"type": "string"},
	}
}

// BuildHousingSchema returns the JSON-Schema (draft 2020-12 subset) for
// housing documents as a generic map.
func BuildHousingSchema() map[string]any {
	props := baseProperties()
	props["propertyName"] = map[string]any{"type": "string"}
	props["propertyAddress"] = map[string]any{"type": "string"}
	props["checkInDate"] = map[string]any{"type": "string"}
	props["checkOutDate"] = map[string]any{"type": "string"}
	props["numberOfNights"] = map[string]any{"type": "number"}
	props["numberOfGuests"] = map[string]any{"type": "number"}
	props["roomType"] = map[string]any{"type": "string"}
	props["amenities"] = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	props["cancellationPolicy"] = map[string]any{"type": "string"}
	props["taxesAndFees"] = map[string]any{"type": "number"}
	props["guestNames"] = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

// BuildTransportationSchema returns the JSON-Schema for transportation
// documents as a generic map.
func BuildTransportationSchema() map[string]any {
	props := baseProperties()
	props["transportationType"] = map[string]any{
		"type": "string",
		"enum": []string{"flight", "train", "bus", "car_rental", "taxi", "other"},
	}
	props["departureLocation"] = map[string]any{"type": "string"}
	props["arrivalLocation"] = map[string]any{"type": "string"}
	props["departureDateTime"] = map[string]any{"type": "string"}
	props["arrivalDateTime"] = map[string]any{"type": "string"}
	props["carrierName"] = map[string]any{"type": "string"}
	props["flightNumber"] = map[string]any{"type": "string"}
	props["seatNumber"] = map[string]any{"type": "string"}
	props["passengerNames"] = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	props["baggageAllowance"] = map[string]any{"type": "string"}
	props["ticketClass"] = map[string]any{"type": "string"}

	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

// ForDocumentType selects the schema variant for a known document type.
// Returns nil for unknown.
func ForDocumentType(t domain.DocumentType) map[string]any {
	switch t {
	case domain.DocumentTypeHousing:
		return BuildHousingSchema()
	case domain.DocumentTypeTransportation:
		return BuildTransportationSchema()
	default:
		return nil
	}
}

// FieldNames returns the schema's property names in stable (sorted) order,
// used to embed the expected shape in the extraction prompt.
func FieldNames(schemaMap map[string]any) []string {
	props, ok := schemaMap["properties"].(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(props))
	for k := range props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
