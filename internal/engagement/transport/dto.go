package transport

import (
	catalogtransport "atlascasa_backend/internal/catalog/transport"
)

type RecordEventRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=view favorite contact compare"`
	PropertyID string `json:"propertyId" validate:"required,uuid"`
}

type RecommendationsResponse struct {
	Items []catalogtransport.PropertyResponse `json:"items"`
}
