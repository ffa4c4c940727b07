package dto

type LocationResponse struct {
	Code string  `json:"code"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}
