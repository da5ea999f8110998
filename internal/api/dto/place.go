package dto

type ListPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}
