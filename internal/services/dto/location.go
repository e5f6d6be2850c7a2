package dto

type LocationSuggestQuery struct {
	Query string `form:"q"`
}

type LocationReverseQuery struct {
	Latitude  string `form:"lat"`
	Longitude string `form:"lon"`
}
