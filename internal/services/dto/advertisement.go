package dto

type AdFileInput struct {
	URL         string `json:"url" validate:"required"`
	PublicID    string `json:"publicId"`
	Type        string `json:"type" validate:"omitempty,oneof=image video"`
	RedirectURL string `json:"redirectUrl"`
}

type CreateAdvertisementRequest struct {
	Type        string        `json:"type" form:"type" validate:"omitempty,oneof=image video multiple"`
	URL         string        `json:"url" form:"url"`
	PublicID    string        `json:"publicId" form:"publicId"`
	Position    int           `json:"position" form:"position" validate:"gte=0"`
	PageKey     string        `json:"pageKey" form:"pageKey"`
	RedirectURL string        `json:"redirectUrl" form:"redirectUrl"`
	Files       []AdFileInput `json:"files" form:"-"`
}

type UpdateAdvertisementRequest struct {
	Type        *string        `json:"type" validate:"omitempty,oneof=image video multiple"`
	URL         *string        `json:"url"`
	PublicID    *string        `json:"publicId"`
	Position    *int           `json:"position" validate:"omitempty,gte=0"`
	PageKey     *string        `json:"pageKey"`
	RedirectURL *string        `json:"redirectUrl"`
	Files       *[]AdFileInput `json:"files"`
}
