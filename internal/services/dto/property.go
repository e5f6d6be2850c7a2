package dto

type CreatePropertyRequest struct {
	Title        string  `json:"title" form:"title" validate:"required"`
	PropertyType string  `json:"propertyType" form:"propertyType" validate:"required"`
	Description  string  `json:"description" form:"description"`
	Price        float64 `json:"price" form:"price" validate:"required,gt=0"`
	Bedrooms     int     `json:"bedrooms" form:"bedrooms" validate:"gte=0"`
	Bathrooms    int     `json:"bathrooms" form:"bathrooms" validate:"gte=0"`
	AreaSqft     float64 `json:"areaSqft" form:"areaSqft" validate:"gte=0"`

	AddressLine1 string   `json:"addressLine1" form:"addressLine1"`
	AddressLine2 string   `json:"addressLine2" form:"addressLine2"`
	Landmark     string   `json:"landmark" form:"landmark"`
	Locality     string   `json:"locality" form:"locality"`
	City         string   `json:"city" form:"city" validate:"required"`
	State        string   `json:"state" form:"state"`
	Country      string   `json:"country" form:"country"`
	Pincode      string   `json:"pincode" form:"pincode"`
	Latitude     *float64 `json:"latitude" form:"latitude"`
	Longitude    *float64 `json:"longitude" form:"longitude"`

	// Pre-uploaded media URLs; multipart uploads are appended by the
	// handler after storage writes.
	Images StringList `json:"images" form:"-"`
	Videos StringList `json:"videos" form:"-"`
}

// UpdatePropertyRequest carries partial edits. Nil fields are left as-is;
// moderation state is never touched by an edit.
type UpdatePropertyRequest struct {
	Title        *string  `json:"title"`
	PropertyType *string  `json:"propertyType"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price" validate:"omitempty,gt=0"`
	Bedrooms     *int     `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms    *int     `json:"bathrooms" validate:"omitempty,gte=0"`
	AreaSqft     *float64 `json:"areaSqft" validate:"omitempty,gte=0"`

	AddressLine1 *string  `json:"addressLine1"`
	AddressLine2 *string  `json:"addressLine2"`
	Landmark     *string  `json:"landmark"`
	Locality     *string  `json:"locality"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	Country      *string  `json:"country"`
	Pincode      *string  `json:"pincode"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`

	Images *StringList `json:"images"`
	Videos *StringList `json:"videos"`
}

type PropertyListFilter struct {
	City         string `form:"city"`
	PropertyType string `form:"propertyType"`
}
