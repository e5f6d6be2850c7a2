package dto

type CreateConsultantRequest struct {
	Name           string     `json:"name" form:"name" validate:"required"`
	Phone          string     `json:"phone" form:"phone" validate:"required,in_phone"`
	Designation    string     `json:"designation" form:"designation" validate:"required"`
	Experience     int        `json:"experience" form:"experience" validate:"gte=0"`
	Fee            float64    `json:"fee" form:"fee" validate:"required,gt=0"`
	FeeType        string     `json:"feeType" form:"feeType" validate:"omitempty,oneof=minute hour project"`
	Expertise      string     `json:"expertise" form:"expertise" validate:"required"`
	Certifications string     `json:"certifications" form:"certifications"`
	Languages      StringList `json:"languages" form:"-"`

	Address  string `json:"address" form:"address"`
	Location string `json:"location" form:"location" validate:"required"`

	AddressLine1 string   `json:"addressLine1" form:"addressLine1"`
	AddressLine2 string   `json:"addressLine2" form:"addressLine2"`
	Landmark     string   `json:"landmark" form:"landmark"`
	Locality     string   `json:"locality" form:"locality"`
	City         string   `json:"city" form:"city"`
	State        string   `json:"state" form:"state"`
	Country      string   `json:"country" form:"country"`
	Pincode      string   `json:"pincode" form:"pincode"`
	Latitude     *float64 `json:"latitude" form:"latitude"`
	Longitude    *float64 `json:"longitude" form:"longitude"`

	// Set by the handler after the multipart files are stored.
	Image   string `json:"image" form:"-"`
	IDProof string `json:"idProof" form:"-"`
}

type UpdateConsultantRequest struct {
	Name           *string     `json:"name"`
	Designation    *string     `json:"designation"`
	Experience     *int        `json:"experience" validate:"omitempty,gte=0"`
	Fee            *float64    `json:"fee" validate:"omitempty,gt=0"`
	FeeType        *string     `json:"feeType" validate:"omitempty,oneof=minute hour project"`
	Expertise      *string     `json:"expertise"`
	Certifications *string     `json:"certifications"`
	Languages      *StringList `json:"languages"`

	Address  *string `json:"address"`
	Location *string `json:"location"`

	City     *string `json:"city"`
	State    *string `json:"state"`
	Pincode  *string `json:"pincode"`
	Locality *string `json:"locality"`

	Image   *string `json:"image"`
	IDProof *string `json:"idProof"`
}

type ConsultantListFilter struct {
	Location string `form:"location"`
}
