package dto

type CreateAgentRequest struct {
	AgentName          string     `json:"agentName" form:"agentName" validate:"required"`
	FirmName           string     `json:"firmName" form:"firmName"`
	OperatingCity      string     `json:"operatingCity" form:"operatingCity" validate:"required"`
	OperatingAreaChips StringList `json:"operatingAreaChips" form:"-"`
	OperatingSince     string     `json:"operatingSince" form:"operatingSince"`
	TeamMembers        string     `json:"teamMembers" form:"teamMembers"`
	DealsIn            StringList `json:"dealsIn" form:"-"`
	DealsInOther       StringList `json:"dealsInOther" form:"-"`
	AboutAgent         string     `json:"aboutAgent" form:"aboutAgent"`
	IsPropertyDealer   string     `json:"isPropertyDealer" form:"isPropertyDealer" validate:"omitempty,oneof=yes no"`

	Address  string `json:"address" form:"address"`
	Location string `json:"location" form:"location"`

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

type UpdateAgentRequest struct {
	AgentName          *string     `json:"agentName"`
	FirmName           *string     `json:"firmName"`
	OperatingCity      *string     `json:"operatingCity"`
	OperatingAreaChips *StringList `json:"operatingAreaChips"`
	OperatingSince     *string     `json:"operatingSince"`
	TeamMembers        *string     `json:"teamMembers"`
	DealsIn            *StringList `json:"dealsIn"`
	DealsInOther       *StringList `json:"dealsInOther"`
	AboutAgent         *string     `json:"aboutAgent"`
	IsPropertyDealer   *string     `json:"isPropertyDealer" validate:"omitempty,oneof=yes no"`

	Address  *string `json:"address"`
	Location *string `json:"location"`

	City     *string `json:"city"`
	State    *string `json:"state"`
	Pincode  *string `json:"pincode"`
	Locality *string `json:"locality"`

	Image   *string `json:"image"`
	IDProof *string `json:"idProof"`
}

type AgentListFilter struct {
	OperatingCity string `form:"operatingCity"`
}
