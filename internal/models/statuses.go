package models

type UserRole string
type FeeType string
type AdType string

const (
	UserRoleBuyer      UserRole = "buyer"
	UserRoleSeller     UserRole = "seller"
	UserRoleOwner      UserRole = "owner"
	UserRoleInvestor   UserRole = "investor"
	UserRoleAgent      UserRole = "agent"
	UserRoleConsultant UserRole = "consultant"
	UserRoleAdmin      UserRole = "admin"

	FeeTypeMinute  FeeType = "minute"
	FeeTypeHour    FeeType = "hour"
	FeeTypeProject FeeType = "project"

	AdTypeImage    AdType = "image"
	AdTypeVideo    AdType = "video"
	AdTypeMultiple AdType = "multiple"
)

// ValidRole reports whether role is one of the registrable roles.
// "admin" is excluded on purpose: the admin identity is resolved by the
// configured phone number, never requested by a client.
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleBuyer, UserRoleSeller, UserRoleOwner, UserRoleInvestor, UserRoleAgent, UserRoleConsultant:
		return true
	}
	return false
}
