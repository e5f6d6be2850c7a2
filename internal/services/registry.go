package services

import (
	"github.com/myproparti-blip/My-pro-backend/internal/geo"
	"github.com/myproparti-blip/My-pro-backend/internal/otp"
	"github.com/myproparti-blip/My-pro-backend/internal/repositories"
	"github.com/myproparti-blip/My-pro-backend/internal/sms"
)

// ServiceContainer wires every service with its repositories and shared
// collaborators.
type ServiceContainer struct {
	Auth          *AuthService
	Property      *PropertyService
	Agent         *AgentService
	Consultant    *ConsultantService
	Advertisement *AdvertisementService
	Location      *LocationService
}

func NewServiceContainer(otpStore otp.Store, smsProvider sms.Provider, geoClient *geo.Client, notifier Notifier) *ServiceContainer {
	users := repositories.NewUserRepository()
	properties := repositories.NewPropertyRepository()
	agents := repositories.NewAgentRepository()
	consultants := repositories.NewConsultantRepository()
	ads := repositories.NewAdvertisementRepository()

	return &ServiceContainer{
		Auth:          NewAuthService(users, otpStore, smsProvider, notifier),
		Property:      NewPropertyService(properties, notifier),
		Agent:         NewAgentService(agents, users, notifier),
		Consultant:    NewConsultantService(consultants, notifier),
		Advertisement: NewAdvertisementService(ads, notifier),
		Location:      NewLocationService(geoClient),
	}
}
