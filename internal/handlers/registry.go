package handlers

import (
	"github.com/myproparti-blip/My-pro-backend/internal/services"
	"github.com/myproparti-blip/My-pro-backend/internal/storage"
	"github.com/myproparti-blip/My-pro-backend/internal/validator"
)

// AppHandlers bundles every HTTP handler behind one constructor.
type AppHandlers struct {
	Auth          *AuthHandler
	Property      *PropertyHandler
	Agent         *AgentHandler
	Consultant    *ConsultantHandler
	Advertisement *AdvertisementHandler
	Location      *LocationHandler
}

func NewAppHandlers(container *services.ServiceContainer, store storage.Storage) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		Auth:          NewAuthHandler(base, container.Auth),
		Property:      NewPropertyHandler(base, container.Property, container.Auth, store),
		Agent:         NewAgentHandler(base, container.Agent, container.Auth, store),
		Consultant:    NewConsultantHandler(base, container.Consultant, container.Auth, store),
		Advertisement: NewAdvertisementHandler(base, container.Advertisement, container.Auth),
		Location:      NewLocationHandler(base, container.Location),
	}
}
