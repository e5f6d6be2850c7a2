package services

// Notifier pushes realtime refresh hints to connected clients. Services
// fire these after every successful mutation so list screens stay warm
// without polling. A nil Notifier is valid and drops everything.
type Notifier interface {
	// NotifyDataUpdate announces fresh data for the cache key. When userID
	// is empty the event fans out to every connection.
	NotifyDataUpdate(key string, payload interface{}, userID string)

	// NotifyCacheInvalidate tells clients to drop the cache key and refetch.
	NotifyCacheInvalidate(key string, userID string)

	// NotifyFullRefresh tells clients to reload all cached state.
	NotifyFullRefresh(userID string)
}

// Cache keys shared with the clients. Listing screens subscribe to these.
const (
	KeyProperties    = "properties"
	KeyAgents        = "agents"
	KeyConsultants   = "consultants"
	KeyAdvertisement = "advertisements"
	KeyUsers         = "users"
)

type noopNotifier struct{}

func (noopNotifier) NotifyDataUpdate(string, interface{}, string) {}

func (noopNotifier) NotifyCacheInvalidate(string, string) {}

func (noopNotifier) NotifyFullRefresh(string) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
