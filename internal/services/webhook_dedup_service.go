package services

import (
	"sync"

	"github.com/PatchLore/living-cards/internal/utils"
)

// WebhookDedupService remembers which provider event ids this process has
// already dispatched, so a redelivered event is acknowledged without
// running fulfillment twice. Fulfillment itself is idempotent; this cache
// just avoids the redundant work.
type WebhookDedupService struct {
	mu     sync.Mutex
	events map[string]struct{}
}

func NewWebhookDedupService() *WebhookDedupService {
	return &WebhookDedupService{
		events: make(map[string]struct{}),
	}
}

// MarkDispatched records an event id. Returns false if the event was
// already dispatched by this process.
func (s *WebhookDedupService) MarkDispatched(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.events[eventID]; seen {
		utils.Logger.Infof("Duplicate webhook event %s, skipping dispatch", eventID)
		return false
	}
	s.events[eventID] = struct{}{}
	return true
}

// Forget drops an event id so a provider retry can dispatch again. Used
// when fulfillment failed and we answered non-2xx to request redelivery.
func (s *WebhookDedupService) Forget(eventID string) {
	s.mu.Lock()
	delete(s.events, eventID)
	s.mu.Unlock()
}
