package worker

import (
	"github.com/helpdesk-kit/ticketing/internal/events"
	"github.com/helpdesk-kit/ticketing/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartEventMirror subscribes the redis publisher to the dispatcher so
// domain events are mirrored to the configured pub/sub channel.
func StartEventMirror(publisher *events.RedisPublisher, dispatcher events.Dispatcher) {
	if publisher == nil {
		return
	}
	publisher.RegisterHandlers(dispatcher)
}
