package worker

import (
	"github.com/albedo-hq/support-portal/internal/service"
)

// StartNotificationWorker subscribes the notification service to ticket
// events so submissions and public replies trigger email.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
