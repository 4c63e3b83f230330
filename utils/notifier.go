// ABOUTME: This file implements the user-facing notification hub
// ABOUTME: Notifications fall back to the log when no sink is attached

package utils

import (
	"log/slog"
	"sync"
)

// NotificationLevel classifies a user-facing notification.
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyInfo    NotificationLevel = "info"
	NotifyWarning NotificationLevel = "warning"
	NotifyError   NotificationLevel = "error"
)

// NotificationSink receives user-facing notifications. A UI layer attaches
// one; headless runs leave it unset.
type NotificationSink interface {
	Notify(level NotificationLevel, message string)
}

// NotificationHub fans notifications out to the attached sink, or to the
// logger when none is attached. Services emit through the hub so they never
// know whether a UI is present.
type NotificationHub struct {
	mu     sync.RWMutex
	sink   NotificationSink
	logger *slog.Logger
}

// NewNotificationHub creates a hub that logs until a sink is attached.
func NewNotificationHub(logger *slog.Logger) *NotificationHub {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationHub{logger: logger}
}

// SetSink attaches the sink that receives subsequent notifications.
// Passing nil detaches and restores the log fallback.
func (h *NotificationHub) SetSink(sink NotificationSink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sink = sink
}

// Notify delivers one notification.
func (h *NotificationHub) Notify(level NotificationLevel, message string) {
	h.mu.RLock()
	sink := h.sink
	h.mu.RUnlock()

	if sink != nil {
		sink.Notify(level, message)
		return
	}

	switch level {
	case NotifyError:
		h.logger.Error("notification", "message", message)
	case NotifyWarning:
		h.logger.Warn("notification", "message", message)
	default:
		h.logger.Info("notification", "level", string(level), "message", message)
	}
}

// Success emits a success notification.
func (h *NotificationHub) Success(message string) { h.Notify(NotifySuccess, message) }

// Info emits an informational notification.
func (h *NotificationHub) Info(message string) { h.Notify(NotifyInfo, message) }

// Warning emits a warning notification.
func (h *NotificationHub) Warning(message string) { h.Notify(NotifyWarning, message) }

// Error emits an error notification.
func (h *NotificationHub) Error(message string) { h.Notify(NotifyError, message) }
