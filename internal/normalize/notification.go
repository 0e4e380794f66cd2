package normalize

import (
	"strings"

	"github.com/ibnfzy/gizichain/internal/model"
)

// notificationTypePaths is the precedence ladder for the derived notification
// type. Several backend generations named this field differently; the push
// payload variant nests it under data.
var notificationTypePaths = []string{
	"type",
	"notification_type",
	"category",
	"kind",
	"data.type",
}

// NotificationType derives the canonical type of a raw notification payload:
// first present string among the known keys, lower-cased, underscores
// replaced with hyphens. Defaults to "general".
func NotificationType(raw any) string {
	m := AsMap(raw)
	if m == nil {
		return "general"
	}
	for _, p := range notificationTypePaths {
		v, ok := lookupPath(m, p)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
		}
	}
	return "general"
}

// ParseNotification builds a Notification. Returns nil when the payload is
// not an object. The id may be empty; some backend generations emit derived
// entries without one, and those still count toward the type aggregates.
func ParseNotification(raw any) *model.Notification {
	m := AsMap(raw)
	if m == nil {
		return nil
	}
	return &model.Notification{
		ID:        firstID(m, "id", "notification_id"),
		Title:     firstString(m, "title", "judul"),
		Message:   firstString(m, "message", "body"),
		Type:      NotificationType(m),
		CreatedAt: firstString(m, "created_at", "createdAt"),
	}
}

// ParseNotificationList parses a raw array payload, dropping entries that do
// not resolve to a notification.
func ParseNotificationList(raw any) []model.Notification {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]model.Notification, 0, len(items))
	for _, item := range items {
		if n := ParseNotification(item); n != nil {
			out = append(out, *n)
		}
	}
	return out
}
