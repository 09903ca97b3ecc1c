package models

import "time"

// Notification is a per-user notice created server-side as a side effect of
// events such as reviewer assignment. The client only ever flips IsRead from
// false to true; that transition is one-directional and idempotent.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadCount derives the unread total from a notification list. It is never
// stored independently, which keeps it from drifting out of sync.
func UnreadCount(list []Notification) int {
	n := 0
	for _, notif := range list {
		if !notif.IsRead {
			n++
		}
	}
	return n
}
