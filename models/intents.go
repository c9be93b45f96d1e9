package models

// Notification intent kinds consumed by the external dispatcher.
const (
	IntentNotifyOwnerOfNewRequest    = "notify_owner_of_new_request"
	IntentNotifyRequesterOfRejection = "notify_requester_of_rejection"
	IntentNotifyOwnerOfAcceptance    = "notify_owner_of_acceptance"
)

// NotificationIntent carries enough denormalized data that the dispatcher
// needs no further lookups. Delivery is fire-and-forget.
type NotificationIntent struct {
	Kind          string            `json:"kind"`
	RecipientID   string            `json:"recipientId"`
	RecipientRole string            `json:"recipientRole"`
	Title         string            `json:"title"`
	Body          string            `json:"body"`
	Data          map[string]string `json:"data,omitempty"`
}

// ThreadPostIntent posts a system notice into a thread, at-least-once.
type ThreadPostIntent struct {
	ThreadID    string `json:"threadId"`
	MessageType string `json:"messageType"`
	Text        string `json:"text"`
}

// Effects is the side-effect list returned by a committed transition and
// executed by the outer driver. Effect failures are logged and retried
// independently; they never roll back the transition itself.
type Effects struct {
	Notifications  []NotificationIntent
	ThreadPosts    []ThreadPostIntent
	ArchiveThreads []string
}

func (e *Effects) Merge(other Effects) {
	e.Notifications = append(e.Notifications, other.Notifications...)
	e.ThreadPosts = append(e.ThreadPosts, other.ThreadPosts...)
	e.ArchiveThreads = append(e.ArchiveThreads, other.ArchiveThreads...)
}
