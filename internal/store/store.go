// Package store persists the subscriber registry.
package store

// Registry tracks the chats subscribed to alerts.
type Registry interface {
	// Add registers a chat. Re-adding an existing chat is a no-op.
	Add(chatID int64) error
	// Remove drops a chat. Removing an unknown chat is a no-op.
	Remove(chatID int64) error
	// All returns every subscribed chat ID in ascending order.
	All() ([]int64, error)
	Close() error
}
