package reminder

import "context"

// Sender delivers one reminder message. The destination is the recipient's
// phone number; channels without phone addressing may ignore it and deliver
// to a channel-level target instead.
type Sender interface {
	Send(ctx context.Context, destination, body string) error
	Channel() string
}
