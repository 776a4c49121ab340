package models

// Event is one inbound message delivered by the transport layer.
type Event struct {
	// ChatID identifies the conversation the message belongs to.
	ChatID int64
	// SenderID is the platform user ID of the author.
	SenderID int64
	// SenderName is the author's display name.
	SenderName string
	// Text is the message body. For commands it holds the arguments only.
	Text string
	// ReplyToText is the text of the quoted message, when the event is a
	// reply. HasReply distinguishes "reply to an empty message" from
	// "not a reply".
	ReplyToText string
	HasReply    bool
}
