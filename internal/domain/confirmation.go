package domain

// Confirmation is the unit of work handed off the chat event path once a
// human has approved a detected launch.
type Confirmation struct {
	JobID      string       `json:"job_id"`
	Record     LaunchRecord `json:"record"`
	ApproverID string       `json:"approver_id"`
	ChannelID  string       `json:"channel_id"`
	// MessageTS is the bot's prompt message, ThreadTS the announcement it replied to.
	MessageTS string `json:"message_ts"`
	ThreadTS  string `json:"thread_ts"`
}
