package domain

// NoticeType labels the progress messages streamed to the authoring client
// while generation runs in the background.
type NoticeType string

const (
	AudioReadyNotice  NoticeType = "audio_ready"
	AudioFailedNotice NoticeType = "audio_failed"
	AudioStaleNotice  NoticeType = "audio_stale"
	ImageReadyNotice  NoticeType = "image_ready"
	ImageFailedNotice NoticeType = "image_failed"
	ImageStaleNotice  NoticeType = "image_stale"
	SubmittedNotice   NoticeType = "submitted"
	HeartbeatNotice   NoticeType = "heartbeat"
)

type DraftNotice struct {
	DraftID  string     `json:"draftId"`
	Type     NoticeType `json:"type"`
	Seq      uint64     `json:"seq,omitempty"`
	URL      string     `json:"url,omitempty"`
	Duration float64    `json:"duration,omitempty"`
	Message  string     `json:"message,omitempty"`
}
