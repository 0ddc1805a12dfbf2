package enum

// NoticeSeverity grades the messages returned to the cashier next to each mutation.
type NoticeSeverity string

const (
	NoticeSuccess NoticeSeverity = "success"
	NoticeInfo    NoticeSeverity = "info"
	NoticeWarn    NoticeSeverity = "warn"
	NoticeError   NoticeSeverity = "error"
)
