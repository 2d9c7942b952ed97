package workflow

type EventType int

const (
	EventCommand EventType = iota
	EventText
	EventCallback
	EventDocument
	EventPhoto
)

// Document is an incoming slide file. Data is nil when the transport declined
// to download it (unsupported type or over the size cap); the size and mime
// checks still run against the metadata.
type Document struct {
	FileName string
	MimeType string
	FileSize int64
	Data     []byte
}

// Event is one inbound bot update, already stripped of transport detail.
type Event struct {
	Type     EventType
	UserID   int64
	ChatID   int64
	UserName string
	Text     string // message text, or the command name for EventCommand
	Data     string // callback payload for EventCallback
	Document *Document
	Photo    []byte
}
