package entity

// ChatRequest is the streaming chat endpoint payload. SVGPath carries the
// optional structured pain-location annotation drawn in the AR client.
type ChatRequest struct {
	ThreadID *string `json:"thread_id,omitempty"`
	Message  string  `json:"message"`
	SVGPath  *string `json:"svg_path,omitempty"`
}

// SimpleChatRequest is the non-streaming chat payload.
type SimpleChatRequest struct {
	Message  string  `json:"message"`
	ThreadID *string `json:"thread_id,omitempty"`
}

// SimpleChatResponse is the non-streaming chat reply.
type SimpleChatResponse struct {
	Response string `json:"response"`
	ThreadID string `json:"thread_id"`
}

// SyncOperation names a delta operation from the mobile client.
type SyncOperation string

const (
	SyncOpInsert SyncOperation = "insert"
	SyncOpUpdate SyncOperation = "update"
	SyncOpDelete SyncOperation = "delete"
)

// ThreadDelta is a thread change uploaded by the mobile sync client.
type ThreadDelta struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Operation SyncOperation `json:"operation"`
}

// MessageDelta is a message change uploaded by the mobile sync client.
type MessageDelta struct {
	ID        string        `json:"id"`
	ThreadID  string        `json:"thread_id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	Operation SyncOperation `json:"operation"`
}

// SyncRequest is the mobile delta-sync payload.
type SyncRequest struct {
	Threads       []ThreadDelta  `json:"threads"`
	Messages      []MessageDelta `json:"messages"`
	ClientID      string         `json:"client_id"`
	SyncTimestamp int64          `json:"sync_timestamp"`
}

// SyncResponse reports per-collection sync outcomes.
type SyncResponse struct {
	Success        bool     `json:"success"`
	SyncedThreads  int      `json:"synced_threads"`
	SyncedMessages int      `json:"synced_messages"`
	Errors         []string `json:"errors"`
}

// ErrorResponse is the generic error body returned by handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
