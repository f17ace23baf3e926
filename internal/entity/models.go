package entity

import (
	"fmt"
	"time"
)

type MessageRole string

// Message roles mirror the chat completion vocabulary. Knowledge-base
// chunks are stored with the system role.
const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Validate rejects unknown roles at the data-ingestion boundary.
func (r MessageRole) Validate() error {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("unknown message role: %s", r)
	}
}

// Thread is a conversation thread. Knowledge-base documents are ingested
// as threads of system messages so retrieval works over a single store.
type Thread struct {
	ID        string    `json:"thread_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single conversation turn within a thread.
type Message struct {
	ID        string      `json:"id"`
	ThreadID  string      `json:"thread_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// Embedding is the stored vector representation of a message.
type Embedding struct {
	ID        string    `json:"id"`
	MessageID string    `json:"message_id"`
	Vector    []float32 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}

// Document records an ingested knowledge-base file and the thread its
// chunks were written to.
type Document struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"thread_id"`
	Filename   string    `json:"filename"`
	SourceType string    `json:"source_type"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// KnowledgeStats summarizes the state of the ingested knowledge base.
type KnowledgeStats struct {
	KnowledgeChunks  int  `json:"knowledge_chunks"`
	Embeddings       int  `json:"embeddings"`
	KnowledgeThreads int  `json:"knowledge_threads"`
	ReadyForRAG      bool `json:"ready_for_rag"`
}
