package entity

// RetrievedChunk is a knowledge snippet returned by similarity search.
type RetrievedChunk struct {
	MessageID string  `json:"message_id"`
	ThreadID  string  `json:"thread_id"`
	Content   string  `json:"content"`
	Score     float64 `json:"similarity_score"`
}

// RetrievalQuery parameterizes a similarity search over stored embeddings.
type RetrievalQuery struct {
	Text     string  `json:"text"`
	TopK     int     `json:"top_k"`
	ThreadID *string `json:"thread_id,omitempty"`
}
