package entity

// ChatMessage is a provider-neutral chat turn passed to the LLM connector.
type ChatMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// ChatCompletionRequest carries one LLM invocation.
type ChatCompletionRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

// ChatCompletionChunk is a single streamed token delta.
type ChatCompletionChunk struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
}

// ASRTranscribeResponse is the transcription service reply.
type ASRTranscribeResponse struct {
	Text string `json:"text"`
}
