package chat

import (
	"fmt"
	"strings"

	"github.com/achitaan/AR-diagass/internal/entity"
)

const systemPromptBase = `You are PainAR, a physiotherapy education assistant. You help users understand
musculoskeletal pain and injuries using the provided reference material.

Rules:
- Ground your answers in the reference context below when it is relevant.
- Use plain language a patient can understand.
- You are not a doctor. Never give a definitive diagnosis or prescribe treatment.
- If the user describes red-flag symptoms (numbness, loss of bladder or bowel control,
  chest pain, severe unrelenting pain), advise them to seek professional medical care promptly.
- End every answer with a short reminder that this is educational information,
  not medical advice.`

// buildSystemPrompt assembles the system message from retrieved knowledge
// chunks and the optional AR pain annotation.
func buildSystemPrompt(chunks []entity.RetrievedChunk, svgPath *string) string {
	var b strings.Builder
	b.WriteString(systemPromptBase)

	if len(chunks) > 0 {
		b.WriteString("\n\nReference context:\n")
		for i, chunk := range chunks {
			fmt.Fprintf(&b, "\n[%d] %s\n", i+1, strings.TrimSpace(chunk.Content))
		}
	}

	if svgPath != nil && *svgPath != "" {
		b.WriteString("\n\nThe user has drawn the painful area on their body in the AR view. ")
		b.WriteString("Annotation path data: ")
		b.WriteString(*svgPath)
	}

	return b.String()
}
