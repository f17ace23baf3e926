package ingestion

import "strings"

// separators are tried in order, from the strongest structural boundary
// down to single characters.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter cuts documents into overlapping chunks sized for embedding.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Split breaks text into chunks of at most chunkSize characters,
// preferring paragraph and sentence boundaries, with chunkOverlap
// characters carried between adjacent chunks.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	pieces := s.split(text, 0)

	chunks := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			chunks = append(chunks, piece)
		}
	}
	return chunks
}

func (s *Splitter) split(text string, sepIndex int) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}
	if sepIndex >= len(separators) {
		return s.hardSplit(text)
	}

	sep := separators[sepIndex]
	if sep == "" {
		return s.hardSplit(text)
	}

	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		return s.split(text, sepIndex+1)
	}

	var chunks []string
	var current strings.Builder
	for _, part := range parts {
		candidate := part
		if current.Len() > 0 {
			candidate = current.String() + sep + part
		}

		if len(candidate) <= s.chunkSize {
			current.Reset()
			current.WriteString(candidate)
			continue
		}

		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			tail := s.overlapTail(chunks[len(chunks)-1])
			current.Reset()
			// Carry the overlap only when it still leaves room for the part.
			if tail != "" && len(tail)+len(sep)+len(part) <= s.chunkSize {
				current.WriteString(tail)
				current.WriteString(sep)
			}
		}

		if len(part) > s.chunkSize {
			sub := s.split(part, sepIndex+1)
			chunks = append(chunks, sub[:len(sub)-1]...)
			current.Reset()
			current.WriteString(sub[len(sub)-1])
			continue
		}
		current.WriteString(part)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// hardSplit cuts on raw character offsets when no separator fits.
func (s *Splitter) hardSplit(text string) []string {
	var chunks []string
	step := s.chunkSize - s.chunkOverlap
	if step <= 0 {
		step = s.chunkSize
	}
	for start := 0; start < len(text); start += step {
		end := start + s.chunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}

func (s *Splitter) overlapTail(chunk string) string {
	if s.chunkOverlap <= 0 || len(chunk) <= s.chunkOverlap {
		return ""
	}
	tail := chunk[len(chunk)-s.chunkOverlap:]
	// Start the overlap at a word boundary when possible.
	if idx := strings.IndexByte(tail, ' '); idx >= 0 && idx < len(tail)-1 {
		tail = tail[idx+1:]
	}
	return tail
}
