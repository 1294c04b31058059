package ingest

import "strings"

// Chunker splits document text into overlapping chunks bounded by a
// maximum size. Splitting prefers paragraph boundaries; a paragraph
// larger than the limit is cut at the limit with the configured overlap
// carried into the next chunk.
type Chunker struct {
	maxSize int
	overlap int
}

// NewChunker creates a chunker. maxSize must be positive; overlap must
// be non-negative and smaller than maxSize.
func NewChunker(maxSize, overlap int) *Chunker {
	if maxSize <= 0 {
		maxSize = 2000
	}
	if overlap < 0 || overlap >= maxSize {
		overlap = 0
	}
	return &Chunker{maxSize: maxSize, overlap: overlap}
}

// Split breaks text into chunks. Empty and whitespace-only input yields
// no chunks.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// An oversized paragraph is cut at the size limit.
		if len(para) > c.maxSize {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, c.splitLong(para)...)
			continue
		}

		if current.Len() > 0 && current.Len()+2+len(para) > c.maxSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// splitLong cuts a single oversized paragraph into maxSize pieces with
// overlap bytes repeated at each boundary.
func (c *Chunker) splitLong(text string) []string {
	var chunks []string
	step := c.maxSize - c.overlap

	for start := 0; start < len(text); start += step {
		end := start + c.maxSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}
