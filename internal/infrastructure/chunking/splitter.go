// Package chunking splits article markdown into embeddable windows.
package chunking

import "strings"

// Splitter cuts text into overlapping rune windows. Windows prefer to end at
// a line or sentence boundary when one falls inside the final quarter of the
// window, so legal sentences are not cut mid-clause more than necessary.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 900
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Splitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}
}

func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := s.ChunkSize - s.Overlap
	if step <= 0 {
		step = s.ChunkSize
	}

	out := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); {
		end := start + s.ChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = breakPoint(runes, start, end)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			out = append(out, chunk)
		}
		if end == len(runes) {
			break
		}

		next := end - s.Overlap
		if next <= start {
			next = start + step
		}
		start = next
	}
	return out
}

// breakPoint moves end back to the nearest line break or sentence end, as
// long as the move stays within the final quarter of the window.
func breakPoint(runes []rune, start, end int) int {
	floor := end - (end-start)/4
	for i := end; i > floor; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	for i := end; i > floor; i-- {
		if runes[i-1] == '.' {
			return i
		}
	}
	return end
}
