package chunker

import (
	"regexp"
	"strings"
)

// span is a half-open [start, end) byte range in the original text.
type span struct {
	start int
	end   int
}

// sentenceBoundary greedily matches one sentence: any run of
// non-terminator bytes followed by one or more terminators. Consecutive
// terminators ("...", "?!", ".\n") stay attached to the preceding sentence.
var sentenceBoundary = regexp.MustCompile(`[^.!?\n]*[.!?\n]+`)

// fenceDelimiter opens and closes a protected code block.
const fenceDelimiter = "```"

// splitSentences partitions text into contiguous sentence spans. Every byte
// of the input belongs to exactly one span, each span ends where the next
// begins, and text without any detected boundary is a single span.
func splitSentences(text string) []span {
	if text == "" {
		return nil
	}

	locs := sentenceBoundary.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []span{{0, len(text)}}
	}

	spans := make([]span, 0, len(locs)+1)
	for _, loc := range locs {
		spans = append(spans, span{loc[0], loc[1]})
	}

	// Trailing text with no terminator is still a sentence.
	if last := locs[len(locs)-1][1]; last < len(text) {
		spans = append(spans, span{last, len(text)})
	}

	return spans
}

// fencedRegions returns the spans of triple-backtick code blocks, fence
// delimiters included. An unclosed opening fence protects through the end
// of the text.
func fencedRegions(text string) []span {
	var fences []int
	for from := 0; ; {
		idx := strings.Index(text[from:], fenceDelimiter)
		if idx < 0 {
			break
		}
		fences = append(fences, from+idx)
		from += idx + len(fenceDelimiter)
	}

	var regions []span
	for i := 0; i+1 < len(fences); i += 2 {
		regions = append(regions, span{fences[i], fences[i+1] + len(fenceDelimiter)})
	}
	if len(fences)%2 == 1 {
		regions = append(regions, span{fences[len(fences)-1], len(text)})
	}
	return regions
}

// splitSentencesProtected partitions text into sentence spans while keeping
// each fenced code block intact as one atomic sentence, regardless of the
// punctuation inside it.
func splitSentencesProtected(text string) []span {
	regions := fencedRegions(text)
	if len(regions) == 0 {
		return splitSentences(text)
	}

	var spans []span
	cursor := 0
	for _, region := range regions {
		for _, s := range splitSentences(text[cursor:region.start]) {
			spans = append(spans, span{cursor + s.start, cursor + s.end})
		}
		spans = append(spans, region)
		cursor = region.end
	}
	for _, s := range splitSentences(text[cursor:]) {
		spans = append(spans, span{cursor + s.start, cursor + s.end})
	}
	return spans
}
