package draft

import (
	"fmt"
	"strings"
)

// 失败时返回给用户的固定文本
const (
	FailureText           = "Sorry, an error occurred while generating your essay. Please try again."
	MessageGenerationFail = "An error occurred while calling the AI service."
	MessageUnsupported    = "unsupported AI model"
)

// annotation 终止时的汇总信息
type annotation struct {
	req      GenerationRequest
	band     LengthBand
	attempts int
	// first 第一个成功生成的候选的分类，hasFirst=false 表示此前的尝试都失败了
	first    Classification
	hasFirst bool
	final    Candidate
	class    Classification
}

// annotate 生成说明列表：定性说明（可关闭）、重试说明、未达标警告、最终长度状态
func annotate(a annotation) []string {
	notes := make([]string, 0, 8)

	if a.req.IncludeExplanations {
		notes = append(notes,
			"Restructured the text so each paragraph opens with a clear topic sentence.",
			fmt.Sprintf("Added keywords relevant to %s and the %s role.",
				strings.TrimSpace(a.req.Organization), strings.TrimSpace(a.req.Role)),
			fmt.Sprintf("Optimized the content for the %d-character limit.", a.req.TargetLength),
			fmt.Sprintf("Polished the style with the %s model.", strings.ToUpper(strings.TrimSpace(a.req.Model))),
			"Highlighted concrete experiences and results to make the essay more persuasive.",
		)
	}

	if a.attempts > 1 {
		notes = append(notes, retryNote(a))
	}

	switch a.class {
	case Under:
		notes = append(notes, fmt.Sprintf(
			"⚠️ The text is %d characters short of the %d-character minimum; returned after %d attempts.",
			a.band.Minimum-a.final.Length(), a.band.Minimum, a.attempts))
	case Over:
		notes = append(notes, fmt.Sprintf(
			"⚠️ The text exceeds the %d-character limit by %d characters; returned after %d attempts.",
			a.band.Maximum, a.final.Length()-a.band.Maximum, a.attempts))
	}

	notes = append(notes, statusLine(a.final.Length(), a.band, a.class))
	return notes
}

func retryNote(a annotation) string {
	if !a.hasFirst || a.first == Within {
		return fmt.Sprintf("📝 Generation was retried; %d attempts were used.", a.attempts)
	}
	verb := "Expanded"
	if directionFor(a.first) == Condense {
		verb = "Condensed"
	}
	return fmt.Sprintf("📝 %s the text over %d attempts to fit the %d-%d character range.",
		verb, a.attempts, a.band.Minimum, a.band.Maximum)
}

func statusLine(length int, band LengthBand, class Classification) string {
	marker := "✅"
	state := "within range"
	switch class {
	case Under:
		marker, state = "⚠️", "under range"
	case Over:
		marker, state = "⚠️", "over range"
	}
	return fmt.Sprintf("%s Final length: %d characters (target %d-%d, %s).",
		marker, length, band.Minimum, band.Maximum, state)
}
