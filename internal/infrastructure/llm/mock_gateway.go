package llm

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"resume-ai-api/internal/application/draft"
)

var bandPattern = regexp.MustCompile(`between (\d+) and (\d+) characters`)

const mockSentence = "I took ownership of an unclear problem, broke it into measurable steps, and delivered a result the team could build on. "

// MockDriver 不访问网络，按指令中的长度区间生成占位文本，用于本地开发和演示
type MockDriver struct{}

func NewMockDriver() *MockDriver {
	return &MockDriver{}
}

func (d *MockDriver) Generate(ctx context.Context, route Route, in draft.Instructions, opts draft.GenerateOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	size := utf8.RuneCountInString(mockSentence)
	if m := bandPattern.FindStringSubmatch(in.User); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		size = (lo + hi) / 2
	}
	return fillRunes(mockSentence, size), nil
}

// fillRunes 重复 unit 直到恰好 n 个字符，末尾不留空白
func fillRunes(unit string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(strings.Repeat(unit, n/utf8.RuneCountInString(unit)+1))[:n]
	if runes[n-1] == ' ' {
		runes[n-1] = '.'
	}
	return string(runes)
}
