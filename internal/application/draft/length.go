package draft

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// minimumRatio 下限为目标长度的 90%，整数截断
const minimumRatio = 0.9

// LengthBand 可接受长度区间 [Minimum, Maximum]，两端闭合
type LengthBand struct {
	Minimum int
	Maximum int
}

// Band 计算目标长度对应的区间；targetLength 必须为正数
func Band(targetLength int) LengthBand {
	return LengthBand{
		Minimum: int(float64(targetLength) * minimumRatio),
		Maximum: targetLength,
	}
}

func (b LengthBand) String() string {
	return fmt.Sprintf("%d-%d", b.Minimum, b.Maximum)
}

// Classification 候选文本相对区间的位置
type Classification int

const (
	Within Classification = iota
	Under
	Over
)

func (c Classification) String() string {
	switch c {
	case Within:
		return "within"
	case Under:
		return "under"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Classify 判断长度是否落在区间内
func Classify(length int, band LengthBand) Classification {
	switch {
	case length < band.Minimum:
		return Under
	case length > band.Maximum:
		return Over
	default:
		return Within
	}
}

// Candidate 单次尝试生成的文本，创建后不可变
type Candidate struct {
	text   string
	length int
}

// NewCandidate 去除首尾空白后按 Unicode 码点计数
func NewCandidate(text string) Candidate {
	t := strings.TrimSpace(text)
	return Candidate{text: t, length: utf8.RuneCountInString(t)}
}

func (c Candidate) Text() string { return c.text }

func (c Candidate) Length() int { return c.length }

// Classify 按给定区间分类
func (c Candidate) Classify(band LengthBand) Classification {
	return Classify(c.length, band)
}
