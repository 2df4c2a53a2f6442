package draft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBand(t *testing.T) {
	tests := []struct {
		target  int
		wantMin int
	}{
		{1000, 900},
		{1, 0},
		{5, 4},
		{10, 9},
		{11, 9},
		{999, 899},
		{3000, 2700},
	}
	for _, tt := range tests {
		b := Band(tt.target)
		assert.Equal(t, tt.wantMin, b.Minimum, "target %d", tt.target)
		assert.Equal(t, tt.target, b.Maximum, "target %d", tt.target)
		assert.LessOrEqual(t, b.Minimum, b.Maximum)
	}
}

func TestBandMatchesTruncationForAllSmallTargets(t *testing.T) {
	for target := 1; target <= 5000; target++ {
		b := Band(target)
		assert.Equal(t, int(float64(target)*0.9), b.Minimum)
		assert.Equal(t, target, b.Maximum)
		if b.Minimum > b.Maximum {
			t.Fatalf("band inverted for %d: %v", target, b)
		}
	}
}

func TestClassifyInclusiveBounds(t *testing.T) {
	band := Band(1000)

	assert.Equal(t, Under, Classify(899, band))
	assert.Equal(t, Within, Classify(900, band))
	assert.Equal(t, Within, Classify(950, band))
	assert.Equal(t, Within, Classify(1000, band))
	assert.Equal(t, Over, Classify(1001, band))
	assert.Equal(t, Under, Classify(0, band))
}

func TestClassifyEveryLengthInBandIsWithin(t *testing.T) {
	band := Band(321)
	for n := band.Minimum; n <= band.Maximum; n++ {
		assert.Equal(t, Within, Classify(n, band), "length %d", n)
	}
}

func TestClassifyIsStable(t *testing.T) {
	band := Band(500)
	c := NewCandidate(strings.Repeat("a", 480))

	assert.Equal(t, c.Classify(band), c.Classify(band))
}

func TestClassifyCollapsedBand(t *testing.T) {
	band := LengthBand{Minimum: 3, Maximum: 3}

	assert.Equal(t, Under, Classify(2, band))
	assert.Equal(t, Within, Classify(3, band))
	assert.Equal(t, Over, Classify(4, band))
}

func TestNewCandidateCountsRunes(t *testing.T) {
	c := NewCandidate("  안녕하세요 world \n")

	assert.Equal(t, "안녕하세요 world", c.Text())
	assert.Equal(t, 11, c.Length())
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "within", Within.String())
	assert.Equal(t, "under", Under.String())
	assert.Equal(t, "over", Over.String())
	assert.Equal(t, "900-1000", Band(1000).String())
}
