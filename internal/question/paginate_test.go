package question

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate_Length(t *testing.T) {
	for n := 0; n <= 35; n++ {
		items := seq(n)
		for p := 1; p <= 6; p++ {
			want := min(QuestionsPerPage, max(0, n-QuestionsPerPage*(p-1)))
			assert.Len(t, Paginate(items, p), want, "n=%d page=%d", n, p)
		}
	}
}

func TestPaginate_Window(t *testing.T) {
	items := seq(25)

	assert.Equal(t, seq(10), Paginate(items, 1))
	assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, Paginate(items, 2))
	assert.Equal(t, []int{21, 22, 23, 24, 25}, Paginate(items, 3))
}

func TestPaginate_OutOfRange(t *testing.T) {
	items := seq(5)

	assert.Empty(t, Paginate(items, 2))
	assert.Empty(t, Paginate(items, math.MaxInt))
	assert.NotNil(t, Paginate(items, 2))
	assert.Equal(t, items, Paginate(items, 0))
	assert.Equal(t, items, Paginate(items, -3))
	assert.Empty(t, Paginate([]int{}, 1))
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":     1,
		"1":    1,
		"3":    3,
		"0":    1,
		"-2":   1,
		"abc":  1,
		"2.5":  1,
		"1000": 1000,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePage(raw), "raw=%q", raw)
	}
}
