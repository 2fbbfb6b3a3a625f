package ipaddr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sep   byte
		want  []string
	}{
		{name: "empty", input: "", sep: '.', want: []string{""}},
		{name: "no separator", input: "11", sep: '.', want: []string{"11"}},
		{name: "only separators", input: "..", sep: '.', want: []string{"", "", ""}},
		{name: "trailing separator", input: "11.", sep: '.', want: []string{"11", ""}},
		{name: "leading separator", input: ".11", sep: '.', want: []string{"", "11"}},
		{name: "two fields", input: "11.22", sep: '.', want: []string{"11", "22"}},
		{name: "tab fields", input: "1.2.3.4\t5\t6", sep: '\t', want: []string{"1.2.3.4", "5", "6"}},
		{name: "consecutive tabs", input: "a\t\tb", sep: '\t', want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.input, tt.sep))
		})
	}
}

func FuzzSplit(f *testing.F) {
	f.Add("", byte('.'))
	f.Add("1.2.3.4", byte('.'))
	f.Add("..", byte('.'))
	f.Add("a\tb\t", byte('\t'))

	f.Fuzz(func(t *testing.T, s string, sep byte) {
		fields := Split(s, sep)
		if got, want := len(fields), strings.Count(s, string([]byte{sep}))+1; got != want {
			t.Fatalf("Split(%q, %q) returned %d fields, want %d", s, sep, got, want)
		}
		if joined := strings.Join(fields, string([]byte{sep})); joined != s {
			t.Fatalf("Split(%q, %q) rejoined to %q", s, sep, joined)
		}
	})
}
