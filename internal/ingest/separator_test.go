package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{
			name:   "comma separated",
			sample: "name,category,status\nCryptoGame,Gaming,Active\n",
			want:   ',',
		},
		{
			name:   "semicolon separated",
			sample: "name;category;status\nCryptoGame;Gaming;Active\n",
			want:   ';',
		},
		{
			name:   "tab separated",
			sample: "name\tcategory\tstatus\nCryptoGame\tGaming\tActive\n",
			want:   '\t',
		},
		{
			name:   "majority vote picks semicolon",
			sample: "a,b;c;d;e",
			want:   ';',
		},
		{
			name:   "exact tie falls back to comma",
			sample: "a,b;c,d;e",
			want:   ',',
		},
		{
			name:   "semicolon and tab tie falls back to comma",
			sample: "a;b\tc;d\te",
			want:   ',',
		},
		{
			name:   "tab beating both others wins",
			sample: "a\tb\tc\td;e,f",
			want:   '\t',
		},
		{
			name:   "no delimiters defaults to comma",
			sample: "justoneword",
			want:   ',',
		},
		{
			name:   "empty input defaults to comma",
			sample: "",
			want:   ',',
		},
		{
			name: "only the first 2000 bytes count",
			// Padding pushes the semicolons past the sniff window.
			sample: "a,b" + strings.Repeat(".", sniffWindow) + strings.Repeat(";", 100),
			want:   ',',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSeparator([]byte(tt.sample)))
		})
	}
}
