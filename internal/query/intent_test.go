package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Intent
	}{
		{
			name:     "double-quoted name",
			question: `What do you know about "CryptoGame"?`,
			want:     Intent{Kind: KindName, Name: "CryptoGame"},
		},
		{
			name:     "single-quoted name",
			question: "Tell me about 'Meta World'",
			want:     Intent{Kind: KindName, Name: "Meta World"},
		},
		{
			name:     "quoted beats top-N",
			question: `top 3 p2e "ArtNFT"`,
			want:     Intent{Kind: KindName, Name: "ArtNFT"},
		},
		{
			name:     "tell me about",
			question: "tell me about CryptoGame",
			want:     Intent{Kind: KindName, Name: "CryptoGame"},
		},
		{
			name:     "who is",
			question: "Who is ArtNFT?",
			want:     Intent{Kind: KindName, Name: "ArtNFT"},
		},
		{
			name:     "who's contraction",
			question: "who's MetaWorld",
			want:     Intent{Kind: KindName, Name: "MetaWorld"},
		},
		{
			name:     "info on with article",
			question: "info on the MetaWorld project",
			want:     Intent{Kind: KindName, Name: "MetaWorld project"},
		},
		{
			name:     "details of",
			question: "details of ArtNFT.",
			want:     Intent{Kind: KindName, Name: "ArtNFT"},
		},
		{
			name:     "top n with score",
			question: "top 10 by p2e score",
			want:     Intent{Kind: KindTopN, N: 10},
		},
		{
			name:     "top n without by",
			question: "Top 3 p2e",
			want:     Intent{Kind: KindTopN, N: 3},
		},
		{
			name:     "top n capped at 50",
			question: "top 500 by p2e score",
			want:     Intent{Kind: KindTopN, N: 50},
		},
		{
			name:     "top without number defaults to 5",
			question: "show the top  p2e score games",
			want:     Intent{Kind: KindTopN, N: 5},
		},
		{
			name:     "list in category",
			question: "list people in Gaming",
			want:     Intent{Kind: KindListing, Term: "Gaming"},
		},
		{
			name:     "show with",
			question: "show items with NFT rewards?",
			want:     Intent{Kind: KindListing, Term: "NFT rewards"},
		},
		{
			name:     "find on blockchain",
			question: "find results on Polygon",
			want:     Intent{Kind: KindListing, Term: "Polygon"},
		},
		{
			name:     "who are",
			question: "who are people that have mobile support",
			want:     Intent{Kind: KindListing, Term: "mobile support"},
		},
		{
			name:     "generic fallback",
			question: "ethereum mobile gaming",
			want:     Intent{Kind: KindGeneric, Term: "ethereum mobile gaming"},
		},
		{
			name:     "whitespace is trimmed",
			question: "   ethereum   ",
			want:     Intent{Kind: KindGeneric, Term: "ethereum"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.question))
		})
	}
}

func TestClassify_Pure(t *testing.T) {
	q := "tell me about CryptoGame"
	assert.Equal(t, Classify(q), Classify(q))
}
