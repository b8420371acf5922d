package textnorm

import (
	"reflect"
	"testing"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple words",
			input: "use chatgpt",
			want:  []string{"use", "chatgpt"},
		},
		{
			name:  "trims and lowercases",
			input: "  Usa ECO  ",
			want:  []string{"usa", "eco"},
		},
		{
			name:  "punctuation becomes separators",
			input: "switch, to: hugging-face!",
			want:  []string{"switch", "to", "hugging", "face"},
		},
		{
			name:  "apostrophes split tokens",
			input: "today's news",
			want:  []string{"today", "s", "news"},
		},
		{
			name:  "accented vowels survive",
			input: "passa a perplessità",
			want:  []string{"passa", "a", "perplessità"},
		},
		{
			name:  "digits survive",
			input: "use gpt4",
			want:  []string{"use", "gpt4"},
		},
		{
			name:  "collapses whitespace runs",
			input: "use   \t  speaker",
			want:  []string{"use", "speaker"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   \n ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokens_Deterministic(t *testing.T) {
	input := "Usa il calendario Notion, per favore"
	first := Tokens(input)
	second := Tokens(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Tokens not deterministic: %v vs %v", first, second)
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("use hugging face")
	for _, tok := range []string{"use", "hugging", "face"} {
		if _, ok := set[tok]; !ok {
			t.Errorf("TokenSet missing %q", tok)
		}
	}
	if len(set) != 3 {
		t.Errorf("TokenSet size = %d, want 3", len(set))
	}

	if TokenSet("") != nil {
		t.Error("TokenSet(\"\") should be nil")
	}
}
