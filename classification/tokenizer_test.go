package classification

import (
	"strings"
	"testing"
)

func TestTokenize_Placeholders(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "число перед словом валюты становится суммой",
			text: "контракт 50000 рублей",
			want: []string{stemWord("контракт"), amountToken, stemWord("рублей")},
		},
		{
			name: "число перед множителем становится суммой",
			text: "закупка 50 тысяч",
			want: []string{stemWord("закупка"), amountToken, stemWord("тысяч")},
		},
		{
			name: "число без контекста становится заполнителем",
			text: "документ 12345",
			want: []string{stemWord("документ"), numberToken},
		},
		{
			name: "дробное число с запятой",
			text: "2,5 млн",
			want: []string{amountToken, stemWord("млн")},
		},
		{
			name: "пустой текст",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, ожидалось %v", tt.text, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Tokenize(%q)[%d] = %q, ожидалось %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenize_Stemming(t *testing.T) {
	// Словоформы одного слова сводятся к одной основе
	pairs := [][2]string{
		{"контракт", "контракты"},
		{"сессия", "сессии"},
		{"закупка", "закупки"},
	}
	for _, pair := range pairs {
		a := Tokenize(pair[0])
		b := Tokenize(pair[1])
		if len(a) != 1 || len(b) != 1 {
			t.Fatalf("ожидался один токен: %v и %v", a, b)
		}
		if a[0] != b[0] {
			t.Errorf("основы %q и %q различаются: %q != %q", pair[0], pair[1], a[0], b[0])
		}
	}
}

func TestTokenize_NonCyrillic(t *testing.T) {
	// Латиница и смешанные токены не стеммируются
	got := Tokenize("44-фз test")
	if len(got) != 2 {
		t.Fatalf("Tokenize = %v, ожидалось 2 токена", got)
	}
	if got[0] != "44-фз" {
		t.Errorf("смешанный токен = %q, ожидалось %q", got[0], "44-фз")
	}
	if got[1] != "test" {
		t.Errorf("латинский токен = %q, ожидалось %q", got[1], "test")
	}
}

func TestNGrams(t *testing.T) {
	tokens := []string{"а", "б", "в"}

	tests := []struct {
		name string
		min  int
		max  int
		want []string
	}{
		{name: "униграммы", min: 1, max: 1, want: []string{"а", "б", "в"}},
		{name: "униграммы и биграммы", min: 1, max: 2, want: []string{"а", "б", "в", "а_б", "б_в"}},
		{name: "триграммы", min: 3, max: 3, want: []string{"а_б_в"}},
		{name: "диапазон длиннее текста", min: 4, max: 5, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NGrams(tokens, tt.min, tt.max)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("NGrams(%v, %d, %d) = %v, ожидалось %v", tokens, tt.min, tt.max, got, tt.want)
			}
		})
	}
}
