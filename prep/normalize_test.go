package prep

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "KOLON", "kolon"},
		{"turkish diacritics", "Kolon temizliği yeterliydi", "kolon temizligi yeterliydi"},
		{"dotless i", "KISMEN yeterlı", "kismen yeterli"},
		{"dotted capital", "İleum İzlendi", "ileum izlendi"},
		{"all folded letters", "çğöşü ÇĞÖŞÜ", "cgosu cgosu"},
		{"whitespace collapse", "  kolon\t temizligi \n yeterli  ", "kolon temizligi yeterli"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeText(tc.in); got != tc.want {
				t.Fatalf("NormalizeText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"Ğ", " a  b "})
	if got[0] != "g" || got[1] != "a b" {
		t.Fatalf("NormalizeAll = %v", got)
	}
}
