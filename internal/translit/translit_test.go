package translit

import (
	"strings"
	"testing"

	"golang.org/x/text/transform"
)

func TestEngine_Ukrainian(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Океан Ельзи", "Okean Elʹzy"},
		{"Веселі, Бідні Та Злі", "Veseli, Bidni Ta Zli"},
		{"Калина", "Kalyna"},
		{"Їжак", "Yizhak"},
		{"Ґанок", "Ganok"},
		{"Щука", "Shchuka"},
		{"ЩУКА", "SHCHUKA"},
		{"Згода", "Z·hoda"},
		{"Хмельницький", "Khmelʹnytsʹkyy"},
		{"Є", "Ye"},
		{"м'ята", "m”yata"},
		{"Kalyna", "Kalyna"},
		{"", ""},
		{"Бумбокс - Вахтерам (2006)", "Bumboks - Vakhteram (2006)"},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := engine.Transliterate(ScriptUkrainian, tt.input)
			if got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEngine_Russian(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Кино", "Kino"},
		{"Ёлка", "Yëlka"},
		{"Пётр", "Pëtr"},
		{"Елена", "Yelena"},
		{"Съезд", "Sˮyezd"},
		{"Моё", "Moyë"},
		{"Детство", "Det·stvo"},
		{"Гражданская Оборона", "Grazhdanskaya Oborona"},
		{"Ы", "Y"},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := engine.Transliterate(ScriptRussian, tt.input)
			if got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEngine_LatinPassthrough(t *testing.T) {
	engine := NewEngine()
	inputs := []string{"Kalyna", "Rock'n'Roll", "AC/DC - T.N.T.", "Sigur Rós"}
	for _, script := range Scripts() {
		for _, in := range inputs {
			if got := engine.Transliterate(script, in); got != in {
				t.Errorf("%s: Transliterate(%q) = %q, want unchanged", script, in, got)
			}
		}
	}
}

func TestEngine_Idempotent(t *testing.T) {
	engine := NewEngine()
	inputs := []string{"Океан Ельзи", "Веселі, Бідні Та Злі", "м'ята", "Съезд", "Mixed Кино text"}
	for _, script := range Scripts() {
		for _, in := range inputs {
			once := engine.Transliterate(script, in)
			twice := engine.Transliterate(script, once)
			if once != twice {
				t.Errorf("%s: %q -> %q -> %q, want a fixed point", script, in, once, twice)
			}
		}
	}
}

func TestEngine_DecomposedInput(t *testing.T) {
	// "й" written as "и" + combining breve.
	got := NewEngine().Transliterate(ScriptUkrainian, "Марй")
	if got != "Mary" {
		t.Errorf("got %q, want %q", got, "Mary")
	}
}

func TestEngine_UnknownScript(t *testing.T) {
	got := NewEngine().Transliterate(Script("klingon"), "Кино")
	if got != "Кино" {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestEngine_LongInput(t *testing.T) {
	// Longer than transform's internal buffers, to exercise chunking.
	in := strings.Repeat("Щедрик щедрик щедрівочка ", 200)
	want := strings.Repeat("Shchedryk shchedryk shchedrivochka ", 200)
	if got := NewEngine().Transliterate(ScriptUkrainian, in); got != want {
		t.Errorf("long input mismatch: got %d bytes, want %d bytes", len(got), len(want))
	}
}

func TestTransformer_SmallDst(t *testing.T) {
	tr := &transformer{table: ukrainianBGN}
	dst := make([]byte, 2)
	_, nSrc, err := tr.Transform(dst, []byte("Щ"), true)
	if err != transform.ErrShortDst {
		t.Fatalf("err = %v, want ErrShortDst", err)
	}
	if nSrc != 0 {
		t.Errorf("nSrc = %d, want 0", nSrc)
	}
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		input   string
		want    Script
		wantErr bool
	}{
		{"ukrainian", ScriptUkrainian, false},
		{"Ukrainian-Latin/BGN", ScriptUkrainian, false},
		{"RUSSIAN", ScriptRussian, false},
		{"Russian-Latin/BGN", ScriptRussian, false},
		{"serbian", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScript(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScript(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseScript(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScript_ID(t *testing.T) {
	if got := ScriptUkrainian.ID(); got != "Ukrainian-Latin/BGN" {
		t.Errorf("ID() = %q", got)
	}
	if got := ScriptRussian.ID(); got != "Russian-Latin/BGN" {
		t.Errorf("ID() = %q", got)
	}
}
