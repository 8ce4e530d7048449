package keys

import "testing"

func TestTranslateCursorKeysNormalMode(t *testing.T) {
	cases := map[Key]string{
		KeyUp:    "\x1b[A",
		KeyDown:  "\x1b[B",
		KeyRight: "\x1b[C",
		KeyLeft:  "\x1b[D",
		KeyHome:  "\x1b[H",
		KeyEnd:   "\x1b[F",
	}
	for key, want := range cases {
		if got := string(Translate(key, false)); got != want {
			t.Errorf("Translate(%v, false) = %q, want %q", key, got, want)
		}
	}
}

func TestTranslateCursorKeysApplicationMode(t *testing.T) {
	cases := map[Key]string{
		KeyUp:    "\x1bOA",
		KeyDown:  "\x1bOB",
		KeyRight: "\x1bOC",
		KeyLeft:  "\x1bOD",
		KeyHome:  "\x1bOH",
		KeyEnd:   "\x1bOF",
	}
	for key, want := range cases {
		if got := string(Translate(key, true)); got != want {
			t.Errorf("Translate(%v, true) = %q, want %q", key, got, want)
		}
	}
}

func TestTranslateFixedSequencesIgnoreApplicationMode(t *testing.T) {
	for _, appMode := range []bool{false, true} {
		if got := string(Translate(KeyDelete, appMode)); got != "\x1b[3~" {
			t.Errorf("Translate(KeyDelete, %v) = %q, want %q", appMode, got, "\x1b[3~")
		}
		if got := string(Translate(KeyF5, appMode)); got != "\x1b[15~" {
			t.Errorf("Translate(KeyF5, %v) = %q, want %q", appMode, got, "\x1b[15~")
		}
	}
}

func TestTranslateUnknownKeyIsEmpty(t *testing.T) {
	if got := Translate(KeyUnknown, false); got != nil {
		t.Errorf("Translate(KeyUnknown, false) = %q, want nil", got)
	}
}

func TestTranslateRunePassesThrough(t *testing.T) {
	if got := string(TranslateRune('a')); got != "a" {
		t.Errorf("TranslateRune('a') = %q, want %q", got, "a")
	}
	if got := string(TranslateRune('é')); got != "é" {
		t.Errorf("TranslateRune('é') = %q, want %q", got, "é")
	}
}
