package formatters

import "testing"

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
		{"no fences here", "no fences here"},
	}
	for _, tc := range cases {
		if got := StripCodeFences(tc.in); got != tc.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractObject(t *testing.T) {
	got, ok := ExtractObject(`Here you go: {"a": {"b": 1}} hope it helps }`)
	if !ok {
		t.Fatalf("expected an object")
	}
	if got != `{"a": {"b": 1}} hope it helps }` {
		t.Fatalf("expected greedy match, got %q", got)
	}

	if _, ok := ExtractObject("nothing to see"); ok {
		t.Fatalf("expected no object")
	}
	if _, ok := ExtractObject("} backwards {"); ok {
		t.Fatalf("expected no object for reversed braces")
	}
}

func TestGetLabels(t *testing.T) {
	if l := GetLabels("en-US"); l.Language != LanguageEnglish {
		t.Fatalf("expected english, got %s", l.Language)
	}
	zh := GetLabels("")
	if zh.Language != LanguageChinese || len(zh.DefaultSuggestions) != 3 {
		t.Fatalf("unexpected default labels: %+v", zh)
	}
	zh.DefaultSuggestions[0] = "mutated"
	if GetLabels("zh").DefaultSuggestions[0] == "mutated" {
		t.Fatalf("labels must be copied")
	}
}
