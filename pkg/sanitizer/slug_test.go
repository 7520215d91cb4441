package sanitizer

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Summer Body: 5 Tips!", "summer-body-5-tips"},
		{"My App 2.0!", "my-app-20"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"already-a-slug", "already-a-slug"},
		{"many   spaces -- and_underscores", "many-spaces-and-underscores"},
		{"Café Crème", "caf-crme"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := Slugify(got); again != got {
				t.Errorf("Slugify not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"Body Contouring", "body-contouring", "", "  ", "Tips"})
	want := []string{"body-contouring", "tips"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeTags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeTags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := NormalizeTags(nil); got == nil || len(got) != 0 {
		t.Errorf("NormalizeTags(nil) = %v, want empty slice", got)
	}
}

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "keeps path", input: "https://CDN.Example.com/img/a.jpg", want: "https://cdn.example.com/img/a.jpg"},
		{name: "drops utm", input: "https://cdn.example.com/a.jpg?utm_source=x&w=800", want: "https://cdn.example.com/a.jpg?w=800"},
		{name: "drops fragment", input: "http://example.com/a.png#top", want: "http://example.com/a.png"},
		{name: "rejects other schemes", input: "javascript:alert(1)", want: ""},
		{name: "rejects relative", input: "/img/a.jpg", want: ""},
		{name: "empty", input: " ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeImageURL(tt.input); got != tt.want {
				t.Errorf("NormalizeImageURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
