package path

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"docs/readme", "docs/readme"},
		{"./docs/readme", "docs/readme"},
		{"docs/readme/", "docs/readme"},
		{"/docs/readme", "docs/readme"},
		{"docs//readme", "docs/readme"},
		{"docs\\readme", "docs/readme"},
		{"docs/./readme", "docs/readme"},
	}
	for _, tt := range tests {
		if got := Clean(tt.input); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := []string{"readme", "docs/readme", "a/b/c"}
	for _, p := range valid {
		if err := Validate(p); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", p, err)
		}
	}

	invalid := []string{"", "/abs", "trailing/", "a//b", "a/./b", "a/../b", ".."}
	for _, p := range invalid {
		if err := Validate(p); err == nil {
			t.Errorf("Validate(%q) = nil, want error", p)
		}
	}
}
