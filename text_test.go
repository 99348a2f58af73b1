package ska

import "testing"

func TestSentence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"adds period", "parses the config", "Parses the config."},
		{"already capitalized", "Parses the config.", "Parses the config."},
		{"keeps question mark", "is this valid?", "Is this valid?"},
		{"keeps exclamation", "done!", "Done!"},
		{"trims whitespace", "  runs the job  ", "Runs the job."},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sentence(tt.input); got != tt.want {
				t.Errorf("Sentence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLower1(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Parser", "parser"},
		{"alreadyLower", "alreadyLower"},
		{"", ""},
		{"X", "x"},
	}
	for _, tt := range tests {
		if got := Lower1(tt.input); got != tt.want {
			t.Errorf("Lower1(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStripJavaComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "line comment",
			input: "int x = 1; // counter\nint y = 2;",
			want:  "int x = 1; \nint y = 2;",
		},
		{
			name:  "block comment",
			input: "int x = 1; /* a\nmultiline\ncomment */ int y = 2;",
			want:  "int x = 1;  int y = 2;",
		},
		{
			name:  "javadoc",
			input: "/** Returns the size. */\npublic int size() { return n; }",
			want:  "public int size() { return n; }",
		},
		{
			name:  "no comments",
			input: "public void run() {}",
			want:  "public void run() {}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripJavaComments(tt.input); got != tt.want {
				t.Errorf("StripJavaComments(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrettyJSON(t *testing.T) {
	got, err := PrettyJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("PrettyJSON: %v", err)
	}
	want := "{\n  \"a\": 1\n}"
	if got != want {
		t.Errorf("PrettyJSON = %q, want %q", got, want)
	}
}
