package handlers

import "testing"

func TestFileNameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/maps/Old%20Mill.webp", "Old Mill.webp"},
		{"https://example.com/maps/mill.png?w=200", "mill.png"},
		{"https://example.com/", defaultImageName},
		{`C:\maps\mill.png`, "mill.png"},
		{`D:\tokens\Orc Chief.webp`, "Orc Chief.webp"},
		{"file:///C:/maps/mill.png", "mill.png"},
		{"assets/tokens/orc.png", "orc.png"},
		{"", defaultImageName},
	}
	for _, tt := range tests {
		if got := fileNameFromURL(tt.in, defaultImageName); got != tt.want {
			t.Errorf("fileNameFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMediaURLType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/a.JPEG", "image"},
		{"https://example.com/a.svg", "image"},
		{"https://example.com/a.mp4", "video"},
		{"https://example.com/a.ogv", "video"},
		{"https://example.com/a.txt", ""},
		{"https://example.com/png", ""},
	}
	for _, tt := range tests {
		if got := mediaURLType(tt.in); got != tt.want {
			t.Errorf("mediaURLType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	for in, want := range map[string]string{"goblin.png": "goblin", "a.b.c": "a", "plain": "plain"} {
		if got := baseName(in); got != want {
			t.Errorf("baseName(%q) = %q, want %q", in, got, want)
		}
	}
}
