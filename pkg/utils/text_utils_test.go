package utils

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// basicfont.Face7x13 为等宽字体，每个字符 7 像素
func TestWrapText(t *testing.T) {
	face := text.NewGoXFace(basicfont.Face7x13)

	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{"fits", "Yes wins", 200, []string{"Yes wins"}},
		{"breaks at spaces", "Yes wins with 12!", 70, []string{"Yes wins", "with 12!"}},
		{"long word is split", "abcdefghijkl", 35, []string{"abcde", "fghij", "kl"}},
		{"empty", "", 100, []string{""}},
		{"zero width", "anything", 0, []string{"anything"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.input, face, tt.maxWidth)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("WrapText(%q, %v) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestWrapTextNilFace(t *testing.T) {
	got := WrapText("a b c", nil, 10)
	if len(got) != 1 || got[0] != "a b c" {
		t.Errorf("WrapText with nil face = %q", got)
	}
}
