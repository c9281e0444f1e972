package extraction

import (
	"reflect"
	"testing"

	"github.com/jannes/han-cihui/internal/segmentation"
)

func TestContainsHanzi(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"hanzi", "你好", true},
		{"name", "思明", true},
		{"mixed", "i am 诗文", true},
		{"english", "dance baby", false},
		{"punctuation", "。，、……", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsHanzi(tt.in); got != tt.want {
				t.Errorf("ContainsHanzi(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWordToHanzi(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"你好", []string{"你", "好"}},
		{"i am 诗文", []string{"诗", "文"}},
		{"dance", nil},
		{"第2章", []string{"第", "章"}},
	}

	for _, tt := range tests {
		if got := WordToHanzi(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("WordToHanzi(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitHanzi(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"你好", []string{"你好"}},
		{"你好/世界", []string{"你好", "世界"}},
		{"开心，高兴 喜悦", []string{"开心", "高兴", "喜悦"}},
		{"dance", nil},
		{"", nil},
	}

	for _, tt := range tests {
		if got := SplitHanzi(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitHanzi(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtract(t *testing.T) {
	seg := &segmentation.BookSegmentation{
		Cut: []string{"欢乐", "英雄", "古龙"},
		Chapters: []segmentation.ChapterSegmentation{
			{Title: "0000-第一章", Cut: []string{"第一", "章", "欢乐", "the", "。"}},
			{Title: "0001-第二章", Cut: []string{"第二", "章", "英雄", "英雄"}},
		},
	}

	res := Extract(seg)

	// "the" and "。" carry no hanzi and must not be counted.
	if _, ok := res.Items["the"]; ok {
		t.Error("non-hanzi word extracted")
	}
	if _, ok := res.Items["。"]; ok {
		t.Error("punctuation extracted")
	}

	if got := res.Items["欢乐"].Frequency; got != 2 {
		t.Errorf("欢乐 frequency = %d, want 2", got)
	}
	if got := res.Items["英雄"].Frequency; got != 3 {
		t.Errorf("英雄 frequency = %d, want 3", got)
	}

	// Book-level tokens are located in the first chapter.
	if got := res.Items["古龙"].FirstLocation; got != "0000-第一章" {
		t.Errorf("古龙 location = %q, want 0000-第一章", got)
	}
	// First occurrence wins.
	if got := res.Items["英雄"].FirstLocation; got != "0000-第一章" {
		t.Errorf("英雄 location = %q, want 0000-第一章", got)
	}
	if got := res.Items["第二"].FirstLocation; got != "0001-第二章" {
		t.Errorf("第二 location = %q, want 0001-第二章", got)
	}

	// 10 hanzi words, every one two characters except 章 (x2, one char).
	if res.WordCount != 10 {
		t.Errorf("word count = %d, want 10", res.WordCount)
	}
	if res.CharacterCount != 18 {
		t.Errorf("character count = %d, want 18", res.CharacterCount)
	}

	if got := res.CharFreq["英"]; got != 3 {
		t.Errorf("char freq 英 = %d, want 3", got)
	}
	if got := res.CharFreq["章"]; got != 2 {
		t.Errorf("char freq 章 = %d, want 2", got)
	}
}

func TestExtractEmptyBook(t *testing.T) {
	res := Extract(&segmentation.BookSegmentation{})
	if len(res.Items) != 0 || res.WordCount != 0 {
		t.Errorf("empty segmentation extracted %d items", len(res.Items))
	}
}
