package text

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "空字符串",
			input:    "",
			expected: nil,
		},
		{
			name:     "转小写并剔除标点",
			input:    "The Left Hand of Darkness!",
			expected: []string{"left", "hand", "darkness"},
		},
		{
			name:     "短 token 被丢弃",
			input:    "a an of to go",
			expected: []string{},
		},
		{
			name:     "停用词被丢弃",
			input:    "the story about books and reading",
			expected: []string{},
		},
		{
			name:     "数字保留",
			input:    "catch 22 and 1984 classics",
			expected: []string{"catch", "1984", "classics"},
		},
		{
			name:     "连字符按分隔处理",
			input:    "self-discovery coming-of-age",
			expected: []string{"self", "discovery", "coming", "age"},
		},
		{
			name:     "非 ASCII 字符被剔除",
			input:    "café résumé",
			expected: []string{"caf", "sum"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsStopword(t *testing.T) {
	if !IsStopword("book") {
		t.Error("book 应是停用词（书目领域泛化词）")
	}
	if !IsStopword("the") {
		t.Error("the 应是停用词")
	}
	if IsStopword("dragon") {
		t.Error("dragon 不应是停用词")
	}
}
