package discovery

import (
	"reflect"
	"testing"
)

func TestHead_String(t *testing.T) {
	head := &Head{
		Serial:   "23074101",
		Hostname: "stereohead23074101.local",
		IP:       "192.168.10.31",
		Port:     3956,
	}

	expected := "Stereo head 23074101 (stereohead23074101.local) at 192.168.10.31:3956"
	if head.String() != expected {
		t.Errorf("Head.String() = %v, want %v", head.String(), expected)
	}
}

func TestHead_GetMetadata(t *testing.T) {
	head := &Head{
		Metadata: map[string]string{
			"model": "OakD-Pro",
			"fw":    "2.8.1",
		},
	}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "existing key",
			key:      "model",
			expected: "OakD-Pro",
		},
		{
			name:     "another existing key",
			key:      "fw",
			expected: "2.8.1",
		},
		{
			name:     "non-existent key",
			key:      "missing",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := head.GetMetadata(tt.key); got != tt.expected {
				t.Errorf("Head.GetMetadata(%v) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestHead_GetMetadata_NilMap(t *testing.T) {
	head := &Head{
		Metadata: nil,
	}

	if got := head.GetMetadata("anything"); got != "" {
		t.Errorf("Head.GetMetadata() with nil map = %v, want empty string", got)
	}
}

func TestSerials(t *testing.T) {
	tests := []struct {
		name  string
		heads []*Head
		want  []string
	}{
		{
			name: "ordered unique serials",
			heads: []*Head{
				{Serial: "SN1"},
				{Serial: "SN2"},
				{Serial: "SN3"},
			},
			want: []string{"SN1", "SN2", "SN3"},
		},
		{
			name: "duplicate advertisements collapse to first sighting",
			heads: []*Head{
				{Serial: "SN2"},
				{Serial: "SN1"},
				{Serial: "SN2"},
				{Serial: "SN1"},
			},
			want: []string{"SN2", "SN1"},
		},
		{
			name: "empty serials dropped",
			heads: []*Head{
				{Serial: ""},
				{Serial: "SN1"},
			},
			want: []string{"SN1"},
		},
		{
			name:  "no heads",
			heads: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Serials(tt.heads); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Serials() = %v, want %v", got, tt.want)
			}
		})
	}
}
