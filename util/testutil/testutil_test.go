package testutil

import (
	"reflect"
	"testing"
)

func TestJS(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want string
	}{
		{
			name: "record",
			arg:  map[string]interface{}{"likes": "tacos"},
			want: `{"likes":"tacos"}`,
		},
		{
			name: "sequence",
			arg:  []interface{}{1.0, "two"},
			want: `[1,"two"]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JS(tt.arg); got != tt.want {
				t.Errorf("JS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDwimjs(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want interface{}
	}{
		{
			name: "JSON string",
			arg:  `{"n":3}`,
			want: map[string]interface{}{"n": float64(3)},
		},
		{
			name: "JSON bytes",
			arg:  []byte(`["a","b"]`),
			want: []interface{}{"a", "b"},
		},
		{
			name: "non-JSON string",
			arg:  "hello world",
			want: "hello world",
		},
		{
			name: "other value",
			arg:  12345,
			want: 12345,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dwimjs(tt.arg); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dwimjs() = %v, want %v", got, tt.want)
			}
		})
	}
}
