package ir

import (
	"strings"
	"testing"
)

func TestElementKind_String(t *testing.T) {
	tests := []struct {
		kind ElementKind
		want string
	}{
		{ElementFloat, "Float"},
		{ElementInt, "Int"},
		{ElementBool, "Bool"},
		{ElementKind(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ElementKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestFormatTensorName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3", "_3"},
		{"42", "_42"},
		{"007", "_007"},
		{"x", "x"},
		{"x1", "x1"},
		{"1x", "1x"},
		{"conv_2", "conv_2"},
		{"-1", "-1"},
		{"１", "１"}, // fullwidth digit is not ASCII
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatTensorName(tt.in); got != tt.want {
				t.Errorf("FormatTensorName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTensorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		build    func(string, int) TensorDescriptor
		wantElem ElementKind
	}{
		{"float", FloatTensor, ElementFloat},
		{"int", IntTensor, ElementInt},
		{"bool", BoolTensor, ElementBool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for rank := 1; rank <= 6; rank++ {
				d := tt.build("input", rank)
				if d.Rank() != rank {
					t.Errorf("Rank() = %d, want %d", d.Rank(), rank)
				}
				if d.Elem() != tt.wantElem {
					t.Errorf("Elem() = %v, want %v", d.Elem(), tt.wantElem)
				}
				if _, ok := d.Shape(); ok {
					t.Error("Shape() reported a shape for a constructor without one")
				}
				if d.Name().String() != "input" {
					t.Errorf("Name() = %q, want %q", d.Name(), "input")
				}
			}
		})
	}
}

func TestTensorWithShape(t *testing.T) {
	shape := []int{1, 2, 3, 4}
	d := IntTensorWithShape("x", 4, shape)

	got, ok := d.Shape()
	if !ok {
		t.Fatal("Shape() reported no shape")
	}
	if len(got) != 4 || got[0] != 1 || got[3] != 4 {
		t.Errorf("Shape() = %v, want %v", got, shape)
	}

	// The descriptor owns its copy.
	shape[0] = 99
	got[1] = 99
	again, _ := d.Shape()
	if again[0] != 1 || again[1] != 2 {
		t.Errorf("Shape() = %v after caller mutation, want [1 2 3 4]", again)
	}
}

func TestTensorWithEmptyShape(t *testing.T) {
	d := FloatTensorWithShape("x", 1, []int{})
	got, ok := d.Shape()
	if !ok {
		t.Fatal("Shape() reported no shape for an empty, non-nil shape")
	}
	if len(got) != 0 {
		t.Errorf("Shape() = %v, want []", got)
	}
}

func TestNewTensor_Panics(t *testing.T) {
	tests := []struct {
		name    string
		fn      func()
		wantMsg []string
	}{
		{
			name:    "empty name",
			fn:      func() { NewTensor("", 2, ElementInt, []int{3, 4}) },
			wantMsg: []string{"empty name", "Int", "[3 4]"},
		},
		{
			name:    "empty name without shape",
			fn:      func() { FloatTensor("", 2) },
			wantMsg: []string{"empty name", "Float", "None"},
		},
		{
			name:    "zero rank",
			fn:      func() { BoolTensor("mask", 0) },
			wantMsg: []string{"rank 0", "scalar", "Bool", "None"},
		},
		{
			name:    "zero rank with shape",
			fn:      func() { FloatTensorWithShape("x", 0, []int{2}) },
			wantMsg: []string{"rank 0", "Float", "[2]"},
		},
		{
			name:    "unknown element kind",
			fn:      func() { NewTensor("x", 2, ElementKind(7), nil) },
			wantMsg: []string{"unknown element kind 7"},
		},
		{
			name:    "negative element kind",
			fn:      func() { NewTensor("x", 2, ElementKind(-1), nil) },
			wantMsg: []string{"unknown element kind -1"},
		},
		{
			name:    "negative rank",
			fn:      func() { IntTensorWithShape("idx", -1, nil) },
			wantMsg: []string{"invalid rank -1"},
		},
		{
			// The empty-name check runs before the rank check.
			name:    "empty name and zero rank",
			fn:      func() { FloatTensor("", 0) },
			wantMsg: []string{"empty name"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := mustPanic(t, tt.fn)
			if ce.Kind != KindTensor {
				t.Errorf("Kind = %v, want KindTensor", ce.Kind)
			}
			for _, want := range tt.wantMsg {
				if !strings.Contains(ce.Error(), want) {
					t.Errorf("message %q does not contain %q", ce.Error(), want)
				}
			}
		})
	}
}
