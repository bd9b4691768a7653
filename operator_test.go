package gokeyset

import "testing"

func Test_Operator_Valid(t *testing.T) {
	tests := []struct {
		name  string
		in    Operator
		valid bool
	}{
		{"GT is valid", OperatorGT, true},
		{"EQ is valid", operatorEq, true},
		{"LT is not used", Operator("<"), false},
		{"garbage", Operator("; DROP"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Valid(); got != tt.valid {
				t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
			}
		})
	}
}
