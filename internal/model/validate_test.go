package model

import "testing"

func TestValidateOptimization(t *testing.T) {
	cases := []struct {
		name    string
		in      map[string]interface{}
		wantErr bool
	}{
		{"valid", map[string]interface{}{"optimizedResume": "text", "matchScore": 80.0}, false},
		{"extra fields allowed", map[string]interface{}{"optimizedResume": "text", "matchScore": 1.0, "suggestions": "x"}, false},
		{"missing resume", map[string]interface{}{"matchScore": 80.0}, true},
		{"empty resume", map[string]interface{}{"optimizedResume": "", "matchScore": 80.0}, true},
		{"score as string", map[string]interface{}{"optimizedResume": "text", "matchScore": "80"}, true},
		{"missing score", map[string]interface{}{"optimizedResume": "text"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOptimization(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateOptimization() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestClampScore(t *testing.T) {
	cases := map[float64]int{150: 100, -5: 0, 0: 0, 100: 100, 85: 85, 72.6: 73}
	for in, want := range cases {
		if got := ClampScore(in); got != want {
			t.Errorf("ClampScore(%v) = %d, want %d", in, got, want)
		}
	}
}
