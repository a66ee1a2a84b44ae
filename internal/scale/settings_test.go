package scale

import "testing"

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"defaults", DefaultSettings, false},
		{"oklab", Settings{Prefix: "--tw-color", Space: "oklab"}, false},
		{"srgb-linear", Settings{Prefix: "--c", Space: "srgb-linear"}, false},
		{"missing dashes", Settings{Prefix: "color", Space: "oklch"}, true},
		{"bare dashes", Settings{Prefix: "--", Space: "oklch"}, true},
		{"unknown space", Settings{Prefix: "--color", Space: "cmyk"}, true},
		{"empty", Settings{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsExpression(t *testing.T) {
	s := DefaultSettings

	tests := []struct {
		name  string
		blend Blend
		want  string
	}{
		{"direct", Blend{First: At(500), Percent: 100}, "var(--color-red-500)"},
		{"toward white", Blend{First: At(50), Second: White, Percent: 30}, "color-mix(in oklch,var(--color-red-50) 30%,white)"},
		{"toward black", Blend{First: Black, Second: At(950), Percent: 12}, "color-mix(in oklch,black 12%,var(--color-red-950))"},
		{"fractional percent", Blend{First: At(200), Second: At(100), Percent: 12.5}, "color-mix(in oklch,var(--color-red-200) 12.5%,var(--color-red-100))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Expression("red", tt.blend); got != tt.want {
				t.Errorf("Expression() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{23, "23"},
		{100, "100"},
		{12.5, "12.5"},
		{33.333333333333336, "33.333333333333336"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSettingsReference(t *testing.T) {
	s := Settings{Prefix: "--tw", Space: "oklab"}
	if got := s.Reference("red", 500); got != "var(--tw-red-500)" {
		t.Errorf("Reference() = %q", got)
	}
	if got := s.Var("brand-light"); got != "var(--tw-brand-light)" {
		t.Errorf("Var() = %q", got)
	}
}
