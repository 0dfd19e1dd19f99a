package model

import "testing"

func TestPeriodTypeLabel(t *testing.T) {
	tests := []struct {
		pt   PeriodType
		want string
	}{
		{PeriodSemester, "Semestre"},
		{PeriodQuarter, "Cuatrimestre"},
		{PeriodTrimester, "Trimestre"},
		{PeriodBimester, "Bimestre"},
	}
	for _, tt := range tests {
		if got := tt.pt.Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.pt, got, tt.want)
		}
	}
	if PeriodType("lustrum").Valid() {
		t.Error("unknown period type reported valid")
	}
}

func TestThemeStyles(t *testing.T) {
	for _, th := range []Theme{ThemeDefault, ThemeOcean, ThemeForest, ThemeSunset, ThemePurple} {
		if !th.Valid() {
			t.Errorf("theme %q reported invalid", th)
		}
		if th.DisplayName() == "" {
			t.Errorf("theme %q has no display name", th)
		}
	}
	if Theme("neon").Valid() {
		t.Error("unknown theme reported valid")
	}
	if got := Theme("neon").HeaderColor(); got != ThemeDefault.HeaderColor() {
		t.Errorf("unknown theme header = %+v, want default fallback", got)
	}
	if got := ThemeOcean.HeaderColor(); got != (RGB{14, 116, 144}) {
		t.Errorf("ocean header = %+v", got)
	}
}

func TestCountryName(t *testing.T) {
	if !IsValidCountry("HN") || IsValidCountry("XX") {
		t.Error("country validity check broken")
	}
	if got := CountryName("MX"); got != "México" {
		t.Errorf("CountryName(MX) = %q", got)
	}
	if got := CountryName("XX"); got != "País desconocido" {
		t.Errorf("CountryName(XX) = %q", got)
	}
}

func TestGuideHelpers(t *testing.T) {
	g := &Guide{Subjects: []Subject{
		{ID: "a", Period: 1},
		{ID: "b", Period: 3},
		{ID: "c", Period: 2},
	}}

	if got := g.MaxPeriod(); got != 3 {
		t.Errorf("MaxPeriod = %d, want 3", got)
	}
	if s := g.SubjectByID("c"); s == nil || s.Period != 2 {
		t.Errorf("SubjectByID(c) = %+v", s)
	}
	if s := g.SubjectByID("zz"); s != nil {
		t.Errorf("SubjectByID(zz) = %+v, want nil", s)
	}

	empty := &Guide{}
	if got := empty.MaxPeriod(); got != 0 {
		t.Errorf("empty MaxPeriod = %d, want 0", got)
	}
}
