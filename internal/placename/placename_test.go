package placename

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Anaheim, CA", "Anaheim, California"},
		{"Washington, DC", "Washington, District of Columbia"},
		{"San Juan, PR", "San Juan, Puerto Rico"},
		{"Cheyenne, WY", "Cheyenne, Wyoming"},
		{"Weisbaden, Germany", "Wiesbaden, Germany"},
		{"Mundo-Novo, Curacao", "Willemstad, Curacao"},
		{"Santo Domingo Centro, Dominican Republic", "Santo Domingo, Dominican Republic"},
		{"Santo Domingo Centro, CO", "Santo Domingo, Colorado"},
		{"Santo Domingo Centro, Distrito Centro", "Santo Domingo, Distrito"},
		{"Distrito Centro, Dominican Republic", "Distrito Centro, Dominican Republic"},
		{"Toronto, ON", "Toronto, ON"},
		{"Maracaibo, Venezuela", "Maracaibo, Venezuela"},
		{"Anaheim, ca", "Anaheim, ca"},
		{"CA", "California"},
		{"A", "A"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			result := Normalize(tt.raw)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.raw, result, tt.expected)
			}
		})
	}
}

func TestNormalize_EveryRegionCode(t *testing.T) {
	if len(regions) != 56 {
		t.Fatalf("expected 56 region codes, got %d", len(regions))
	}

	for code, name := range regions {
		raw := "CAMDEN, Some Town, " + code
		want := "CAMDEN, Some Town, " + name
		if got := Normalize(raw); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalize_OnlyTrailingCodeReplaced(t *testing.T) {
	// "CA" appears twice; only the trailing one is a state code.
	got := Normalize("CA Springs, CA")
	if got != "CA Springs, California" {
		t.Errorf("Normalize() = %q, want %q", got, "CA Springs, California")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Weisbaden",
		"Wiesbaden",
		"Mundo-Novo",
		"Willemstad",
		"Santo Domingo Centro",
		"Santo Domingo",
		"Anaheim, CA",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}

	if got := Normalize("Weisbaden"); got != "Wiesbaden" {
		t.Errorf("Normalize(Weisbaden) = %q", got)
	}
	if got := Normalize("Wiesbaden"); got != "Wiesbaden" {
		t.Errorf("Normalize(Wiesbaden) = %q", got)
	}
}

func TestRegionName(t *testing.T) {
	if name, ok := regionName("TX"); !ok || name != "Texas" {
		t.Errorf("regionName(TX) = %q, %v", name, ok)
	}
	if _, ok := regionName("ON"); ok {
		t.Error("regionName(ON) should not be found")
	}
}
