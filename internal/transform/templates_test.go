package transform

import (
	"strings"
	"testing"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []ScenarioTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	if _, ok = registry.Get("TEST_TEMPLATE"); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	if _, ok = registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	expected := []string{
		"delay_1yr", "delay_5yr", "delay_10yr",
		"appreciation_flat", "appreciation_low", "appreciation_high",
		"extra_payment_200", "extra_payment_500",
		"pay_off_mortgage", "single_borrower", "delay_5yr_extra_500",
	}
	for _, name := range expected {
		template, ok := registry.Get(name)
		if !ok {
			t.Errorf("Expected template %s to exist", name)
			continue
		}
		if len(template.Transforms) == 0 {
			t.Errorf("Template %s has no transforms", name)
		}
		if template.Description == "" {
			t.Errorf("Template %s has no description", name)
		}
	}

	names := registry.List()
	if len(names) != len(expected) {
		t.Errorf("Expected %d templates, got %d", len(expected), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("List is not sorted: %s before %s", names[i-1], names[i])
		}
	}
}

func TestBuiltInTemplates_ApplyToBase(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := createTestInput()

	for _, name := range registry.List() {
		template, _ := registry.Get(name)
		if _, err := ApplyTemplate(base, template); err != nil {
			t.Errorf("Template %s failed on the test input: %v", name, err)
		}
	}
}

func TestApplyTemplate_Combination(t *testing.T) {
	registry := CreateBuiltInTemplates()
	template, _ := registry.Get("delay_5yr_extra_500")

	result, err := ApplyTemplate(createTestInput(), template)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.ApplicationYear != 2030 {
		t.Errorf("Expected application year 2030, got %d", result.ApplicationYear)
	}
	if !result.MonthlyPayment.Equal(dec("1500")) {
		t.Errorf("Expected payment 1500, got %s", result.MonthlyPayment)
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"delay_1yr", []string{"delay_1yr"}},
		{"delay_1yr, appreciation_low ,", []string{"delay_1yr", "appreciation_low"}},
	}

	for _, tt := range tests {
		got := ParseTemplateList(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.expected, got)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("%q: expected %v, got %v", tt.input, tt.expected, got)
			}
		}
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	for _, want := range []string{"Application Timing:", "Appreciation:", "Forward Mortgage:", "Borrowers:", "Combination Strategies:", "delay_5yr", "hecm compare"} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}

	if GetTemplateHelp(NewTemplateRegistry()) != "No templates registered" {
		t.Error("Expected empty registry message")
	}
}
