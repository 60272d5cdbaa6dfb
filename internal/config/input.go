package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultHorizonYears is used when the projection section omits horizon_years
const DefaultHorizonYears = 30

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses and validates a YAML configuration
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// applyDefaults fills optional fields the engine expects to be explicit
func (ip *InputParser) applyDefaults(config *domain.Configuration) {
	if config.Projection.HorizonYears == nil {
		horizon := DefaultHorizonYears
		config.Projection.HorizonYears = &horizon
	}
	if config.Property.Type == "" {
		config.Property.Type = string(domain.PropertySingleFamily)
	}
	if config.Property.PrimaryResidence == nil {
		primary := true
		config.Property.PrimaryResidence = &primary
	}
	if m := config.Mortgage; m != nil && m.StartYear == 0 {
		m.StartYear = config.ApplicationYear
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.ApplicationYear < 1900 || config.ApplicationYear > 2200 {
		return fmt.Errorf("application_year must be between 1900 and 2200, got %d", config.ApplicationYear)
	}
	if err := ip.validateBorrower(&config.Borrower); err != nil {
		return fmt.Errorf("borrower validation failed: %w", err)
	}
	if err := ip.validateProperty(&config.Property); err != nil {
		return fmt.Errorf("property validation failed: %w", err)
	}
	if config.Mortgage != nil {
		if err := ip.validateMortgage(config.Mortgage, config.ApplicationYear); err != nil {
			return fmt.Errorf("mortgage validation failed: %w", err)
		}
	}
	if err := ip.validateProjection(&config.Projection); err != nil {
		return fmt.Errorf("projection validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateBorrower(b *domain.BorrowerConfig) error {
	if b.Age <= 0 || b.Age > 120 {
		return fmt.Errorf("age must be between 1 and 120, got %d", b.Age)
	}
	if b.SpouseAge != nil && (*b.SpouseAge <= 0 || *b.SpouseAge > 120) {
		return fmt.Errorf("spouse_age must be between 1 and 120, got %d", *b.SpouseAge)
	}
	return nil
}

func (ip *InputParser) validateProperty(p *domain.PropertyConfig) error {
	if _, err := domain.ParsePropertyType(p.Type); err != nil {
		return err
	}
	if p.CurrentValue.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("current_value must be positive")
	}
	if p.AppreciationRate.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return fmt.Errorf("appreciation_rate must be greater than -100%%")
	}
	if p.AppreciationRate.GreaterThan(decimal.NewFromInt(50)) {
		return fmt.Errorf("appreciation_rate above 50%% is not plausible, got %s%%", p.AppreciationRate)
	}
	return nil
}

func (ip *InputParser) validateMortgage(m *domain.MortgageConfig, applicationYear int) error {
	if m.Balance.IsNegative() {
		return fmt.Errorf("balance cannot be negative")
	}
	if m.InterestRate.IsNegative() {
		return fmt.Errorf("interest_rate cannot be negative")
	}
	if m.InterestRate.GreaterThan(decimal.NewFromInt(30)) {
		return fmt.Errorf("interest_rate above 30%% is not plausible, got %s%%", m.InterestRate)
	}
	if m.Balance.IsPositive() && m.TermYears <= 0 {
		return fmt.Errorf("term_years must be positive when a balance is owed")
	}
	if m.TermYears > 50 {
		return fmt.Errorf("term_years must be 50 or less, got %d", m.TermYears)
	}
	if m.StartYear > applicationYear {
		return fmt.Errorf("start_year %d is after application_year %d", m.StartYear, applicationYear)
	}
	if m.MonthlyPayment.IsNegative() {
		return fmt.Errorf("monthly_payment cannot be negative")
	}
	if m.PrincipalPaid.IsNegative() {
		return fmt.Errorf("principal_paid cannot be negative")
	}
	if m.PrincipalPaid.GreaterThan(m.Balance) {
		return fmt.Errorf("principal_paid %s exceeds balance %s", m.PrincipalPaid, m.Balance)
	}
	return nil
}

func (ip *InputParser) validateProjection(p *domain.ProjectionConfig) error {
	if h := p.Horizon(); h < 0 || h > 100 {
		return fmt.Errorf("horizon_years must be between 0 and 100, got %d", h)
	}
	if p.ExpectedRate.IsNegative() {
		return fmt.Errorf("expected_rate cannot be negative")
	}
	return nil
}
