package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/crunch-the-numbers/pkg/debt"
	"github.com/iwvelando/crunch-the-numbers/pkg/finance"
	"github.com/iwvelando/crunch-the-numbers/pkg/loans"
	"github.com/iwvelando/crunch-the-numbers/pkg/tax"
)

const requestYAML = `
currency: GBP
logging:
  level: debug
  format: console
output:
  format: pretty
mortgage:
  homePrice: 300000
  downPayment: 60000
  interestRate: 6.5
  termYears: 30
  loanType: purchase
debt:
  strategy: snowball
  extraPayment: 200
  currency: EUR
  debts:
    - id: card
      name: Credit card
      balance: 5000
      interestRate: 22.99
      minimumPayment: 150
    - name: Car loan
      balance: 12000
      interestRate: 6.5
      minimumPayment: 300
rentVsBuy:
  homePrice: 350000
  monthlyRent: 1500
  yearsToAnalyze: 10
salary:
  grossSalary: 60000
  country: UK
  taxCode: 1257L
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Malformed YAML",
			configPath: writeConfig(t, "mortgage: [unclosed"),
			wantError:  true,
		},
		{
			name:       "Full request",
			configPath: writeConfig(t, requestYAML),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationSections(t *testing.T) {
	config, err := LoadConfiguration(writeConfig(t, requestYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Logging.Level != "debug" || config.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", config.Logging)
	}

	if config.Mortgage == nil {
		t.Fatal("expected mortgage section")
	}
	if config.Mortgage.HomePrice != 300000 || config.Mortgage.TermYears != 30 {
		t.Errorf("unexpected mortgage inputs %+v", *config.Mortgage)
	}
	if config.Mortgage.LoanType != loans.MortgagePurchase {
		t.Errorf("expected loan type purchase, got %q", config.Mortgage.LoanType)
	}

	if config.Debt == nil {
		t.Fatal("expected debt section")
	}
	if config.Debt.Strategy != debt.Snowball {
		t.Errorf("expected snowball strategy, got %s", config.Debt.Strategy)
	}
	if len(config.Debt.Debts) != 2 || config.Debt.Debts[0].InterestRate != 22.99 {
		t.Errorf("unexpected debts %+v", config.Debt.Debts)
	}

	if config.RentBuy == nil || config.RentBuy.Years != 10 {
		t.Errorf("expected rentVsBuy section with 10 years, got %+v", config.RentBuy)
	}
	if config.Loan != nil || config.Investment != nil {
		t.Error("sections absent from the file should stay nil")
	}
}

func TestLoadConfigurationCurrencyFallback(t *testing.T) {
	config, err := LoadConfiguration(writeConfig(t, requestYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"mortgage inherits", config.Mortgage.Currency, "GBP"},
		{"debt keeps its own", config.Debt.Currency, "EUR"},
		{"rent vs buy inherits", config.RentBuy.Currency, "GBP"},
		{"salary inherits", config.Salary.Currency, "GBP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("currency = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("CRUNCH_OUTPUT_FORMAT", "CSV")

	config, err := LoadConfiguration(writeConfig(t, requestYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Output.Format != "csv" {
		t.Errorf("expected env override to csv, got %q", config.Output.Format)
	}
}

func TestLoadConfigurationBadStrategy(t *testing.T) {
	_, err := LoadConfiguration(writeConfig(t, "debt:\n  strategy: lottery\n"))
	if err == nil {
		t.Error("expected error decoding an unknown strategy")
	}
}

func TestApplyDefaults(t *testing.T) {
	config := Configuration{Loan: &loans.LoanInputs{Principal: 1000}}
	config.ApplyDefaults()

	if config.Output.Format != "pretty" {
		t.Errorf("expected default output format pretty, got %q", config.Output.Format)
	}
	if config.Loan.Currency != "" {
		t.Errorf("expected empty currency without a top-level default, got %q", config.Loan.Currency)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Configuration
		wantErr bool
	}{
		{"empty", Configuration{}, false},
		{"supported", Configuration{Currency: "JPY", Output: OutputConfig{Format: "pdf"}}, false},
		{"bad format", Configuration{Output: OutputConfig{Format: "xml"}}, true},
		{"bad top-level currency", Configuration{Currency: "XYZ"}, true},
		{"bad section currency", Configuration{Investment: &finance.InvestmentInputs{Currency: "ABC"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInputs(t *testing.T) {
	config := Configuration{
		Debt:   &debt.Inputs{ExtraPayment: 100},
		Salary: &tax.SalaryInput{GrossSalary: 50000},
	}

	inputs, err := config.Inputs(CalculatorDebtStrategies)
	if err != nil {
		t.Fatalf("Inputs() error = %v", err)
	}
	if got, ok := inputs.(*debt.Inputs); !ok || got.ExtraPayment != 100 {
		t.Errorf("expected the debt section, got %#v", inputs)
	}

	if _, err := config.Inputs(CalculatorSalary); err != nil {
		t.Errorf("Inputs(salary) error = %v", err)
	}

	_, err = config.Inputs(CalculatorMortgage)
	if !errors.Is(err, ErrMissingSection) {
		t.Errorf("expected ErrMissingSection, got %v", err)
	}

	_, err = config.Inputs("lottery")
	if !errors.Is(err, ErrUnknownCalculator) {
		t.Errorf("expected ErrUnknownCalculator, got %v", err)
	}
}

func TestNewInputs(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			inputs, err := NewInputs(name)
			if err != nil {
				t.Fatalf("NewInputs(%s) error = %v", name, err)
			}
			if inputs == nil {
				t.Fatalf("NewInputs(%s) returned nil", name)
			}
		})
	}

	if _, err := NewInputs("abacus"); !errors.Is(err, ErrUnknownCalculator) {
		t.Errorf("expected ErrUnknownCalculator, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	info, err := Lookup(CalculatorRentVsBuy)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if info.Section != "rentVsBuy" {
		t.Errorf("expected section rentVsBuy, got %q", info.Section)
	}
	if len(Names()) != len(Catalog) {
		t.Errorf("Names() length %d does not match Catalog %d", len(Names()), len(Catalog))
	}
}
