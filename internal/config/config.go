// Package config defines the data structures of a calculation request file
// and the functions for loading and validating it.
package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/debt"
	"github.com/iwvelando/crunch-the-numbers/pkg/finance"
	"github.com/iwvelando/crunch-the-numbers/pkg/loans"
	"github.com/iwvelando/crunch-the-numbers/pkg/tax"
	"github.com/iwvelando/crunch-the-numbers/pkg/validation"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// EnvPrefix is prepended to environment variables that override file values,
// e.g. CRUNCH_OUTPUT_FORMAT.
const EnvPrefix = "CRUNCH"

// Configuration holds one calculation request. Every calculator section is
// optional; a run only needs the section of the calculator it names.
type Configuration struct {
	// Currency is the fallback for any section that leaves its own empty.
	Currency string        `yaml:"currency,omitempty"`
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`

	Mortgage      *loans.MortgageInputs        `yaml:"mortgage,omitempty" mapstructure:"mortgage"`
	Loan          *loans.LoanInputs            `yaml:"loan,omitempty" mapstructure:"loan"`
	Debt          *debt.Inputs                 `yaml:"debt,omitempty" mapstructure:"debt"`
	DebtTarget    *debt.TargetInputs           `yaml:"debtTarget,omitempty" mapstructure:"debtTarget"`
	Investment    *finance.InvestmentInputs    `yaml:"investment,omitempty" mapstructure:"investment"`
	Retirement    *finance.RetirementInputs    `yaml:"retirement,omitempty" mapstructure:"retirement"`
	RentBuy       *finance.RentBuyInputs       `yaml:"rentVsBuy,omitempty" mapstructure:"rentVsBuy"`
	EmergencyFund *finance.EmergencyFundInputs `yaml:"emergencyFund,omitempty" mapstructure:"emergencyFund"`
	Salary        *tax.SalaryInput             `yaml:"salary,omitempty" mapstructure:"salary"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json, pdf
	// File receives the rendered report; empty means stdout.
	File string `yaml:"file,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills the output format and pushes the top-level currency
// down into every section that does not name its own.
func (c *Configuration) ApplyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	c.Output.Format = strings.ToLower(c.Output.Format)

	if c.Currency == "" {
		return
	}
	for _, code := range c.currencies() {
		if *code == "" {
			*code = c.Currency
		}
	}
}

// currencies returns the currency field of every section that is present.
func (c *Configuration) currencies() []*string {
	var codes []*string
	if c.Mortgage != nil {
		codes = append(codes, &c.Mortgage.Currency)
	}
	if c.Loan != nil {
		codes = append(codes, &c.Loan.Currency)
	}
	if c.Debt != nil {
		codes = append(codes, &c.Debt.Currency)
	}
	if c.DebtTarget != nil {
		codes = append(codes, &c.DebtTarget.Currency)
	}
	if c.Investment != nil {
		codes = append(codes, &c.Investment.Currency)
	}
	if c.Retirement != nil {
		codes = append(codes, &c.Retirement.Currency)
	}
	if c.RentBuy != nil {
		codes = append(codes, &c.RentBuy.Currency)
	}
	if c.EmergencyFund != nil {
		codes = append(codes, &c.EmergencyFund.Currency)
	}
	if c.Salary != nil {
		codes = append(codes, &c.Salary.Currency)
	}
	return codes
}

// Validate checks the settings shared by every calculator. Section inputs are
// validated when their calculator runs.
func (c *Configuration) Validate() error {
	var err error
	if c.Output.Format != "" {
		err = multierr.Append(err, validation.ValidateOutputFormat(c.Output.Format))
	}
	err = multierr.Append(err, validation.ValidateCurrency(c.Currency))
	for _, code := range c.currencies() {
		err = multierr.Append(err, validation.ValidateCurrency(*code))
	}
	return err
}
