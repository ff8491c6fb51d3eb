package validator

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dvdk01/kuma-heartbeat/internal/schema"
)

// ConfigError reports an invalid monitor configuration. It is returned
// synchronously at construction time and never during a running schedule.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid monitor configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

type ConfigValidator struct {
	validate *validator.Validate
}

func NewConfigValidator() *ConfigValidator {
	v := validator.New()
	v.RegisterValidation("http_protocol", validateHTTPProtocol) //nolint:errcheck
	return &ConfigValidator{
		validate: v,
	}
}

func validateHTTPProtocol(fl validator.FieldLevel) bool {
	urlStr := fl.Field().String()
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return strings.HasPrefix(parsedURL.Scheme, "http")
}

// ValidateConfig checks a fully defaulted MonitorConfig and wraps any
// violation in a *ConfigError.
func (v *ConfigValidator) ValidateConfig(cfg schema.MonitorConfig) error {
	if err := v.validate.Struct(cfg); err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

func (v *ConfigValidator) ValidateURL(url string) error {
	type urlStruct struct {
		URL string `validate:"required,url,http_protocol"`
	}

	return v.validate.Struct(urlStruct{URL: url})
}

func (v *ConfigValidator) ValidateURLs(urls []string) ValidationResults {
	results := make([]ValidationResult, len(urls))

	for i, url := range urls {
		results[i] = ValidationResult{
			URL:   url,
			Index: i + 1,
			Error: v.ValidateURL(url),
		}
	}

	return results
}

type ValidationResult struct {
	URL   string
	Index int
	Error error
}

func (r ValidationResult) IsValid() bool {
	return r.Error == nil
}

type ValidationResults []ValidationResult

func (vr ValidationResults) GetInvalidURLs() []string {
	invalidURLs := make([]string, 0)
	for _, result := range vr {
		if !result.IsValid() {
			invalidURLs = append(invalidURLs, result.URL)
		}
	}
	return invalidURLs
}

func HasInvalidURLs(results ValidationResults) bool {
	for _, result := range results {
		if !result.IsValid() {
			return true
		}
	}
	return false
}
