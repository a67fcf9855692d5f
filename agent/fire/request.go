package fire

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RawCalculatorRequest carries the nine calculator inputs exactly as the
// caller supplied them. Nothing is checked until Validate.
type RawCalculatorRequest struct {
	MonthlySalary             float64 `json:"manedslon" validate:"finite,gt=0"`
	CurrentAge                float64 `json:"alder" validate:"finite,whole,gte=18,lte=100"`
	AnnualPensionContribution float64 `json:"pensionInd_ar" validate:"finite,gte=0"`
	TaxPercentage             float64 `json:"skat_percentage" validate:"finite,gte=0,lte=100"`
	MonthlyConsumptionTarget  float64 `json:"forbrugsmal_md" validate:"finite,gt=0"`
	FreeFundsBalance          float64 `json:"frie_midler" validate:"finite,gte=0"`
	HoldingCompanyBalance     float64 `json:"holding_midler" validate:"finite,gte=0"`
	AnnuityPensionValue       float64 `json:"rate_and_liv" validate:"finite,gte=0"`
	TargetFireAge             float64 `json:"fire_alder" validate:"finite,whole,gte=18,lte=100,gtfield=CurrentAge"`
}

// ValidatedCalculatorRequest is only obtainable through Validate and cannot be
// changed afterwards.
type ValidatedCalculatorRequest struct {
	monthlySalary             float64
	currentAge                int
	annualPensionContribution float64
	taxPercentage             float64
	monthlyConsumptionTarget  float64
	freeFundsBalance          float64
	holdingCompanyBalance     float64
	annuityPensionValue       float64
	targetFireAge             int
}

func (v ValidatedCalculatorRequest) MonthlySalary() float64             { return v.monthlySalary }
func (v ValidatedCalculatorRequest) CurrentAge() int                    { return v.currentAge }
func (v ValidatedCalculatorRequest) AnnualPensionContribution() float64 { return v.annualPensionContribution }
func (v ValidatedCalculatorRequest) TaxPercentage() float64             { return v.taxPercentage }
func (v ValidatedCalculatorRequest) MonthlyConsumptionTarget() float64  { return v.monthlyConsumptionTarget }
func (v ValidatedCalculatorRequest) FreeFundsBalance() float64          { return v.freeFundsBalance }
func (v ValidatedCalculatorRequest) HoldingCompanyBalance() float64     { return v.holdingCompanyBalance }
func (v ValidatedCalculatorRequest) AnnuityPensionValue() float64       { return v.annuityPensionValue }
func (v ValidatedCalculatorRequest) TargetFireAge() int                 { return v.targetFireAge }

// Raw returns the field values the request was built from.
func (v ValidatedCalculatorRequest) Raw() RawCalculatorRequest {
	return RawCalculatorRequest{
		MonthlySalary:             v.monthlySalary,
		CurrentAge:                float64(v.currentAge),
		AnnualPensionContribution: v.annualPensionContribution,
		TaxPercentage:             v.taxPercentage,
		MonthlyConsumptionTarget:  v.monthlyConsumptionTarget,
		FreeFundsBalance:          v.freeFundsBalance,
		HoldingCompanyBalance:     v.holdingCompanyBalance,
		AnnuityPensionValue:       v.annuityPensionValue,
		TargetFireAge:             float64(v.targetFireAge),
	}
}

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f)
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks every field of raw and reports all violations at once.
// The returned error is always an ErrorReport.
func Validate(raw RawCalculatorRequest) (ValidatedCalculatorRequest, error) {
	if err := inputValidator.Struct(raw); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return ValidatedCalculatorRequest{}, ErrorReport{{Field: "request", Message: err.Error()}}
		}
		report := make(ErrorReport, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			report = append(report, FieldError{Field: fe.Field(), Message: ruleMessage(fe)})
		}
		return ValidatedCalculatorRequest{}, report
	}

	return ValidatedCalculatorRequest{
		monthlySalary:             raw.MonthlySalary,
		currentAge:                int(raw.CurrentAge),
		annualPensionContribution: raw.AnnualPensionContribution,
		taxPercentage:             raw.TaxPercentage,
		monthlyConsumptionTarget:  raw.MonthlyConsumptionTarget,
		freeFundsBalance:          raw.FreeFundsBalance,
		holdingCompanyBalance:     raw.HoldingCompanyBalance,
		annuityPensionValue:       raw.AnnuityPensionValue,
		targetFireAge:             int(raw.TargetFireAge),
	}, nil
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "finite":
		return "Input should be a finite number"
	case "whole":
		return "Input should be a valid integer, got a number with a fractional part"
	case "gt":
		return "Input should be greater than " + fe.Param()
	case "gte":
		return "Input should be greater than or equal to " + fe.Param()
	case "lte":
		return "Input should be less than or equal to " + fe.Param()
	case "gtfield":
		return "FIRE age must be greater than current age"
	default:
		return fmt.Sprintf("Input failed the %q rule", fe.Tag())
	}
}
