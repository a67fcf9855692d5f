package fire

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// Field describes one calculator input as it appears on the wire and in the
// tool schema.
type Field struct {
	Name    string
	Desc    string
	Integer bool
	set     func(*RawCalculatorRequest, float64)
}

// Fields lists the calculator inputs in declaration order.
var Fields = []Field{
	{Name: "manedslon", Desc: "Månedsløn: monthly gross salary incl. employer pension in DKK", set: func(r *RawCalculatorRequest, v float64) { r.MonthlySalary = v }},
	{Name: "alder", Desc: "Alder: current age in whole years", Integer: true, set: func(r *RawCalculatorRequest, v float64) { r.CurrentAge = v }},
	{Name: "pensionInd_ar", Desc: "PensionInd/år: annual pension contributions (ratepension + livrente) in DKK", set: func(r *RawCalculatorRequest, v float64) { r.AnnualPensionContribution = v }},
	{Name: "skat_percentage", Desc: "Skat %: tax percentage after AM-bidrag, e.g. 37 or 0.37", set: func(r *RawCalculatorRequest, v float64) { r.TaxPercentage = v }},
	{Name: "forbrugsmal_md", Desc: "Forbrugsmål/md: monthly consumption target in DKK", set: func(r *RawCalculatorRequest, v float64) { r.MonthlyConsumptionTarget = v }},
	{Name: "frie_midler", Desc: "Frie midler: initial free funds balance in DKK", set: func(r *RawCalculatorRequest, v float64) { r.FreeFundsBalance = v }},
	{Name: "holding_midler", Desc: "Holding midler: initial holding company balance in DKK", set: func(r *RawCalculatorRequest, v float64) { r.HoldingCompanyBalance = v }},
	{Name: "rate_and_liv", Desc: "Rate + Liv: value of rate and annuity pensions in DKK", set: func(r *RawCalculatorRequest, v float64) { r.AnnuityPensionValue = v }},
	{Name: "fire_alder", Desc: "FIRE alder: target age for stopping or reducing work", Integer: true, set: func(r *RawCalculatorRequest, v float64) { r.TargetFireAge = v }},
}

// DecodeArgs builds a RawCalculatorRequest from loosely typed arguments, as
// produced by a model tool call or a JSON body. Numbers, numeric strings and
// json.Number are accepted. Absent or non-numeric values are returned as an
// ErrorReport, together with the rule violations of the fields that decoded.
func DecodeArgs(args map[string]any) (RawCalculatorRequest, error) {
	var (
		raw    RawCalculatorRequest
		report ErrorReport
	)
	for _, f := range Fields {
		value, ok := args[f.Name]
		if !ok || value == nil {
			report = append(report, FieldError{Field: f.Name, Message: "Field required"})
			continue
		}
		if _, isBool := value.(bool); isBool {
			report = append(report, FieldError{Field: f.Name, Message: "Input should be a valid number"})
			continue
		}
		n, err := cast.ToFloat64E(value)
		if err != nil {
			report = append(report, FieldError{Field: f.Name, Message: fmt.Sprintf("Input should be a valid number, got %v", value)})
			continue
		}
		f.set(&raw, n)
	}
	if len(report) == 0 {
		return raw, nil
	}

	// The fields that did decode still get their range and cross-field
	// checks, so one bad argument does not hide the others.
	if _, err := Validate(raw); err != nil {
		var ruleReport ErrorReport
		if errors.As(err, &ruleReport) {
			report = mergeReports(report, ruleReport)
		}
	}
	return RawCalculatorRequest{}, report
}

// mergeReports orders entries by Fields. A field present in decoded keeps only
// its decode entry.
func mergeReports(decoded, rules ErrorReport) ErrorReport {
	merged := make(ErrorReport, 0, len(decoded)+len(rules))
	for _, f := range Fields {
		if decoded.Has(f.Name) {
			for _, fe := range decoded {
				if fe.Field == f.Name {
					merged = append(merged, fe)
				}
			}
			continue
		}
		for _, fe := range rules {
			if fe.Field == f.Name {
				merged = append(merged, fe)
			}
		}
	}
	return merged
}
