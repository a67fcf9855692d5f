package fire

// StatutoryPensionAge is sent as folkepensionsalder on every request.
// TODO: derive from birth year once the current age is replaced by a birth date.
const StatutoryPensionAge = 70

// NormalizeTaxPercentage turns a percentage into a fraction. Values above 1
// are divided by 100; anything else is assumed to be a fraction already, so
// 1.0 means 100 % and never 1 %.
func NormalizeTaxPercentage(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

type remotePayload struct {
	Manedslon          float64 `json:"manedslon"`
	Alder              int     `json:"alder"`
	PensionIndAr       float64 `json:"pensionInd_ar"`
	SkatPercentage     float64 `json:"skat_percentage"`
	ForbrugsmalMd      float64 `json:"forbrugsmal_md"`
	FrieMidler         float64 `json:"frie_midler"`
	HoldingMidler      float64 `json:"holding_midler"`
	RateAndLiv         float64 `json:"rate_and_liv"`
	Folkepensionsalder int     `json:"folkepensionsalder"`
	FireAlder          int     `json:"fire_alder"`
}

func newRemotePayload(req ValidatedCalculatorRequest) remotePayload {
	return remotePayload{
		Manedslon:          req.MonthlySalary(),
		Alder:              req.CurrentAge(),
		PensionIndAr:       req.AnnualPensionContribution(),
		SkatPercentage:     NormalizeTaxPercentage(req.TaxPercentage()),
		ForbrugsmalMd:      req.MonthlyConsumptionTarget(),
		FrieMidler:         req.FreeFundsBalance(),
		HoldingMidler:      req.HoldingCompanyBalance(),
		RateAndLiv:         req.AnnuityPensionValue(),
		Folkepensionsalder: StatutoryPensionAge,
		FireAlder:          req.TargetFireAge(),
	}
}
