package fire

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	MessageNoInformation = "Agenten kunne ikke finde nogle informationer."
	MessageNotComputed   = "Agenten kunne ikke beregne pensionsplanen. Prøv igen med andre værdier."

	ProfileURL = "https://penly.dk/opret?"
	LoginURL   = "https://auth.neway.dk/realms/neway/protocol/openid-connect/auth?client_id=penly-frontend&redirect_uri=https%3A%2F%2Fpenly.dk%2F%2Fmit-penly%2Fpension&state=e8043e15-e8cc-499d-a1c3-514b26c39c8d&response_mode=fragment&response_type=code&scope=openid&nonce=24c54004-277b-4db4-8c96-98aa0d7e6aee"
	AdvisorURL = "https://penly.dk/opret?"
)

const planTemplate = `
Hvis du sparer {savings} kr. om året i løbet af dine arbejdsår, vil din nettofortjeneste i frie midler ved din alder 95 være {result} kr.

Hvis beløbet er positivt, er du på rette vej. Hvis det er negativt, skal du enten spare mere op eller reducere dit forventede forbrug.

Vil du gerne gemme dine oplysninger, så du kan ændre på forudsætninger og lave flere beregninger? Det kræver, at du opretter en gratis Penly profil eller logge ind med din Penly profil, hvis du allerede har en Penly profil.
- [Opret Profil]({profile_url})
- [Log ind - hvis du har en profil]({login_url})

Vil du fortsætte dialogen med en Penly rådgiver, kan du booke en gratis 15-minutters møde [her]({advisor_url}):
Ved mødet kan du også få en EXCEL-fil, hvor du selv kan lege videre og præcisere din FIRE-plan.
Rådgiveren vil også kunne fortælle dig, hvis der er ting, du bør overveje for at optimere din op- og nedsparingsplan.
`

// Format renders a calculation result as the message shown to the user.
func Format(res *CalculationResult) string {
	if res == nil {
		return MessageNoInformation
	}
	if !res.Complete() {
		return MessageNotComputed
	}

	return strings.NewReplacer(
		"{savings}", FormatKroner(*res.SavingsPerYear),
		"{result}", FormatKroner(*res.NetResultAtTerminalAge),
		"{profile_url}", ProfileURL,
		"{login_url}", LoginURL,
		"{advisor_url}", AdvisorURL,
	).Replace(planTemplate)
}

// FormatKroner rounds to whole kroner (half to even) and groups thousands
// with commas, independent of locale: -5161782.4 -> "-5,161,782".
func FormatKroner(v float64) string {
	return humanize.Commaf(math.RoundToEven(v))
}
