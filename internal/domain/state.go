package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StateCode is the two-letter abbreviation of a Brazilian federative unit
type StateCode string

const (
	AC StateCode = "AC"
	AL StateCode = "AL"
	AP StateCode = "AP"
	AM StateCode = "AM"
	BA StateCode = "BA"
	CE StateCode = "CE"
	DF StateCode = "DF"
	ES StateCode = "ES"
	GO StateCode = "GO"
	MA StateCode = "MA"
	MT StateCode = "MT"
	MS StateCode = "MS"
	MG StateCode = "MG"
	PA StateCode = "PA"
	PB StateCode = "PB"
	PR StateCode = "PR"
	PE StateCode = "PE"
	PI StateCode = "PI"
	RJ StateCode = "RJ"
	RN StateCode = "RN"
	RS StateCode = "RS"
	RO StateCode = "RO"
	RR StateCode = "RR"
	SC StateCode = "SC"
	SP StateCode = "SP"
	SE StateCode = "SE"
	TO StateCode = "TO"
)

var allStates = []StateCode{
	AC, AL, AP, AM, BA, CE, DF, ES, GO, MA, MT, MS, MG, PA,
	PB, PR, PE, PI, RJ, RN, RS, RO, RR, SC, SP, SE, TO,
}

var stateNames = map[StateCode]string{
	AC: "Acre",
	AL: "Alagoas",
	AP: "Amapá",
	AM: "Amazonas",
	BA: "Bahia",
	CE: "Ceará",
	DF: "Distrito Federal",
	ES: "Espírito Santo",
	GO: "Goiás",
	MA: "Maranhão",
	MT: "Mato Grosso",
	MS: "Mato Grosso do Sul",
	MG: "Minas Gerais",
	PA: "Pará",
	PB: "Paraíba",
	PR: "Paraná",
	PE: "Pernambuco",
	PI: "Piauí",
	RJ: "Rio de Janeiro",
	RN: "Rio Grande do Norte",
	RS: "Rio Grande do Sul",
	RO: "Rondônia",
	RR: "Roraima",
	SC: "Santa Catarina",
	SP: "São Paulo",
	SE: "Sergipe",
	TO: "Tocantins",
}

// namesIndex maps folded state names to their codes
var namesIndex = func() map[string]StateCode {
	idx := make(map[string]StateCode, len(stateNames))
	for code, name := range stateNames {
		idx[foldName(name)] = code
	}
	return idx
}()

var whitespaceRegex = regexp.MustCompile(`\s+`)

// AllStates returns the 27 state codes in their conventional order.
// The returned slice is a copy.
func AllStates() []StateCode {
	out := make([]StateCode, len(allStates))
	copy(out, allStates)
	return out
}

// IsKnown reports whether the code belongs to the closed set of 27 units
func (s StateCode) IsKnown() bool {
	_, ok := stateNames[s]
	return ok
}

// Name returns the full state name, or an empty string for unknown codes
func (s StateCode) Name() string {
	return stateNames[s]
}

func (s StateCode) String() string {
	return string(s)
}

// ParseStateCode accepts a two-letter code in any case or a full state
// name, ignoring accents and surrounding whitespace.
func ParseStateCode(raw string) (StateCode, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("state is required")
	}

	code := StateCode(strings.ToUpper(trimmed))
	if code.IsKnown() {
		return code, nil
	}

	if code, ok := namesIndex[foldName(trimmed)]; ok {
		return code, nil
	}

	return "", &UnknownStateError{State: StateCode(trimmed)}
}

// foldName strips diacritics, upper-cases and collapses whitespace
func foldName(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToUpper(folded)
	folded = whitespaceRegex.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}
