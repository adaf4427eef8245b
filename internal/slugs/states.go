package slugs

import "strings"

// federationUnits is the fixed set of entity keys the parametrized page
// families are keyed by. Alias resolution only fires for addresses whose
// entity suffix is one of these.
var federationUnits = []string{
	"acre",
	"alagoas",
	"amapa",
	"amazonas",
	"bahia",
	"ceara",
	"distrito-federal",
	"espirito-santo",
	"goias",
	"maranhao",
	"mato-grosso",
	"mato-grosso-do-sul",
	"minas-gerais",
	"para",
	"paraiba",
	"parana",
	"pernambuco",
	"piaui",
	"rio-de-janeiro",
	"rio-grande-do-norte",
	"rio-grande-do-sul",
	"rondonia",
	"roraima",
	"santa-catarina",
	"sao-paulo",
	"sergipe",
	"tocantins",
}

var federationUnitSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(federationUnits))
	for _, unit := range federationUnits {
		set[unit] = struct{}{}
	}
	return set
}()

// compactUnits maps the hyphen-stripped form of each federation unit back to
// its key, for recognizing the long historical FAQ address shape.
var compactUnits = func() map[string]string {
	m := make(map[string]string, len(federationUnits))
	for _, unit := range federationUnits {
		m[strings.ReplaceAll(unit, "-", "")] = unit
	}
	return m
}()

// IsFederationUnit reports whether key names a known federation unit.
func IsFederationUnit(key string) bool {
	_, ok := federationUnitSet[key]
	return ok
}

// FederationUnits returns the entity key set in stable order.
func FederationUnits() []string {
	out := make([]string, len(federationUnits))
	copy(out, federationUnits)
	return out
}
