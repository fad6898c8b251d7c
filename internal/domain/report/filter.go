package report

// FilterAll valor centinela de la UI: una lista vacía o que contiene "All"
// no filtra esa dimensión.
const FilterAll = "All"

// Filters vocabulario de filtros de los cuatro reportes. Se aplican ANTES de
// agregar: una transacción filtrada no aporta a ninguna suma.
//
// Brand no existe como atributo en el maestro de ítems; se reenvía al ERP en
// el request de transacciones y el RESTlet filtra del lado del servidor.
type Filters struct {
	Category  []string
	Vendor    []string
	Brand     []string
	Territory []string
}

// MatchItem indica si los atributos de ítem pasan los filtros de categoría y vendor.
func (f Filters) MatchItem(category, vendor string) bool {
	return matches(f.Category, category) && matches(f.Vendor, vendor)
}

// MatchTerritory indica si el territorio del cliente pasa el filtro (vista de clientes).
func (f Filters) MatchTerritory(territory string) bool {
	return matches(f.Territory, territory)
}

// Active devuelve los valores de una lista de filtro sin el centinela "All";
// nil significa "sin filtro en esta dimensión".
func Active(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	for _, v := range values {
		if v == FilterAll {
			return nil
		}
	}
	return values
}

func matches(filter []string, value string) bool {
	active := Active(filter)
	if active == nil {
		return true
	}
	for _, v := range active {
		if v == value {
			return true
		}
	}
	return false
}
