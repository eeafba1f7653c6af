package classification

// Коды намерений пользовательских запросов
const (
	IntentCreateContract       = "create_contract"
	IntentCreateKS             = "create_ks"
	IntentCreateZakupka        = "create_zakupka"
	IntentSearchDocs           = "search_docs"
	IntentSearchCompany        = "search_company"
	IntentCreateCompanyProfile = "create_company_profile"
	IntentHelp                 = "help"
	IntentError                = "error"
)

var intentNames = map[string]string{
	IntentCreateContract:       "Создание контракта",
	IntentCreateKS:             "Создание котировочной сессии",
	IntentCreateZakupka:        "Создание закупки",
	IntentSearchDocs:           "Поиск документов",
	IntentSearchCompany:        "Поиск компании",
	IntentCreateCompanyProfile: "Создание профиля компании",
	IntentHelp:                 "Справка",
	IntentError:                "Ошибка",
}

var intentOrder = []string{
	IntentCreateContract,
	IntentCreateKS,
	IntentCreateZakupka,
	IntentSearchDocs,
	IntentSearchCompany,
	IntentCreateCompanyProfile,
	IntentHelp,
	IntentError,
}

// Intents возвращает коды всех известных намерений в фиксированном порядке
func Intents() []string {
	out := make([]string, len(intentOrder))
	copy(out, intentOrder)
	return out
}

// DisplayName возвращает человекочитаемое имя намерения
func DisplayName(code string) string {
	if name, ok := intentNames[code]; ok {
		return name
	}
	return code
}

// IntentNames возвращает отображение код -> человекочитаемое имя
func IntentNames() map[string]string {
	out := make(map[string]string, len(intentNames))
	for code, name := range intentNames {
		out[code] = name
	}
	return out
}
