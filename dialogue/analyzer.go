package dialogue

import (
	"strings"

	"intentserver/classification"
	"intentserver/extraction"
	"intentserver/normalization"
)

// MLData сведения классификатора, сопровождающие ответ анализа
type MLData struct {
	Intent     string                 `json:"intent"`
	Confidence float64                `json:"confidence"`
	Entities   map[string]string      `json:"entities"`
	Details    *classification.Result `json:"details,omitempty"`
}

// ResponsePayload типизированный исход анализа запроса
type ResponsePayload struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// AnalysisResult ответ составной операции анализа запроса
type AnalysisResult struct {
	Status   string          `json:"status"`
	Response ResponsePayload `json:"response"`
	MLData   MLData          `json:"ml_data"`
}

// Analyzer объединяет нормализатор, экстрактор и классификатор
// в составную операцию анализа пользовательского запроса
type Analyzer struct {
	normalizer *normalization.Normalizer
	extractor  *extraction.Extractor
	classifier *classification.Classifier
}

// NewAnalyzer создает анализатор поверх готовых компонентов
func NewAnalyzer(normalizer *normalization.Normalizer, extractor *extraction.Extractor, classifier *classification.Classifier) *Analyzer {
	return &Analyzer{
		normalizer: normalizer,
		extractor:  extractor,
		classifier: classifier,
	}
}

// Analyze выполняет полный цикл: нормализация, классификация, извлечение
// сущностей и диспетчеризация по намерению. Возвращает ошибку только
// при недоступности модели; остальные сбои отражаются в статусе ответа
func (a *Analyzer) Analyze(text string, detailed bool) (*AnalysisResult, error) {
	normalized := a.normalizer.Normalize(text)

	classified, err := a.classifier.Classify(normalized, detailed)
	if err != nil {
		return nil, err
	}

	entities := a.extractor.Extract(normalized)

	mlData := MLData{
		Intent:     classified.Intent,
		Confidence: classified.Confidence,
		Entities:   entities,
	}
	if detailed {
		mlData.Details = classified
	}

	result := a.dispatch(classified.Intent, normalized, entities)
	result.MLData = mlData
	return result, nil
}

// dispatch строит ответ по намерению и извлеченным сущностям
func (a *Analyzer) dispatch(intent, normalized string, entities map[string]string) *AnalysisResult {
	switch intent {
	case classification.IntentCreateContract:
		return a.completeCreation(DataTypeContract, contractDataFromEntities(entities))
	case classification.IntentCreateKS:
		return a.completeCreation(DataTypeKS, ksDataFromEntities(entities))
	case classification.IntentCreateZakupka:
		return a.completeCreation(DataTypeZakupka, zakupkaDataFromEntities(entities))
	case classification.IntentCreateCompanyProfile:
		return a.completeCreation(DataTypeCompany, companyDataFromEntities(entities))
	case classification.IntentSearchDocs:
		return searchDocsResult(normalized, entities)
	case classification.IntentSearchCompany:
		return searchCompanyResult(entities)
	case classification.IntentHelp:
		return helpResult()
	default:
		return errorResult("Не удалось распознать запрос, попробуйте переформулировать")
	}
}

// completeCreation прогоняет извлеченные данные через протокол дозаполнения
func (a *Analyzer) completeCreation(dataType string, provided map[string]string) *AnalysisResult {
	completion, err := Complete(dataType, provided, nil)
	if err != nil {
		return errorResult(err.Error())
	}

	data := map[string]interface{}{}
	if completion.Status == StatusNeedsMoreInfo {
		data["provided_data"] = completion.Response.Data.ProvidedData
		data["missing_fields"] = completion.Response.Data.MissingFields
		data["suggestions"] = completion.Response.Data.Suggestions
	} else {
		data["contract_data"] = completion.Response.Data.ContractData
		data["next_steps"] = completion.Response.Data.NextSteps
	}

	return &AnalysisResult{
		Status: completion.Status,
		Response: ResponsePayload{
			Type: completion.Response.Type,
			Data: data,
		},
	}
}

// contractDataFromEntities собирает данные контракта из сущностей.
// При отсутствии явного названия используется категория закупки;
// подставленное название записывается и в сущности ответа
func contractDataFromEntities(entities map[string]string) map[string]string {
	provided := map[string]string{}
	if name := entityName(entities, "contract_name", "Контракт на "); name != "" {
		provided["contract_name"] = name
		entities["contract_name"] = name
	}
	setIfPresent(provided, "contract_amount", entities["amount"])
	setIfPresent(provided, "customer_name", entities["customer_name"])
	setIfPresent(provided, "customer_inn", entityINN(entities))
	return provided
}

func ksDataFromEntities(entities map[string]string) map[string]string {
	provided := map[string]string{}
	name := entities["ks_name"]
	if name == "" && entities["category"] != "" {
		name = "КС на " + entities["category"]
	}
	if name != "" {
		provided["session_name"] = name
		entities["ks_name"] = name
	}
	setIfPresent(provided, "session_amount", entities["amount"])
	setIfPresent(provided, "customer_name", entities["customer_name"])
	setIfPresent(provided, "customer_inn", entityINN(entities))
	return provided
}

func zakupkaDataFromEntities(entities map[string]string) map[string]string {
	provided := map[string]string{}
	setIfPresent(provided, "procurement_name", entityName(entities, "contract_name", "Закупка на "))
	setIfPresent(provided, "procurement_amount", entities["amount"])
	setIfPresent(provided, "customer_name", entities["customer_name"])
	setIfPresent(provided, "customer_inn", entityINN(entities))
	return provided
}

func companyDataFromEntities(entities map[string]string) map[string]string {
	provided := map[string]string{}
	name := entities["company_name"]
	if name == "" {
		name = entities["customer_name"]
	}
	setIfPresent(provided, "name", name)
	setIfPresent(provided, "inn", entityINN(entities))
	return provided
}

// searchDocsResult формирует параметры поиска документов.
// Сам поиск выполняет внешний слой, ядро отдает структурированный запрос
func searchDocsResult(normalized string, entities map[string]string) *AnalysisResult {
	responseType := TypeSearchContracts
	if sessionSearch(normalized) {
		responseType = TypeSearchSessions
	}

	params := map[string]interface{}{"query": normalized}
	for _, key := range []string{"amount", "law", "document_id", "category", "deadline"} {
		if value := entities[key]; value != "" {
			params[key] = value
		}
	}

	return &AnalysisResult{
		Status: StatusSuccess,
		Response: ResponsePayload{
			Type: responseType,
			Data: map[string]interface{}{"search_params": params},
		},
	}
}

func searchCompanyResult(entities map[string]string) *AnalysisResult {
	data := map[string]interface{}{}
	if name := entities["company_name"]; name != "" {
		data["name"] = name
	} else if name := entities["customer_name"]; name != "" {
		data["name"] = name
	}
	if inn := entityINN(entities); inn != "" {
		data["inn"] = inn
	}

	return &AnalysisResult{
		Status: StatusSuccess,
		Response: ResponsePayload{
			Type: TypeCompanySearch,
			Data: data,
		},
	}
}

func helpResult() *AnalysisResult {
	return &AnalysisResult{
		Status: StatusSuccess,
		Response: ResponsePayload{
			Type: TypeHelp,
			Data: map[string]interface{}{
				"message": "Я помогаю работать с закупками: создавать контракты и котировочные сессии, искать документы и компании",
				"available_commands": []string{
					"Создай контракт на канцтовары на 50000 рублей",
					"Создай котировочную сессию на мебель",
					"Найди контракты по 44-ФЗ",
					"Найди компанию ООО Ромашка",
					"Создай профиль компании с ИНН 7707083893",
				},
			},
		},
	}
}

func errorResult(message string) *AnalysisResult {
	return &AnalysisResult{
		Status: StatusError,
		Response: ResponsePayload{
			Type: TypeError,
			Data: map[string]interface{}{"message": message},
		},
	}
}

// sessionSearch определяет, ищет ли пользователь котировочные сессии.
// "кс" сравнивается как целый токен, иначе срабатывали бы слова вроде "ксерокс"
func sessionSearch(normalized string) bool {
	for _, word := range strings.Fields(normalized) {
		if word == "кс" {
			return true
		}
		for _, stem := range []string{"котировк", "сесси"} {
			if strings.HasPrefix(word, stem) {
				return true
			}
		}
	}
	return false
}

func entityName(entities map[string]string, key, fallbackPrefix string) string {
	if name := entities[key]; name != "" {
		return name
	}
	if category := entities["category"]; category != "" {
		return fallbackPrefix + category
	}
	return ""
}

// entityINN возвращает ИНН из контекстного или позиционного правила
func entityINN(entities map[string]string) string {
	if inn := entities["customer_inn"]; inn != "" {
		return inn
	}
	return entities["inn"]
}

func setIfPresent(data map[string]string, key, value string) {
	if value != "" {
		data[key] = value
	}
}
