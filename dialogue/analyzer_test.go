package dialogue

import (
	"errors"
	"testing"

	"intentserver/classification"
	"intentserver/extraction"
	"intentserver/normalization"
)

func analyzerSamples() []classification.Sample {
	return []classification.Sample{
		{Text: "создай контракт на канцтовары 50000 рублей", Intent: classification.IntentCreateContract},
		{Text: "создай контракт на поставку мебели", Intent: classification.IntentCreateContract},
		{Text: "создай контракт с ооо ромашка на 1.5 млн", Intent: classification.IntentCreateContract},
		{Text: "оформи контракт на ремонт офиса", Intent: classification.IntentCreateContract},
		{Text: "создай кс на мебель 100000 рублей", Intent: classification.IntentCreateKS},
		{Text: "создай котировочную сессию на канцтовары", Intent: classification.IntentCreateKS},
		{Text: "запусти кс на оргтехнику", Intent: classification.IntentCreateKS},
		{Text: "найди контракты по 44-фз", Intent: classification.IntentSearchDocs},
		{Text: "найди все сессии на мебель", Intent: classification.IntentSearchDocs},
		{Text: "найди документ 98765", Intent: classification.IntentSearchDocs},
		{Text: "найди компанию ооо ромашка", Intent: classification.IntentSearchCompany},
		{Text: "найди организацию с инн 7707083893", Intent: classification.IntentSearchCompany},
		{Text: "кто такая компания пао газпром", Intent: classification.IntentSearchCompany},
		{Text: "создай профиль компании с инн 7707083893", Intent: classification.IntentCreateCompanyProfile},
		{Text: "зарегистрируй новую компанию зао вектор", Intent: classification.IntentCreateCompanyProfile},
		{Text: "добавь нового контрагента ооо мир", Intent: classification.IntentCreateCompanyProfile},
		{Text: "помощь", Intent: classification.IntentHelp},
		{Text: "что ты умеешь", Intent: classification.IntentHelp},
		{Text: "справка по командам", Intent: classification.IntentHelp},
		{Text: "какая сегодня погода", Intent: classification.IntentError},
		{Text: "расскажи анекдот", Intent: classification.IntentError},
		{Text: "закажи пиццу на ужин", Intent: classification.IntentError},
	}
}

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()

	normalizer := normalization.NewNormalizer(map[string]string{"создй": "создай"}, 0.6)
	extractor := extraction.NewExtractor(nil)
	classifier := classification.NewClassifier()

	model, err := classification.Train(analyzerSamples(), normalizer.Normalize, classification.DefaultTrainerConfig())
	if err != nil {
		t.Fatalf("обучение не выполнено: %v", err)
	}
	if err := classifier.Use(model); err != nil {
		t.Fatalf("Use: %v", err)
	}

	return NewAnalyzer(normalizer, extractor, classifier)
}

func TestAnalyzer_CreateContract(t *testing.T) {
	analyzer := testAnalyzer(t)

	result, err := analyzer.Analyze("Создй контракт на канцтовары 50000 рублей", false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.MLData.Intent != classification.IntentCreateContract {
		t.Fatalf("Intent = %q, ожидалось %q (ответ: %+v)",
			result.MLData.Intent, classification.IntentCreateContract, result)
	}
	if result.Status != StatusNeedsMoreInfo {
		t.Errorf("Status = %q, ожидалось %q", result.Status, StatusNeedsMoreInfo)
	}
	if result.Response.Type != TypeContractNeedsMoreInfo {
		t.Errorf("Type = %q, ожидалось %q", result.Response.Type, TypeContractNeedsMoreInfo)
	}

	entities := result.MLData.Entities
	if entities["amount"] != "50000.0" {
		t.Errorf("amount = %q, ожидалось %q", entities["amount"], "50000.0")
	}
	if entities["category"] != "канцтовары" {
		t.Errorf("category = %q, ожидалось %q", entities["category"], "канцтовары")
	}
	// Название контракта выводится из категории и попадает в сущности
	if entities["contract_name"] != "Контракт на канцтовары" {
		t.Errorf("contract_name = %q, ожидалось %q", entities["contract_name"], "Контракт на канцтовары")
	}

	missing, ok := result.Response.Data["missing_fields"].([]string)
	if !ok {
		t.Fatalf("missing_fields отсутствует в ответе: %v", result.Response.Data)
	}
	want := []string{"customer_name", "customer_inn"}
	if len(missing) != len(want) {
		t.Fatalf("missing_fields = %v, ожидалось %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("missing_fields[%d] = %q, ожидалось %q", i, missing[i], want[i])
		}
	}
}

func TestAnalyzer_CreateContractReady(t *testing.T) {
	analyzer := testAnalyzer(t)

	result, err := analyzer.Analyze("создай контракт на канцтовары 50000 рублей для ооо ромашка инн 7707083893", false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.MLData.Intent != classification.IntentCreateContract {
		t.Fatalf("Intent = %q, ожидалось %q", result.MLData.Intent, classification.IntentCreateContract)
	}
	if result.Status != StatusSuccess {
		t.Fatalf("Status = %q, ожидалось %q (ответ: %+v)", result.Status, StatusSuccess, result.Response)
	}
	if result.Response.Type != TypeContractReady {
		t.Errorf("Type = %q, ожидалось %q", result.Response.Type, TypeContractReady)
	}

	contractData, ok := result.Response.Data["contract_data"].(map[string]string)
	if !ok {
		t.Fatalf("contract_data отсутствует в ответе: %v", result.Response.Data)
	}
	for field, want := range map[string]string{
		"contract_name":   "Контракт на канцтовары",
		"contract_amount": "50000.0",
		"customer_name":   "ооо ромашка",
		"customer_inn":    "7707083893",
	} {
		if got := contractData[field]; got != want {
			t.Errorf("contract_data[%q] = %q, ожидалось %q", field, got, want)
		}
	}
}

func TestAnalyzer_CreateKS(t *testing.T) {
	analyzer := testAnalyzer(t)

	result, err := analyzer.Analyze("создай кс на мебель 100000 рублей", false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.MLData.Intent != classification.IntentCreateKS {
		t.Fatalf("Intent = %q, ожидалось %q", result.MLData.Intent, classification.IntentCreateKS)
	}
	if result.Response.Type != TypeKSNeedsMoreInfo {
		t.Errorf("Type = %q, ожидалось %q", result.Response.Type, TypeKSNeedsMoreInfo)
	}

	provided, ok := result.Response.Data["provided_data"].(map[string]string)
	if !ok {
		t.Fatalf("provided_data отсутствует в ответе: %v", result.Response.Data)
	}
	if provided["session_name"] != "КС на мебель" {
		t.Errorf("session_name = %q, ожидалось %q", provided["session_name"], "КС на мебель")
	}
	if provided["session_amount"] != "100000.0" {
		t.Errorf("session_amount = %q, ожидалось %q", provided["session_amount"], "100000.0")
	}
}

func TestAnalyzer_SearchDocs(t *testing.T) {
	analyzer := testAnalyzer(t)

	t.Run("поиск контрактов", func(t *testing.T) {
		result, err := analyzer.Analyze("найди контракты по 44-фз", false)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if result.MLData.Intent != classification.IntentSearchDocs {
			t.Fatalf("Intent = %q, ожидалось %q", result.MLData.Intent, classification.IntentSearchDocs)
		}
		if result.Status != StatusSuccess {
			t.Errorf("Status = %q, ожидалось %q", result.Status, StatusSuccess)
		}
		if result.Response.Type != TypeSearchContracts {
			t.Errorf("Type = %q, ожидалось %q", result.Response.Type, TypeSearchContracts)
		}

		params, ok := result.Response.Data["search_params"].(map[string]interface{})
		if !ok {
			t.Fatalf("search_params отсутствует в ответе: %v", result.Response.Data)
		}
		if params["law"] != "44-ФЗ" {
			t.Errorf("law = %v, ожидалось %q", params["law"], "44-ФЗ")
		}
		if params["query"] == "" {
			t.Error("query не должен быть пустым")
		}
	})

	t.Run("поиск сессий", func(t *testing.T) {
		result, err := analyzer.Analyze("найди все сессии на мебель", false)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if result.MLData.Intent != classification.IntentSearchDocs {
			t.Fatalf("Intent = %q, ожидалось %q", result.MLData.Intent, classification.IntentSearchDocs)
		}
		if result.Response.Type != TypeSearchSessions {
			t.Errorf("Type = %q, ожидалось %q", result.Response.Type, TypeSearchSessions)
		}
	})

	t.Run("кс как отдельное слово", func(t *testing.T) {
		result, err := analyzer.Analyze("найди все кс по 44-фз", false)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if result.MLData.Intent != classification.IntentSearchDocs {
			t.Fatalf("Intent = %q, ожидалось %q", result.MLData.Intent, classification.IntentSearchDocs)
		}
		if result.Response.Type != TypeSearchSessions {
			t.Errorf("Type = %q, ожидалось %q", result.Response.Type, TypeSearchSessions)
		}
	})

	t.Run("слово на кс не означает сессию", func(t *testing.T) {
		result, err := analyzer.Analyze("найди контракты про ксерокс", false)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if result.MLData.Intent != classification.IntentSearchDocs {
			t.Fatalf("Intent = %q, ожидалось %q", result.MLData.Intent, classification.IntentSearchDocs)
		}
		if result.Response.Type != TypeSearchContracts {
			t.Errorf("Type = %q, ожидалось %q", result.Response.Type, TypeSearchContracts)
		}
	})
}

func TestSessionSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"кс отдельным словом", "найди кс на мебель", true},
		{"котировочная сессия", "покажи котировочные сессии", true},
		{"сессии", "все сессии за месяц", true},
		{"ксерокс", "найди контракт на ксерокс", false},
		{"кстати", "кстати покажи контракты", false},
		{"без маркеров", "найди контракты по 44-фз", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sessionSearch(tt.query); got != tt.want {
				t.Errorf("sessionSearch(%q) = %v, ожидалось %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestAnalyzer_SearchCompany(t *testing.T) {
	analyzer := testAnalyzer(t)

	result, err := analyzer.Analyze("найди компанию ооо ромашка", false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.MLData.Intent != classification.IntentSearchCompany {
		t.Fatalf("Intent = %q, ожидалось %q", result.MLData.Intent, classification.IntentSearchCompany)
	}
	if result.Response.Type != TypeCompanySearch {
		t.Errorf("Type = %q, ожидалось %q", result.Response.Type, TypeCompanySearch)
	}
	if result.Response.Data["name"] != "ооо ромашка" {
		t.Errorf("name = %v, ожидалось %q", result.Response.Data["name"], "ооо ромашка")
	}
}

func TestAnalyzer_Help(t *testing.T) {
	analyzer := testAnalyzer(t)

	result, err := analyzer.Analyze("что ты умеешь", false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.MLData.Intent != classification.IntentHelp {
		t.Fatalf("Intent = %q, ожидалось %q", result.MLData.Intent, classification.IntentHelp)
	}
	if result.Response.Type != TypeHelp {
		t.Errorf("Type = %q, ожидалось %q", result.Response.Type, TypeHelp)
	}
	if message, ok := result.Response.Data["message"].(string); !ok || message == "" {
		t.Errorf("message = %v, ожидалась непустая строка", result.Response.Data["message"])
	}
	commands, ok := result.Response.Data["available_commands"].([]string)
	if !ok || len(commands) == 0 {
		t.Errorf("available_commands = %v, ожидался непустой список", result.Response.Data["available_commands"])
	}
}

func TestAnalyzer_UnrecognizedQuery(t *testing.T) {
	analyzer := testAnalyzer(t)

	result, err := analyzer.Analyze("какая сегодня погода", false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.Status != StatusError {
		t.Errorf("Status = %q, ожидалось %q", result.Status, StatusError)
	}
	if result.Response.Type != TypeError {
		t.Errorf("Type = %q, ожидалось %q", result.Response.Type, TypeError)
	}
	if message, ok := result.Response.Data["message"].(string); !ok || message == "" {
		t.Errorf("message = %v, ожидалась непустая строка", result.Response.Data["message"])
	}
}

func TestAnalyzer_Detailed(t *testing.T) {
	analyzer := testAnalyzer(t)

	result, err := analyzer.Analyze("создай контракт на канцтовары 50000 рублей", true)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.MLData.Details == nil {
		t.Fatal("Details должны заполняться при detailed")
	}
	if len(result.MLData.Details.TopPredictions) == 0 {
		t.Error("TopPredictions должны заполняться при detailed")
	}
	if len(result.MLData.Details.Probabilities) == 0 {
		t.Error("Probabilities должны заполняться при detailed")
	}
}

func TestAnalyzer_ModelNotReady(t *testing.T) {
	analyzer := NewAnalyzer(
		normalization.NewNormalizer(nil, 0),
		extraction.NewExtractor(nil),
		classification.NewClassifier(),
	)

	_, err := analyzer.Analyze("создай контракт", false)
	if !errors.Is(err, classification.ErrModelNotInitialized) {
		t.Fatalf("err = %v, ожидался ErrModelNotInitialized", err)
	}
}
