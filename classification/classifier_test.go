package classification

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func trainingSamples() []Sample {
	return []Sample{
		{Text: "создай контракт на канцтовары", Intent: IntentCreateContract},
		{Text: "создай контракт на мебель 50000 рублей", Intent: IntentCreateContract},
		{Text: "оформи контракт на оборудование", Intent: IntentCreateContract},
		{Text: "найди контракты по 44-фз", Intent: IntentSearchDocs},
		{Text: "найди документ 12345", Intent: IntentSearchDocs},
		{Text: "найди все сессии на мебель", Intent: IntentSearchDocs},
		{Text: "помощь", Intent: IntentHelp},
		{Text: "что ты умеешь", Intent: IntentHelp},
		{Text: "справка по командам", Intent: IntentHelp},
	}
}

func trainedModel(t *testing.T) *Model {
	t.Helper()
	model, err := Train(trainingSamples(), nil, DefaultTrainerConfig())
	if err != nil {
		t.Fatalf("обучение не выполнено: %v", err)
	}
	return model
}

func TestTrain_Errors(t *testing.T) {
	t.Run("слишком мало примеров", func(t *testing.T) {
		_, err := Train([]Sample{{Text: "помощь", Intent: IntentHelp}}, nil, DefaultTrainerConfig())
		if err == nil {
			t.Fatal("ожидалась ошибка для выборки из одного примера")
		}
	})

	t.Run("один класс", func(t *testing.T) {
		samples := []Sample{
			{Text: "помощь", Intent: IntentHelp},
			{Text: "справка", Intent: IntentHelp},
		}
		if _, err := Train(samples, nil, DefaultTrainerConfig()); err == nil {
			t.Fatal("ожидалась ошибка для выборки с одним классом")
		}
	})

	t.Run("пустые примеры отбрасываются", func(t *testing.T) {
		samples := []Sample{
			{Text: "", Intent: IntentHelp},
			{Text: "помощь", Intent: ""},
			{Text: "помощь", Intent: IntentHelp},
		}
		if _, err := Train(samples, nil, DefaultTrainerConfig()); err == nil {
			t.Fatal("ожидалась ошибка: после фильтрации остается один класс")
		}
	})
}

func TestTrain_ModelShape(t *testing.T) {
	model := trainedModel(t)

	if err := model.Validate(); err != nil {
		t.Fatalf("обученная модель не прошла проверку: %v", err)
	}
	if model.Version != ModelVersion {
		t.Errorf("Version = %d, ожидалось %d", model.Version, ModelVersion)
	}

	// Классы отсортированы по алфавиту для детерминированного артефакта
	wantClasses := []string{IntentCreateContract, IntentHelp, IntentSearchDocs}
	if len(model.Classes) != len(wantClasses) {
		t.Fatalf("Classes = %v, ожидалось %v", model.Classes, wantClasses)
	}
	for i, class := range wantClasses {
		if model.Classes[i] != class {
			t.Errorf("Classes[%d] = %q, ожидалось %q", i, model.Classes[i], class)
		}
	}

	for intent, want := range map[string]int{
		IntentCreateContract: 3,
		IntentSearchDocs:     3,
		IntentHelp:           3,
	} {
		if got := model.SampleCounts[intent]; got != want {
			t.Errorf("SampleCounts[%q] = %d, ожидалось %d", intent, got, want)
		}
	}
}

func TestTrain_Determinism(t *testing.T) {
	first := trainedModel(t)
	second := trainedModel(t)

	if len(first.Vectorizer.Vocabulary) != len(second.Vectorizer.Vocabulary) {
		t.Fatalf("размеры словарей различаются: %d и %d",
			len(first.Vectorizer.Vocabulary), len(second.Vectorizer.Vocabulary))
	}
	for term, idx := range first.Vectorizer.Vocabulary {
		if second.Vectorizer.Vocabulary[term] != idx {
			t.Errorf("терм %q получил разные индексы: %d и %d",
				term, idx, second.Vectorizer.Vocabulary[term])
		}
	}
	for c := range first.FeatureLogProb {
		for i := range first.FeatureLogProb[c] {
			if first.FeatureLogProb[c][i] != second.FeatureLogProb[c][i] {
				t.Fatalf("веса класса %d различаются в позиции %d", c, i)
			}
		}
	}
}

func TestClassifier_Lifecycle(t *testing.T) {
	classifier := NewClassifier()

	if state := classifier.State(); state != StateUninitialized {
		t.Errorf("начальное состояние = %v, ожидалось %v", state, StateUninitialized)
	}
	if classifier.Ready() {
		t.Error("Ready() до загрузки модели должен возвращать false")
	}

	_, err := classifier.Classify("создай контракт", false)
	if !errors.Is(err, ErrModelNotInitialized) {
		t.Fatalf("Classify до загрузки: err = %v, ожидался ErrModelNotInitialized", err)
	}

	if err := classifier.Use(trainedModel(t)); err != nil {
		t.Fatalf("Use: %v", err)
	}
	if state := classifier.State(); state != StateReady {
		t.Errorf("состояние после Use = %v, ожидалось %v", state, StateReady)
	}
	if !classifier.Ready() {
		t.Error("Ready() после Use должен возвращать true")
	}
}

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier()
	if err := classifier.Use(trainedModel(t)); err != nil {
		t.Fatalf("Use: %v", err)
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "создание контракта", text: "создай контракт на канцтовары", want: IntentCreateContract},
		{name: "поиск документов", text: "найди контракты по 44-фз", want: IntentSearchDocs},
		{name: "справка", text: "что ты умеешь", want: IntentHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := classifier.Classify(tt.text, false)
			if err != nil {
				t.Fatalf("Classify(%q): %v", tt.text, err)
			}
			if result.Intent != tt.want {
				t.Errorf("Classify(%q).Intent = %q, ожидалось %q", tt.text, result.Intent, tt.want)
			}
			if result.IntentName != DisplayName(tt.want) {
				t.Errorf("IntentName = %q, ожидалось %q", result.IntentName, DisplayName(tt.want))
			}
			if result.Confidence <= 0 || result.Confidence > 1 {
				t.Errorf("Confidence = %f вне (0, 1]", result.Confidence)
			}
			if result.Probabilities != nil || result.TopPredictions != nil {
				t.Error("без detailed распределение и топ не заполняются")
			}
		})
	}
}

func TestClassifier_ClassifyDetailed(t *testing.T) {
	classifier := NewClassifier()
	if err := classifier.Use(trainedModel(t)); err != nil {
		t.Fatalf("Use: %v", err)
	}

	result, err := classifier.Classify("создай контракт на канцтовары", true)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if len(result.Probabilities) != 3 {
		t.Fatalf("Probabilities содержит %d классов, ожидалось 3", len(result.Probabilities))
	}
	var sum float64
	for _, p := range result.Probabilities {
		if p < 0 || p > 1 {
			t.Errorf("вероятность %f вне [0, 1]", p)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("сумма вероятностей = %f, ожидалась 1.0", sum)
	}

	if len(result.TopPredictions) != 3 {
		t.Fatalf("TopPredictions содержит %d элементов, ожидалось 3", len(result.TopPredictions))
	}
	for i := 1; i < len(result.TopPredictions); i++ {
		if result.TopPredictions[i].Probability > result.TopPredictions[i-1].Probability {
			t.Error("TopPredictions не отсортирован по убыванию вероятности")
		}
	}
	if result.TopPredictions[0].Intent != result.Intent {
		t.Errorf("первый элемент топа %q не совпадает с лучшим намерением %q",
			result.TopPredictions[0].Intent, result.Intent)
	}
	if result.TopPredictions[0].Probability != result.Confidence {
		t.Error("вероятность первого элемента топа не совпадает с Confidence")
	}
}

func TestClassifier_ClassifyDeterminism(t *testing.T) {
	classifier := NewClassifier()
	if err := classifier.Use(trainedModel(t)); err != nil {
		t.Fatalf("Use: %v", err)
	}

	text := "создай контракт на мебель 50000 рублей"
	first, err := classifier.Classify(text, true)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := classifier.Classify(text, true)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if got.Intent != first.Intent || got.Confidence != first.Confidence {
			t.Fatalf("классификация недетерминирована: %v != %v", got, first)
		}
		// Сравнение побитовое: распределение должно совпадать до последнего знака
		for class, p := range first.Probabilities {
			if got.Probabilities[class] != p {
				t.Fatalf("вероятность %q плавает между вызовами: %v != %v", class, got.Probabilities[class], p)
			}
		}
		for j, pred := range first.TopPredictions {
			if got.TopPredictions[j] != pred {
				t.Fatalf("топ-%d предсказание плавает между вызовами: %v != %v", j+1, got.TopPredictions[j], pred)
			}
		}
	}
}

func TestModel_ProbabilitiesUnknownTokens(t *testing.T) {
	model := trainedModel(t)

	// Ни один токен не входит в словарь: распределение определяется априором
	probs := model.Probabilities([]string{"абракадабра"})
	if len(probs) != len(model.Classes) {
		t.Fatalf("длина распределения %d, ожидалось %d", len(probs), len(model.Classes))
	}
	var sum float64
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("сумма вероятностей = %f, ожидалась 1.0", sum)
	}
}

func TestArtifact_RoundTrip(t *testing.T) {
	model := trainedModel(t)
	path := filepath.Join(t.TempDir(), "models", "intent_classifier.json")

	if err := SaveArtifact(path, model); err != nil {
		t.Fatalf("SaveArtifact: %v", err)
	}

	loaded, err := LoadArtifact(path)
	if err != nil {
		t.Fatalf("LoadArtifact: %v", err)
	}
	if len(loaded.Classes) != len(model.Classes) {
		t.Fatalf("классы после загрузки: %v, ожидалось %v", loaded.Classes, model.Classes)
	}
	for i := range model.Classes {
		if loaded.Classes[i] != model.Classes[i] {
			t.Errorf("Classes[%d] = %q, ожидалось %q", i, loaded.Classes[i], model.Classes[i])
		}
	}

	// Загруженная модель дает те же предсказания
	original := NewClassifier()
	restored := NewClassifier()
	if err := original.Use(model); err != nil {
		t.Fatalf("Use: %v", err)
	}
	if err := restored.Use(loaded); err != nil {
		t.Fatalf("Use: %v", err)
	}
	for _, text := range []string{"создай контракт на канцтовары", "найди документ 12345", "помощь"} {
		want, err := original.Classify(text, false)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		got, err := restored.Classify(text, false)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if got.Intent != want.Intent {
			t.Errorf("после загрузки %q -> %q, ожидалось %q", text, got.Intent, want.Intent)
		}
	}
}

func TestLoadArtifact_Errors(t *testing.T) {
	t.Run("отсутствующий файл", func(t *testing.T) {
		if _, err := LoadArtifact(filepath.Join(t.TempDir(), "missing.json")); err == nil {
			t.Fatal("ожидалась ошибка для отсутствующего файла")
		}
	})

	t.Run("поврежденный артефакт", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		if err := os.WriteFile(path, []byte("{не json"), 0o644); err != nil {
			t.Fatalf("подготовка файла: %v", err)
		}
		if _, err := LoadArtifact(path); err == nil {
			t.Fatal("ожидалась ошибка для поврежденного артефакта")
		}
	})

	t.Run("возврат в Uninitialized при ошибке", func(t *testing.T) {
		classifier := NewClassifier()
		err := classifier.LoadArtifact(filepath.Join(t.TempDir(), "missing.json"))
		if err == nil {
			t.Fatal("ожидалась ошибка загрузки")
		}
		if state := classifier.State(); state != StateUninitialized {
			t.Errorf("после неудачной загрузки состояние = %v, ожидалось %v", state, StateUninitialized)
		}
	})
}

func TestSaveArtifact_InvalidModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := SaveArtifact(path, &Model{}); err == nil {
		t.Fatal("ожидалась ошибка сохранения пустой модели")
	}
}
