package dialogue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDataType возвращается для типа данных, отсутствующего в схемах
var ErrUnknownDataType = errors.New("неподдерживаемый тип данных")

// CompletionData полезная нагрузка ответа дозаполнения
type CompletionData struct {
	ProvidedData  map[string]string `json:"provided_data,omitempty"`
	MissingFields []string          `json:"missing_fields,omitempty"`
	Suggestions   []string          `json:"suggestions,omitempty"`
	ContractData  map[string]string `json:"contract_data,omitempty"`
	NextSteps     []string          `json:"next_steps,omitempty"`
}

// CompletionResponse типизированный ответ дозаполнения
type CompletionResponse struct {
	Type string         `json:"type"`
	Data CompletionData `json:"data"`
}

// CompletionResult результат одного шага протокола дозаполнения
type CompletionResult struct {
	Status   string             `json:"status"`
	Response CompletionResponse `json:"response"`
}

// Ready сообщает, собраны ли все обязательные поля
func (r *CompletionResult) Ready() bool {
	return r.Status == StatusSuccess
}

// Complete выполняет один шаг протокола дозаполнения.
// additional вливается в provided (при совпадении ключей побеждает additional,
// как более свежий ввод пользователя), после чего по схеме типа данных
// вычисляются незаполненные поля. Состояние между вызовами не хранится:
// caller сам передает накопленные данные в каждый вызов
func Complete(dataType string, provided, additional map[string]string) (*CompletionResult, error) {
	schema, ok := RequiredSchema(dataType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataType, dataType)
	}

	merged := mergeData(provided, additional)

	var missing []string
	for _, field := range schema {
		if !ValidFieldValue(field, merged[field]) {
			missing = append(missing, field)
		}
	}

	types := completionTypes[dataType]

	if len(missing) > 0 {
		suggestions := make([]string, len(missing))
		for i, field := range missing {
			suggestions[i] = FieldSuggestion(field)
		}
		return &CompletionResult{
			Status: StatusNeedsMoreInfo,
			Response: CompletionResponse{
				Type: types[0],
				Data: CompletionData{
					ProvidedData:  merged,
					MissingFields: missing,
					Suggestions:   suggestions,
				},
			},
		}, nil
	}

	return &CompletionResult{
		Status: StatusSuccess,
		Response: CompletionResponse{
			Type: types[1],
			Data: CompletionData{
				ContractData: merged,
				NextSteps:    append([]string(nil), nextSteps...),
			},
		},
	}, nil
}

// mergeData сливает данные двух шагов диалога, additional побеждает.
// Пустые значения не затирают уже накопленные
func mergeData(provided, additional map[string]string) map[string]string {
	merged := make(map[string]string, len(provided)+len(additional))
	for key, value := range provided {
		if value = strings.TrimSpace(value); value != "" {
			merged[key] = value
		}
	}
	for key, value := range additional {
		if value = strings.TrimSpace(value); value != "" {
			merged[key] = value
		}
	}
	return merged
}
