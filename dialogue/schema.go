package dialogue

import "fmt"

// Типы данных, поддерживаемые протоколом дозаполнения
const (
	DataTypeContract = "contract"
	DataTypeKS       = "ks"
	DataTypeZakupka  = "zakupka"
	DataTypeCompany  = "company"
)

// requiredSchemas обязательные поля по типам данных.
// Порядок полей определяет порядок missing_fields в ответе
var requiredSchemas = map[string][]string{
	DataTypeContract: {"contract_name", "contract_amount", "customer_name", "customer_inn"},
	DataTypeKS:       {"session_name", "session_amount", "customer_name", "customer_inn"},
	DataTypeZakupka:  {"procurement_name", "procurement_amount", "customer_name", "customer_inn"},
	DataTypeCompany:  {"name", "inn"},
}

var fieldSuggestions = map[string]string{
	"contract_name":      "Укажите название контракта",
	"contract_amount":    "Укажите сумму контракта в рублях",
	"session_name":       "Укажите название котировочной сессии",
	"session_amount":     "Укажите сумму сессии в рублях",
	"procurement_name":   "Укажите название закупки",
	"procurement_amount": "Укажите сумму закупки в рублях",
	"customer_name":      "Укажите название организации заказчика",
	"customer_inn":       "Укажите ИНН заказчика (10 или 12 цифр)",
	"name":               "Укажите название компании",
	"inn":                "Укажите ИНН компании (10 или 12 цифр)",
}

// RequiredSchema возвращает упорядоченный список обязательных полей типа данных
func RequiredSchema(dataType string) ([]string, bool) {
	schema, ok := requiredSchemas[dataType]
	if !ok {
		return nil, false
	}
	out := make([]string, len(schema))
	copy(out, schema)
	return out, true
}

// DataTypes возвращает поддерживаемые типы данных
func DataTypes() []string {
	return []string{DataTypeContract, DataTypeKS, DataTypeZakupka, DataTypeCompany}
}

// FieldSuggestion возвращает подсказку для незаполненного поля
func FieldSuggestion(field string) string {
	if suggestion, ok := fieldSuggestions[field]; ok {
		return suggestion
	}
	return fmt.Sprintf("Укажите значение поля %s", field)
}
