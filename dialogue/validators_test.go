package dialogue

import (
	"math"
	"strings"
	"testing"
)

func TestValidFieldValue(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  bool
	}{
		{name: "инн из 10 цифр", field: "customer_inn", value: "7707083893", want: true},
		{name: "инн из 12 цифр", field: "inn", value: "500100732259", want: true},
		{name: "инн из 11 цифр", field: "customer_inn", value: "77070838931", want: false},
		{name: "инн из одинаковых цифр", field: "inn", value: "0000000000", want: false},
		{name: "инн с пробелом", field: "inn", value: "7707 083893", want: false},
		{name: "бик из 9 цифр", field: "bik", value: "044525225", want: true},
		{name: "бик из 8 цифр", field: "bik", value: "04452522", want: false},
		{name: "сумма целая", field: "contract_amount", value: "50000", want: true},
		{name: "сумма каноническая", field: "session_amount", value: "50000.0", want: true},
		{name: "сумма с множителем", field: "procurement_amount", value: "50 тыс", want: true},
		{name: "нулевая сумма", field: "contract_amount", value: "0", want: false},
		{name: "сумма без цифр", field: "contract_amount", value: "дорого", want: false},
		{name: "строковое поле", field: "customer_name", value: "ООО Ромашка", want: true},
		{name: "пустое значение", field: "customer_name", value: "", want: false},
		{name: "значение из пробелов", field: "customer_name", value: "   ", want: false},
		{name: "строка на границе длины", field: "name", value: strings.Repeat("а", 500), want: true},
		{name: "строка длиннее предела", field: "name", value: strings.Repeat("а", 501), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidFieldValue(tt.field, tt.value); got != tt.want {
				t.Errorf("ValidFieldValue(%q, %q) = %v, ожидалось %v", tt.field, tt.value, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
		ok    bool
	}{
		{name: "целое число", value: "50000", want: 50000, ok: true},
		{name: "каноническая запись", value: "50000.0", want: 50000, ok: true},
		{name: "тысячи словом", value: "50 тысяч", want: 50000, ok: true},
		{name: "тысячи сокращением", value: "50 тыс", want: 50000, ok: true},
		{name: "суффикс к", value: "100к", want: 100000, ok: true},
		{name: "дробные миллионы", value: "1.5 млн", want: 1500000, ok: true},
		{name: "запятая как десятичный разделитель", value: "2,5 млн", want: 2500000, ok: true},
		{name: "с валютой", value: "300 рублей", want: 300, ok: true},
		{name: "минимальная сумма", value: "0.01", want: 0.01, ok: true},
		{name: "ноль", value: "0", ok: false},
		{name: "без цифр", value: "много", ok: false},
		{name: "пустая строка", value: "", ok: false},
		{name: "выше верхней границы", value: "1000000000000", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.value)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q): ok = %v, ожидалось %v", tt.value, ok, tt.ok)
			}
			if tt.ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseAmount(%q) = %f, ожидалось %f", tt.value, got, tt.want)
			}
		})
	}
}

func TestDataTypes(t *testing.T) {
	types := DataTypes()
	want := []string{DataTypeContract, DataTypeKS, DataTypeZakupka, DataTypeCompany}
	if len(types) != len(want) {
		t.Fatalf("DataTypes() = %v, ожидалось %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("DataTypes()[%d] = %q, ожидалось %q", i, types[i], want[i])
		}
	}
}

func TestFieldSuggestion(t *testing.T) {
	if got := FieldSuggestion("customer_inn"); got != "Укажите ИНН заказчика (10 или 12 цифр)" {
		t.Errorf("FieldSuggestion(customer_inn) = %q", got)
	}
	// Для неизвестного поля возвращается обобщенная подсказка
	if got := FieldSuggestion("unknown_field"); !strings.Contains(got, "unknown_field") {
		t.Errorf("FieldSuggestion для неизвестного поля = %q, должна содержать имя поля", got)
	}
}
