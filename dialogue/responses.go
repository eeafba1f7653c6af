package dialogue

// Статусы результата анализа и дозаполнения
const (
	StatusSuccess       = "success"
	StatusNeedsMoreInfo = "needs_more_info"
	StatusError         = "error"
)

// Типы ответов, закрытый словарь исходов
const (
	TypeContractNeedsMoreInfo = "create_contract_needs_more_info"
	TypeContractReady         = "create_contract_ready_to_create"
	TypeKSNeedsMoreInfo       = "create_ks_needs_more_info"
	TypeKSReady               = "create_ks_ready_to_create"
	TypeZakupkaNeedsMoreInfo  = "create_zakupka_needs_more_info"
	TypeZakupkaReady          = "create_zakupka_ready_to_create"
	TypeCompanyNeedsMoreInfo  = "create_company_profile_needs_more_info"
	TypeCompanyReady          = "create_company_profile_ready_to_create"
	TypeSearchContracts       = "search_contracts_results"
	TypeSearchSessions        = "search_sessions_results"
	TypeCompanySearch         = "company_search_results"
	TypeHelp                  = "help_response"
	TypeError                 = "error"
)

// completionTypes отображение типа данных в пару типов ответа:
// данных не хватает / данные собраны полностью
var completionTypes = map[string][2]string{
	DataTypeContract: {TypeContractNeedsMoreInfo, TypeContractReady},
	DataTypeKS:       {TypeKSNeedsMoreInfo, TypeKSReady},
	DataTypeZakupka:  {TypeZakupkaNeedsMoreInfo, TypeZakupkaReady},
	DataTypeCompany:  {TypeCompanyNeedsMoreInfo, TypeCompanyReady},
}

// nextSteps статические подсказки после сбора всех обязательных полей
var nextSteps = []string{
	"Проверьте введенные данные",
	"Подтвердите создание",
}
