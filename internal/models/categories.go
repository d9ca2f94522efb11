package models

// Fixed vocabularies for the finance forms. Exposed via /categories so the
// SPA does not hardcode them.

var RevenueCategories = []string{
	"Mensalidade",
	"Renovação",
	"Diária",
	"Venda de Produtos",
	"Avaliação Física",
	"Saldo do Mês Anterior",
	"Outros",
}

var ExpenseCategories = []string{
	"Água",
	"Luz",
	"Aluguel",
	"Manutenção",
	"Limpeza",
	"Marketing",
	"Salários",
	"Outros",
}

var PaymentMethods = []string{
	"PIX",
	"Dinheiro",
	"Cartão de Crédito",
	"Cartão de Débito",
	"Transferência",
}

const (
	CategoryEnrollment = "Mensalidade"
	CategoryRenewal    = "Renovação"
)
