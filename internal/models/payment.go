package models

type PaymentMethod struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Type string `json:"type"`
}

var PaymentMethods = []PaymentMethod{
	{ID: 1, Name: "MBWay", Icon: "💳", Type: "mbway"},
	{ID: 2, Name: "Cartão de Crédito", Icon: "💳", Type: "credit_card"},
	{ID: 3, Name: "Multibanco", Icon: "🏧", Type: "multibanco"},
	{ID: 4, Name: "Dinheiro", Icon: "💶", Type: "cash"},
}

// FindPaymentMethod looks a method up by type.
func FindPaymentMethod(kind string) (PaymentMethod, bool) {
	for _, m := range PaymentMethods {
		if m.Type == kind {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// DeliveryOption is the delivery timing chosen at checkout. Surcharge is
// informational and is not part of the order totals.
type DeliveryOption struct {
	Value     string  `json:"value"`
	Label     string  `json:"label"`
	Surcharge float64 `json:"surcharge"`
}

var DeliveryOptions = []DeliveryOption{
	{Value: "standard", Label: "Padrão (30-40 min)", Surcharge: 0},
	{Value: "express", Label: "Expresso (15-25 min)", Surcharge: 2.50},
	{Value: "scheduled", Label: "Agendado", Surcharge: 0},
}

func FindDeliveryOption(value string) (DeliveryOption, bool) {
	for _, o := range DeliveryOptions {
		if o.Value == value {
			return o, true
		}
	}
	return DeliveryOption{}, false
}
