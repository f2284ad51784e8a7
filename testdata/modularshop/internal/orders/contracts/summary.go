package contracts

type OrderSummary struct {
	ID    string
	Total int64
}

type OrderLineDto struct {
	SKU      string
	Quantity int
}
