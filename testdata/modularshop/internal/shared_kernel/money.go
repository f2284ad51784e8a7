package sharedkernel

type Money struct {
	Amount   int64
	Currency string
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}
}
