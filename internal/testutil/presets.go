package testutil

import "fmt"

// WithRecentTestData adds three transactions, newest first: a titled one, one
// whose title contains "join", and an untitled one.
func (b *Builder) WithRecentTestData() *Builder {
	return b.
		WithTransaction("txn-001",
			Title("Groceries"), Merchant("Fresh Market"), Amount(5420), DaysAgo(0)).
		WithTransaction("txn-002",
			Title("Gym joining fee"), Merchant("Iron Works"), Amount(2500), DaysAgo(1)).
		WithTransaction("txn-003",
			Untitled(), Merchant("Metro"), Amount(275), DaysAgo(2))
}

// WithManyTransactions adds n transactions, one per day going back from BaseTime.
func (b *Builder) WithManyTransactions(n int) *Builder {
	for i := 0; i < n; i++ {
		b.WithTransaction(fmt.Sprintf("bulk-%03d", i), Title(fmt.Sprintf("Payment %d", i)), DaysAgo(i))
	}
	return b
}
