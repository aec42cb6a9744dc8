package money

import "fmt"

// AmountString renders a whole euro amount like "348 €".
func AmountString(amount int64) string {
	return fmt.Sprintf("%d €", amount)
}
