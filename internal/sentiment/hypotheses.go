package sentiment

import "fmt"

// Sentiment labels, in the fixed order used for argmax tie-breaking.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Labels lists the candidate labels in canonical order.
var Labels = []string{LabelPositive, LabelNegative, LabelNeutral}

// Hypothesis returns the entailment hypothesis for a player and label.
func Hypothesis(player, label string) string {
	switch label {
	case LabelPositive:
		return fmt.Sprintf("%s will perform at a high level and positively influence fantasy points.", player)
	case LabelNegative:
		return fmt.Sprintf("%s will underperform or negatively impact fantasy points.", player)
	default:
		return fmt.Sprintf("%s will have an average or neutral impact.", player)
	}
}
