// internal/persona/stock.go
package persona

import (
	"context"
	"fmt"
	"strings"
)

// StockResponder produces canned persona-flavored statements. It backs
// test runs and doubles as the silent fallback when a real responder
// fails mid-debate.
type StockResponder struct{}

// stockLines maps identity -> lowercase topic keyword -> statement.
var stockLines = map[string]map[string]string{
	"biden": {
		"climate": "Climate change is an existential threat that requires immediate action. Under my administration, we've made historic investments in clean energy, committing over $360 billion to address climate change. We're on track to cut emissions in half by 2030 and we rejoined the Paris Climate Agreement.",
		"renewable": "Renewable energy is the future, and America should lead it. We've seen record growth in solar and wind deployment, and the cost of renewable energy has plummeted below fossil fuels in much of the country.",
		"economy": "When I took office, our economy was in crisis. We've created over 13 million new jobs, unemployment is at near-historic lows, and we're rebuilding America's infrastructure through the Bipartisan Infrastructure Law.",
	},
	"trump": {
		"climate": "These radical climate policies are killing American jobs and crushing our economy, while China and India build coal plants every week. When I was President, we had energy independence for the first time, with lower gas prices and more American energy jobs.",
		"renewable": "Look, I'm all for renewable energy, solar, wind, everything. But it has to be affordable and it can't collapse our energy grid. Electricity prices are up 30% and gas prices are through the roof.",
		"economy": "Under my leadership, we had the greatest economy in the history of our country. The stock market hit record after record, we had the lowest unemployment ever recorded, and I cut taxes like nobody has ever seen.",
	},
	"sanders": {
		"climate": "Climate change is not only the existential crisis of our time, it is also an opportunity to create millions of good-paying jobs. The fossil fuel industry has known about climate change for decades, yet they've spent millions on disinformation while taking billions in subsidies.",
		"renewable": "We need to transform our energy system away from fossil fuels to renewable energy. Fossil fuel executives have known about climate change for 40 years and deliberately prevented action to protect their profits.",
		"economy": "We have an economy that is fundamentally broken when the three wealthiest people own more wealth than the bottom half of American society. Billionaires increased their wealth by over $2 trillion during the pandemic.",
	},
}

// interjections are the short persona tails appended to interruptions.
var interjections = map[string]string{
	"biden":   "Look, here's the deal - the facts matter.",
	"trump":   "It's fake news, totally fake. Everyone knows it.",
	"sanders": "The American people are tired of the same old establishment lies.",
}

// Respond returns a canned statement matched on identity and topic
// keywords, falling back to a neutral line. It never fails.
func (StockResponder) Respond(_ context.Context, req Request) (string, error) {
	text := lookupStock(req.Identity, req.Subtopic)
	if text == "" {
		text = lookupStock(req.Identity, req.Topic)
	}
	if text == "" {
		if req.Deflect {
			text = fmt.Sprintf("As %s, I'd rather talk about what really matters to working families than %s.", req.Identity, req.Subtopic)
		} else {
			text = fmt.Sprintf("As %s, I believe we need serious solutions to address %s.", req.Identity, req.Subtopic)
		}
	}
	return Truncate(text, req.MaxLength), nil
}

// Interjection returns a short persona-flavored tail for an interruption.
func Interjection(identity string) string {
	if line, ok := interjections[identity]; ok {
		return line
	}
	return "We need to set the record straight."
}

func lookupStock(identity, topic string) string {
	lines, ok := stockLines[strings.ToLower(identity)]
	if !ok {
		return ""
	}
	lower := strings.ToLower(topic)
	for keyword, text := range lines {
		if strings.Contains(lower, keyword) {
			return text
		}
	}
	return ""
}
