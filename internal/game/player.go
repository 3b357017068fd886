package game

// Rules are the table options a player is seated with.
type Rules struct {
	Double           bool // double down on any two-card hand
	DoubleAfterSplit bool // double down on split hands; needs Double
	Surrender        bool // late surrender on any two-card hand
}

// DefaultRules allows every option.
func DefaultRules() Rules {
	return Rules{Double: true, DoubleAfterSplit: true, Surrender: true}
}

// Player is a seat at the table with a bankroll and the agent deciding for it.
type Player struct {
	ID    int
	Name  string
	Bank  int
	Rules Rules
	Agent Agent
}

// Payout adds a signed amount to the bankroll and forwards it to the agent
// if it observes payouts.
func (p *Player) Payout(amount int) {
	p.Bank += amount
	if obs, ok := p.Agent.(PayoutObserver); ok {
		obs.Payout(amount)
	}
}

// InPlay reports whether the player still has money.
func (p *Player) InPlay() bool {
	return p.Bank > 0
}
