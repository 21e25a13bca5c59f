package outcome

import (
	"github.com/shopspring/decimal"

	"github.com/berrybet/wagerd/internal/domain"
)

// Card labels for the roulette game.
const (
	CardFive   = "cinco"
	CardTen    = "dez"
	CardTwenty = "vinte"
	CardMaster = "master"
	CardMisery = "miseria"
	CardLoss   = "perca"
)

// DefaultTable returns the roulette outcome table. Weights are per 9900 and
// give a 35% overall win rate; a winner gets the stake back plus the card's
// percentage, so multipliers are 1 + pct (loss pays 0).
func DefaultTable() domain.OutcomeTable {
	return domain.OutcomeTable{
		GameID: "roleta",
		Classes: []domain.OutcomeClass{
			{Label: CardLoss, Weight: 6435, Multiplier: decimal.Zero},
			{Label: CardMisery, Weight: 2625, Multiplier: decimal.NewFromFloat(1.005)},
			{Label: CardFive, Weight: 175, Multiplier: decimal.NewFromFloat(1.05)},
			{Label: CardTen, Weight: 140, Multiplier: decimal.NewFromFloat(1.10)},
			{Label: CardTwenty, Weight: 385, Multiplier: decimal.NewFromFloat(1.20)},
			{Label: CardMaster, Weight: 140, Multiplier: decimal.NewFromFloat(1.70)},
		},
	}
}
