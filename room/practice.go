// room/practice.go
package room

import (
	"math/rand"

	"github.com/wfunc/wordclash/models"
)

// PracticeGame 单人练习模式：无队伍、无计时，
// 每次从完整牌堆中等概率抽取，允许重复出现。
type PracticeGame struct {
	Deck      []models.Card
	Current   *models.Card
	CardsSeen int
	Correct   int
	rng       *rand.Rand
}

func newPracticeGame(deck []models.Card, rng *rand.Rand) *PracticeGame {
	return &PracticeGame{
		Deck: deck,
		rng:  rng,
	}
}

// drawRandom 等概率抽一张，不记已用
func (g *PracticeGame) drawRandom() *models.Card {
	if len(g.Deck) == 0 {
		return nil
	}
	card := g.Deck[g.rng.Intn(len(g.Deck))]
	return &card
}

func (g *PracticeGame) reset() {
	g.Current = nil
	g.CardsSeen = 0
	g.Correct = 0
}
