package store

import "github.com/rmaia/flashdecks/internal/models"

// seedDecks is the fixed starter collection used on first run and whenever
// the canonical file cannot be read.
func seedDecks() []models.Deck {
	daily := models.NewDeck("Daily Words", "Mix of new vocabulary")
	daily.Cards = append(daily.Cards,
		models.NewCard(models.KindWord, "ubiquitous",
			"present, appearing, or found everywhere",
			"Smartphones are ubiquitous in modern life."),
		models.NewCard(models.KindWord, "cogent",
			"clear, logical, and convincing",
			"She presented a cogent argument for renewable energy."),
	)

	spanish := models.NewDeck("Spanish Sentences", "Everyday phrases")
	spanish.Cards = append(spanish.Cards,
		models.NewCard(models.KindSentence, "¿Dónde está la estación?",
			"Where is the station?",
			"Use when asking for directions."),
		models.NewCard(models.KindSentence, "Me gustaría un café, por favor.",
			"I would like a coffee, please.",
			"Polite ordering phrase."),
	)

	return []models.Deck{daily, spanish}
}
