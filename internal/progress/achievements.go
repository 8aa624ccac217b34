package progress

import (
	"github.com/meltforce/fitquest/internal/models"
)

// Facts is the state achievement predicates are evaluated against.
type Facts struct {
	History       []models.WorkoutSession
	Profile       *models.Profile
	ProgramStatus models.ProgramStatus
	SetLogCount   int
}

// Achievement is a one-time milestone with a fixed reward.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	unlocked func(Facts) bool
}

// Achievements is the full achievement list, in evaluation order.
var Achievements = []Achievement{
	{
		ID:          "first_blood",
		Title:       "Batismo de Fogo",
		Description: "Complete seu primeiro treino.",
		Icon:        "flame",
		unlocked:    func(f Facts) bool { return len(f.History) >= 1 },
	},
	{
		ID:          "consistency",
		Title:       "Constância",
		Description: "Complete 5 treinos.",
		Icon:        "calendar",
		unlocked:    func(f Facts) bool { return len(f.History) >= 5 },
	},
	{
		ID:          "dedicated",
		Title:       "Dedicação Total",
		Description: "Complete 20 treinos.",
		Icon:        "medal",
		unlocked:    func(f Facts) bool { return len(f.History) >= 20 },
	},
	{
		ID:          "program_graduate",
		Title:       "Formado",
		Description: "Conclua os 7 dias de um programa.",
		Icon:        "graduation-cap",
		unlocked: func(f Facts) bool {
			return len(f.ProgramStatus.CompletedDays) >= 7
		},
	},
	{
		ID:          "early_bird",
		Title:       "Madrugador",
		Description: "Complete 3 treinos antes das 7h.",
		Icon:        "sunrise",
		unlocked: func(f Facts) bool {
			early := 0
			for _, s := range f.History {
				if !s.DateCreated.IsZero() && s.DateCreated.Hour() < 7 {
					early++
				}
			}
			return early >= 3
		},
	},
	{
		ID:          "iron_will",
		Title:       "Vontade de Ferro",
		Description: "Registre 10 séries.",
		Icon:        "dumbbell",
		unlocked:    func(f Facts) bool { return f.SetLogCount >= 10 },
	},
	{
		ID:          "rich",
		Title:       "Cofre Cheio",
		Description: "Acumule 1000 moedas depois de 3 treinos.",
		Icon:        "coins",
		unlocked: func(f Facts) bool {
			return len(f.History) >= 3 && f.Profile != nil && f.Profile.Coins >= 1000
		},
	},
}
