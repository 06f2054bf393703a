package component

type GoalStatus string

const (
	GoalPlaying GoalStatus = "playing"
	GoalWon     GoalStatus = "won"
	GoalLost    GoalStatus = "lost"
)

// Goal tracks the win/lose rule of a level. Script names a tengo script
// under prefabs/scripts.
type Goal struct {
	Script         string
	Status         GoalStatus
	StarsTotal     int
	StarsCollected int
	OutOfBounds    bool
	Frames         int
}

var GoalComponent = NewComponent[Goal]()
