package logic

import "hangman/models"

// Part is one piece of the figure under the gallows.
type Part int

const (
	PartHead Part = iota
	PartTorso
	PartLeftArm
	PartRightArm
	PartLeftLeg
	PartRightLeg
)

// Parts lists every part in the order they are drawn.
var Parts = []Part{PartHead, PartTorso, PartLeftArm, PartRightArm, PartLeftLeg, PartRightLeg}

func (p Part) String() string {
	switch p {
	case PartHead:
		return "head"
	case PartTorso:
		return "torso"
	case PartLeftArm:
		return "left-arm"
	case PartRightArm:
		return "right-arm"
	case PartLeftLeg:
		return "left-leg"
	case PartRightLeg:
		return "right-leg"
	default:
		return "unknown"
	}
}

// Stage maps a wrong-guess count to the number of parts shown, 0 to MaxAttempts.
func Stage(wrongCount int) int {
	if wrongCount < 0 {
		return 0
	}
	if wrongCount > models.MaxAttempts {
		return models.MaxAttempts
	}
	return wrongCount
}

// VisibleParts returns the parts unlocked at stage. Stage 0 is the bare frame.
func VisibleParts(stage int) []Part {
	stage = Stage(stage)
	visible := make([]Part, stage)
	copy(visible, Parts[:stage])
	return visible
}
