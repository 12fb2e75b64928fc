package model

const (
	MinPlannedPomodoros = 1
	MaxPlannedPomodoros = 12
)

type Goal struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	PlannedPomodoros int    `json:"plannedPomodoros"`
	DonePomodoros    int    `json:"donePomodoros"`
	Checked          bool   `json:"checked"`
}
