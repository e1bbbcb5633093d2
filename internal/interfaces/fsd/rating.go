// Package fsd
package fsd

type RatingModel struct {
	Id        int    `json:"id"`
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
}

// AtcRating 管制员等级, 同时用于 #AA 与 % 报文
type AtcRating int

const (
	AtcRatingUnknown AtcRating = iota
	Observer
	STU1
	STU2
	STU3
	CTR1
	CTR2
	CTR3
	Instructor1
	Instructor2
	Instructor3
	Supervisor
	Administrator
)

var AtcRatings = []RatingModel{
	{0, "UNK", "Unknown"},
	{1, "OBS", "Observer"},
	{2, "S1", "Tower Trainee"},
	{3, "S2", "Tower Controller"},
	{4, "S3", "Senior Student"},
	{5, "C1", "Enroute Controller"},
	{6, "C2", "Controller 2 (not in use)"},
	{7, "C3", "Senior Controller"},
	{8, "I1", "Instructor"},
	{9, "I2", "Instructor 2 (not in use)"},
	{10, "I3", "Senior Instructor"},
	{11, "SUP", "Supervisor"},
	{12, "ADM", "Administrator"},
}

func ParseAtcRating(value int) AtcRating {
	if value < 0 || value > int(Administrator) {
		return AtcRatingUnknown
	}
	return AtcRating(value)
}

func (r AtcRating) String() string {
	return AtcRatings[ParseAtcRating(int(r))].ShortName
}

func (r AtcRating) Index() int {
	return int(r)
}

// PilotRating 飞行员等级
type PilotRating int

const (
	PilotRatingUnknown PilotRating = iota
	PilotStudent
	PilotVFR
	PilotIFR
	PilotInstructor
	PilotSupervisor
)

var PilotRatings = []RatingModel{
	{0, "UNK", "Unknown"},
	{1, "STU", "Student"},
	{2, "VFR", "VFR Pilot"},
	{3, "IFR", "IFR Pilot"},
	{4, "INS", "Instructor"},
	{5, "SUP", "Supervisor"},
}

func ParsePilotRating(value int) PilotRating {
	if value < 0 || value > int(PilotSupervisor) {
		return PilotRatingUnknown
	}
	return PilotRating(value)
}

func (r PilotRating) String() string {
	return PilotRatings[ParsePilotRating(int(r))].ShortName
}

func (r PilotRating) Index() int {
	return int(r)
}
