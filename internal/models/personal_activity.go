package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PersonalActivity is a user-defined busy slot, such as work or a commute,
// that a timetable must leave free.
type PersonalActivity struct {
	ID       string    `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	Meetings []Meeting `db:"-" json:"meetings"`
}

var personalNamespace = uuid.MustParse("0b8e3d2a-71f4-4c1e-a5d9-3e6f2c8b7a10")

// NewPersonalActivity builds an activity whose id and meeting ids derive
// from its name and slots, so saving the same activity twice is a no-op.
func NewPersonalActivity(name string, meetings ...Meeting) PersonalActivity {
	name = strings.TrimSpace(name)
	activity := PersonalActivity{
		ID:       uuid.NewSHA1(personalNamespace, []byte(name)).String(),
		Name:     name,
		Meetings: make([]Meeting, 0, len(meetings)),
	}
	for _, m := range meetings {
		if m.ID == "" {
			seed := fmt.Sprintf("personal|%s|%d|%s|%s", activity.ID, m.Day, m.StartTime, m.EndTime)
			m.ID = uuid.NewSHA1(personalNamespace, []byte(seed)).String()
		}
		activity.Meetings = append(activity.Meetings, m)
	}
	return activity
}
