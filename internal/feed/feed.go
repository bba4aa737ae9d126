// Package feed computes the merged, time-ordered view of upcoming meetings
// across a user's teams. Build is a pure function over a snapshot of teams;
// Apply inserts one freshly scheduled entry without a re-fetch.
package feed

import (
	"sort"
	"time"
)

// GraceWindow keeps meetings that started within the last hour visible.
const GraceWindow = time.Hour

// Meeting is a feed projection of a scheduled meeting. Time is seconds since
// the Unix epoch.
type Meeting struct {
	Name   string
	Agenda string
	Time   int64
	Token  string
}

// Team is the input snapshot for Build: a team name plus its meeting list in
// append order.
type Team struct {
	ID       string
	Name     string
	Meetings []Meeting
}

// Entry pairs a meeting with its owning team.
type Entry struct {
	TeamID   string
	TeamName string
	Meeting  Meeting
}

// Build merges every meeting from the provided teams into one ascending
// timeline. Meetings older than the grace window are dropped. The sort is
// stable: entries with equal timestamps keep team order, then meeting list
// order.
func Build(teams []Team, now time.Time) []Entry {
	cutoff := now.Add(-GraceWindow).Unix()

	var entries []Entry
	for _, team := range teams {
		for _, meeting := range team.Meetings {
			if meeting.Time <= cutoff {
				continue
			}
			entries = append(entries, Entry{
				TeamID:   team.ID,
				TeamName: team.Name,
				Meeting:  meeting,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Meeting.Time < entries[j].Meeting.Time
	})
	return entries
}

// Apply inserts entry into an already ordered feed, preserving the ascending
// order. An entry with a timestamp equal to existing ones lands after them,
// matching the stable ordering Build produces. The input slice is not
// modified.
func Apply(entries []Entry, entry Entry) []Entry {
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].Meeting.Time > entry.Meeting.Time
	})

	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries[:idx]...)
	out = append(out, entry)
	out = append(out, entries[idx:]...)
	return out
}
