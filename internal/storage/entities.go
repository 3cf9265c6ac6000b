package storage

import "time"

type Event struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type SpawnRule struct {
	EventID  string
	Position int
	Day      int
	Hour     int
	Minute   int
}
