package bands

import "time"

// Band es el artista o grupo que sale de gira. Un tour puede referenciarla por BandID.
type Band struct {
	ID    string
	Name  string
	Genre string

	CreatedAt time.Time
	UpdatedAt time.Time
}
