package domain

import "time"

// PackRecord describes the last archive written to an output path.
type PackRecord struct {
	Output    string    `json:"output,omitzero"`
	Roots     []string  `json:"roots,omitempty"`
	Units     int       `json:"units,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
