package model

import "time"

// Program is a named show, independent of when it airs.
type Program struct {
	ID                  string    `db:"id"                   json:"id"                             yaml:"id"`
	Name                string    `db:"name"                 json:"name"                           yaml:"name"`
	LogoURL             *string   `db:"logo_url"             json:"logo_url,omitempty"             yaml:"logo_url,omitempty"`
	Description         *string   `db:"description"          json:"description,omitempty"          yaml:"description,omitempty"`
	ExtendedDescription *string   `db:"extended_description" json:"extended_description,omitempty" yaml:"extended_description,omitempty"`
	CreatedAt           time.Time `db:"created_at"           json:"created_at"                     yaml:"-"`
	UpdatedAt           time.Time `db:"updated_at"           json:"updated_at"                     yaml:"-"`
}

// Complete reports whether the program can be shown on the player.
func (p Program) Complete() bool {
	return p.Name != ""
}
