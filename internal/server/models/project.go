// Package models holds the rows stored by the development server.
package models

type Project struct {
	ID            string
	UserID        string
	Name          string
	Description   string
	Status        string
	ClientName    string
	ClientNumber  string
	ClientAddress string
}

type Work struct {
	ID          string
	UserID      string
	ProjectID   string
	Name        string
	Description string
}
