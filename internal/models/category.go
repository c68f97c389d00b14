package models

// Category представляет справочную категорию проекта.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
