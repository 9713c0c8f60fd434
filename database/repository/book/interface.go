package bookRepo

import "inkwell/models"

// BookRepository provides persistence for the book catalogue.
type BookRepository interface {
	Create(book *models.Book) error
	GetByID(id string) (*models.Book, error)

	// IncrementViews atomically bumps the view counter and returns the fresh
	// document, so callers see the post-increment count.
	IncrementViews(id string) (*models.Book, error)
}
