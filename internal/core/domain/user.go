package domain

import "time"

// User models an account owned by the upstream data service. The BFF never
// mutates users directly; it only reads and writes them through the data API.
type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	RegisteredAt time.Time `json:"registeredAt"`
	Role         Role      `json:"roleId"`
}

// Post is a published article.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"imageUrl"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Comment belongs to a post. Author is empty on the wire and filled in by the
// orchestrator when a view needs the author's login.
type Comment struct {
	ID          string    `json:"id"`
	PostID      string    `json:"postId"`
	AuthorID    string    `json:"authorId"`
	Author      string    `json:"author,omitempty"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
}
