package model

import "time"

// One review per user per product; user_name is denormalized at insert.
type Review struct {
	ID        string    `json:"id" bson:"id"`
	ProductID string    `json:"product_id" bson:"product_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserName  string    `json:"user_name" bson:"user_name"`
	Rating    int       `json:"rating" bson:"rating"`
	Title     string    `json:"title,omitempty" bson:"title,omitempty"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type ReviewCreate struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}
