package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered shop account. Email is unique across the collection,
// enforced by a unique index created at startup (see database.EnsureIndexes).
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email    string             `bson:"email"              json:"email"`
	Name     string             `bson:"name"               json:"name"`
	Password string             `bson:"password,omitempty" json:"-"` // bcrypt hash, never serialised
}

// PublicView is the reduced account shape returned by login: identifier,
// email and name only.
func (u User) PublicView() UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name}
}

// UserView is the password-free projection of a User.
type UserView struct {
	ID    primitive.ObjectID `json:"_id"`
	Email string             `json:"email"`
	Name  string             `json:"name"`
}
