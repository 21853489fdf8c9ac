package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a catalogue record. The owner email is the account that added
// it; reads are scoped by that field. The identifier is assigned by the
// store at insert time and never changes afterwards.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email       string             `bson:"email"       json:"email"`
	ProductName string             `bson:"productName" json:"productName"`
	Price       float64            `bson:"price"       json:"price"`
	Quantity    int64              `bson:"quantity"    json:"quantity"`
	ReleaseDate string             `bson:"releaseDate" json:"releaseDate"`
	Brand       string             `bson:"brand"       json:"brand"`
	Model       string             `bson:"model"       json:"model"`
	Style       string             `bson:"style"       json:"style"`
	Size        string             `bson:"size"        json:"size"`
	Color       string             `bson:"color"       json:"color"`
	Material    string             `bson:"material"    json:"material"`
}

// ProductFields is the fixed field set touched by an update. An update
// overwrites ALL of these on the matching record: values absent from the
// request body land here as zero values and are written out as such, so a
// partial payload clears the fields it omits. That full-replace semantic is
// part of the wire contract and is pinned by tests.
type ProductFields struct {
	ProductName string  `bson:"productName" json:"productName"`
	Price       float64 `bson:"price"       json:"price"`
	Quantity    int64   `bson:"quantity"    json:"quantity"`
	ReleaseDate string  `bson:"releaseDate" json:"releaseDate"`
	Brand       string  `bson:"brand"       json:"brand"`
	Model       string  `bson:"model"       json:"model"`
	Style       string  `bson:"style"       json:"style"`
	Size        string  `bson:"size"        json:"size"`
	Color       string  `bson:"color"       json:"color"`
	Material    string  `bson:"material"    json:"material"`
}
