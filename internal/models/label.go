package models

type Label struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
	Sort int    `json:"sort" bson:"sort"`
}
