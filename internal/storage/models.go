package storage

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"poshak-storefront/internal/catalog"
)

type variantDocument struct {
	Size  string  `bson:"size"`
	Price float64 `bson:"price"`
}

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Sizes       []variantDocument  `bson:"sizes"`
	Images      []string           `bson:"images"`
	Featured    bool               `bson:"featured"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
}

func toProductDocument(p catalog.Product) productDocument {
	d := productDocument{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Sizes:       make([]variantDocument, len(p.Sizes)),
		Images:      p.Images,
		Featured:    p.Featured,
	}
	if d.Images == nil {
		d.Images = []string{}
	}
	for i, v := range p.Sizes {
		d.Sizes[i] = variantDocument{Size: v.Size, Price: v.Price}
	}
	return d
}

func (d productDocument) toDomain() catalog.Product {
	p := catalog.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Sizes:       make([]catalog.Variant, len(d.Sizes)),
		Images:      d.Images,
		Featured:    d.Featured,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	for i, v := range d.Sizes {
		p.Sizes[i] = catalog.Variant{Size: v.Size, Price: v.Price}
	}
	return p
}
