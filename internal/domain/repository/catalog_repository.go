package repository

import "github.com/benettihome/operaciones-api/internal/domain/entity"

// ProviderRepository catálogo de proveedores.
type ProviderRepository interface {
	GetByID(id int64) (*entity.Provider, error)
}

// BrandRepository catálogo de marcas.
type BrandRepository interface {
	GetByID(id int64) (*entity.Brand, error)
}

// ProductRepository catálogo de productos (distingue stock de pedido especial).
type ProductRepository interface {
	GetByID(id int64) (*entity.Product, error)
}

// DocumentRepository archivos adjuntos.
type DocumentRepository interface {
	Create(d *entity.Document) error
	GetByID(id int64) (*entity.Document, error)
}
