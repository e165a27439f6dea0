package http

import (
	"context"
	"net/http"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
)

var (
	listProductsRoute  = pkghttp.Route{Method: http.MethodGet, URL: "/products"}
	getProductRoute    = pkghttp.Route{Method: http.MethodGet, URL: "/products/{productID}"}
	createProductRoute = pkghttp.Route{Method: http.MethodPost, URL: "/products"}
	updateProductRoute = pkghttp.Route{Method: http.MethodPut, URL: "/products/{productID}"}
	deleteProductRoute = pkghttp.Route{Method: http.MethodDelete, URL: "/products/{productID}"}
)

type catalogAPI struct {
	client pkghttp.Client
}

func NewCatalogAPI(client pkghttp.Client) backend.CatalogAPI {
	return catalogAPI{client: client}
}

func (a catalogAPI) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out, err := send[[]ProductData](a.client.NewRequest(ctx, listProductsRoute), "catalog.listProducts", http.StatusOK)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(out))
	for _, data := range out {
		products = append(products, toDomainProduct(data))
	}
	return products, nil
}

func (a catalogAPI) GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	req := a.client.NewRequest(ctx, getProductRoute).
		SetPathParam("productID", id.String())

	out, err := send[ProductData](req, "catalog.getProduct", http.StatusOK)
	if err != nil {
		return nil, err
	}

	product := toDomainProduct(out)
	return &product, nil
}

func (a catalogAPI) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	req := a.client.NewRequest(ctx, createProductRoute).
		SetJSONBody(toProductData(product))

	out, err := send[ProductData](req, "catalog.createProduct", http.StatusCreated)
	if err != nil {
		return nil, err
	}

	created := toDomainProduct(out)
	return &created, nil
}

func (a catalogAPI) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	req := a.client.NewRequest(ctx, updateProductRoute).
		SetPathParam("productID", product.ID.String()).
		SetJSONBody(toProductData(product))

	out, err := send[ProductData](req, "catalog.updateProduct", http.StatusOK)
	if err != nil {
		return nil, err
	}

	updated := toDomainProduct(out)
	return &updated, nil
}

func (a catalogAPI) DeleteProduct(ctx context.Context, id domain.ProductID) error {
	req := a.client.NewRequest(ctx, deleteProductRoute).
		SetPathParam("productID", id.String())

	return sendNoContent(req, "catalog.deleteProduct")
}
