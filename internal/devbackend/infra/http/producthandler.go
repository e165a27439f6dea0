package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-storefront/internal/devbackend/app/service"
	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
)

type (
	ListProductsHandler struct {
		catalog service.Catalog
	}

	GetProductHandler struct {
		catalog service.Catalog
	}

	CreateProductHandler struct {
		catalog service.Catalog
	}

	UpdateProductHandler struct {
		catalog service.Catalog
	}

	DeleteProductHandler struct {
		catalog service.Catalog
	}
)

func NewListProductsHandler(catalog service.Catalog) ListProductsHandler {
	return ListProductsHandler{catalog: catalog}
}

func (h ListProductsHandler) Method() string {
	return http.MethodGet
}

func (h ListProductsHandler) Path() string {
	return "/products"
}

func (h ListProductsHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		return err
	}

	out := make([]productData, 0, len(products))
	for _, product := range products {
		out = append(out, toProductData(product))
	}
	w.SetJSONBody(out)
	return nil
}

func NewGetProductHandler(catalog service.Catalog) GetProductHandler {
	return GetProductHandler{catalog: catalog}
}

func (h GetProductHandler) Method() string {
	return http.MethodGet
}

func (h GetProductHandler) Path() string {
	return "/products/{productID}"
}

func (h GetProductHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	productID, err := pkghttp.ParseRequest(r, pkghttp.PathParameter[uuid.UUID]("productID"), err)
	if err != nil {
		return err
	}

	product, err := h.catalog.Get(r.Context(), domain.ProductID{UUID: productID})
	if err != nil {
		return err
	}

	w.SetJSONBody(toProductData(*product))
	return nil
}

func NewCreateProductHandler(catalog service.Catalog) CreateProductHandler {
	return CreateProductHandler{catalog: catalog}
}

func (h CreateProductHandler) Method() string {
	return http.MethodPost
}

func (h CreateProductHandler) Path() string {
	return "/products"
}

func (h CreateProductHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[productData](), err)
	if err != nil {
		return err
	}

	product, err := h.catalog.Create(r.Context(), in.toServiceData())
	if err != nil {
		return err
	}

	w.SetStatusCode(http.StatusCreated)
	w.SetJSONBody(toProductData(*product))
	return nil
}

func NewUpdateProductHandler(catalog service.Catalog) UpdateProductHandler {
	return UpdateProductHandler{catalog: catalog}
}

func (h UpdateProductHandler) Method() string {
	return http.MethodPut
}

func (h UpdateProductHandler) Path() string {
	return "/products/{productID}"
}

func (h UpdateProductHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	productID, err := pkghttp.ParseRequest(r, pkghttp.PathParameter[uuid.UUID]("productID"), err)
	in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[productData](), err)
	if err != nil {
		return err
	}

	product, err := h.catalog.Update(r.Context(), domain.ProductID{UUID: productID}, in.toServiceData())
	if err != nil {
		return err
	}

	w.SetJSONBody(toProductData(*product))
	return nil
}

func NewDeleteProductHandler(catalog service.Catalog) DeleteProductHandler {
	return DeleteProductHandler{catalog: catalog}
}

func (h DeleteProductHandler) Method() string {
	return http.MethodDelete
}

func (h DeleteProductHandler) Path() string {
	return "/products/{productID}"
}

func (h DeleteProductHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	productID, err := pkghttp.ParseRequest(r, pkghttp.PathParameter[uuid.UUID]("productID"), err)
	if err != nil {
		return err
	}

	err = h.catalog.Delete(r.Context(), domain.ProductID{UUID: productID})
	if err != nil {
		return err
	}

	w.SetStatusCode(http.StatusNoContent)
	return nil
}
