package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/izhanjunaid/mongo-backend/internal/dto"
	pkgdto "github.com/izhanjunaid/mongo-backend/pkg/dto"
	"github.com/izhanjunaid/mongo-backend/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductService struct {
	addReq    dto.ProductRequest
	addMain   *dto.ImageUpload
	addShades []dto.ImageUpload
	addErr    error
	updateErr error
	deleteErr error
	listParam pkgdto.Filter
}

func (s *stubProductService) AddProduct(ctx context.Context, data dto.ProductRequest, mainImage *dto.ImageUpload, shadeImages []dto.ImageUpload) (dto.ProductResponse, error) {
	s.addReq = data
	s.addMain = mainImage
	s.addShades = shadeImages
	return dto.ProductResponse{ID: "stub"}, s.addErr
}

func (s *stubProductService) UpdateProduct(ctx context.Context, data dto.ProductRequest, mainImage *dto.ImageUpload, shadeImages []dto.ImageUpload) (dto.ProductResponse, error) {
	return dto.ProductResponse{ID: data.ID}, s.updateErr
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteErr
}

func (s *stubProductService) GetProductByID(ctx context.Context, id string) (dto.ProductResponse, error) {
	return dto.ProductResponse{ID: id}, nil
}

func (s *stubProductService) GetProducts(ctx context.Context, param pkgdto.Filter) (pkgdto.PaginationMetadata, []dto.ProductResponse, error) {
	s.listParam = param
	return pkgdto.PaginationMetadata{}, nil, nil
}

func (s *stubProductService) DownloadImage(ctx context.Context, id string, w io.Writer) (string, error) {
	_, err := w.Write([]byte("pixels"))
	return "image/png", err
}

func writeImagePart(t *testing.T, writer *multipart.Writer, field string, filename string, contentType string, content []byte) {
	t.Helper()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
}

func multipartRequest(t *testing.T, build func(*multipart.Writer)) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	build(writer)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestAddProductDecodesMultipartPayload(t *testing.T) {
	stub := &stubProductService{}
	c := Controller{service: stub}

	req := multipartRequest(t, func(writer *multipart.Writer) {
		writer.WriteField("name", "Velvet Matte Lipstick")
		writer.WriteField("category", "makeup")
		writer.WriteField("brand", "Lumiere")
		writer.WriteField("price", "19.99")
		writer.WriteField("description", "Long-wear matte finish")
		writer.WriteField("features", "long-wear")
		writer.WriteField("features", "vegan")
		writer.WriteField("ingredients", "shea butter")
		writer.WriteField("shades", `[{"name":"Ruby","color_code":"#9b111e","quantity":12},{"name":"Coral","reference_image":"https://cdn.example.com/coral.png"}]`)
		writeImagePart(t, writer, "mainImage", "main.png", "image/png", []byte("main-bytes"))
		writeImagePart(t, writer, "shadeImages", "ruby.png", "image/png", []byte("ruby-bytes"))
	})

	rec := httptest.NewRecorder()
	e := echo.New()
	ctx := e.NewContext(req, rec)

	require.NoError(t, c.AddProduct(ctx))
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "Velvet Matte Lipstick", stub.addReq.Name)
	assert.Equal(t, "makeup", stub.addReq.Category)
	assert.Equal(t, 19.99, stub.addReq.Price)
	assert.Equal(t, []string{"long-wear", "vegan"}, stub.addReq.Features)
	require.Len(t, stub.addReq.Shades, 2)
	assert.Equal(t, "Ruby", stub.addReq.Shades[0].Name)
	assert.Equal(t, uint64(12), stub.addReq.Shades[0].Quantity)
	assert.Equal(t, "https://cdn.example.com/coral.png", stub.addReq.Shades[1].ReferenceImage)

	require.NotNil(t, stub.addMain)
	assert.Equal(t, "main.png", stub.addMain.Filename)
	assert.Equal(t, "image/png", stub.addMain.ContentType)
	main, err := io.ReadAll(stub.addMain.Content)
	require.NoError(t, err)
	assert.Equal(t, []byte("main-bytes"), main)

	require.Len(t, stub.addShades, 1)
	assert.Equal(t, "ruby.png", stub.addShades[0].Filename)
}

func TestAddProductWithoutMainImagePassesNil(t *testing.T) {
	stub := &stubProductService{}
	c := Controller{service: stub}

	req := multipartRequest(t, func(writer *multipart.Writer) {
		writer.WriteField("name", "Velvet Matte Lipstick")
		writer.WriteField("category", "makeup")
	})

	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)

	require.NoError(t, c.AddProduct(ctx))
	assert.Nil(t, stub.addMain, "missing attachment reaches the service as nil, which rejects it")
}

func TestAddProductRejectsNonImageUpload(t *testing.T) {
	stub := &stubProductService{}
	c := Controller{service: stub}

	req := multipartRequest(t, func(writer *multipart.Writer) {
		writer.WriteField("name", "Velvet Matte Lipstick")
		writeImagePart(t, writer, "mainImage", "notes.txt", "text/plain", []byte("just text"))
	})

	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)

	require.NoError(t, c.AddProduct(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddProductMalformedShadesJSON(t *testing.T) {
	stub := &stubProductService{}
	c := Controller{service: stub}

	req := multipartRequest(t, func(writer *multipart.Writer) {
		writer.WriteField("name", "Velvet Matte Lipstick")
		writer.WriteField("shades", "{not json")
	})

	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)

	require.NoError(t, c.AddProduct(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProductNotFoundMapsTo404(t *testing.T) {
	stub := &stubProductService{deleteErr: errs.ErrNotFound}
	c := Controller{service: stub}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/abc", nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("abc")

	require.NoError(t, c.DeleteProduct(ctx))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductsBindsQueryParams(t *testing.T) {
	stub := &stubProductService{}
	c := Controller{service: stub}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=2&limit=5&category=makeup&brand=Lumiere&q=velvet", nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)

	require.NoError(t, c.GetProducts(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(2), stub.listParam.Page)
	assert.Equal(t, uint64(5), stub.listParam.Limit)
	assert.Equal(t, "makeup", stub.listParam.Category)
	assert.Equal(t, "velvet", stub.listParam.Search)
}

func TestDownloadImageStreamsBlob(t *testing.T) {
	stub := &stubProductService{}
	c := Controller{service: stub}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/images/abc", nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("abc")

	require.NoError(t, c.DownloadImage(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "pixels", rec.Body.String())
}
