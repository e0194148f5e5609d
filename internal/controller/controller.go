package controller

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/izhanjunaid/mongo-backend/internal/dto"
	"github.com/izhanjunaid/mongo-backend/internal/service"
	pkgdto "github.com/izhanjunaid/mongo-backend/pkg/dto"
	"github.com/izhanjunaid/mongo-backend/pkg/errs"
	"github.com/izhanjunaid/mongo-backend/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService, isLoggedIn echo.MiddlewareFunc) {
	c := Controller{
		service: service,
	}
	e.GET("/products", c.GetProducts)
	e.GET("/products/:id", c.GetProductByID)
	e.GET("/products/images/:id", c.DownloadImage)
	e.POST("/products", c.AddProduct, isLoggedIn)
	e.PUT("/products/:id", c.UpdateProduct, isLoggedIn)
	e.DELETE("/products/:id", c.DeleteProduct, isLoggedIn)
}

// bindProductPayload reads the scalar product fields plus the shades JSON
// field off a multipart form.
func bindProductPayload(e echo.Context) (dto.ProductRequest, error) {
	payload := dto.ProductRequest{
		Name:        e.FormValue("name"),
		Category:    e.FormValue("category"),
		Brand:       e.FormValue("brand"),
		Description: e.FormValue("description"),
	}

	if price := e.FormValue("price"); price != "" {
		parsed, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return payload, fmt.Errorf("%w: malformed price", errs.ErrClient)
		}
		payload.Price = parsed
	}

	if form, err := e.MultipartForm(); err == nil {
		payload.Features = form.Value["features"]
		payload.Ingredients = form.Value["ingredients"]
	}

	if shades := e.FormValue("shades"); shades != "" {
		if err := json.Unmarshal([]byte(shades), &payload.Shades); err != nil {
			return payload, fmt.Errorf("%w: malformed shades payload", errs.ErrClient)
		}
	}

	return payload, nil
}

// openUpload wraps a multipart file as an image upload, sniffing the content
// type from the first bytes when the part header does not declare one.
func openUpload(fileHeader *multipart.FileHeader) (dto.ImageUpload, io.Closer, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return dto.ImageUpload{}, nil, err
	}

	buffered := bufio.NewReader(file)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		peek, _ := buffered.Peek(512)
		contentType = http.DetectContentType(peek)
	}

	if !strings.HasPrefix(contentType, "image/") {
		file.Close()
		return dto.ImageUpload{}, nil, errs.ErrNotAnImage
	}

	return dto.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Content:     buffered,
	}, file, nil
}

// bindUploads collects the optional mainImage file and the positional
// shadeImages files. The returned closer releases every opened part.
func bindUploads(e echo.Context) (*dto.ImageUpload, []dto.ImageUpload, func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	var mainImage *dto.ImageUpload
	if fileHeader, err := e.FormFile("mainImage"); err == nil {
		upload, closer, openErr := openUpload(fileHeader)
		if openErr != nil {
			closeAll()
			return nil, nil, nil, openErr
		}
		closers = append(closers, closer)
		mainImage = &upload
	}

	var shadeImages []dto.ImageUpload
	if form, err := e.MultipartForm(); err == nil {
		for _, fileHeader := range form.File["shadeImages"] {
			upload, closer, openErr := openUpload(fileHeader)
			if openErr != nil {
				closeAll()
				return nil, nil, nil, openErr
			}
			closers = append(closers, closer)
			shadeImages = append(shadeImages, upload)
		}
	}

	return mainImage, shadeImages, closeAll, nil
}

func (c *Controller) AddProduct(e echo.Context) error {
	payload, err := bindProductPayload(e)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	mainImage, shadeImages, closeUploads, err := bindUploads(e)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}
	defer closeUploads()

	_, userName := utils.ExtractTokenUser(e)
	log.Ctx(e.Request().Context()).Info().Str("component", "AddProduct").Str("user", userName).Msg("")

	resp, err := c.service.AddProduct(e.Request().Context(), payload, mainImage, shadeImages)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, http.StatusCreated, "", resp)
}

func (c *Controller) UpdateProduct(e echo.Context) error {
	payload, err := bindProductPayload(e)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	mainImage, shadeImages, closeUploads, err := bindUploads(e)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}
	defer closeUploads()

	payload.ID = e.Param("id")
	resp, err := c.service.UpdateProduct(e.Request().Context(), payload, mainImage, shadeImages)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, http.StatusOK, "", resp)
}

func (c *Controller) DeleteProduct(e echo.Context) error {
	id := e.Param("id")
	err := c.service.DeleteProduct(e.Request().Context(), id)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, http.StatusOK, "product and its images removed", nil)
}

func (c *Controller) GetProductByID(e echo.Context) error {
	resp, err := c.service.GetProductByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, http.StatusOK, "", resp)
}

func (c *Controller) GetProducts(e echo.Context) error {
	param := pkgdto.Filter{}
	if err := e.Bind(&param); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetProducts").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	metadata, resp, err := c.service.GetProducts(e.Request().Context(), param)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WritePaginationResponse(e, metadata, resp)
}

func (c *Controller) DownloadImage(e echo.Context) error {
	var buf bytes.Buffer
	contentType, err := c.service.DownloadImage(e.Request().Context(), e.Param("id"), &buf)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return e.Blob(http.StatusOK, contentType, buf.Bytes())
}
