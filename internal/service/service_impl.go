package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/izhanjunaid/mongo-backend/config"
	"github.com/izhanjunaid/mongo-backend/internal/domain"
	"github.com/izhanjunaid/mongo-backend/internal/dto"
	"github.com/izhanjunaid/mongo-backend/internal/repository"
	"github.com/izhanjunaid/mongo-backend/internal/storage"
	pkgdto "github.com/izhanjunaid/mongo-backend/pkg/dto"
	"github.com/izhanjunaid/mongo-backend/pkg/errs"
	"github.com/izhanjunaid/mongo-backend/pkg/utils"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// Up to this many shade images per request, positionally paired with the
// shade list.
const MaxShadeImages = 10

type ProductServiceImpl struct {
	mongoDBRepo   repository.MongoDBProductRepository
	blobStore     storage.BlobStore
	config        config.Config
	kafkaProducer *kafka.Conn
}

func CreateProductService(mongoDBRepo repository.MongoDBProductRepository, blobStore storage.BlobStore, config config.Config, kafkaProducer *kafka.Conn) ProductService {
	return &ProductServiceImpl{mongoDBRepo: mongoDBRepo, blobStore: blobStore, config: config, kafkaProducer: kafkaProducer}
}

func validateProductPayload(data dto.ProductRequest) error {
	if data.Name == "" {
		return fmt.Errorf("%w: name is required", errs.ErrClient)
	}

	if !domain.Category(data.Category).Valid() {
		return fmt.Errorf("%w: unknown category %q", errs.ErrClient, data.Category)
	}

	if data.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", errs.ErrClient)
	}

	return nil
}

func validateShadeImages(data dto.ProductRequest, shadeImages []dto.ImageUpload) error {
	if len(shadeImages) > MaxShadeImages {
		return fmt.Errorf("%w: at most %d shade images per request", errs.ErrClient, MaxShadeImages)
	}

	if len(shadeImages) > len(data.Shades) {
		return fmt.Errorf("%w: more shade images than shades", errs.ErrClient)
	}

	return nil
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest, mainImage *dto.ImageUpload, shadeImages []dto.ImageUpload) (resp dto.ProductResponse, err error) {
	if err = validateProductPayload(data); err != nil {
		return
	}

	if mainImage == nil {
		return resp, fmt.Errorf("%w: main image is required", errs.ErrClient)
	}

	if err = validateShadeImages(data, shadeImages); err != nil {
		return
	}

	shades, fresh, err := s.resolveShades(ctx, data.Shades, shadeImages)
	if err != nil {
		return
	}

	mainImageID, err := s.blobStore.Store(ctx, mainImage.Content, mainImage.Filename, mainImage.ContentType)
	if err != nil {
		s.logOrphans(ctx, fresh)
		return
	}
	fresh = append(fresh, mainImageID)

	mainRef := domain.BlobRef(mainImageID)
	now := time.Now().UTC()
	product := domain.Product{
		Name:        data.Name,
		Category:    domain.Category(data.Category),
		Brand:       data.Brand,
		Price:       data.Price,
		Description: data.Description,
		Features:    data.Features,
		Ingredients: data.Ingredients,
		MainImage:   &mainRef,
		Shades:      shades,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The document write is always the last step; a failure here leaves the
	// freshly stored blobs orphaned, so their ids are logged for reaping.
	productID, err := s.mongoDBRepo.AddProduct(ctx, product)
	if err != nil {
		s.logOrphans(ctx, fresh)
		return
	}

	product.ID = productID
	resp = dto.CreateProductResponse(product)
	s.publishEvent(ctx, "product_created", resp)

	return resp, nil
}

// resolveShades pairs shade i with shadeImages[i]. Slots with an upload get
// a freshly stored blob, uploads running concurrently; slots without keep
// whatever reference the payload carries. The second return value lists the
// blob ids stored by this call, whether or not it succeeded as a whole.
func (s *ProductServiceImpl) resolveShades(ctx context.Context, reqs []dto.ShadeRequest, uploads []dto.ImageUpload) ([]domain.Shade, []primitive.ObjectID, error) {
	shades := make([]domain.Shade, len(reqs))
	stored := make([]primitive.ObjectID, len(reqs))
	g, gctx := errgroup.WithContext(ctx)

	for i, req := range reqs {
		shades[i] = domain.Shade{
			Name:           req.Name,
			ColorCode:      req.ColorCode,
			Quantity:       req.Quantity,
			Price:          req.Price,
			ReferenceImage: domain.ParseImageRef(req.ReferenceImage),
		}

		if i < len(uploads) {
			i, upload := i, uploads[i]
			g.Go(func() error {
				blobID, err := s.blobStore.Store(gctx, upload.Content, upload.Filename, upload.ContentType)
				if err != nil {
					return err
				}

				shades[i].ReferenceImage = domain.BlobRef(blobID)
				stored[i] = blobID
				return nil
			})
		}
	}

	fresh := func() []primitive.ObjectID {
		var ids []primitive.ObjectID
		for _, id := range stored {
			if !id.IsZero() {
				ids = append(ids, id)
			}
		}
		return ids
	}

	if err := g.Wait(); err != nil {
		s.logOrphans(ctx, fresh())
		return nil, nil, err
	}

	return shades, fresh(), nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, data dto.ProductRequest, mainImage *dto.ImageUpload, shadeImages []dto.ImageUpload) (resp dto.ProductResponse, err error) {
	if err = validateProductPayload(data); err != nil {
		return
	}

	if err = validateShadeImages(data, shadeImages); err != nil {
		return
	}

	// NotFound must surface before any blob store call.
	existing, err := s.mongoDBRepo.GetProductByID(ctx, data.ID)
	if err != nil {
		return
	}

	var fresh []primitive.ObjectID
	shades := make([]domain.Shade, len(data.Shades))
	for i, req := range data.Shades {
		shades[i] = domain.Shade{
			Name:           req.Name,
			ColorCode:      req.ColorCode,
			Quantity:       req.Quantity,
			Price:          req.Price,
			ReferenceImage: domain.ParseImageRef(req.ReferenceImage),
		}

		if i >= len(shadeImages) {
			continue
		}

		// A new file for this slot replaces the old blob: best-effort delete
		// of the previous one, then store and reference the new one.
		if i < len(existing.Shades) {
			if oldID, ok := existing.Shades[i].ReferenceImage.Blob(); ok {
				if deleteErr := s.blobStore.Delete(ctx, oldID); deleteErr != nil {
					log.Ctx(ctx).Error().Err(deleteErr).Str("component", "UpdateProduct").Str("blob_id", oldID.Hex()).Msg("failed to delete replaced shade image")
				}
			}
		}

		blobID, storeErr := s.blobStore.Store(ctx, shadeImages[i].Content, shadeImages[i].Filename, shadeImages[i].ContentType)
		if storeErr != nil {
			s.logOrphans(ctx, fresh)
			return resp, storeErr
		}

		shades[i].ReferenceImage = domain.BlobRef(blobID)
		fresh = append(fresh, blobID)
	}

	mainRef := existing.MainImage
	if mainImage != nil {
		if oldID, ok := refBlob(existing.MainImage); ok {
			if deleteErr := s.blobStore.Delete(ctx, oldID); deleteErr != nil {
				log.Ctx(ctx).Error().Err(deleteErr).Str("component", "UpdateProduct").Str("blob_id", oldID.Hex()).Msg("failed to delete replaced main image")
			}
		}

		mainImageID, storeErr := s.blobStore.Store(ctx, mainImage.Content, mainImage.Filename, mainImage.ContentType)
		if storeErr != nil {
			s.logOrphans(ctx, fresh)
			return resp, storeErr
		}

		newRef := domain.BlobRef(mainImageID)
		mainRef = &newRef
		fresh = append(fresh, mainImageID)
	}

	updated := domain.Product{
		ID:          existing.ID,
		Name:        data.Name,
		Category:    domain.Category(data.Category),
		Brand:       data.Brand,
		Price:       data.Price,
		Description: data.Description,
		Features:    data.Features,
		Ingredients: data.Ingredients,
		MainImage:   mainRef,
		Shades:      shades,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err = s.mongoDBRepo.ReplaceProduct(ctx, updated); err != nil {
		s.logOrphans(ctx, fresh)
		return
	}

	if s.config.CleanupRemovedShadeImages {
		s.cleanupRemovedShadeImages(ctx, existing, updated)
	}

	resp = dto.CreateProductResponse(updated)
	s.publishEvent(ctx, "product_updated", resp)

	return resp, nil
}

// cleanupRemovedShadeImages deletes blobs the old document owned that the
// new one no longer references. Gated by config; the legacy behavior leaves
// them in the bucket.
func (s *ProductServiceImpl) cleanupRemovedShadeImages(ctx context.Context, old domain.Product, updated domain.Product) {
	live := make(map[primitive.ObjectID]struct{})
	for _, id := range updated.OwnedBlobs() {
		live[id] = struct{}{}
	}

	var removed []primitive.ObjectID
	for _, id := range old.OwnedBlobs() {
		if _, ok := live[id]; !ok {
			removed = append(removed, id)
		}
	}

	for _, result := range s.deleteBlobs(ctx, removed) {
		if result.Err != nil {
			log.Ctx(ctx).Error().Err(result.Err).Str("component", "cleanupRemovedShadeImages").Str("blob_id", result.BlobID.Hex()).Msg("")
		}
	}
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	// NotFound must surface before any blob store call.
	existing, err := s.mongoDBRepo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	// Every owned blob is deleted independently; failures do not stop the
	// batch or the document removal. A stuck blob is less harmful than a
	// stuck catalog entry.
	results := s.deleteBlobs(ctx, existing.OwnedBlobs())
	s.reportFailedDeletes(ctx, existing.ID.Hex(), results)

	if err = s.mongoDBRepo.DeleteProduct(ctx, id); err != nil {
		return
	}

	s.publishEvent(ctx, "product_deleted", dto.ProductResponse{ID: id})

	return nil
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (resp dto.ProductResponse, err error) {
	product, err := s.mongoDBRepo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	return dto.CreateProductResponse(product), nil
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, param pkgdto.Filter) (metadata pkgdto.PaginationMetadata, resp []dto.ProductResponse, err error) {
	products, err := s.mongoDBRepo.GetProducts(ctx, param)
	if err != nil {
		return
	}

	total, err := s.mongoDBRepo.CountProducts(ctx, param)
	if err != nil {
		return
	}

	resp = make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, dto.CreateProductResponse(product))
	}

	metadata = pkgdto.PaginationMetadata{
		TotalCount: total,
		Page:       param.Page,
		Limit:      int(param.Limit),
	}

	return metadata, resp, nil
}

func (s *ProductServiceImpl) DownloadImage(ctx context.Context, id string, w io.Writer) (contentType string, err error) {
	if !s.blobStore.ValidateID(id) {
		return "", fmt.Errorf("%w: malformed image id", errs.ErrClient)
	}

	blobID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", fmt.Errorf("%w: malformed image id", errs.ErrClient)
	}

	return s.blobStore.Download(ctx, blobID, w)
}

// BlobDeleteResult records the outcome of one delete in a batch, so callers
// can see which blobs may have been left behind without digging through logs.
type BlobDeleteResult struct {
	BlobID primitive.ObjectID
	Err    error
}

func (s *ProductServiceImpl) deleteBlobs(ctx context.Context, ids []primitive.ObjectID) []BlobDeleteResult {
	results := make([]BlobDeleteResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, BlobDeleteResult{BlobID: id, Err: s.blobStore.Delete(ctx, id)})
	}
	return results
}

func (s *ProductServiceImpl) reportFailedDeletes(ctx context.Context, productID string, results []BlobDeleteResult) {
	var failed []string
	for _, result := range results {
		if result.Err != nil {
			log.Ctx(ctx).Error().Err(result.Err).Str("component", "DeleteProduct").Str("blob_id", result.BlobID.Hex()).Msg("failed to delete owned image")
			failed = append(failed, result.BlobID.Hex())
		}
	}

	if len(failed) == 0 || s.config.SMTPConfig.Host == "" {
		return
	}

	message := utils.BuildOrphanReport(s.config.SMTPConfig.Sender, s.config.SMTPConfig.Recipient, productID, failed)
	if err := utils.SendEmail(message, s.config.SMTPConfig.Sender, s.config.SMTPConfig.Password, s.config.SMTPConfig.Host, s.config.SMTPConfig.Port); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "reportFailedDeletes").Msg("failed to send orphan report")
	}
}

func (s *ProductServiceImpl) logOrphans(ctx context.Context, ids []primitive.ObjectID) {
	for _, id := range ids {
		log.Ctx(ctx).Warn().Str("component", "logOrphans").Str("blob_id", id.Hex()).Msg("blob stored in failed request is orphaned")
	}
}

func refBlob(ref *domain.ImageRef) (primitive.ObjectID, bool) {
	if ref == nil {
		return primitive.NilObjectID, false
	}
	return ref.Blob()
}

func (s *ProductServiceImpl) writeKafkaMessage(msg []byte) error {
	_, err := s.kafkaProducer.WriteMessages(
		kafka.Message{
			Value: msg,
		},
	)
	return err
}

// publishEvent notifies downstream consumers of a committed mutation. The
// mutation has already happened, so publish failures are logged and the
// request still succeeds.
func (s *ProductServiceImpl) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.kafkaProducer == nil {
		return
	}

	kafkaMsg := dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		err = s.writeKafkaMessage(jsonMsg)
		if err == nil {
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msg("")
		time.Sleep(time.Second * time.Duration(i+1)) // Exponential backoff
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Str("event_type", eventType).Msgf("failed to write Kafka message after %d attempts", maxRetries)
}
