package service

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/adapter"
	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/policy"
	"github.com/MKhiriev/go-site-keeper/internal/store"
	"github.com/MKhiriev/go-site-keeper/internal/utils"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/gabriel-vasile/mimetype"
)

// StoragePathPrefix is the public path objects are served from when no
// access host is configured.
const StoragePathPrefix = "/storage/"

var extensionPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

type storageService struct {
	objects  adapter.ObjectStore
	metadata store.ObjectRepository

	folder     string
	accessHost string
	maxBytes   int64

	now func() time.Time

	logger *logger.Logger
}

func NewStorageService(objects adapter.ObjectStore, metadata store.ObjectRepository, cfg config.S3, logger *logger.Logger) StorageService {
	return &storageService{
		objects:    objects,
		metadata:   metadata,
		folder:     strings.Trim(cfg.Folder, "/"),
		accessHost: strings.TrimRight(cfg.AccessHost, "/"),
		maxBytes:   cfg.MaxUploadBytes,
		now:        time.Now,
		logger:     logger,
	}
}

// Upload stores data under a fresh key in the caller's folder. The object is
// written first; when its metadata row cannot be saved the object is removed
// again.
func (s *storageService) Upload(ctx context.Context, id *models.Identity, filename string, data []byte, contentType string) (models.StoredObject, error) {
	log := logger.FromContext(ctx)

	if err := policy.RequireAuthenticated(id); err != nil {
		return models.StoredObject{}, err
	}
	if len(data) == 0 {
		return models.StoredObject{}, fmt.Errorf("%w: %w", ErrInvalidArgument, ErrEmptyFile)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return models.StoredObject{}, fmt.Errorf("%w: %w: %d bytes, max %d", ErrInvalidArgument, ErrFileTooLarge, len(data), s.maxBytes)
	}

	key, err := s.newKey(id.UserID, filename)
	if err != nil {
		log.Err(err).Str("func", "*storageService.Upload").Msg("error generating object key")
		return models.StoredObject{}, fmt.Errorf("%w: %w", ErrDependencyFailure, err)
	}

	object := models.StoredObject{
		Key:         key,
		OwnerUserID: id.UserID,
		ContentType: detectContentType(data),
		Size:        int64(len(data)),
		CreatedAt:   s.now().UTC(),
	}

	if contentType != "" && contentType != object.ContentType {
		log.Debug().Str("declared", contentType).Str("detected", object.ContentType).
			Str("func", "*storageService.Upload").Msg("ignoring declared content type")
	}

	if err = s.objects.Put(ctx, key, data, object.ContentType); err != nil {
		log.Err(err).Str("key", key).Str("func", "*storageService.Upload").Msg("error writing object")
		return models.StoredObject{}, classify(err)
	}

	if err = s.metadata.Create(ctx, object); err != nil {
		log.Err(err).Str("key", key).Str("func", "*storageService.Upload").Msg("error saving object metadata")
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			log.Err(delErr).Str("key", key).Str("func", "*storageService.Upload").Msg("orphaned object left in storage")
		}
		return models.StoredObject{}, classify(err)
	}

	object.URL = s.objectURL(key)
	return object, nil
}

// Get reads an uploaded object. Keys without a metadata row are not served.
func (s *storageService) Get(ctx context.Context, key string) (models.ObjectContent, error) {
	log := logger.FromContext(ctx)

	object, err := s.metadata.Get(ctx, key)
	if err != nil {
		return models.ObjectContent{}, classify(err)
	}

	content, err := s.objects.Get(ctx, key)
	if err != nil {
		log.Err(err).Str("key", key).Str("func", "*storageService.Get").Msg("error reading object")
		return models.ObjectContent{}, classify(err)
	}
	if content.ContentType == "" {
		content.ContentType = object.ContentType
	}

	return content, nil
}

// List returns the caller's objects, or every object for admins.
func (s *storageService) List(ctx context.Context, id *models.Identity) ([]models.StoredObject, error) {
	if err := policy.RequireAuthenticated(id); err != nil {
		return nil, err
	}

	var owner int64
	if !id.Admin() {
		owner = id.UserID
	}

	objects, err := s.metadata.List(ctx, owner)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*storageService.List").Msg("error listing objects")
		return nil, classify(err)
	}

	for i := range objects {
		objects[i].URL = s.objectURL(objects[i].Key)
	}
	return objects, nil
}

// Delete removes an object and its metadata.
func (s *storageService) Delete(ctx context.Context, id *models.Identity, key string) error {
	log := logger.FromContext(ctx)

	if err := policy.RequireAuthenticated(id); err != nil {
		return err
	}

	object, err := s.metadata.Get(ctx, key)
	if err != nil {
		return classify(err)
	}
	if err = policy.RequireOwnerOrAdmin(id, object.OwnerUserID); err != nil {
		return err
	}

	if err = s.objects.Delete(ctx, key); err != nil {
		log.Err(err).Str("key", key).Str("func", "*storageService.Delete").Msg("error deleting object")
		return classify(err)
	}
	if err = s.metadata.Delete(ctx, key); err != nil {
		log.Err(err).Str("key", key).Str("func", "*storageService.Delete").Msg("error deleting object metadata")
		return classify(err)
	}

	return nil
}

// newKey builds "<folder>/<userID>/<id><ext>".
func (s *storageService) newKey(userID int64, filename string) (string, error) {
	name, err := utils.GenerateID("")
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(filename))
	if !extensionPattern.MatchString(ext) {
		ext = ""
	}

	return path.Join(s.folder, strconv.FormatInt(userID, 10), name+ext), nil
}

func (s *storageService) objectURL(key string) string {
	if s.accessHost == "" {
		return StoragePathPrefix + key
	}
	return s.accessHost + "/" + key
}

// detectContentType classifies data by its bytes. The type a client declares
// is not trusted.
func detectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}
