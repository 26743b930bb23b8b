package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"

	"estatehub_backend/internal/config"
	"estatehub_backend/internal/imageprocessor"
	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/storage"
	"estatehub_backend/pkg/apperrors"
)

type UploadService interface {
	// UploadPropertyImage stores the photo plus a thumbnail and appends the
	// public URL to the property's image list. Only the owning agent or an
	// admin may upload.
	UploadPropertyImage(ctx context.Context, viewer Viewer, propertyID string, file *multipart.FileHeader) (string, error)

	// UploadAvatar stores a profile photo and returns its public URL.
	UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error)
}

type uploadService struct {
	store        storage.Storage
	processor    *imageprocessor.Processor
	propertyRepo repositories.PropertyRepository
	agentRepo    repositories.AgentRepository
	userRepo     repositories.UserRepository
	cfg          *config.Config
}

func NewUploadService(
	store storage.Storage,
	processor *imageprocessor.Processor,
	propertyRepo repositories.PropertyRepository,
	agentRepo repositories.AgentRepository,
	userRepo repositories.UserRepository,
	cfg *config.Config,
) UploadService {
	return &uploadService{
		store:        store,
		processor:    processor,
		propertyRepo: propertyRepo,
		agentRepo:    agentRepo,
		userRepo:     userRepo,
		cfg:          cfg,
	}
}

func (s *uploadService) UploadPropertyImage(ctx context.Context, viewer Viewer, propertyID string, file *multipart.FileHeader) (string, error) {
	property, err := s.propertyRepo.FindByID(propertyID)
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return "", apperrors.ErrNotFound(err)
		}
		return "", apperrors.StorageError(err)
	}

	if !viewer.IsAdmin() {
		agent, err := s.agentRepo.FindByUserID(viewer.UserID)
		if err != nil || agent.ID != property.AgentID {
			return "", apperrors.ErrNotPropertyOwner
		}
	}

	data, ext, err := s.readUpload(file)
	if err != nil {
		return "", err
	}

	name := uuid.NewString()
	fullKey := path.Join("properties", propertyID, name+ext)
	thumbKey := path.Join("properties", propertyID, name+"_thumb"+ext)

	full, contentType, err := s.processor.Resize(bytes.NewReader(data), imageprocessor.VariantFull)
	if err != nil {
		return "", apperrors.ErrInvalidFileType
	}
	if err := s.store.Save(ctx, fullKey, full, contentType); err != nil {
		return "", apperrors.StorageError(err)
	}

	thumb, contentType, err := s.processor.Resize(bytes.NewReader(data), s.thumbVariant())
	if err != nil {
		return "", apperrors.ErrInvalidFileType
	}
	if err := s.store.Save(ctx, thumbKey, thumb, contentType); err != nil {
		return "", apperrors.StorageError(err)
	}

	url := s.store.URL(fullKey)

	var images []string
	if len(property.Images) > 0 {
		_ = json.Unmarshal(property.Images, &images)
	}
	images = append(images, url)
	if err := s.propertyRepo.UpdateFields(propertyID, map[string]interface{}{
		"images": encodeStringList(images),
	}); err != nil {
		return "", apperrors.StorageError(err)
	}

	logger.CtxInfo(ctx, "property image uploaded", "property_id", propertyID, "key", fullKey)
	return url, nil
}

func (s *uploadService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	data, ext, err := s.readUpload(file)
	if err != nil {
		return "", err
	}

	key := path.Join("avatars", userID+ext)
	resized, contentType, err := s.processor.Resize(bytes.NewReader(data), s.thumbVariant())
	if err != nil {
		return "", apperrors.ErrInvalidFileType
	}
	if err := s.store.Save(ctx, key, resized, contentType); err != nil {
		return "", apperrors.StorageError(err)
	}

	url := s.store.URL(key)
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"avatar_url": url}); err != nil {
		return "", apperrors.StorageError(err)
	}
	return url, nil
}

// thumbVariant applies the configured thumbnail width over the built-in
// default.
func (s *uploadService) thumbVariant() imageprocessor.Variant {
	v := imageprocessor.VariantThumb
	if s.cfg.Upload.ThumbWidth > 0 {
		v.Width = s.cfg.Upload.ThumbWidth
	}
	return v
}

// readUpload enforces the size and type limits and slurps the file once so
// it can be resized into several variants.
func (s *uploadService) readUpload(file *multipart.FileHeader) ([]byte, string, error) {
	if file.Size > s.cfg.Upload.MaxSize {
		return nil, "", apperrors.ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	allowed := false
	for _, t := range s.cfg.Upload.AllowedTypes {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, "", apperrors.ErrInvalidFileType
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", apperrors.StorageError(err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.cfg.Upload.MaxSize+1))
	if err != nil {
		return nil, "", apperrors.StorageError(err)
	}
	if int64(len(data)) > s.cfg.Upload.MaxSize {
		return nil, "", apperrors.ErrFileTooLarge
	}
	if !imageprocessor.IsValidImage(bytes.NewReader(data)) {
		return nil, "", apperrors.ErrInvalidFileType
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	if ext == "" {
		ext = fmt.Sprintf(".%s", strings.TrimPrefix(contentType, "image/"))
	}
	return data, ext, nil
}
